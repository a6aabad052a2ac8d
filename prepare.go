package main

import (
	"os"
	"path/filepath"

	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/parser"
	"golang.org/x/exp/slog"
)

// PrepareGraph parses the configured OSM extract and stores the resulting
// road graph, returning the loaded graph.
func PrepareGraph(osm_file string, graph_file string) *graph.Graph {
	slog.Info("building graph from " + osm_file)
	g := parser.ParseGraph(osm_file)
	dir := filepath.Dir(graph_file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("failed to create graph directory: " + err.Error())
		panic(err)
	}
	graph.Store(g, graph_file)
	slog.Info("graph stored at " + graph_file)
	return g
}
