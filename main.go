package main

import (
	"net/http"
	"os"

	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/source"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
	"golang.org/x/exp/slog"
)

var MANAGER *TrafficManager
var GRAPH *graph.Graph
var SEGMENTS Dict[traffic.RoadSegmentId, int32]

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	config := ReadConfig("./config.yaml")

	if config.BuildGraph || !FileExists(config.Build.Graph) {
		GRAPH = PrepareGraph(config.Build.Source.OSM, config.Build.Graph)
	} else {
		GRAPH = graph.Load(config.Build.Graph)
	}
	SEGMENTS = BuildSegmentIndex(GRAPH)

	MANAGER = NewTrafficManager(GRAPH, nil, nil, config.Traffic.ManagerOptions())
	for _, opts := range config.Sources {
		switch val := opts.Value.(type) {
		case MockSourceOptions:
			source.NewMockSource(MANAGER, val.Path)
			slog.Info("registered mock source " + val.Path)
		case HttpSourceOptions:
			source.NewHttpSource(MANAGER, val.Url)
			slog.Info("registered http source " + val.Url)
		}
	}
	MANAGER.Start()
	defer MANAGER.Teardown()
	MANAGER.SetEnabled(config.Traffic.Enabled)

	app := http.NewServeMux()
	MapPostRaw(app, "/v1/traffic/feed", HandlePushFeed)
	MapGet(app, "/v1/traffic/state", HandleState)
	MapGet(app, "/v1/traffic/coloring", HandleColoring)
	MapPost(app, "/v1/traffic/enable", HandleEnable)
	MapPost(app, "/v1/traffic/viewport", HandleViewport)
	MapPost(app, "/v1/traffic/position", HandlePosition)
	MapPost(app, "/v1/traffic/pause", HandlePause)
	MapPost(app, "/v1/traffic/resume", HandleResume)
	MapPost(app, "/v1/traffic/purge", HandlePurge)
	MapPost(app, "/v1/traffic/clear", HandleClear)

	slog.Info("listening on " + config.Service.Addr)
	http.ListenAndServe(config.Service.Addr, app)
}
