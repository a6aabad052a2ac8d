package main

import (
	"time"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traff"
	"golang.org/x/exp/slog"
)

//**********************************************************
// traffic handlers
//**********************************************************

func HandlePushFeed(body []byte) Result {
	feed, err := traff.ParseFeed(body, time.Now())
	if err != nil {
		slog.Error("failed to parse feed: " + err.Error())
		return BadRequest("invalid feed: " + err.Error())
	}
	if feed.Messages.Length() == 0 {
		return BadRequest("empty feed")
	}
	MANAGER.Push(feed)
	return OK(feed.Messages.Length())
}

func HandleState(req none) Result {
	resp := StateResponse{
		State:   MANAGER.State(),
		Enabled: MANAGER.IsEnabled(),
	}
	return OK(resp)
}

func HandleColoring(req none) Result {
	coloring := MANAGER.GetColoring()
	resp := NewColoringResponse(coloring, GRAPH, SEGMENTS)
	return OK(resp)
}

func HandleEnable(req EnableRequest) Result {
	MANAGER.SetEnabled(req.Enabled)
	return OK(MANAGER.IsEnabled())
}

func HandleViewport(req ViewportRequest) Result {
	if len(req.BBox) != 4 {
		return BadRequest("bbox must be [min_lon, min_lat, max_lon, max_lat]")
	}
	box := geo.NewBBox(req.BBox[0], req.BBox[1], req.BBox[2], req.BBox[3])
	MANAGER.UpdateViewport(box)
	tiles := MANAGER.GetActiveTiles()
	return OK(tiles.Length())
}

func HandlePosition(req PositionRequest) Result {
	if len(req.Point) != 2 {
		return BadRequest("point must be [lon, lat]")
	}
	MANAGER.UpdatePosition(geo.Coord{req.Point[0], req.Point[1]})
	tiles := MANAGER.GetActiveTiles()
	return OK(tiles.Length())
}

func HandlePause(req none) Result {
	MANAGER.Pause()
	return OK("paused")
}

func HandleResume(req none) Result {
	MANAGER.Resume()
	return OK("resumed")
}

func HandlePurge(req none) Result {
	MANAGER.PurgeExpiredMessages()
	return OK("purged")
}

func HandleClear(req none) Result {
	MANAGER.Clear()
	return OK("cleared")
}
