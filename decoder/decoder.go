package decoder

import (
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/routing"
	"github.com/ttpr0/go-traffic/traff"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// location decoder
//*******************************************

// Decoder matches abstract message locations onto graph segments and
// converts message events into per-segment speed groups.
type Decoder struct {
	graph     graph.IGraph
	left_hand bool
	// segment to edge lookup, built on first use
	segments Dict[traffic.RoadSegmentId, int32]
}

func NewDecoder(g graph.IGraph, left_hand bool) *Decoder {
	return &Decoder{
		graph:     g,
		left_hand: left_hand,
	}
}

// DecodeMessage fills the coloring of a message. When the cache holds
// a message with the same id (or one this message replaces) and an
// equal location, its segments are reused instead of running a new
// route search. If the cached impact also matches, the cached
// coloring is taken over as a whole.
func (self *Decoder) DecodeMessage(message *traff.Message, cache Dict[string, *traff.Message]) {
	if !message.Location.HasValue() {
		return
	}
	impact := message.GetTrafficImpact()
	if !impact.HasValue() {
		return
	}

	location := &message.Location.Value
	decoded := traffic.NewMultiTileColoring()
	is_decoded := false

	ids := NewList[string](message.Replaces.Length() + 1)
	ids.Add(message.Id)
	for _, id := range message.Replaces {
		ids.Add(id)
	}

	for _, id := range ids {
		cached, ok := cache[id]
		if !ok || !cached.Coloring.HasValue() || cached.Coloring.Value.Length() == 0 {
			continue
		}
		if !cached.Location.HasValue() || !cached.Location.Value.Equal(location) {
			continue
		}
		cached_impact := cached.GetTrafficImpact()
		if cached_impact.HasValue() && cached_impact.Value.Equal(impact.Value) {
			slog.Debug("reusing cached coloring for message " + message.Id)
			message.Coloring = Some(cached.Coloring.Value)
			return
		}
		if !is_decoded {
			// take the first matching location but keep searching, a
			// later id might also match the impact
			decoded = _CopyColoring(cached.Coloring.Value)
			is_decoded = true
		}
	}

	if !is_decoded {
		self.DecodeLocation(message, decoded)
	}
	self.ApplyTrafficImpact(impact.Value, decoded)
	message.Coloring = Some(decoded)
}

// DecodeLocation matches the location of a message onto graph
// segments, adding them to decoded with an unknown speed group.
func (self *Decoder) DecodeLocation(message *traff.Message, decoded traffic.MultiTileColoring) {
	if !message.Location.HasValue() {
		return
	}
	location := &message.Location.Value

	road_ref := NewList[string](0)
	if location.RoadRef.HasValue() {
		road_ref = ParseRef(location.RoadRef.Value)
	}

	// junction candidates only help with coarse locations, for
	// precise ones the endpoints already lie on the road
	start_junctions := NewDict[geo.Coord, float64](0)
	end_junctions := NewDict[geo.Coord, float64](0)
	if location.Fuzziness.HasValue() && location.Fuzziness.Value == traff.FUZZINESS_LOW_RES {
		from, to := _LocationEndpoints(location)
		radius := JunctionRadius(from, to)
		if location.From.HasValue() {
			start_junctions = GetJunctionCandidates(self.graph, location.From.Value, radius, location, road_ref)
		}
		if location.To.HasValue() {
			end_junctions = GetJunctionCandidates(self.graph, location.To.Value, radius, location, road_ref)
		}
	}

	estimator := NewTraffEstimator(self.graph, location, road_ref, start_junctions, end_junctions, self.left_hand)

	dirs := 1
	if location.Directionality == traff.BOTH_DIRECTIONS {
		dirs = 2
	}
	for dir := 0; dir < dirs; dir++ {
		self._DecodeDirection(location, estimator, decoded, dir == 1)
	}
}

func _LocationEndpoints(location *traff.Location) (geo.Coord, geo.Coord) {
	from := location.At
	if location.From.HasValue() {
		from = location.From
	}
	to := location.At
	if location.To.HasValue() {
		to = location.To
	}
	return from.Value.Coordinates, to.Value.Coordinates
}

func (self *Decoder) _DecodeDirection(location *traff.Location, estimator *TraffEstimator, decoded traffic.MultiTileColoring, backwards bool) {
	points := NewList[geo.Coord](3)
	if location.From.HasValue() {
		points.Add(location.From.Value.Coordinates)
	}
	if location.At.HasValue() {
		points.Add(location.At.Value.Coordinates)
	} else if location.Via.HasValue() {
		points.Add(location.Via.Value.Coordinates)
	}
	if location.To.HasValue() {
		points.Add(location.To.Value.Coordinates)
	}
	// the not_via point has no equivalent in the route search and is
	// ignored
	if backwards {
		for i, j := 0, points.Length()-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	if points.Length() < 2 {
		return
	}

	code, route := routing.CalculateRoute(self.graph, estimator, points)
	if code != routing.NO_ERROR {
		slog.Warn("failed to match location: " + code.String())
		return
	}

	segments := _TruncateRoute(route.Segments, points[0], points[points.Length()-1], backwards, estimator.start_junctions, estimator.end_junctions)
	if segments.Length() == 0 {
		return
	}

	if location.At.HasValue() && !location.To.HasValue() {
		// from-at, conditions end at the at point
		if backwards {
			self._AddSegment(decoded, segments[0])
		} else {
			self._AddSegment(decoded, segments[segments.Length()-1])
		}
		return
	}
	if location.At.HasValue() && !location.From.HasValue() {
		// at-to, conditions start at the at point
		if backwards {
			self._AddSegment(decoded, segments[segments.Length()-1])
		} else {
			self._AddSegment(decoded, segments[0])
		}
		return
	}
	if location.At.HasValue() {
		// from-at-to, color only the segment closest to the at point
		at := location.At.Value.Coordinates
		closest := segments[0]
		closest_dist := geo.HaversineDistance(at, closest.Exit)
		for _, segment := range segments {
			// with more than two reference points fake segments can
			// occur in the middle of the route
			if segment.Fake {
				continue
			}
			dist := geo.HaversineDistance(at, segment.Exit)
			if dist < closest_dist {
				closest = segment
				closest_dist = dist
			}
		}
		self._AddSegment(decoded, closest)
		return
	}

	// Roundabout segments are skipped to avoid side effects on
	// crossing roads, unless the entire location lies on the
	// roundabout.
	keep_roundabouts := true
	for _, segment := range segments {
		if !segment.Fake && !segment.Roundabout {
			keep_roundabouts = false
			break
		}
	}
	for _, segment := range segments {
		if segment.Fake {
			continue
		}
		if segment.Roundabout && !keep_roundabouts {
			continue
		}
		self._AddSegment(decoded, segment)
	}
}

func (self *Decoder) _AddSegment(decoded traffic.MultiTileColoring, segment routing.RouteSegment) {
	if segment.Fake {
		return
	}
	coloring, ok := decoded[segment.Tile]
	if !ok {
		coloring = traffic.NewColoring()
		decoded[segment.Tile] = coloring
	}
	coloring[segment.SegmentId] = traffic.UNKNOWN
}

//*******************************************
// route truncation
//*******************************************

// The route search connects the reference points to the road network
// with weighted offroad legs, which can pull extra road segments into
// the route near its ends. Truncation removes leading and trailing
// segments whenever leaving the route at an intermediate junction
// saves more cost than continuing to the snapped endpoint.
func _TruncateRoute(segments List[routing.RouteSegment], start_point, end_point geo.Coord, backwards bool, start_junctions, end_junctions Dict[geo.Coord, float64]) List[routing.RouteSegment] {
	if segments.Length() == 0 {
		return segments
	}
	end_weight := segments[segments.Length()-1].TimeFromStart

	// drop the synthetic entry and exit segments
	for segments.Length() > 0 && segments[0].Fake {
		segments = segments[1:]
	}
	for segments.Length() > 0 && segments[segments.Length()-1].Fake {
		segments = segments[:segments.Length()-1]
	}
	if segments.Length() < 2 {
		return segments
	}

	head_junctions := start_junctions
	tail_junctions := end_junctions
	if backwards {
		head_junctions, tail_junctions = end_junctions, start_junctions
	}

	start, start_saving := _TruncateStart(segments, start_point, head_junctions)
	end, end_saving := _TruncateEnd(segments, end_point, tail_junctions, end_weight)

	// If the ranges overlap, first truncate where the saving is
	// bigger, then recalculate the other end.
	if start <= end {
		return segments[start : end+1]
	} else if start_saving > end_saving {
		segments = segments[start:]
		end, _ = _TruncateEnd(segments, end_point, tail_junctions, end_weight)
		return segments[:end+1]
	}
	segments = segments[:end+1]
	start, _ = _TruncateStart(segments, start_point, head_junctions)
	return segments[start:]
}

// Returns the index of the first segment to keep and the cost saved
// by omitting the segments before it. Leaving the route at the end
// junction of a segment costs its junction weight if it is a
// candidate, otherwise the plain offroad weight from the start point.
func _TruncateStart(segments List[routing.RouteSegment], start_point geo.Coord, junctions Dict[geo.Coord, float64]) (int, float64) {
	start := 0
	saving := 0.0
	for i, segment := range segments {
		exit_weight, ok := _LookupJunction(segment.Exit, junctions)
		if !ok {
			exit_weight = float64(geo.HaversineDistance(start_point, segment.Exit)) * _OFFROAD_PENALTY
		}
		new_saving := segment.TimeFromStart - exit_weight
		if new_saving > saving {
			// drop this segment and keep the next one
			start = i + 1
			saving = new_saving
		}
	}
	return start, saving
}

// Returns the index of the last segment to keep and the cost saved by
// omitting the segments after it.
func _TruncateEnd(segments List[routing.RouteSegment], end_point geo.Coord, junctions Dict[geo.Coord, float64], end_weight float64) (int, float64) {
	end := segments.Length() - 1
	saving := 0.0
	for i, segment := range segments {
		exit_weight, ok := _LookupJunction(segment.Exit, junctions)
		if !ok {
			exit_weight = float64(geo.HaversineDistance(segment.Exit, end_point)) * _OFFROAD_PENALTY
		}
		new_saving := end_weight - segment.TimeFromStart - exit_weight
		if new_saving > saving {
			end = i
			saving = new_saving
		}
	}
	return end, saving
}

//*******************************************
// impact application
//*******************************************

// ApplyTrafficImpact consolidates a traffic impact into a single
// speed group per decoded segment. Delays are converted into a speed
// group by comparing the normal travel time over all segments against
// the delayed one, speed limits by comparing them against the posted
// limit of each segment. The slowest applicable group wins, a hard
// block overrides everything.
func (self *Decoder) ApplyTrafficImpact(impact traff.TrafficImpact, decoded traffic.MultiTileColoring) {
	from_delay := traffic.UNKNOWN

	if impact.DelayMins > 0 && impact.SpeedGroup != traffic.TEMP_BLOCK {
		normal_duration := 0.0
		for _, coloring := range decoded {
			for segment := range coloring {
				edge, ok := self._EdgeOf(segment)
				if !ok {
					continue
				}
				attribs := self.graph.GetEdgeAttribs(edge)
				if attribs.Maxspeed == 0 {
					continue
				}
				normal_duration += float64(attribs.Length) * 3.6 / float64(attribs.Maxspeed)
			}
		}
		delayed_duration := normal_duration + float64(impact.DelayMins)*60
		from_delay = traffic.SpeedGroupByPercentage(normal_duration * 100 / delayed_duration)
	}

	for _, coloring := range decoded {
		for segment := range coloring {
			group := impact.SpeedGroup
			if group != traffic.TEMP_BLOCK && from_delay != traffic.UNKNOWN {
				group = traffic.CombineSpeedGroups(group, from_delay)
			}
			if group != traffic.TEMP_BLOCK && impact.Maxspeed != traff.MAXSPEED_NONE {
				if edge, ok := self._EdgeOf(segment); ok {
					attribs := self.graph.GetEdgeAttribs(edge)
					if attribs.Maxspeed != 0 {
						from_maxspeed := traffic.SpeedGroupByPercentage(float64(impact.Maxspeed) * 100 / float64(attribs.Maxspeed))
						group = traffic.CombineSpeedGroups(group, from_maxspeed)
					}
				}
			}
			coloring[segment] = group
		}
	}
}

func (self *Decoder) _EdgeOf(segment traffic.RoadSegmentId) (int32, bool) {
	if self.segments == nil {
		self.segments = NewDict[traffic.RoadSegmentId, int32](self.graph.EdgeCount())
		for i := 0; i < self.graph.EdgeCount(); i++ {
			attribs := self.graph.GetEdgeAttribs(int32(i))
			self.segments[traffic.NewRoadSegmentId(attribs.Feature, attribs.SegmentIndex, attribs.Dir)] = int32(i)
		}
	}
	edge, ok := self.segments[segment]
	return edge, ok
}

func _CopyColoring(coloring traffic.MultiTileColoring) traffic.MultiTileColoring {
	result := traffic.NewMultiTileColoring()
	for tile, groups := range coloring {
		copied := traffic.NewColoring()
		for segment, group := range groups {
			copied[segment] = group
		}
		result[tile] = copied
	}
	return result
}
