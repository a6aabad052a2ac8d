package geo

//*******************************************
// geojson features
//*******************************************

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func NewPoint(point Coord) Geometry {
	return Geometry{
		Type:        "Point",
		Coordinates: point,
	}
}
func NewLineString(line CoordArray) Geometry {
	return Geometry{
		Type:        "LineString",
		Coordinates: line,
	}
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

func NewFeature(geometry Geometry, properties map[string]any) Feature {
	return Feature{
		Type:       "Feature",
		Geometry:   geometry,
		Properties: properties,
	}
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection(features []Feature) FeatureCollection {
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
