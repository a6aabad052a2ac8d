package main

//**********************************************************
// traffic request params
//**********************************************************

type ViewportRequest struct {
	// [min_lon, min_lat, max_lon, max_lat]
	BBox []float32 `json:"bbox"`
}

type PositionRequest struct {
	// [lon, lat]
	Point []float32 `json:"point"`
}

type EnableRequest struct {
	Enabled bool `json:"enabled"`
}
