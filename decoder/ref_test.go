package decoder

import (
	"testing"

	. "github.com/ttpr0/go-traffic/util"
)

func TestParseRef(t *testing.T) {
	cases := []struct {
		ref  string
		want []string
	}{
		{"A1", []string{"a", "1"}},
		{"B 96", []string{"b", "96"}},
		{"A1/E30", []string{"a", "1", "e", "30"}},
		{"L 3020", []string{"l", "3020"}},
		{"St2045", []string{"st", "2045"}},
		{"", []string{}},
	}
	for _, c := range cases {
		got := ParseRef(c.ref)
		if got.Length() != len(c.want) {
			t.Errorf("ParseRef(%q) = %v; want %v", c.ref, got, c.want)
			continue
		}
		for i, token := range c.want {
			if got[i] != token {
				t.Errorf("ParseRef(%q)[%d] = %q; want %q", c.ref, i, got[i], token)
			}
		}
	}
}

func TestGetRoadRefPenalty(t *testing.T) {
	cases := []struct {
		location string
		road     string
		want     float64
	}{
		{"A 1", "A1", 1},
		{"A 1", "A 2", _ATTRIBUTE_PENALTY},
		{"A 1", "1", _REDUCED_ATTRIBUTE_PENALTY},
		{"A 1", "B 96", _ATTRIBUTE_PENALTY},
		{"A 1", "", _ATTRIBUTE_PENALTY},
		{"", "", 1},
		{"", "A 1", _ATTRIBUTE_PENALTY},
		// the best of several shields wins
		{"A 1", "B 96;A 1", 1},
	}
	for _, c := range cases {
		location_ref := NewList[string](0)
		if c.location != "" {
			location_ref = ParseRef(c.location)
		}
		got := GetRoadRefPenalty(location_ref, c.road)
		if got != c.want {
			t.Errorf("GetRoadRefPenalty(%q, %q) = %v; want %v", c.location, c.road, got, c.want)
		}
	}
}
