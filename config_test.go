package main

import (
	"testing"

	. "github.com/ttpr0/go-traffic/util"
	"gopkg.in/yaml.v3"
)

func TestSourceOptionsUnmarshal(t *testing.T) {
	data := `
- type: mock
  path: ./feeds
- type: http
  url: http://example.com/traff
`
	var sources List[*SourceOptions]
	if err := yaml.Unmarshal([]byte(data), &sources); err != nil {
		t.Fatalf("Unmarshal: err = %v; want nil", err)
	}
	if sources.Length() != 2 {
		t.Fatalf("parsed %v sources; want 2", sources.Length())
	}
	mock, ok := sources[0].Value.(MockSourceOptions)
	if !ok || mock.Path != "./feeds" {
		t.Errorf("sources[0] = %v; want mock with path ./feeds", sources[0].Value)
	}
	http, ok := sources[1].Value.(HttpSourceOptions)
	if !ok || http.Url != "http://example.com/traff" {
		t.Errorf("sources[1] = %v; want http with url", sources[1].Value)
	}
}

func TestSourceOptionsUnmarshalErrors(t *testing.T) {
	missing := `
- path: ./feeds
`
	var sources List[*SourceOptions]
	if err := yaml.Unmarshal([]byte(missing), &sources); err == nil {
		t.Errorf("Unmarshal without type: err = nil; want error")
	}

	unknown := `
- type: ftp
  url: ftp://example.com
`
	if err := yaml.Unmarshal([]byte(unknown), &sources); err == nil {
		t.Errorf("Unmarshal with unknown type: err = nil; want error")
	}

	// a malformed block must fail instead of yielding zero values
	malformed := `
- type: mock
  path: [1, 2]
`
	if err := yaml.Unmarshal([]byte(malformed), &sources); err == nil {
		t.Errorf("Unmarshal with malformed path: err = nil; want error")
	}
}
