package main

import (
	"errors"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	. "github.com/ttpr0/go-traffic/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	if err := validator.New().Struct(config); err != nil {
		slog.Error("invalid config: " + err.Error())
		panic(err)
	}
	return config
}

type Config struct {
	Build struct {
		Source SourceFiles `yaml:"source"`
		Graph  string      `yaml:"graph" validate:"required"`
	} `yaml:"build"`
	BuildGraph bool `yaml:"build-graph"`
	Service    struct {
		Addr string `yaml:"addr" validate:"required,hostname_port"`
	} `yaml:"service"`
	Traffic TrafficOptions       `yaml:"traffic"`
	Sources List[*SourceOptions] `yaml:"sources"`
}

//**********************************************************
// traffic options
//**********************************************************

// All intervals are in seconds, zero means the built-in default.
type TrafficOptions struct {
	Enabled          bool `yaml:"enabled"`
	LeftHand         bool `yaml:"left-hand"`
	TestMode         bool `yaml:"test-mode"`
	UpdateInterval   int  `yaml:"update-interval" validate:"gte=0"`
	RendererInterval int  `yaml:"renderer-interval" validate:"gte=0"`
	ObserverInterval int  `yaml:"observer-interval" validate:"gte=0"`
	OutdatedTimeout  int  `yaml:"outdated-timeout" validate:"gte=0"`
	NetworkTimeout   int  `yaml:"network-timeout" validate:"gte=0"`
	MaxRetries       int  `yaml:"max-retries" validate:"gte=0"`
}

func (self TrafficOptions) ManagerOptions() ManagerOptions {
	options := DefaultManagerOptions()
	options.LeftHandTraffic = self.LeftHand
	options.TestMode = self.TestMode
	if self.UpdateInterval > 0 {
		options.UpdateInterval = time.Duration(self.UpdateInterval) * time.Second
	}
	if self.RendererInterval > 0 {
		options.RendererInterval = time.Duration(self.RendererInterval) * time.Second
	}
	if self.ObserverInterval > 0 {
		options.ObserverInterval = time.Duration(self.ObserverInterval) * time.Second
	}
	if self.OutdatedTimeout > 0 {
		options.OutdatedTimeout = time.Duration(self.OutdatedTimeout) * time.Second
	}
	if self.NetworkTimeout > 0 {
		options.NetworkTimeout = time.Duration(self.NetworkTimeout) * time.Second
	}
	if self.MaxRetries > 0 {
		options.MaxRetries = self.MaxRetries
	}
	return options
}

//**********************************************************
// source options
//**********************************************************

type SourceFiles struct {
	OSM string `yaml:"osm"`
}

type SourceOptions struct {
	Value ISourceOptions
}

func (self *SourceOptions) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	typ, ok := m["type"].(string)
	if !ok {
		return errors.New("missing source type")
	}
	switch typ {
	case "mock":
		val := MockSourceOptions{}
		if err := value.Decode(&val); err != nil {
			return err
		}
		self.Value = val
	case "http":
		val := HttpSourceOptions{}
		if err := value.Decode(&val); err != nil {
			return err
		}
		self.Value = val
	default:
		return errors.New("unknown source type: " + typ)
	}
	return nil
}

type ISourceOptions interface {
	Type() string
}

type MockSourceOptions struct {
	Path string `yaml:"path" validate:"required"`
}

func (self MockSourceOptions) Type() string {
	return "mock"
}

type HttpSourceOptions struct {
	Url string `yaml:"url" validate:"required,url"`
}

func (self HttpSourceOptions) Type() string {
	return "http"
}
