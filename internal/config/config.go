// Package config holds globally available configuration, read from a TOML
// file with defaults for everything it doesn't find.
package config

import (
	"log"

	"github.com/BurntSushi/toml"
)

// ConfFile is the path to the config file, relative to the working
// directory, unless overridden before calling Setup.
var ConfFile = "./zugzwang.toml"

// Settings is the global configuration, populated by Setup.
var Settings conf

var initialized = false

type conf struct {
	Cache CacheConfig
	Log   LogConfig
}

// CacheConfig controls the Badger-backed artifact cache. An empty Dir means
// "use the OS cache directory" (artifact.DefaultCacheDir).
type CacheConfig struct {
	Dir             string `toml:"dir"`
	RecomputeMagics bool   `toml:"recompute_magics"`
	WeightsFile     string `toml:"weights_file"`
}

// LogConfig controls logging verbosity.
type LogConfig struct {
	Level string `toml:"level"`
}

func defaults() conf {
	return conf{
		Cache: CacheConfig{
			Dir:             "",
			RecomputeMagics: false,
			WeightsFile:     "",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Setup reads ConfFile and populates Settings, falling back to defaults for
// any field the file doesn't set (or if the file is missing entirely).
// Setup only runs once; subsequent calls are no-ops.
func Setup() {
	if initialized {
		return
	}

	Settings = defaults()
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		log.Printf("config: %s not found or invalid, using defaults (%v)", ConfFile, err)
		Settings = defaults()
	}

	initialized = true
}

// Reset clears the initialized flag, for tests that need Setup to re-read
// ConfFile after changing it.
func Reset() {
	initialized = false
}
