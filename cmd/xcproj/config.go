package main

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultConfigPath = "xcproj.toml"

// Config is the contents of xcproj.toml:
//
//	log_level = "debug"
//	log_format = "json"
//
//	[names]
//	0A1B2C3D4E5F6A7B8C9D0E1F = "MyApp"
type Config struct {
	LogLevel  string            `toml:"log_level"`
	LogFormat string            `toml:"log_format"`
	Names     map[string]string `toml:"names"`
}

// loadConfig reads the TOML config at path. A missing file yields an empty
// config unless the path was given explicitly. Unknown keys are rejected.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &Config{Names: make(map[string]string)}, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Names == nil {
		cfg.Names = make(map[string]string)
	}
	return cfg, nil
}
