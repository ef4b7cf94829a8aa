// Package config loads cityserver's runtime configuration from a YAML
// file overlaid with environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const defaultPath = "."

// Config is the complete runtime configuration for cityserver.
type Config struct {
	Env struct {
		Env   string `json:"env" yaml:"env"`
		Debug bool   `json:"debug" yaml:"debug"`
		Log   Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Addr            string        `json:"addr" yaml:"addr"`
		ReadTimeout     time.Duration `json:"readTimeout" yaml:"readTimeout"`
		WriteTimeout    time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
		ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
	} `json:"http" yaml:"http"`

	Index IndexConfig `json:"index" yaml:"index"`
}

// IndexConfig controls how the core indexes are built and queried.
type IndexConfig struct {
	DataPath     string `json:"dataPath" yaml:"dataPath"`
	GridDivision int    `json:"gridDivision" yaml:"gridDivision"`
	DefaultK     int    `json:"defaultK" yaml:"defaultK"`
}

// Log controls the slog handler cityserver configures at startup.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads <currEnv>.yaml through koanf and overlays every
// environment variable, lower-cased with underscores turned into dots
// (HTTP_ADDR translates to http.addr; no prefix is stripped). The file is
// looked up in the working directory first, then in configPath in order.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := append([]string{defaultPath}, configPath...)

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read %s config failed: %w", currEnv, err)
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			key := strings.ReplaceAll(strings.ToLower(k), "_", ".")
			return key, v
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load env variables failed: %w", err)
	}

	if err := koanfInstance.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal %s config failed: %w", currEnv, err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg any) {
	c, ok := cfg.(*Config)
	if !ok {
		return
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 5 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 10 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 5 * time.Second
	}
	if c.Index.GridDivision == 0 {
		c.Index.GridDivision = 90
	}
	if c.Index.DefaultK == 0 {
		c.Index.DefaultK = 10
	}
	if c.Env.Log.Level == "" {
		c.Env.Log.Level = "info"
	}
}

// New loads the "config" environment from the working directory and the
// conventional ./config, ../config search paths.
func New() (*Config, error) {
	return LoadWithEnv[Config]("config", "config", "../config")
}
