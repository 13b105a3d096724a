// Package config loads the service configuration from a YAML or JSON file
// with optional CROSSING_-prefixed environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/causewaylab/crossing/core/metrics"
	"github.com/causewaylab/crossing/infra/modelstore"
	"github.com/causewaylab/crossing/infra/monitoring"
	"github.com/causewaylab/crossing/infra/notify"
	"github.com/causewaylab/crossing/infra/traffic"
	"github.com/causewaylab/crossing/infra/weather"
)

type Config struct {
	Server  ServerConfig      `json:"server"`
	Model   modelstore.Config `json:"model"`
	Weather weather.Config    `json:"weather"`
	Traffic traffic.Config    `json:"traffic"`
	Storage StorageConfig     `json:"storage"`
	Metrics metrics.Config    `json:"metrics"`
	Alerts  notify.Config     `json:"alerts"`
	Sentry  monitoring.Config `json:"sentry"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("CROSSING_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "crossing_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Model.SetDefaults()
	cfg.Weather.SetDefaults()
	cfg.Traffic.SetDefaults()
	cfg.Storage.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Alerts.SetDefaults()
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
