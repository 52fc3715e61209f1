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

	"github.com/tanklogix/loadplan/core/catalog"
	"github.com/tanklogix/loadplan/core/metrics"
	"github.com/tanklogix/loadplan/core/plan"
	"github.com/tanklogix/loadplan/infra/ambient"
	"github.com/tanklogix/loadplan/infra/mqtt"
)

// APIConfig defines the HTTP listener.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

type Config struct {
	API     APIConfig      `json:"api"`
	MQTT    mqtt.Config    `json:"mqtt"`
	Plan    plan.Config    `json:"plan"`
	Catalog catalog.Config `json:"catalog"`
	Metrics metrics.Config `json:"metrics"`
	Ambient ambient.Config `json:"ambient"`
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
	if err := k.Load(env.Provider("LOADPLAN_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "loadplan_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.API.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Plan.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Ambient.SetDefaults()
	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
