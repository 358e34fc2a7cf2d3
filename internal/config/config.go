// Package config loads the server configuration from YAML with
// defaults for every field, so an empty path yields a runnable setup.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Seed           int64  `yaml:"seed"`
	RenderDistance int    `yaml:"render_distance"`
	MeshWorkers    int    `yaml:"mesh_workers"`
	MeshQueue      int    `yaml:"mesh_queue"`
	MeshBudget     int    `yaml:"mesh_budget_per_update"`
	TickRateHz     int    `yaml:"tick_rate_hz"`
	ListenAddr     string `yaml:"listen_addr"`
	DataDir        string `yaml:"data_dir"`
	JournalEnabled bool   `yaml:"journal_enabled"`
	ViewerQueue    int    `yaml:"viewer_queue"`
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func Defaults() Config {
	return Config{
		Seed:           1337,
		RenderDistance: 3,
		MeshWorkers:    2,
		MeshQueue:      64,
		MeshBudget:     8,
		TickRateHz:     20,
		ListenAddr:     ":8080",
		DataDir:        "data",
		JournalEnabled: true,
		ViewerQueue:    256,
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	d := Defaults()
	if c.RenderDistance == 0 {
		c.RenderDistance = d.RenderDistance
	}
	if c.MeshWorkers == 0 {
		c.MeshWorkers = d.MeshWorkers
	}
	if c.MeshQueue <= 0 {
		c.MeshQueue = d.MeshQueue
	}
	if c.MeshBudget <= 0 {
		c.MeshBudget = d.MeshBudget
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = d.TickRateHz
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = d.ListenAddr
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = d.DataDir
	}
	if c.ViewerQueue <= 0 {
		c.ViewerQueue = d.ViewerQueue
	}
}

func (c Config) Validate() error {
	if c.RenderDistance < 1 || c.RenderDistance > 10 {
		return fmt.Errorf("render_distance must be in [1,10], got %d", c.RenderDistance)
	}
	if c.MeshWorkers < 0 {
		return fmt.Errorf("mesh_workers must be >= 0, got %d", c.MeshWorkers)
	}
	if c.TickRateHz < 1 || c.TickRateHz > 240 {
		return fmt.Errorf("tick_rate_hz must be in [1,240], got %d", c.TickRateHz)
	}
	return nil
}
