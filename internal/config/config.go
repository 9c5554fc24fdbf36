// Package config provides unified configuration loading for the
// emergence engine. It supports loading from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/neurogrid/emergence/internal/game"
	"github.com/neurogrid/emergence/internal/grid"
	"github.com/neurogrid/emergence/internal/pattern"
)

// Config contains all engine configuration settings.
type Config struct {
	// Grid contains board geometry and wiring settings.
	Grid GridConfig `json:"grid" yaml:"grid"`

	// Game contains turn-loop settings.
	Game GameConfig `json:"game" yaml:"game"`

	// Detection contains pattern-detector thresholds.
	Detection DetectionConfig `json:"detection" yaml:"detection"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// GridConfig configures the board and the auto-connection rule.
type GridConfig struct {
	// Size is the board edge length; the grid is Size x Size cells.
	Size int `json:"size" yaml:"size" env:"EMERGENCE_GRID_SIZE"`

	// ConnectRadius is the maximum Euclidean distance at which a new
	// neuron wires to an existing one.
	ConnectRadius float64 `json:"connect_radius" yaml:"connect_radius" env:"EMERGENCE_CONNECT_RADIUS"`

	// MaxAutoConnections caps the new links a single placement may
	// create.
	MaxAutoConnections int `json:"max_auto_connections" yaml:"max_auto_connections" env:"EMERGENCE_MAX_AUTO_CONNECTIONS"`
}

// GameConfig configures the turn controller.
type GameConfig struct {
	// SettleSteps is the number of activation ticks run after each
	// placement before patterns are detected.
	SettleSteps int `json:"settle_steps" yaml:"settle_steps" env:"EMERGENCE_SETTLE_STEPS"`

	// WinThreshold is the consciousness level that ends the game.
	WinThreshold float64 `json:"win_threshold" yaml:"win_threshold" env:"EMERGENCE_WIN_THRESHOLD"`

	// MaxTurns caps the turn counter; when reached the session is
	// drawn. Zero disables the cap.
	MaxTurns int `json:"max_turns" yaml:"max_turns" env:"EMERGENCE_MAX_TURNS"`
}

// DetectionConfig configures the pattern detector.
type DetectionConfig struct {
	// MaxCycleLen bounds the loop search to cycles of this length or
	// shorter.
	MaxCycleLen int `json:"max_cycle_len" yaml:"max_cycle_len" env:"EMERGENCE_MAX_CYCLE_LEN"`

	// CycleBudget bounds the loop search to this many node expansions.
	CycleBudget int `json:"cycle_budget" yaml:"cycle_budget" env:"EMERGENCE_CYCLE_BUDGET"`

	// MinLoopStrength is the mean activation a cycle must exceed to
	// count as a loop pattern.
	MinLoopStrength float64 `json:"min_loop_strength" yaml:"min_loop_strength" env:"EMERGENCE_MIN_LOOP_STRENGTH"`

	// SyncTolerance is the maximum activation difference within a
	// synchronized group.
	SyncTolerance float64 `json:"sync_tolerance" yaml:"sync_tolerance" env:"EMERGENCE_SYNC_TOLERANCE"`

	// DedupSyncGroups collapses synchronized groups with an identical
	// participant set into one pattern.
	DedupSyncGroups bool `json:"dedup_sync_groups" yaml:"dedup_sync_groups" env:"EMERGENCE_DEDUP_SYNC_GROUPS"`

	// HubCentrality is the betweenness a neuron must exceed to count
	// as a hub.
	HubCentrality float64 `json:"hub_centrality" yaml:"hub_centrality" env:"EMERGENCE_HUB_CENTRALITY"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or
	// "trace". "debug" logs per-turn outcomes; "trace" additionally
	// records full turn events to the trace file when one is set.
	Level string `json:"level" yaml:"level" env:"EMERGENCE_LOG_LEVEL"`
}

// Default returns a Config with the standard game parameters.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Size:               19,
			ConnectRadius:      5.0,
			MaxAutoConnections: 4,
		},
		Game: GameConfig{
			SettleSteps:  5,
			WinThreshold: 0.8,
			MaxTurns:     100,
		},
		Detection: DetectionConfig{
			MaxCycleLen:     8,
			CycleBudget:     10000,
			MinLoopStrength: 0.5,
			SyncTolerance:   0.1,
			DedupSyncGroups: true,
			HubCentrality:   0.1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration.
// Order: defaults -> config file (when path is non-empty) -> environment
// variables.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Settings
// the file omits keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Grid.Size <= 0 {
		return fmt.Errorf("grid.size must be positive, got %d", c.Grid.Size)
	}
	if c.Grid.ConnectRadius <= 0 {
		return fmt.Errorf("grid.connect_radius must be positive, got %f", c.Grid.ConnectRadius)
	}
	if c.Grid.MaxAutoConnections <= 0 {
		return fmt.Errorf("grid.max_auto_connections must be positive, got %d", c.Grid.MaxAutoConnections)
	}

	if c.Game.SettleSteps <= 0 {
		return fmt.Errorf("game.settle_steps must be positive, got %d", c.Game.SettleSteps)
	}
	if c.Game.WinThreshold <= 0 || c.Game.WinThreshold > 1 {
		return fmt.Errorf("game.win_threshold must be in (0, 1], got %f", c.Game.WinThreshold)
	}
	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game.max_turns must be non-negative, got %d", c.Game.MaxTurns)
	}

	if c.Detection.MaxCycleLen < 3 {
		return fmt.Errorf("detection.max_cycle_len must be at least 3, got %d", c.Detection.MaxCycleLen)
	}
	if c.Detection.CycleBudget <= 0 {
		return fmt.Errorf("detection.cycle_budget must be positive, got %d", c.Detection.CycleBudget)
	}
	if c.Detection.MinLoopStrength < 0 || c.Detection.MinLoopStrength > 1 {
		return fmt.Errorf("detection.min_loop_strength must be between 0 and 1, got %f", c.Detection.MinLoopStrength)
	}
	if c.Detection.SyncTolerance <= 0 {
		return fmt.Errorf("detection.sync_tolerance must be positive, got %f", c.Detection.SyncTolerance)
	}
	if c.Detection.HubCentrality < 0 || c.Detection.HubCentrality > 1 {
		return fmt.Errorf("detection.hub_centrality must be between 0 and 1, got %f", c.Detection.HubCentrality)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// GameConfig assembles the engine-facing session configuration.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Grid: grid.Config{
			Size:               c.Grid.Size,
			ConnectRadius:      c.Grid.ConnectRadius,
			MaxAutoConnections: c.Grid.MaxAutoConnections,
		},
		Pattern: pattern.Config{
			MaxCycleLen:     c.Detection.MaxCycleLen,
			CycleBudget:     c.Detection.CycleBudget,
			MinLoopStrength: c.Detection.MinLoopStrength,
			SyncTolerance:   c.Detection.SyncTolerance,
			DedupSyncGroups: c.Detection.DedupSyncGroups,
			HubCentrality:   c.Detection.HubCentrality,
		},
		SettleSteps:  c.Game.SettleSteps,
		WinThreshold: c.Game.WinThreshold,
		MaxTurns:     c.Game.MaxTurns,
	}
}
