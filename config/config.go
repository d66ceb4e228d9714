// Package config loads the declarative application configuration: the agent
// definitions, the durable store location and the simulation settings, from
// a YAML file with environment variable fallbacks for deploy-time values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/convosim/convosim/core"
)

// Config is the full application configuration.
type Config struct {
	Agents     []AgentConfig    `yaml:"agents"`
	Store      StoreConfig      `yaml:"store"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AgentConfig declares one agent definition.
type AgentConfig struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Instructions string   `yaml:"instructions"`
	Model        string   `yaml:"model"`
	SampleInputs []string `yaml:"sample_inputs"`
}

// StoreConfig selects and locates the durable invocation store.
type StoreConfig struct {
	// Path is the SQLite database file. Empty selects the in-memory store.
	Path string `yaml:"path"`
}

// SimulationConfig names the two role agents and bounds the dialogue.
type SimulationConfig struct {
	ResponderID string `yaml:"responder_id"`
	CallerID    string `yaml:"caller_id"`
	// MaxTurnPairs caps completed responder/caller pairs. Zero keeps the
	// orchestrator default.
	MaxTurnPairs int `yaml:"max_turn_pairs"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads and validates a configuration file. Environment variables
// override deploy-time values after parsing (CONVOSIM_STORE_PATH,
// CONVOSIM_MAX_TURN_PAIRS, CONVOSIM_LOG_LEVEL).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes, applies environment overrides and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Store.Path = getEnv("CONVOSIM_STORE_PATH", cfg.Store.Path)
	cfg.Simulation.MaxTurnPairs = getEnvInt("CONVOSIM_MAX_TURN_PAIRS", cfg.Simulation.MaxTurnPairs)
	cfg.Logging.Level = getEnv("CONVOSIM_LOG_LEVEL", cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks structural consistency: every agent definition must be
// complete and unique, and the simulation roles must name declared agents.
func (c *Config) Validate() error {
	if len(c.Agents) == 0 {
		return fmt.Errorf("at least one agent must be declared")
	}
	seen := make(map[string]struct{}, len(c.Agents))
	for _, a := range c.Agents {
		def := a.Definition()
		if err := def.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("duplicate agent id %q", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	if c.Simulation.ResponderID != "" {
		if _, ok := seen[c.Simulation.ResponderID]; !ok {
			return fmt.Errorf("simulation responder_id %q is not a declared agent", c.Simulation.ResponderID)
		}
	}
	if c.Simulation.CallerID != "" {
		if _, ok := seen[c.Simulation.CallerID]; !ok {
			return fmt.Errorf("simulation caller_id %q is not a declared agent", c.Simulation.CallerID)
		}
	}
	if c.Simulation.MaxTurnPairs < 0 {
		return fmt.Errorf("simulation max_turn_pairs must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging format %q must be text or json", c.Logging.Format)
	}
	return nil
}

// Definition converts the YAML agent block into a core definition.
func (a AgentConfig) Definition() core.AgentDefinition {
	return core.AgentDefinition{
		ID:           a.ID,
		Name:         a.Name,
		Instructions: a.Instructions,
		Model:        a.Model,
		SampleInputs: append([]string(nil), a.SampleInputs...),
	}
}

// Definitions converts every declared agent.
func (c *Config) Definitions() []core.AgentDefinition {
	defs := make([]core.AgentDefinition, 0, len(c.Agents))
	for _, a := range c.Agents {
		defs = append(defs, a.Definition())
	}
	return defs
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
