package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.toml"

type InputConfig struct {
	Path string `toml:"path" yaml:"path" validate:"required"`
	// NormalizePhones strips spaces, dashes, dots and parentheses.
	NormalizePhones bool `toml:"normalize_phones" yaml:"normalize_phones"`
}

type OutputConfig struct {
	Path        string `toml:"path" yaml:"path" validate:"required"`
	EdgeType    string `toml:"edge_type" yaml:"edge_type" validate:"oneof=directed undirected"`
	Creator     string `toml:"creator" yaml:"creator"`
	Description string `toml:"description" yaml:"description"`
}

type GraphConfig struct {
	// Unregistered phones found in more than Threshold phone books are frequent.
	Threshold    int    `toml:"threshold" yaml:"threshold" validate:"gte=0"`
	MaskPrefix   int    `toml:"mask_prefix" yaml:"mask_prefix" validate:"gte=0"`
	MaskSuffix   string `toml:"mask_suffix" yaml:"mask_suffix"`
	UnknownLabel string `toml:"unknown_label" yaml:"unknown_label"`
}

type ColorsConfig struct {
	Registered string `toml:"registered" yaml:"registered" validate:"required,hexcolor"`
	Frequent   string `toml:"frequent" yaml:"frequent" validate:"required,hexcolor"`
	Infrequent string `toml:"infrequent" yaml:"infrequent" validate:"required,hexcolor"`
	Edge       string `toml:"edge" yaml:"edge" validate:"required,hexcolor"`
}

type SizeConfig struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Base    float64 `toml:"base" yaml:"base" validate:"gte=0"`
	Step    float64 `toml:"step" yaml:"step" validate:"gte=0"`
	Max     float64 `toml:"max" yaml:"max" validate:"gte=0"`
}

type CommunityConfig struct {
	// Algorithm is "", "components" or "lpa".
	Algorithm     string `toml:"algorithm" yaml:"algorithm" validate:"omitempty,oneof=components lpa"`
	MaxIterations int    `toml:"max_iterations" yaml:"max_iterations" validate:"gte=0"`
}

type SummaryConfig struct {
	TopN int `toml:"top_n" yaml:"top_n" validate:"gte=0"`
}

type MemgraphConfig struct {
	Enabled   bool   `toml:"enabled" yaml:"enabled"`
	URI       string `toml:"uri" yaml:"uri" validate:"required_if=Enabled true"`
	User      string `toml:"user" yaml:"user"`
	Password  string `toml:"password" yaml:"password"`
	BatchSize int    `toml:"batch_size" yaml:"batch_size" validate:"gte=1"`
	// Prune deletes persons and contacts left over from earlier imports.
	Prune bool `toml:"prune" yaml:"prune"`
}

type LogConfig struct {
	Env string `toml:"env" yaml:"env" validate:"oneof=development production"`
}

type Config struct {
	Input     InputConfig     `toml:"input" yaml:"input"`
	Output    OutputConfig    `toml:"output" yaml:"output"`
	Graph     GraphConfig     `toml:"graph" yaml:"graph"`
	Colors    ColorsConfig    `toml:"colors" yaml:"colors"`
	Size      SizeConfig      `toml:"size" yaml:"size"`
	Community CommunityConfig `toml:"community" yaml:"community"`
	Summary   SummaryConfig   `toml:"summary" yaml:"summary"`
	Memgraph  MemgraphConfig  `toml:"memgraph" yaml:"memgraph"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "contacts.json",
		},
		Output: OutputConfig{
			Path:     "graph.gexf",
			EdgeType: "undirected",
			Creator:  "contactgraph",
		},
		Graph: GraphConfig{
			Threshold:    10,
			MaskPrefix:   5,
			MaskSuffix:   "...",
			UnknownLabel: "???",
		},
		Colors: ColorsConfig{
			Registered: "#ce54ff",
			Frequent:   "#ffff00",
			Infrequent: "#333333",
			Edge:       "#000",
		},
		Size: SizeConfig{
			Base: 10,
			Step: 1,
			Max:  50,
		},
		Community: CommunityConfig{
			MaxIterations: 20,
		},
		Summary: SummaryConfig{
			TopN: 10,
		},
		Memgraph: MemgraphConfig{
			URI:       "bolt://localhost:7687",
			BatchSize: 1000,
		},
		Log: LogConfig{
			Env: "development",
		},
	}
}

// Load reads a TOML or YAML file on top of the defaults. Keys missing from
// the file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %q", ext)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// ApplyEnv overrides the configuration from environment variables.
func (c *Config) ApplyEnv() {
	c.Input.Path = getEnv("CONTACTGRAPH_INPUT", c.Input.Path)
	c.Output.Path = getEnv("CONTACTGRAPH_OUTPUT", c.Output.Path)
	c.Graph.Threshold = getEnvInt("CONTACTGRAPH_THRESHOLD", c.Graph.Threshold)
	c.Community.Algorithm = getEnv("CONTACTGRAPH_COMMUNITY", c.Community.Algorithm)
	c.Memgraph.URI = getEnv("MEMGRAPH_URI", c.Memgraph.URI)
	c.Memgraph.User = getEnv("MEMGRAPH_USER", c.Memgraph.User)
	c.Memgraph.Password = getEnv("MEMGRAPH_PASSWORD", c.Memgraph.Password)
	c.Memgraph.Enabled = getEnvBool("MEMGRAPH_ENABLED", c.Memgraph.Enabled)
	c.Log.Env = getEnv("ENV", c.Log.Env)
}

var validate = validator.New()

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Param() != "" {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
			}
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Log.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return defaultValue
}
