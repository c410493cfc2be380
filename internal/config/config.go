package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/models"
	"github.com/san-kum/phytosim/internal/sim"
)

const (
	DefaultBiomass     = 100.0
	DefaultContaminant = 5000.0
	DefaultIntegrator  = "rk4"
	DefaultPort        = 8080
)

type Config struct {
	Run     RunConfig     `yaml:"run"`
	Params  models.Params `yaml:"params"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// RunConfig describes one simulation: initial conditions, time span and the
// contaminant level considered safe.
type RunConfig struct {
	Biomass     float64 `yaml:"biomass"`
	Contaminant float64 `yaml:"contaminant"`
	Start       float64 `yaml:"start"`
	End         float64 `yaml:"end"`
	Dt          float64 `yaml:"dt"`
	Threshold   float64 `yaml:"threshold"`
	Integrator  string  `yaml:"integrator"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBody  int64         `yaml:"max_request_body_bytes"`
	ArticlesFile    string        `yaml:"articles_file"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Biomass:     DefaultBiomass,
			Contaminant: DefaultContaminant,
			Start:       sim.DefaultStart,
			End:         sim.DefaultEnd,
			Dt:          sim.DefaultDt,
			Threshold:   sim.DefaultThreshold,
			Integrator:  DefaultIntegrator,
		},
		Params: models.DefaultParams(),
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            DefaultPort,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestBody:  64 << 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	r := c.Run
	if !dynamo.Finite(r.Biomass) || !dynamo.Finite(r.Contaminant) {
		return fmt.Errorf("run: %w: initial conditions must be finite", dynamo.ErrInvalidState)
	}
	if !(r.Dt > 0) || math.IsInf(r.Dt, 0) {
		return fmt.Errorf("run.dt: %w: got %g", dynamo.ErrInvalidStep, r.Dt)
	}
	if !(dynamo.Span{Start: r.Start, End: r.End}).IsValid() {
		return fmt.Errorf("run: %w: [%g, %g]", dynamo.ErrInvalidSpan, r.Start, r.End)
	}
	if !dynamo.Finite(r.Threshold) {
		return fmt.Errorf("run.threshold must be finite, got %g", r.Threshold)
	}
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.MaxRequestBody < 1 {
		return fmt.Errorf("server.max_request_body_bytes must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) InitState() dynamo.State {
	return dynamo.State{A: c.Run.Biomass, N: c.Run.Contaminant}
}

// SimConfig converts the run section into simulator settings.
func (c *Config) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Span = dynamo.Span{Start: c.Run.Start, End: c.Run.End}
	cfg.Dt = c.Run.Dt
	cfg.Threshold = c.Run.Threshold
	return cfg
}
