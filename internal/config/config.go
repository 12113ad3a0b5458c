package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "qalcrun.yaml"

// Duration wraps time.Duration with YAML unmarshaling from strings like "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Config is the top-level qalcrun configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Launcher LauncherConfig `yaml:"launcher"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type EngineConfig struct {
	Dir     string   `yaml:"dir"` // directory holding qalc; empty means PATH only
	Timeout Duration `yaml:"timeout"`
}

type LauncherConfig struct {
	Keyword string `yaml:"keyword"` // trigger keyword for explicit queries; "" disables them
	Score   int    `yaml:"score"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

const (
	defaultTimeout = 5 * time.Second
	defaultKeyword = "="
	defaultScore   = 300
	defaultPort    = 8080
	defaultLevel   = "info"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := newConfig()
	applyDefaults(cfg)
	return cfg
}

// newConfig presets the fields whose zero value is meaningful, so only an
// absent key falls back to the default.
func newConfig() *Config {
	return &Config{Launcher: LauncherConfig{Keyword: defaultKeyword}}
}

// Load reads, expands env vars, parses, and validates a qalcrun config file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := newConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.Timeout.Duration == 0 {
		cfg.Engine.Timeout.Duration = defaultTimeout
	}
	if cfg.Launcher.Score == 0 {
		cfg.Launcher.Score = defaultScore
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLevel
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Engine.Timeout.Duration < 0 {
		errs = append(errs, errors.New("engine.timeout must be positive"))
	}
	if strings.ContainsAny(cfg.Launcher.Keyword, " \t") {
		errs = append(errs, fmt.Errorf("launcher.keyword must not contain whitespace, got %q", cfg.Launcher.Keyword))
	}
	if cfg.Launcher.Score < 0 {
		errs = append(errs, errors.New("launcher.score must not be negative"))
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port))
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel maps a log.level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
	}
}
