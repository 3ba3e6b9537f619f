package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/envutil"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	DefaultConfigPath = "config.yaml"
)

type Config struct {
	Env       string    `yaml:"env"`
	Log       Log       `yaml:"log"`
	Store     Store     `yaml:"store"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Log struct {
	Mode   string   `yaml:"mode"`
	Level  string   `yaml:"level"`
	Output []string `yaml:"output"`
}

// Store describes the relational store and its connection pool.
// DSN, when set, wins over the per-field connection settings.
type Store struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	Path            string        `yaml:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	SlowThreshold   time.Duration `yaml:"slow_threshold"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

type Telemetry struct {
	TracingEnabled bool    `yaml:"tracing_enabled"`
	SampleRatio    float64 `yaml:"sample_ratio"`
	ServiceName    string  `yaml:"service_name"`
	TracesFile     string  `yaml:"traces_file"`
}

// Default returns the configuration used when nothing else is provided:
// a local sqlite file and a pool of 10 connections.
func Default() Config {
	return Config{
		Env: "development",
		Log: Log{
			Mode:   "development",
			Level:  "info",
			Output: []string{"gestion-commandes.log"},
		},
		Store: Store{
			Driver:          DriverSQLite,
			Path:            "gestion_commandes.db",
			Host:            "localhost",
			Name:            "gestion_commandes",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			SlowThreshold:   time.Second,
			AutoMigrate:     true,
		},
		Telemetry: Telemetry{
			SampleRatio: 1,
			ServiceName: "gestion-commandes",
			TracesFile:  "gestion-commandes-traces.json",
		},
	}
}

// LoadDotEnv loads .env.<GO_ENV> and then .env. Missing files are not an error;
// variables already present in the environment are never overwritten.
func LoadDotEnv() []string {
	env := strings.TrimSpace(os.Getenv("GO_ENV"))
	if env == "" {
		env = "development"
	}
	var loaded []string
	for _, f := range []string{fmt.Sprintf(".env.%s", env), ".env"} {
		if err := godotenv.Load(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	return loaded
}

// Load builds the configuration from defaults, the YAML file at path (optional
// when path is the default) and environment overrides.
func Load(path string, log *logger.Logger) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if log != nil {
			log.Debug("Loaded config file", "path", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		if log != nil {
			log.Debug("No config file found, using defaults", "path", path)
		}
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg, log)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, log *logger.Logger) {
	cfg.Env = envutil.String("GO_ENV", cfg.Env, log)

	cfg.Log.Mode = envutil.String("LOG_MODE", cfg.Log.Mode, log)
	cfg.Log.Level = envutil.String("LOG_LEVEL", cfg.Log.Level, log)
	if out := envutil.String("LOG_OUTPUT", "", log); out != "" {
		cfg.Log.Output = splitList(out)
	}

	s := &cfg.Store
	s.Driver = strings.ToLower(envutil.String("STORE_DRIVER", s.Driver, log))
	s.DSN = envutil.String("STORE_DSN", s.DSN, log)
	switch s.Driver {
	case DriverPostgres:
		s.Host = envutil.String("POSTGRES_HOST", s.Host, log)
		s.Port = envutil.Int("POSTGRES_PORT", s.Port, log)
		s.User = envutil.String("POSTGRES_USER", s.User, log)
		s.Password = envutil.String("POSTGRES_PASSWORD", s.Password, log)
		s.Name = envutil.String("POSTGRES_NAME", s.Name, log)
	case DriverMySQL:
		s.Host = envutil.String("MYSQL_HOST", s.Host, log)
		s.Port = envutil.Int("MYSQL_PORT", s.Port, log)
		s.User = envutil.String("MYSQL_USER", s.User, log)
		s.Password = envutil.String("MYSQL_PASSWORD", s.Password, log)
		s.Name = envutil.String("MYSQL_NAME", s.Name, log)
	case DriverSQLite:
		s.Path = envutil.String("SQLITE_PATH", s.Path, log)
	}
	s.MaxOpenConns = envutil.Int("STORE_MAX_OPEN_CONNS", s.MaxOpenConns, log)
	s.MaxIdleConns = envutil.Int("STORE_MAX_IDLE_CONNS", s.MaxIdleConns, log)
	s.ConnMaxLifetime = envutil.Duration("STORE_CONN_MAX_LIFETIME", s.ConnMaxLifetime, log)
	s.SlowThreshold = envutil.Duration("STORE_SLOW_THRESHOLD", s.SlowThreshold, log)
	s.AutoMigrate = envutil.Bool("STORE_AUTO_MIGRATE", s.AutoMigrate, log)

	cfg.Telemetry.TracingEnabled = envutil.Bool("OTEL_ENABLED", cfg.Telemetry.TracingEnabled, log)
	cfg.Telemetry.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName, log)
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported store driver %q (want postgres, mysql or sqlite)", c.Store.Driver)
	}
	if c.Store.MaxOpenConns <= 0 {
		return fmt.Errorf("store.max_open_conns must be positive, got %d", c.Store.MaxOpenConns)
	}
	if c.Store.MaxIdleConns < 0 {
		return fmt.Errorf("store.max_idle_conns must not be negative, got %d", c.Store.MaxIdleConns)
	}
	if c.Store.Driver == DriverSQLite && strings.TrimSpace(c.Store.Path) == "" && strings.TrimSpace(c.Store.DSN) == "" {
		return errors.New("store.path is required for the sqlite driver")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry.sample_ratio must be within [0,1], got %v", c.Telemetry.SampleRatio)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
