package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Engine EngineConfig `yaml:"engine"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// EngineConfig holds the aggregation tunables. The qualifying-status set and
// thresholds are configuration, not per-call-site constants.
type EngineConfig struct {
	// RecognizedStatuses are the document statuses whose items count as
	// revenue.
	RecognizedStatuses []ledger.DocumentStatus `yaml:"recognized_statuses"`
	// VarianceTolerancePercent is the ± band (percent of planned value)
	// within which a task counts as on budget. A pointer so an explicit 0
	// (strict band) survives defaulting; read it via VarianceTolerance.
	VarianceTolerancePercent *float64 `yaml:"variance_tolerance_percent"`
	// DefaultWeeklyHours is the capacity assumed for profiles without one.
	DefaultWeeklyHours float64 `yaml:"default_weekly_hours"`
	// UtilizationThresholdPercent is the default feasibility ceiling.
	UtilizationThresholdPercent float64 `yaml:"utilization_threshold_percent"`
	// WorkloadWindowDays is the lookahead window feasibility checks use.
	WorkloadWindowDays int `yaml:"workload_window_days"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "crewledger.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Engine: DefaultEngine(),
	}

	if path := os.Getenv("CREWLEDGER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CREWLEDGER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CREWLEDGER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CREWLEDGER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("CREWLEDGER_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CREWLEDGER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	cfg.Engine = cfg.Engine.withDefaults()

	return cfg, nil
}

const defaultVarianceTolerance = 5.0

// DefaultEngine returns the engine tunables with their documented defaults.
func DefaultEngine() EngineConfig {
	tolerance := defaultVarianceTolerance
	return EngineConfig{
		RecognizedStatuses: []ledger.DocumentStatus{
			ledger.DocumentSent,
			ledger.DocumentApproved,
			ledger.DocumentPaid,
		},
		VarianceTolerancePercent:    &tolerance,
		DefaultWeeklyHours:          ledger.DefaultWeeklyHours,
		UtilizationThresholdPercent: 120,
		WorkloadWindowDays:          28,
	}
}

// VarianceTolerance returns the configured tolerance band percent, falling
// back to the default when the field was never set.
func (e EngineConfig) VarianceTolerance() float64 {
	if e.VarianceTolerancePercent == nil {
		return defaultVarianceTolerance
	}
	return *e.VarianceTolerancePercent
}

// withDefaults fills engine fields a config file zeroed out.
func (e EngineConfig) withDefaults() EngineConfig {
	def := DefaultEngine()
	if len(e.RecognizedStatuses) == 0 {
		e.RecognizedStatuses = def.RecognizedStatuses
	}
	// nil means unset; an explicit 0 (strict band) is kept.
	if e.VarianceTolerancePercent == nil {
		e.VarianceTolerancePercent = def.VarianceTolerancePercent
	}
	if e.DefaultWeeklyHours <= 0 {
		e.DefaultWeeklyHours = def.DefaultWeeklyHours
	}
	if e.UtilizationThresholdPercent <= 0 {
		e.UtilizationThresholdPercent = def.UtilizationThresholdPercent
	}
	if e.WorkloadWindowDays <= 0 {
		e.WorkloadWindowDays = def.WorkloadWindowDays
	}
	return e
}

// Recognized reports whether items on a document in the given status count
// as revenue.
func (e EngineConfig) Recognized(status ledger.DocumentStatus) bool {
	for _, s := range e.RecognizedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
