package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "crewledger.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)

	require.Equal(t, 5.0, cfg.Engine.VarianceTolerance())
	require.Equal(t, 40.0, cfg.Engine.DefaultWeeklyHours)
	require.Equal(t, 120.0, cfg.Engine.UtilizationThresholdPercent)
	require.Equal(t, 28, cfg.Engine.WorkloadWindowDays)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CREWLEDGER_SERVER_HOST", "127.0.0.1")
	t.Setenv("CREWLEDGER_SERVER_PORT", "9090")
	t.Setenv("CREWLEDGER_DB_PATH", "/tmp/test.db")
	t.Setenv("CREWLEDGER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/test.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("CREWLEDGER_SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 10.0.0.5
  port: 3000
engine:
  recognized_statuses: [paid]
  variance_tolerance_percent: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CREWLEDGER_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "10.0.0.5", cfg.Server.Host)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, []ledger.DocumentStatus{ledger.DocumentPaid}, cfg.Engine.RecognizedStatuses)
	require.Equal(t, 10.0, cfg.Engine.VarianceTolerance())
	// fields the file left out keep their defaults
	require.Equal(t, 28, cfg.Engine.WorkloadWindowDays)
}

func TestLoadFromFile_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: file.db\n"), 0o644))
	t.Setenv("CREWLEDGER_CONFIG_PATH", path)
	t.Setenv("CREWLEDGER_DB_PATH", "env.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "env.db", cfg.DB.Path)
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Setenv("CREWLEDGER_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestRecognized(t *testing.T) {
	e := DefaultEngine()
	require.True(t, e.Recognized(ledger.DocumentSent))
	require.True(t, e.Recognized(ledger.DocumentApproved))
	require.True(t, e.Recognized(ledger.DocumentPaid))
	require.False(t, e.Recognized(ledger.DocumentDraft))
	require.False(t, e.Recognized(ledger.DocumentCancelled))
}

func TestWithDefaults(t *testing.T) {
	filled := EngineConfig{}.withDefaults()
	require.Equal(t, DefaultEngine(), filled)

	tolerance := 2.0
	custom := EngineConfig{VarianceTolerancePercent: &tolerance}.withDefaults()
	require.Equal(t, 2.0, custom.VarianceTolerance())
	require.Equal(t, 120.0, custom.UtilizationThresholdPercent)
}

// An explicit zero tolerance configures a strict band; only nil falls back
// to the default.
func TestWithDefaults_ZeroToleranceKept(t *testing.T) {
	tolerance := 0.0
	custom := EngineConfig{VarianceTolerancePercent: &tolerance}.withDefaults()
	require.Equal(t, 0.0, custom.VarianceTolerance())
}

func TestLoadFromFile_ZeroToleranceKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "engine:\n  variance_tolerance_percent: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CREWLEDGER_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0.0, cfg.Engine.VarianceTolerance())
}
