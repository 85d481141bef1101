package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stefanpenner/ninety/pkg/plan"
	"github.com/stefanpenner/ninety/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NINETY_DIR", "NINETY_LOG_LEVEL", "NINETY_DATABASE_URL", "NINETY_DB_TIMEOUT", "NINETY_METRICS_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, c.Dir)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.DBTimeout)
	assert.Empty(t, c.DatabaseURL)
	assert.Equal(t, 90, c.HorizonDays)
	assert.Equal(t, plan.DefaultThresholds(), c.Milestones)
	assert.Equal(t, filepath.Join(dir, "catalog.yaml"), c.CatalogPath())
	assert.Equal(t, filepath.Join(dir, "logs"), c.LogsDir())
	assert.Equal(t, zerolog.InfoLevel, c.Level())
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("NINETY_DIR", dir)
	t.Setenv("NINETY_LOG_LEVEL", "debug")
	t.Setenv("NINETY_DATABASE_URL", "postgres://localhost/ninety")
	t.Setenv("NINETY_DB_TIMEOUT", "2s")
	t.Setenv("NINETY_METRICS_FILE", "/var/lib/node_exporter/ninety.prom")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, c.Dir)
	assert.Equal(t, zerolog.DebugLevel, c.Level())
	assert.Equal(t, "postgres://localhost/ninety", c.DatabaseURL)
	assert.Equal(t, 2*time.Second, c.DBTimeout)
	assert.Equal(t, "/var/lib/node_exporter/ninety.prom", c.MetricsFile)
}

func TestDirFlagWinsOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("NINETY_DIR", t.TempDir())
	flagDir := t.TempDir()

	c, err := Load(flagDir)
	require.NoError(t, err)
	assert.Equal(t, flagDir, c.Dir)
}

func TestDirFallsBackToOSDefault(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, store.DefaultDataDir(), c.Dir)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := `horizon_days: 60
milestones:
  fast_start: 2
catalog: plans/custom.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 60, c.HorizonDays)
	assert.Equal(t, plan.Thresholds{FastStart: 2, Momentum: 3}, c.Milestones)
	assert.Equal(t, filepath.Join(dir, "plans", "custom.yaml"), c.CatalogPath())

	opts := c.Options(zerolog.Nop())
	assert.Equal(t, 60, opts.HorizonDays)
	assert.Equal(t, 2, opts.Thresholds.FastStart)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{name: "zero horizon", file: "horizon_days: 0\n", wantErr: "horizon_days"},
		{name: "negative threshold", file: "milestones:\n  momentum: -1\n", wantErr: "thresholds"},
		{name: "bad yaml", file: "horizon_days: [\n", wantErr: "parse"},
		{name: "bad log level", env: map[string]string{"NINETY_LOG_LEVEL": "loud"}, wantErr: "log level"},
		{name: "bad timeout", env: map[string]string{"NINETY_DB_TIMEOUT": "soon"}, wantErr: "DB_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.file), 0644))
			}
			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "fresh")
	require.NoError(t, WriteDefault(dir))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ninety configuration")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, defaultFile(), c.File)

	// an existing file is left alone
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("horizon_days: 30\n"), 0644))
	require.NoError(t, WriteDefault(dir))
	data, err = os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, "horizon_days: 30\n", string(data))
}
