package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/cutpath"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cutpath.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, cutpath.DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, cutpath.CutNone, cfg.Direction())
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.False(t, cfg.LeadIn.Enabled())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		"tolerance": 0.01,
		"workers": 4,
		"cut_direction": "cw",
		"lead_in": {"type": "arc", "length": 5, "fit": true},
		"optimize_start": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Tolerance)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, cutpath.CutClockwise, cfg.Direction())
	assert.Equal(t, cutpath.LeadConfig{Type: cutpath.LeadArc, Length: 5, Fit: true}, cfg.LeadIn)
	assert.Equal(t, cutpath.LeadNone, cfg.LeadOut.Type, "unset fields keep their defaults")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Optimize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, `{"tolerance": "wide"}`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"tolerance": 0.01, "workers": 2}`)
	t.Setenv("CUTPATH_WORKERS", "8")
	t.Setenv("CUTPATH_LEAD_OUT_LENGTH", "3.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Tolerance)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, cutpath.LeadConfig{Type: cutpath.LeadArc, Length: 3.5}, cfg.LeadOut)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"CUTPATH_TOLERANCE":      "0.2",
		"CUTPATH_LOG_LEVEL":      "DEBUG",
		"CUTPATH_CUT_DIRECTION":  " ccw ",
		"CUTPATH_LEAD_IN_LENGTH": "4",
		"CUTPATH_FIT":            "true",
		"CUTPATH_OPTIMIZE_START": "1",
		"CUTPATH_LANG":           "de",
		"CUTPATH_WORKERS":        "",
		"OTHER_TOLERANCE":        "9",
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Tolerance)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, cutpath.CutCounterclockwise, cfg.Direction())
	assert.True(t, cfg.LeadIn.Enabled())
	assert.True(t, cfg.LeadIn.Fit)
	assert.True(t, cfg.LeadOut.Fit)
	assert.True(t, cfg.Optimize)
	assert.Equal(t, "de", cfg.Lang)
	assert.Equal(t, 1, cfg.Workers, "empty values are ignored")
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvParseErrors(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"CUTPATH_WORKERS":   "many",
		"CUTPATH_TOLERANCE": "x",
		"CUTPATH_FIT":       "perhaps",
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "CUTPATH_WORKERS")
	assert.Contains(t, err.Error(), "CUTPATH_TOLERANCE")
	assert.Contains(t, err.Error(), "CUTPATH_FIT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }, "Tolerance"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "Workers"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"cut direction", func(c *Config) { c.CutDirection = "up" }, "CutDirection"},
		{"lead length", func(c *Config) { c.LeadIn.Length = -2 }, "LeadIn.Length"},
		{"lead type", func(c *Config) { c.LeadOut.Type = "spline" }, "LeadOut.Type"},
		{"language", func(c *Config) { c.Lang = "not a tag" }, "Lang"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.CutDirection = "cw"
	cfg.LeadIn = cutpath.LeadConfig{Type: cutpath.LeadArc, Length: 5}

	p := cutpath.NewProcessor(cfg.Options()...)
	defer p.Close()

	res := p.Process([]cutpath.Shape{cutpath.Circle{Center: cutpath.Pt(0, 0), Radius: 20}})
	require.Len(t, res.Leads, 1)
	require.NotNil(t, res.Leads[0].Result.LeadIn)
	assert.Nil(t, res.Leads[0].Result.LeadOut)
}
