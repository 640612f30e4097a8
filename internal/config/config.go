// Package config provides configuration loading and validation for the CLI.
//
// Values are layered: defaults, then an optional JSON file, then CUTPATH_*
// environment variables. Command-line flags are applied last by the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gogpu/cutpath"
)

// ErrInvalid is returned (wrapped) for every configuration value that fails
// validation or cannot be parsed.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "CUTPATH_"

// Config is the CLI configuration. Every field can come from the JSON file
// or the environment.
type Config struct {
	Tolerance    float64            `json:"tolerance" validate:"gt=0"`
	Workers      int                `json:"workers" validate:"gte=0"`
	LogLevel     string             `json:"log_level" validate:"oneof=debug info warn error"`
	CutDirection string             `json:"cut_direction" validate:"oneof=none cw ccw clockwise counterclockwise"`
	LeadIn       cutpath.LeadConfig `json:"lead_in"`
	LeadOut      cutpath.LeadConfig `json:"lead_out"`
	Optimize     bool               `json:"optimize_start,omitempty"`
	Lang         string             `json:"lang" validate:"omitempty,bcp47_language_tag"`
}

var validate = validator.New()

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Tolerance:    cutpath.DefaultTolerance,
		Workers:      1,
		LogLevel:     "warn",
		CutDirection: "none",
		LeadIn:       cutpath.LeadConfig{Type: cutpath.LeadNone},
		LeadOut:      cutpath.LeadConfig{Type: cutpath.LeadNone},
		Lang:         "en",
	}
}

// Load returns the defaults overlaid with the JSON file at path and then
// with the process environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalid, path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CUTPATH_* variables found through lookup.
// Setting a lead length also switches that lead to an arc.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	var errs []error
	if v, ok := get("TOLERANCE"); ok {
		errs = append(errs, parseFloat("TOLERANCE", v, &c.Tolerance))
	}
	if v, ok := get("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, envError("WORKERS", v, err))
		} else {
			c.Workers = n
		}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("CUT_DIRECTION"); ok {
		c.CutDirection = strings.ToLower(v)
	}
	if v, ok := get("LEAD_IN_LENGTH"); ok {
		errs = append(errs, parseLeadLength("LEAD_IN_LENGTH", v, &c.LeadIn))
	}
	if v, ok := get("LEAD_OUT_LENGTH"); ok {
		errs = append(errs, parseLeadLength("LEAD_OUT_LENGTH", v, &c.LeadOut))
	}
	if v, ok := get("FIT"); ok {
		var fit bool
		if err := parseBool("FIT", v, &fit); err != nil {
			errs = append(errs, err)
		} else {
			c.LeadIn.Fit, c.LeadOut.Fit = fit, fit
		}
	}
	if v, ok := get("OPTIMIZE_START"); ok {
		errs = append(errs, parseBool("OPTIMIZE_START", v, &c.Optimize))
	}
	if v, ok := get("LANG"); ok {
		c.Lang = v
	}
	return errors.Join(errs...)
}

func envError(key, value string, err error) error {
	return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, key, value, err)
}

func parseFloat(key, value string, dst *float64) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return envError(key, value, err)
	}
	*dst = f
	return nil
}

func parseBool(key, value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return envError(key, value, err)
	}
	*dst = b
	return nil
}

func parseLeadLength(key, value string, lc *cutpath.LeadConfig) error {
	if err := parseFloat(key, value, &lc.Length); err != nil {
		return err
	}
	if lc.Length > 0 {
		lc.Type = cutpath.LeadArc
	}
	return nil
}

// Validate checks every field. The returned error wraps ErrInvalid and
// names each offending field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v fails %q", fe.Namespace(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Direction returns the parsed cut direction.
func (c *Config) Direction() cutpath.CutDirection {
	d, _ := cutpath.ParseCutDirection(c.CutDirection)
	return d
}

// Level returns the slog level for LogLevel, warn when unrecognized.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// Options converts the configuration into processor options.
func (c *Config) Options() []cutpath.Option {
	return []cutpath.Option{
		cutpath.WithTolerance(c.Tolerance),
		cutpath.WithWorkers(c.Workers),
		cutpath.WithCutDirection(c.Direction()),
		cutpath.WithLeads(c.LeadIn, c.LeadOut),
		cutpath.WithStartPointOptimization(c.Optimize),
	}
}
