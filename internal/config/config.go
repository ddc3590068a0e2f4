package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cp-valuation/internal/cp"
	"cp-valuation/internal/timeseries"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Scenario ScenarioConfig `yaml:"scenario"`

	// Optional: load CP instances from a separate YAML holding a `cp:` list.
	// Entries from CPFile come first; inline entries with the same id override them.
	CPFile string     `yaml:"cp_file"`
	CP     []CPConfig `yaml:"cp"`
}

// ScenarioConfig describes the simulation horizon the CP instances are built over.
type ScenarioConfig struct {
	// OptYears are the years the dispatch engine optimizes.
	OptYears []int `yaml:"opt_years"`
	// EndYear is the last proforma year; avoided charges are grown up to it.
	EndYear   int    `yaml:"end_year"`
	Frequency string `yaml:"frequency"`
	Timezone  string `yaml:"timezone"`
	// Window is the optimization window: "year", "month" or a number of hours.
	Window        string  `yaml:"window"`
	AnnuityScalar float64 `yaml:"annuity_scalar"`
	LoadGrowth    float64 `yaml:"load_growth"`
}

// CPConfig is one CP instance.
type CPConfig struct {
	ID          string  `yaml:"id"`
	Label       string  `yaml:"label"`
	RateMonthly float64 `yaml:"rate_monthly"` // $/kW-month
	Dates       string  `yaml:"cp_dates"`     // "YYYY-MM-DD:HE,..."
	Growth      float64 `yaml:"growth"`       // percent/year
	Active      *bool   `yaml:"active"`
}

// IsActive defaults to true when active is omitted.
func (c CPConfig) IsActive() bool {
	return c.Active == nil || *c.Active
}

// maxProformaYears bounds the first opt year through end_year.
const maxProformaYears = 100

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if c.CPFile != "" {
		cpPath := c.CPFile
		if !filepath.IsAbs(cpPath) {
			// Relative to the config file first, then cwd.
			cand := filepath.Join(filepath.Dir(path), cpPath)
			if _, err := os.Stat(cand); err == nil {
				cpPath = cand
			}
		}
		loaded, err := loadCPFile(cpPath)
		if err != nil {
			return nil, fmt.Errorf("cp_file %s: %w", cpPath, err)
		}
		c.CP = MergeCP(loaded, c.CP)
	}
	return c, nil
}

// Parse decodes a YAML document without resolving cp_file.
func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyDefaults fills the optional scenario fields.
func (c *Config) ApplyDefaults() {
	if c.Scenario.Frequency == "" {
		c.Scenario.Frequency = "1h"
	}
	if c.Scenario.Timezone == "" {
		c.Scenario.Timezone = "UTC"
	}
	if c.Scenario.Window == "" {
		c.Scenario.Window = "month"
	}
	if c.Scenario.AnnuityScalar == 0 {
		c.Scenario.AnnuityScalar = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Scenario.OptYears) > 0 && c.Scenario.EndYear == 0 {
		ys := timeseries.UniqueYears(c.Scenario.OptYears)
		c.Scenario.EndYear = ys[len(ys)-1]
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Scenario.OptYears) == 0 {
		return errors.New("scenario.opt_years is required")
	}
	if _, err := c.Scenario.Step(); err != nil {
		return fmt.Errorf("scenario.frequency invalid: %w", err)
	}
	if _, err := c.Scenario.Location(); err != nil {
		return fmt.Errorf("scenario.timezone invalid: %w", err)
	}
	ys := timeseries.UniqueYears(c.Scenario.OptYears)
	if len(ys) > timeseries.MaxYears {
		return fmt.Errorf("scenario.opt_years has %d years, at most %d supported", len(ys), timeseries.MaxYears)
	}
	if c.Scenario.EndYear < ys[len(ys)-1] {
		return errors.New("scenario.end_year must be >= the last opt year")
	}
	if c.Scenario.EndYear-ys[0]+1 > maxProformaYears {
		return fmt.Errorf("scenario spans %d..%d, at most %d proforma years supported", ys[0], c.Scenario.EndYear, maxProformaYears)
	}
	seen := map[string]bool{}
	for i, e := range c.CP {
		if seen[e.ID] {
			return fmt.Errorf("cp[%d]: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		if _, err := e.ToParams(); err != nil {
			return fmt.Errorf("cp[%d] invalid: %w", i, err)
		}
	}
	return nil
}

// Step is the parsed scenario frequency.
func (s ScenarioConfig) Step() (time.Duration, error) {
	return timeseries.ParseStep(s.Frequency)
}

// Location is the parsed scenario timezone.
func (s ScenarioConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// ToParams parses the event list. A zero-event entry is returned without
// error; the caller decides to drop it.
func (c CPConfig) ToParams() (cp.Params, error) {
	events, err := cp.ParseEvents(c.Dates)
	if err != nil {
		return cp.Params{}, err
	}
	if c.RateMonthly < 0 {
		return cp.Params{}, errors.New("rate_monthly must be >= 0")
	}
	label := c.Label
	if label == "" {
		label = c.ID
	}
	return cp.Params{
		ID:            c.ID,
		Label:         label,
		MonthlyRate:   c.RateMonthly,
		GrowthPercent: c.Growth,
		Events:        events,
	}, nil
}

type cpFileWrapper struct {
	CP []CPConfig `yaml:"cp"`
}

func loadCPFile(path string) ([]CPConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w cpFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.CP, nil
}

// MergeCP appends override to base, replacing base entries that share an id.
// Non-zero fields of the override win; zero fields keep the base value.
func MergeCP(base, override []CPConfig) []CPConfig {
	out := append([]CPConfig(nil), base...)
	pos := map[string]int{}
	for i, e := range out {
		pos[e.ID] = i
	}
	for _, o := range override {
		i, ok := pos[o.ID]
		if !ok {
			pos[o.ID] = len(out)
			out = append(out, o)
			continue
		}
		out[i] = mergeOne(out[i], o)
	}
	return out
}

func mergeOne(base, override CPConfig) CPConfig {
	out := base
	if override.Label != "" {
		out.Label = override.Label
	}
	if override.RateMonthly != 0 {
		out.RateMonthly = override.RateMonthly
	}
	if override.Dates != "" {
		out.Dates = override.Dates
	}
	if override.Growth != 0 {
		out.Growth = override.Growth
	}
	if override.Active != nil {
		out.Active = override.Active
	}
	return out
}
