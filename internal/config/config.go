// Package config loads certprep settings from an optional YAML file and
// CERTPREP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	// Bank is the path of the JSON question bank.
	Bank string `mapstructure:"bank"`

	// Blueprints is the path of a JSON blueprint table. Empty uses the
	// built-in table.
	Blueprints string `mapstructure:"blueprints"`

	DB         DBConfig           `mapstructure:"db"`
	Log        LogConfig          `mapstructure:"log"`
	Thresholds map[string]float64 `mapstructure:"thresholds"`
	Defaults   DefaultsConfig     `mapstructure:"defaults"`
}

// DBConfig selects the persistence backend. An empty SQLite DSN resolves
// to the default database path.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig controls logging. File enables a rotated JSON log.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultsConfig holds generation defaults for CLI flags.
type DefaultsConfig struct {
	QuestionsPerExam int `mapstructure:"questions_per_exam"`
	ExamCount        int `mapstructure:"exam_count"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		DB: DBConfig{Driver: "sqlite"},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		Thresholds: map[string]float64{
			"part1": 0.72,
			"part2": 0.72,
		},
		Defaults: DefaultsConfig{
			QuestionsPerExam: 100,
			ExamCount:        1,
		},
	}
}

// Load reads configuration. When path is empty, certprep.yaml is looked
// up in the working directory and $HOME/.config/certprep; a missing file
// is not an error. Environment variables override file values, e.g.
// CERTPREP_DB_DSN or CERTPREP_THRESHOLDS_PART1.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("certprep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/certprep")
	}

	v.SetEnvPrefix("CERTPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("bank", d.Bank)
	v.SetDefault("blueprints", d.Blueprints)
	v.SetDefault("db.driver", d.DB.Driver)
	v.SetDefault("db.dsn", d.DB.DSN)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	for section, th := range d.Thresholds {
		v.SetDefault("thresholds."+section, th)
	}
	v.SetDefault("defaults.questions_per_exam", d.Defaults.QuestionsPerExam)
	v.SetDefault("defaults.exam_count", d.Defaults.ExamCount)
}

// Validate checks value ranges and returns a combined error describing
// all problems found.
func (c *Config) Validate() error {
	var errs []string

	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("db.driver must be sqlite or postgres, got %q", c.DB.Driver))
	}
	if c.DB.Driver == "postgres" && c.DB.DSN == "" {
		errs = append(errs, "db.dsn is required for postgres")
	}
	for section, th := range c.Thresholds {
		if th <= 0 || th > 1 {
			errs = append(errs, fmt.Sprintf("thresholds.%s must be in (0, 1], got %v", section, th))
		}
	}
	if c.Defaults.QuestionsPerExam < 1 {
		errs = append(errs, fmt.Sprintf("defaults.questions_per_exam must be >= 1, got %d", c.Defaults.QuestionsPerExam))
	}
	if c.Defaults.ExamCount < 1 {
		errs = append(errs, fmt.Sprintf("defaults.exam_count must be >= 1, got %d", c.Defaults.ExamCount))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
