package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"go-sshlens/pkg/types"
)

const DefaultOutput = "categorized_log_entries.log"

type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Log      LogConfig      `yaml:"log"`
}

type AnalysisConfig struct {
	// Year is bound to year-less syslog timestamps.
	Year           int    `yaml:"year"`
	Threshold      int    `yaml:"threshold"`
	Output         string `yaml:"output"`
	SkipUnreadable bool   `yaml:"skip_unreadable"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Year:      time.Now().Year(),
			Threshold: types.DefaultThreshold,
			Output:    DefaultOutput,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, a .env file in the working directory and SSHLENS_* variables, in
// increasing order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	var err error
	if cfg.Analysis.Year, err = getEnvAsInt("SSHLENS_YEAR", cfg.Analysis.Year); err != nil {
		return nil, err
	}
	if cfg.Analysis.Threshold, err = getEnvAsInt("SSHLENS_THRESHOLD", cfg.Analysis.Threshold); err != nil {
		return nil, err
	}
	if cfg.Analysis.SkipUnreadable, err = getEnvAsBool("SSHLENS_SKIP_UNREADABLE", cfg.Analysis.SkipUnreadable); err != nil {
		return nil, err
	}
	cfg.Analysis.Output = getEnv("SSHLENS_OUTPUT", cfg.Analysis.Output)
	cfg.Log.Level = getEnv("SSHLENS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("SSHLENS_LOG_FILE", cfg.Log.File)

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Analysis.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must be >= 0 (got %d)", c.Analysis.Threshold))
	}
	if c.Analysis.Year < 1 || c.Analysis.Year > 9999 {
		errs = append(errs, fmt.Errorf("year must be between 1 and 9999 (got %d)", c.Analysis.Year))
	}
	if strings.TrimSpace(c.Analysis.Output) == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
