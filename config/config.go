// Package config loads service-wide defaults (chunk size, worker count,
// default result limit, logging) from a TOML file, following the same
// decode-into-a-raw-map-then-dispatch pattern used throughout this
// module's ambient stack.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ScanConfig holds the scan defaults decoded from the [scan] section.
// Neither query.Run nor the logscanctl CLI reads them: query.Run always
// scans with engine.DefaultConfig and takes its limit from the Query.
type ScanConfig struct {
	ChunkSizeBytes int `toml:"chunkSizeBytes"`
	Workers        int `toml:"workers"`
	DefaultLimit   int `toml:"defaultLimit"`
	RegexSampleCap int `toml:"regexSampleCap"`
}

// LoggingConfig holds structured-logging defaults.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// Config is the top-level decoded configuration.
type Config struct {
	Scan    *ScanConfig    `toml:"scan"`
	Logging *LoggingConfig `toml:"logging"`
}

// Default returns the configuration used when no config file is
// supplied at all.
func Default() *Config {
	return &Config{
		Scan: &ScanConfig{
			ChunkSizeBytes: 4 << 20,
			Workers:        0, // 0 means "GOMAXPROCS", as engine.ScanFile treats Workers <= 0
			DefaultLimit:   50,
			RegexSampleCap: 50,
		},
		Logging: &LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads and decodes a TOML config file, filling in defaults
// for any section or field the file omits.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	for key, value := range raw {
		switch key {
		case "scan":
			if m, ok := value.(map[string]any); ok {
				parseScanConfig(cfg.Scan, m)
			}
		case "logging":
			if m, ok := value.(map[string]any); ok {
				parseLoggingConfig(cfg.Logging, m)
			}
		}
	}
	return cfg, nil
}

func parseScanConfig(sc *ScanConfig, m map[string]any) {
	if v, ok := m["chunkSizeBytes"].(int64); ok && v > 0 {
		sc.ChunkSizeBytes = int(v)
	}
	if v, ok := m["workers"].(int64); ok && v >= 0 {
		sc.Workers = int(v)
	}
	if v, ok := m["defaultLimit"].(int64); ok && v > 0 {
		sc.DefaultLimit = int(v)
	}
	if v, ok := m["regexSampleCap"].(int64); ok && v > 0 {
		sc.RegexSampleCap = int(v)
	}
}

func parseLoggingConfig(lc *LoggingConfig, m map[string]any) {
	if v, ok := m["level"].(string); ok && v != "" {
		lc.Level = v
	}
	if v, ok := m["format"].(string); ok && v != "" {
		lc.Format = v
	}
}
