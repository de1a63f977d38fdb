// Package config resolves exporter configuration from a YAML file, a
// .env file, environment variables, and CLI flags, in increasing order
// of precedence. Flag handling itself lives in the CLI; this package
// only loads files and validates the merged result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the resolved exporter configuration.
type Config struct {
	Token                 string `yaml:"token"`
	PageID                string `yaml:"page_id"`
	OutputDir             string `yaml:"output_dir"`
	SeparateDatabaseFiles *bool  `yaml:"separate_database_files"`
	IncludeDBInPage       *bool  `yaml:"include_db_in_page"`
	LogLevel              string `yaml:"log_level"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		OutputDir: "./output",
		LogLevel:  "info",
	}
}

// LoadFile reads a YAML config file into cfg, overriding only the
// fields the file sets.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the -config flag, not user input
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with NOTION_TOKEN and NOTION_PAGE_ID from the
// given environment map when set.
func ApplyEnv(env map[string]string, cfg *Config) {
	if v := env["NOTION_TOKEN"]; v != "" {
		cfg.Token = v
	}
	if v := env["NOTION_PAGE_ID"]; v != "" {
		cfg.PageID = v
	}
}

// Validate checks that the required inputs are present. The export never
// starts without them.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("notion token is required (flag -token, NOTION_TOKEN, or config file)")
	}
	if c.PageID == "" {
		return errors.New("page ID is required (flag -page, NOTION_PAGE_ID, or config file)")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	return nil
}

// LoadDotEnv reads KEY=VALUE pairs from a .env file in dir. A missing
// file yields an empty map. Lines starting with # are ignored.
// Double-quoted values are unquoted; single quotes are rejected.
func LoadDotEnv(dir string) (map[string]string, error) {
	env := make(map[string]string)
	path := filepath.Join(dir, ".env")
	envContent, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from a flag, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}
		return nil, err
	}

	for _, line := range strings.Split(string(envContent), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		if strings.HasPrefix(val, "'") || strings.HasSuffix(val, "'") {
			return nil, fmt.Errorf("single quotes are not supported in .env: %s", line)
		}

		if strings.HasPrefix(val, "\"") {
			unquoted, err := strconv.Unquote(val)
			if err != nil {
				return nil, fmt.Errorf("failed to unquote %s: %w", key, err)
			}
			val = unquoted
		}

		env[key] = val
	}
	return env, nil
}
