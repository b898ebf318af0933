// Package config loads the optional ralphed configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultDirectory      = "./plans"
	DefaultToolCommand    = "claude"
	DefaultPermissionMode = "acceptEdits"
)

type ToolConfig struct {
	Command        string `toml:"command"`
	PermissionMode string `toml:"permission_mode"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	DefaultDirectory string     `toml:"default_directory"`
	Tool             ToolConfig `toml:"tool"`
	Log              LogConfig  `toml:"log"`
}

func Default() Config {
	return Config{
		DefaultDirectory: DefaultDirectory,
		Tool: ToolConfig{
			Command:        DefaultToolCommand,
			PermissionMode: DefaultPermissionMode,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultPath returns $RALPHED_CONFIG when set, otherwise the file under the user config dir.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv("RALPHED_CONFIG")); p != "" {
		return expandPath(p)
	}

	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return filepath.Join(".ralphed", "config.toml")
	}

	return filepath.Join(configDir, "ralphed", "config.toml")
}

// Load reads path on top of the defaults. A missing file is not an error and is never created.
func Load(path string) (Config, error) {
	config := Default()

	configData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return normalize(config), nil
		}
		return config, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(configData, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}

	return normalize(config), nil
}

func normalize(config Config) Config {
	defaults := Default()

	config.DefaultDirectory = strings.TrimSpace(config.DefaultDirectory)
	config.Tool.Command = expandPath(strings.TrimSpace(config.Tool.Command))
	config.Tool.PermissionMode = strings.TrimSpace(config.Tool.PermissionMode)
	config.Log.Level = strings.ToLower(strings.TrimSpace(config.Log.Level))

	if config.DefaultDirectory == "" {
		config.DefaultDirectory = defaults.DefaultDirectory
	}
	if config.Tool.Command == "" {
		config.Tool.Command = defaults.Tool.Command
	}
	if config.Tool.PermissionMode == "" {
		config.Tool.PermissionMode = defaults.Tool.PermissionMode
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}

	return config
}

// SlogLevel maps the configured level name onto slog; unknown names fall back to warn.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path
	}

	homeDir, _ := os.UserHomeDir()
	if homeDir == "" {
		return path
	}

	trimmed := strings.TrimPrefix(path, "~")
	trimmed = strings.TrimPrefix(trimmed, "/")
	trimmed = strings.TrimPrefix(trimmed, string(os.PathSeparator))

	return filepath.Join(homeDir, trimmed)
}
