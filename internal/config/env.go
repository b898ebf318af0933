package config

import (
	"os"
	"strings"
)

func LoadFromEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("RALPHED_TOOL")); v != "" {
		cfg.Tool.Command = expandPath(v)
	}
	if v := strings.TrimSpace(os.Getenv("RALPHED_PERMISSION_MODE")); v != "" {
		cfg.Tool.PermissionMode = v
	}
	if v := strings.TrimSpace(os.Getenv("RALPHED_LOG_LEVEL")); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	return cfg
}
