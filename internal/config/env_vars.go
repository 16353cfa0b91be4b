package config

import (
	"os"
	"path/filepath"
)

const (
	baseURLVar = "API_BASE_URL"
	appNameVar = "APP_NAME"
	folderVar  = "TASKCTL_DATA"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetBaseURL returns the base URL of the task backend
// (e.g., "https://tasks.example.com"). All endpoint paths are relative to it.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "taskctl")
}

// GetDataFolder returns the directory holding the persisted token and logs.
func (EnvVars) GetDataFolder() string {
	folder := GetEnv(folderVar, "")
	if folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".taskctl")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
