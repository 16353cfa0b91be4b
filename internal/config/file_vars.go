package config

import (
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileVar = "TASKCTL_CONFIG"

// fileSettings mirrors the optional TOML config file. Every field is
// optional; unset fields fall back to environment variables and defaults.
type fileSettings struct {
	BaseURL        string `toml:"base_url"`
	DataFolder     string `toml:"data_folder"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// FileVars layers a TOML config file over the environment-backed defaults.
type FileVars struct {
	EnvVars
	HTTP
	Log
	file fileSettings
}

var _ EnvConfig = FileVars{}
var _ HTTPConfig = FileVars{}
var _ LogConfig = FileVars{}

// LoadFileVars reads the config file named by TASKCTL_CONFIG, defaulting to
// config.toml inside the data folder. A missing or unreadable file is not an
// error; the environment-backed defaults apply.
func LoadFileVars() FileVars {
	path := GetEnv(configFileVar, filepath.Join(EnvVars{}.GetDataFolder(), "config.toml"))

	var settings fileSettings
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return FileVars{}
	}
	return FileVars{file: settings}
}

func (f FileVars) GetBaseURL() string {
	if f.file.BaseURL != "" {
		return f.file.BaseURL
	}
	return f.EnvVars.GetBaseURL()
}

func (f FileVars) GetDataFolder() string {
	if f.file.DataFolder != "" {
		return f.file.DataFolder
	}
	return f.EnvVars.GetDataFolder()
}

func (f FileVars) GetLogFile() string {
	if f.file.LogFile != "" {
		return f.file.LogFile
	}
	return f.Log.GetLogFile()
}

func (f FileVars) GetLogLevel() string {
	if f.file.LogLevel != "" {
		return f.file.LogLevel
	}
	return f.Log.GetLogLevel()
}

func (f FileVars) GetRequestTimeout() time.Duration {
	if f.file.TimeoutSeconds > 0 {
		return time.Duration(f.file.TimeoutSeconds) * time.Second
	}
	return f.HTTP.GetRequestTimeout()
}
