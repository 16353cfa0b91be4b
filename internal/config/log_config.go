package config

import "path/filepath"

type LogConfig interface {
	GetLogFile() string
	GetLogLevel() string
}

type Log struct{}

var _ LogConfig = Log{}

func (Log) GetLogFile() string {
	return GetEnv("LOG_FILE", filepath.Join(EnvVars{}.GetDataFolder(), "taskctl.log"))
}

func (Log) GetLogLevel() string {
	return GetEnv("LOG_LEVEL", "info")
}
