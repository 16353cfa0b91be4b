package config

type Config interface {
	EnvConfig
	HTTPConfig
	LogConfig
}

type EnvConfig interface {
	GetBaseURL() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	FileVars
}

func New() Config {
	return mainConfig{FileVars: LoadFileVars()}
}
