package config

import (
	"flag"

	"github.com/VincentZyu233/woodenaxe/shield"
)

var argConfigFile = flag.String("c", "", "config file path")

type PluginConfig struct {
	Name    string      `yaml:"name"`
	As      string      `yaml:"as"`
	File    string      `yaml:"file"`
	Require []string    `yaml:"require"`
	Configs interface{} `yaml:"configs"`
}

type PluginSystemConfig struct {
	Version string         `yaml:"version"`
	Plugins []PluginConfig `yaml:"plugins"`
}

type StartConfig struct {
	// Shield Config
	ShieldConfig shield.ShieldConfig `json:"shield_config"`
	LogLevel     string              `json:"log_level"`
	// Plugin Config
	pluginsConfig    PluginSystemConfig
	PluginConfigPath string `json:"plugin_config_path"`
	// Aux
	writeBackPath string
}

func DefaultStartConfig() StartConfig {
	return StartConfig{
		ShieldConfig: shield.ShieldConfig{
			ListenAddress:         "",
			Path:                  "/",
			MaxDelaySeconds:       8,
			CommandTimeoutSeconds: 5,
		},
		LogLevel:         "info",
		PluginConfigPath: "plugins_config.yaml",
	}
}

func (s *StartConfig) GetPluginConfig() *PluginSystemConfig {
	return &s.pluginsConfig
}

func (s *StartConfig) WriteBackPath() string {
	return s.writeBackPath
}
