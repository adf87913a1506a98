package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type PageSpeedSettings struct {
	Endpoint string `mapstructure:"endpoint"`
}

type GroqSettings struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	PageSpeed PageSpeedSettings `mapstructure:"pagespeed"`
	Groq      GroqSettings      `mapstructure:"groq"`
}

// LoadSettings reads the optional application settings file. Every value is
// defaulted, so an empty path yields a usable configuration.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("pagespeed.endpoint", "")
	v.SetDefault("groq.endpoint", "")
	v.SetDefault("groq.model", "")
	v.SetDefault("groq.temperature", 0.0)
	v.SetDefault("groq.max_tokens", 0)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}
