package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ppiankov/phoneinput/internal/policy"
)

// Config holds application settings for the phoneinput CLI.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Widget WidgetConfig `mapstructure:"widget"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WidgetConfig points at the widget file and the initial country.
type WidgetConfig struct {
	Path    string `mapstructure:"path"`
	Country string `mapstructure:"country"`
}

// Path returns the settings file location: $PHONEINPUT_CONFIG or
// ~/.config/phoneinput/config.yaml.
func Path() string {
	if p := os.Getenv("PHONEINPUT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "phoneinput", "config.yaml")
}

// Load reads settings from file and env. Env var overrides use prefix PHONEINPUT_.
// A missing settings file is not an error.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("widget.path", policy.DefaultSourcesPath())
	v.SetDefault("widget.country", "")

	v.SetConfigType("yaml")

	if cfgPath := os.Getenv("PHONEINPUT_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "phoneinput"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PHONEINPUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}
