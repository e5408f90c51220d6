package accounting

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL string        `mapstructure:"base_url" validate:"required"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

const defaultTimeout = 15 * time.Second

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("timeout", defaultTimeout)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse accounting config: %w", err)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("accounting config is missing base_url")
	}
	return &cfg, nil
}
