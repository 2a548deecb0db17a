package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// IRC Configuration
	IRCServer   string `mapstructure:"IRC_SERVER" validate:"required"`
	IRCPort     int    `mapstructure:"IRC_PORT" validate:"min=1,max=65535"`
	IRCChannel  string `mapstructure:"IRC_CHANNEL" validate:"required,startswith=#"`
	IRCNickname string `mapstructure:"IRC_NICKNAME" validate:"required"`
	IRCPassword string `mapstructure:"IRC_PASSWORD"`

	// HTTP Configuration
	HTTPPort int `mapstructure:"HTTP_PORT" validate:"min=1,max=65535"`
	// PublicBaseURL is the address viewers use to reach published videos,
	// e.g. "http://10.0.0.2:8084". Announced links are built from it.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL" validate:"required,url"`

	// Pipeline Configuration.
	// OutputDir and TempDir must live on the same filesystem: publication is
	// a single rename.
	OutputDir              string `mapstructure:"OUTPUT_DIR" validate:"required"`
	TempDir                string `mapstructure:"TEMP_DIR" validate:"required"`
	Workers                int    `mapstructure:"WORKERS" validate:"min=1"`
	MaxHeight              int    `mapstructure:"MAX_HEIGHT" validate:"min=1"`
	HardwarePreference     string `mapstructure:"HARDWARE_PREFERENCE" validate:"oneof=gpu cpu"`
	DownloadTimeoutMinutes int    `mapstructure:"DOWNLOAD_TIMEOUT_MINUTES" validate:"min=1"`
	EncodeTimeoutMinutes   int    `mapstructure:"ENCODE_TIMEOUT_MINUTES" validate:"min=1"`
}

// DownloadTimeout returns the per-job download stage deadline.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutMinutes) * time.Minute
}

// EncodeTimeout returns the per-attempt encode stage deadline.
func (c *Config) EncodeTimeout() time.Duration {
	return time.Duration(c.EncodeTimeoutMinutes) * time.Minute
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("mapstructure")
		if tag != "" {
			viper.BindEnv(tag)
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("IRC_SERVER", "irc.libera.chat")
	viper.SetDefault("IRC_PORT", 6667)
	viper.SetDefault("IRC_CHANNEL", "#test")
	viper.SetDefault("IRC_NICKNAME", "videobot")
	viper.SetDefault("HTTP_PORT", 8084)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8084")
	viper.SetDefault("OUTPUT_DIR", "output")
	viper.SetDefault("TEMP_DIR", "temp")
	viper.SetDefault("WORKERS", 1)
	viper.SetDefault("MAX_HEIGHT", 720)
	viper.SetDefault("HARDWARE_PREFERENCE", "gpu")
	viper.SetDefault("DOWNLOAD_TIMEOUT_MINUTES", 30)
	viper.SetDefault("ENCODE_TIMEOUT_MINUTES", 60)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration",
		"irc_server", cfg.IRCServer,
		"irc_channel", cfg.IRCChannel,
		"http_port", cfg.HTTPPort,
		"workers", cfg.Workers,
		"hardware_preference", cfg.HardwarePreference)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
