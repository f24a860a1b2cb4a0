// Package config loads the service configuration from configs/config.yml,
// an optional .env file and SECUREWATCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SECUREWATCH"

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	DB        DBConfig        `mapstructure:"db"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Dialogs   DialogsConfig   `mapstructure:"dialogs"`
	Digest    DigestConfig    `mapstructure:"digest"`
	Settings  SettingsConfig  `mapstructure:"settings"`
}

type HTTPConfig struct {
	Port              string        `mapstructure:"port" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type AuthConfig struct {
	SigningKey  string        `mapstructure:"signing_key" validate:"required,min=8"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	SignInRate  float64       `mapstructure:"sign_in_rate" validate:"gt=0"` // attempts per second
	SignInBurst int           `mapstructure:"sign_in_burst" validate:"gte=1"`
}

type SimulatorConfig struct {
	Tick          time.Duration `mapstructure:"tick" validate:"gt=0"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`
}

type DialogsConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
}

type DigestConfig struct {
	Schedule string `mapstructure:"schedule" validate:"required"`
}

// SettingsConfig seeds the settings page until it is first saved.
type SettingsConfig struct {
	OrganizationName    string `mapstructure:"organization_name" validate:"required"`
	Timezone            string `mapstructure:"timezone" validate:"required"`
	IncidentPrefix      string `mapstructure:"incident_prefix" validate:"required,alphanum,max=8"`
	ConfidenceThreshold int    `mapstructure:"confidence_threshold" validate:"min=0,max=100"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "securewatch.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.sign_in_rate", 1.0)
	v.SetDefault("auth.sign_in_burst", 5)
	v.SetDefault("simulator.tick", 100*time.Millisecond)
	v.SetDefault("simulator.sweep_interval", time.Minute)
	v.SetDefault("dialogs.session_ttl", 30*time.Minute)
	v.SetDefault("digest.schedule", "0 9 * * 1")
	v.SetDefault("settings.organization_name", "Acme Corp")
	v.SetDefault("settings.timezone", "utc")
	v.SetDefault("settings.incident_prefix", "INC")
	v.SetDefault("settings.confidence_threshold", 85)
}

// Load reads the config file at path (missing file is fine when every value
// has a default or comes from the environment) and validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config error: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("validate config error: %w", err)
	}
	return &c, nil
}
