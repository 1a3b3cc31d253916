package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FrontendWebSocket = "websocket"
	FrontendConsole   = "console"
)

type Config struct {
	LogLevel         string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Frontend         string   `yaml:"frontend" env:"FRONTEND" env-default:"websocket"`
	HTTPPort         string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort       string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	AllowedOrigins   []string `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	StrictInvariants bool     `yaml:"strict-invariants" env:"STRICT_INVARIANTS" env-default:"false"`
	Bot              Bot      `yaml:"bot"`
	Redis            Redis    `yaml:"redis"`
}

type Bot struct {
	// Seed 0 means seed from the clock.
	Seed int64 `yaml:"seed" env:"BOT_SEED" env-default:"0"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"tictactoe:outcomes"`
}

// MustLoad - load all configurations in config.yml file, or from the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	default:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	if that.Frontend != FrontendWebSocket && that.Frontend != FrontendConsole {
		return fmt.Errorf("unknown frontend %q", that.Frontend)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
