package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BookMemory = "memory"
	BookRedis  = "redis"
	BookNone   = "none"
)

var ErrUnknownBookBackend = errors.New("unknown book backend")

type Config struct {
	LogLevel      string `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn"`
	ComputerFirst bool   `yaml:"computer-first" env:"COMPUTER_FIRST" env-default:"true"`
	Strategy      string `yaml:"strategy" env:"STRATEGY" env-default:"optimal"`
	Book          Book   `yaml:"book"`
	Redis         Redis  `yaml:"redis"`
}

type Book struct {
	Backend string `yaml:"backend" env:"BOOK_BACKEND" env-default:"memory"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad reads the config file at path, or only the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Book.Backend {
	case BookMemory, BookRedis, BookNone:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBookBackend, that.Book.Backend)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
