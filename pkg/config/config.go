package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentTest        = "test"
	EnvironmentProduction  = "production"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5" validate:"min=1"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path" default:"database.db" validate:"required"`
	Environment               string        `koanf:"environment" default:"development" validate:"omitempty,oneof=development test production"`
	Hostname                  string        `koanf:"-"`
	ServerHost                string        `koanf:"server_host" default:"0.0.0.0"`
	ServerPort                int           `koanf:"server_port" default:"3000" validate:"min=0,max=65535"`
}

const (
	configFileENV = "CONFIG_FILE"
	dotenvFile    = ".env"
)

// New builds the config from defaults, then the optional YAML config file, then
// the environment (including anything in a local .env file). Later sources win.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to load .env file")
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	path := configFilePath()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file: %s", path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.WithStack(err)
	}

	err = k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load environment")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.Environment == "" {
		cfg.Environment = EnvironmentDevelopment
	}
	cfg.Hostname = hostname

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config backed by an in-memory database.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.DatabaseFilePath = ":memory:"
	cfg.Environment = EnvironmentTest
	cfg.ServerHost = "127.0.0.1"
	return cfg
}

func configFilePath() string {
	if path := os.Getenv(configFileENV); path != "" {
		return path
	}
	return "config.yaml"
}

func validateConfig(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.WithStack(err)
	}

	fe := verrs[0]
	key := toSnakeCase(fe.StructField())
	if fe.Tag() == "required" {
		return errors.Errorf("missing required config: %s (%s)", strings.ToUpper(key), key)
	}
	return errors.Errorf("invalid config: %s (%s) failed %q validation", strings.ToUpper(key), key, fe.Tag())
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
