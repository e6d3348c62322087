package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "RULOOKUP"

const (
	CacheBackendNone  = "none"
	CacheBackendFile  = "file"
	CacheBackendMySQL = "mysql"
)

type Config struct {
	OpenRussian OpenRussianConfig `mapstructure:"openrussian"`
	Lookup      LookupConfig      `mapstructure:"lookup"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

type OpenRussianConfig struct {
	BaseURL         string `mapstructure:"base_url" validate:"required,url"`
	UserAgent       string `mapstructure:"user_agent" validate:"required"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"min=1"`
	RetryAttempts   uint   `mapstructure:"retry_attempts" validate:"max=10"`
	BreakerFailures uint32 `mapstructure:"breaker_failures" validate:"min=1"`
}

type LookupConfig struct {
	Concurrency int    `mapstructure:"concurrency" validate:"min=1,max=32"`
	Output      string `mapstructure:"output" validate:"required,notdir"`
	Format      string `mapstructure:"format" validate:"oneof=json yaml"`
}

type CacheConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=none file mysql"`
	Directory string `mapstructure:"directory" validate:"required_if=Backend file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/rulookup")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("openrussian.base_url", "https://api.openrussian.org")
	v.SetDefault("openrussian.user_agent", "RussianCourse/1.0 (+local)")
	v.SetDefault("openrussian.timeout_seconds", 12)
	v.SetDefault("openrussian.retry_attempts", 2)
	v.SetDefault("openrussian.breaker_failures", 5)
	v.SetDefault("lookup.concurrency", 4)
	v.SetDefault("lookup.output", filepath.Join("assets", "json", "openrussian_lookup.json"))
	v.SetDefault("lookup.format", "json")
	v.SetDefault("cache.backend", CacheBackendFile)
	v.SetDefault("cache.directory", filepath.Join("dictionaries", "openrussian"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.tls", false)
	v.SetDefault("database.max_open_conns", 0)
	v.SetDefault("database.max_idle_conns", 0)
	v.SetDefault("database.conn_max_lifetime_seconds", 0)

	// RULOOKUP_LOOKUP_CONCURRENCY overrides lookup.concurrency, and so on
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
