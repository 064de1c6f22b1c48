/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the backend and logging settings for the seeding CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entityfactory/errors"
)

// Backend names
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

type Config struct {
	LogLevel string   `yaml:"log_level"`
	Backend  string   `yaml:"backend"`
	Redis    Redis    `yaml:"redis"`
	DynamoDB DynamoDB `yaml:"dynamodb"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type DynamoDB struct {
	Region    string `yaml:"region"`
	Table     string `yaml:"table"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Backend:  BackendMemory,
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "entityfactory:",
		},
	}
}

// LoadEnvFile loads variables from a .env file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strVars := map[string]*string{
		"ENTITYFACTORY_LOG_LEVEL": &c.LogLevel,
		"ENTITYFACTORY_BACKEND":   &c.Backend,
		"REDIS_ADDR":              &c.Redis.Addr,
		"REDIS_PASSWORD":          &c.Redis.Password,
		"REDIS_PREFIX":            &c.Redis.Prefix,
		"AWS_REGION":              &c.DynamoDB.Region,
		"AWS_DDB_TABLE":           &c.DynamoDB.Table,
		"AWS_ACCESS_KEY":          &c.DynamoDB.AccessKey,
		"AWS_SECRET_KEY":          &c.DynamoDB.SecretKey,
	}
	for name, dst := range strVars {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidationError("REDIS_DB", "must be an integer")
		}
		c.Redis.DB = db
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.NewValidationError("redis.addr", "required for the redis backend")
		}
	case BackendDynamoDB:
		if c.DynamoDB.Region == "" {
			return errors.NewValidationError("dynamodb.region", "required for the dynamodb backend")
		}
		if c.DynamoDB.Table == "" {
			return errors.NewValidationError("dynamodb.table", "required for the dynamodb backend")
		}
	default:
		return errors.NewValidationError("backend", fmt.Sprintf("unknown backend %q", c.Backend))
	}
	return nil
}
