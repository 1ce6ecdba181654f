// Package config loads server and disk configuration from the environment,
// an optional .env file and an optional YAML disks file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrParsingConfig  = errors.New("config: failed to parse configuration")
	ErrReadDisksFile  = errors.New("config: failed to read disks file")
	ErrUnknownDriver  = errors.New("config: unknown disk driver")
	ErrNoDisks        = errors.New("config: no disks configured")
	ErrDuplicateDisk  = errors.New("config: disk configured twice")
	ErrInvalidDisk    = errors.New("config: invalid disk configuration")
	ErrMissingDefault = errors.New("config: default disk is not configured")
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config is the server configuration.
type Config struct {
	Addr               string        `env:"FILEOUTPUT_ADDR" envDefault:":8080"`
	LogLevel           string        `env:"FILEOUTPUT_LOG_LEVEL" envDefault:"info"`
	LogPretty          bool          `env:"FILEOUTPUT_LOG_PRETTY" envDefault:"false"`
	DefaultDisk        string        `env:"FILEOUTPUT_DEFAULT_DISK" envDefault:"local"`
	DisksFile          string        `env:"FILEOUTPUT_DISKS_FILE"`
	TemporaryURLExpiry time.Duration `env:"FILEOUTPUT_TEMPORARY_URL_EXPIRY" envDefault:"5m"`
	ShutdownTimeout    time.Duration `env:"FILEOUTPUT_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Local LocalDisk `envPrefix:"FILEOUTPUT_LOCAL_"`
	S3    S3Disk    `envPrefix:"FILEOUTPUT_S3_"`

	// Disks holds the entries of DisksFile keyed by alias.
	Disks map[string]DiskConfig
}

// LocalDisk configures the "local" disk from the environment.
type LocalDisk struct {
	Root string `env:"ROOT" envDefault:"./storage"`
	URL  string `env:"URL" envDefault:"/storage"`
}

// S3Disk configures the "s3" disk from the environment. It is only
// registered when Bucket is set.
type S3Disk struct {
	Bucket     string `env:"BUCKET"`
	Region     string `env:"REGION" envDefault:"us-east-1"`
	AccessKey  string `env:"ACCESS_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
	Endpoint   string `env:"ENDPOINT"`
	UseSSL     bool   `env:"USE_SSL" envDefault:"true"`
	Visibility string `env:"VISIBILITY" envDefault:"private"`
}

// DiskConfig is one disk entry of the YAML disks file.
type DiskConfig struct {
	Driver     string `yaml:"driver"`
	Root       string `yaml:"root"`
	URL        string `yaml:"url"`
	Bucket     string `yaml:"bucket"`
	Region     string `yaml:"region"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Endpoint   string `yaml:"endpoint"`
	UseSSL     *bool  `yaml:"use_ssl"`
	Visibility string `yaml:"visibility"`
}

type disksFile struct {
	Default string                `yaml:"default"`
	Disks   map[string]DiskConfig `yaml:"disks"`
}

// Load reads .env (when present), the environment and the disks file.
func Load() (Config, error) {
	// the .env file is optional
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if cfg.DisksFile != "" {
		if err := cfg.loadDisksFile(cfg.DisksFile); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func (c *Config) loadDisksFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadDisksFile, err)
	}

	var file disksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %v", ErrReadDisksFile, err)
	}

	if file.Default != "" {
		c.DefaultDisk = file.Default
	}
	c.Disks = file.Disks

	return nil
}
