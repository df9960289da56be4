package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmgilman/scriptfs/fs/billy"
	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/jmgilman/scriptfs/fs/minio"
)

const (
	defaultConfigFile = "scriptfs.toml"
	envPrefix         = "SCRIPTFS_"
)

// Config is the CLI configuration. Values are layered as defaults, then the
// TOML file, then the environment, then command line flags.
type Config struct {
	Backend     string   `toml:"backend"`
	Root        string   `toml:"root"`
	Verbose     bool     `toml:"verbose"`
	VerifyMoves bool     `toml:"verify_moves"`
	S3          S3Config `toml:"s3"`
}

// S3Config configures the MinIO backend.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Prefix    string `toml:"prefix"`
	UseSSL    bool   `toml:"use_ssl"`
	Timeout   string `toml:"timeout"`
}

func defaultConfig() Config {
	return Config{Backend: "local"}
}

// loadFile decodes the TOML file at path over cfg. A missing file is only
// an error when the path was given explicitly.
func loadFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// envLookup resolves SCRIPTFS_* variables from the process environment
// first and from the dotenv values second.
type envLookup struct {
	getenv func(string) (string, bool)
	dotenv map[string]string
}

func newEnvLookup(envFile string, getenv func(string) (string, bool)) (envLookup, error) {
	l := envLookup{getenv: getenv, dotenv: map[string]string{}}
	if envFile == "" {
		return l, nil
	}
	values, err := godotenv.Read(envFile)
	if err != nil {
		return l, fmt.Errorf("reading env file %s: %w", envFile, err)
	}
	l.dotenv = values
	return l, nil
}

func (l envLookup) get(key string) (string, bool) {
	key = envPrefix + key
	if v, ok := l.getenv(key); ok {
		return v, true
	}
	v, ok := l.dotenv[key]
	return v, ok
}

// apply overlays environment values on cfg.
func (l envLookup) apply(cfg *Config) error {
	strs := map[string]*string{
		"BACKEND":       &cfg.Backend,
		"ROOT":          &cfg.Root,
		"S3_ENDPOINT":   &cfg.S3.Endpoint,
		"S3_BUCKET":     &cfg.S3.Bucket,
		"S3_ACCESS_KEY": &cfg.S3.AccessKey,
		"S3_SECRET_KEY": &cfg.S3.SecretKey,
		"S3_PREFIX":     &cfg.S3.Prefix,
		"S3_TIMEOUT":    &cfg.S3.Timeout,
	}
	for key, dst := range strs {
		if v, ok := l.get(key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"VERBOSE":      &cfg.Verbose,
		"VERIFY_MOVES": &cfg.VerifyMoves,
		"S3_USE_SSL":   &cfg.S3.UseSSL,
	}
	for key, dst := range bools {
		v, ok := l.get(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
		}
		*dst = b
	}
	return nil
}

// Primitives builds the provider selected by Backend.
func (c Config) Primitives() (core.Primitives, error) {
	switch strings.ToLower(c.Backend) {
	case "", "local":
		root := c.Root
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("resolving working directory: %w", err)
			}
			root = wd
		}
		return billy.NewLocal(root), nil
	case "memory":
		return billy.NewMemory(), nil
	case "s3", "minio":
		var timeout time.Duration
		if c.S3.Timeout != "" {
			d, err := time.ParseDuration(c.S3.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid s3 timeout: %w", err)
			}
			timeout = d
		}
		mfs, err := minio.NewMinIO(minio.Config{
			Endpoint:         c.S3.Endpoint,
			Bucket:           c.S3.Bucket,
			AccessKey:        c.S3.AccessKey,
			SecretKey:        c.S3.SecretKey,
			UseSSL:           c.S3.UseSSL,
			Prefix:           c.S3.Prefix,
			OperationTimeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		return mfs, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}
