// Package config loads showcase settings from <dataDir>/config.yaml, .env
// files and the process environment. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageLocal  = "local"
	StorageMemory = "memory"

	DriverS3    = "s3"
	DriverMinio = "minio"

	DefaultAddr   = ":8080"
	DefaultAPIURL = "http://localhost:8080"
)

type Config struct {
	Addr           string      `yaml:"addr,omitempty"`
	AdminToken     string      `yaml:"admin_token,omitempty"`
	DataDir        string      `yaml:"data_dir,omitempty"`
	UploadsDir     string      `yaml:"uploads_dir,omitempty"`
	Storage        string      `yaml:"storage,omitempty"`
	AllowedOrigins []string    `yaml:"allowed_origins,omitempty"`
	LogLevel       string      `yaml:"log_level,omitempty"`
	Blob           *BlobConfig `yaml:"blob,omitempty"`
	API            *APIConfig  `yaml:"api,omitempty"`
}

// BlobConfig describes the remote object store. A nil BlobConfig or an
// empty Bucket means no remote backend.
type BlobConfig struct {
	Driver    string `yaml:"driver,omitempty"`
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	PublicURL string `yaml:"public_url,omitempty"`
	PathStyle bool   `yaml:"path_style,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// APIConfig is what the CLI needs to reach a running server.
type APIConfig struct {
	URL   string `yaml:"url,omitempty"`
	Token string `yaml:"token,omitempty"`
}

// RemoteEnabled reports whether a bucket is configured.
func (c *Config) RemoteEnabled() bool {
	return c.Blob != nil && c.Blob.Bucket != ""
}

// APIURL returns the configured API base URL or the local default.
func (c *Config) APIURL() string {
	if c.API != nil && c.API.URL != "" {
		return strings.TrimRight(c.API.URL, "/")
	}
	return DefaultAPIURL
}

// APIToken returns the token the CLI presents. It falls back to the server
// admin token so a single .env serves both sides on a dev machine.
func (c *Config) APIToken() string {
	if c.API != nil && c.API.Token != "" {
		return c.API.Token
	}
	return c.AdminToken
}

func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, "config.yaml")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadDotenv loads the given env files in order. Missing files are skipped;
// variables already set are never overwritten.
func LoadDotenv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	str("ADMIN_TOKEN", &c.AdminToken)
	str("SHOWCASE_ADDR", &c.Addr)
	str("SHOWCASE_DATA_DIR", &c.DataDir)
	str("SHOWCASE_UPLOADS_DIR", &c.UploadsDir)
	str("SHOWCASE_STORAGE", &c.Storage)
	str("LOG_LEVEL", &c.LogLevel)
	if v, ok := lookup("SHOWCASE_ALLOWED_ORIGINS"); ok && v != "" {
		c.AllowedOrigins = splitList(v)
	}

	if c.Blob == nil {
		c.Blob = &BlobConfig{}
	}
	str("BLOB_DRIVER", &c.Blob.Driver)
	str("BLOB_BUCKET", &c.Blob.Bucket)
	str("BLOB_ENDPOINT", &c.Blob.Endpoint)
	str("BLOB_REGION", &c.Blob.Region)
	str("BLOB_ACCESS_KEY", &c.Blob.AccessKey)
	str("BLOB_SECRET_KEY", &c.Blob.SecretKey)
	str("BLOB_PUBLIC_URL", &c.Blob.PublicURL)
	boolean("BLOB_PATH_STYLE", &c.Blob.PathStyle)
	boolean("BLOB_USE_SSL", &c.Blob.UseSSL)
	if *c.Blob == (BlobConfig{}) {
		c.Blob = nil
	}

	if c.API == nil {
		c.API = &APIConfig{}
	}
	str("SHOWCASE_API_URL", &c.API.URL)
	str("SHOWCASE_API_TOKEN", &c.API.Token)
	if *c.API == (APIConfig{}) {
		c.API = nil
	}
}

// SetDefaults fills unset values. dataDir is where config.yaml was read.
func (c *Config) SetDefaults(dataDir string) {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.DataDir == "" {
		c.DataDir = dataDir
	}
	if c.UploadsDir == "" {
		c.UploadsDir = filepath.Join(c.DataDir, "uploads")
	}
	if c.Storage == "" {
		c.Storage = StorageLocal
	}
	if c.Blob != nil && c.Blob.Driver == "" {
		c.Blob.Driver = DriverS3
	}
}

// Validate rejects combinations the server cannot run with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageLocal, StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q (want %s or %s)", c.Storage, StorageLocal, StorageMemory)
	}
	if c.RemoteEnabled() {
		switch c.Blob.Driver {
		case DriverS3:
		case DriverMinio:
			if c.Blob.Endpoint == "" {
				return errors.New("blob driver minio requires an endpoint")
			}
		default:
			return fmt.Errorf("unknown blob driver %q", c.Blob.Driver)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
