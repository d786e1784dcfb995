// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AdminUsername is the only account that can log in. The password arrives
// as a bcrypt hash through the environment.
const AdminUsername = "admin"

type DatabaseConfig struct {
	Filename string `yaml:"filename"`
}

type PaginationConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type LeagueConfig struct {
	// LastSeasonYear is the most recent season with complete results; the
	// home page standings default to it.
	LastSeasonYear int64 `yaml:"last_season_year"`
}

type UploadsConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
	// ThumbSize is the maximum dimension of generated thumbnails, pixels.
	ThumbSize int `yaml:"thumb_size"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database   DatabaseConfig   `yaml:"database"`
	Pagination PaginationConfig `yaml:"pagination"`
	League     LeagueConfig     `yaml:"league"`
	Uploads    UploadsConfig    `yaml:"uploads"`

	// AdminPasswordHash is the bcrypt hash for AdminUsername, loaded from
	// the environment.
	AdminPasswordHash string `yaml:"-"`
}

// Load loads both .env and yaml configuration.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pagination.DefaultPageSize == 0 {
		c.Pagination.DefaultPageSize = 30
	}
	if c.Pagination.MaxPageSize == 0 {
		c.Pagination.MaxPageSize = 100
	}
	if c.Uploads.MaxBytes == 0 {
		c.Uploads.MaxBytes = 10 << 20
	}
	if c.Uploads.ThumbSize == 0 {
		c.Uploads.ThumbSize = 256
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required")
	}
	if c.Pagination.DefaultPageSize > c.Pagination.MaxPageSize {
		return fmt.Errorf("default page size exceeds max page size")
	}
	if c.Uploads.Dir == "" {
		return fmt.Errorf("uploads directory is required")
	}
	return nil
}
