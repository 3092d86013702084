package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ORIENTATION"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env           string      `mapstructure:"env"`            // development or production
	DBPath        string      `mapstructure:"db_path"`        // SQLite file for preferences
	Language      string      `mapstructure:"language"`       // default display language when none is saved
	QuestionsPath string      `mapstructure:"questions_path"` // external question bank; embedded when empty
	Certificate   Certificate `mapstructure:"certificate"`
	Log           Log         `mapstructure:"log"`
}

// Certificate configures the certificate renderer.
type Certificate struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Log configures the rotating log file.
type Log struct {
	File       string `mapstructure:"file"` // "off" disables logging
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// IsDevelopment reports whether the development environment is selected.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// Options controls where Load looks.
type Options struct {
	ConfigFile string // explicit config file; must exist when set
	DotEnv     string // .env file; ignored when missing
}

// Load reads configuration from an optional YAML file, a .env file and
// ORIENTATION_* environment variables, in increasing priority.
func Load(opts Options) (*Config, error) {
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", dotenv, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Kept for compatibility with the documented ORIENTATION_DB variable.
	_ = v.BindEnv("db_path", EnvPrefix+"_DB", EnvPrefix+"_DB_PATH")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile()
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("db_path", "")
	v.SetDefault("language", "")
	v.SetDefault("questions_path", "")
	v.SetDefault("certificate.enabled", true)
	v.SetDefault("certificate.dir", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// configDir returns $XDG_CONFIG_HOME/orientation (or ~/.config/orientation).
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "orientation"), nil
}

// defaultLogFile returns $XDG_STATE_HOME/orientation/orientation.log.
func defaultLogFile() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "orientation.log")
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "orientation", "orientation.log")
}
