// Package config handles the configuration directory, the optional
// config.yaml file and TASKLIST_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tasklist/internal/blob"
	"tasklist/internal/persist"
	"tasklist/internal/task"
	"tasklist/internal/view"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// EnvPrefix prefixes environment overrides, e.g. TASKLIST_STORAGE_BACKEND.
	EnvPrefix = "TASKLIST"

	// ConfigName is the config file base name inside the config directory.
	ConfigName = "config"

	// EnvFile is the dotenv file loaded from the config directory.
	EnvFile = ".env"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

var validate = validator.New()

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`

	// Filter is the view shown when a command is given none.
	Filter string `mapstructure:"filter" validate:"oneof=all active completed"`

	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Labels  LabelsConfig  `mapstructure:"labels"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// StorageConfig selects where the task list lives.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file sqlite"`
	Format  string `mapstructure:"format" validate:"oneof=json yaml yml"`
	Key     string `mapstructure:"key" validate:"required,excludesall=/\\"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// LabelsConfig holds the empty-view messages.
type LabelsConfig struct {
	All       string `mapstructure:"all"`
	Active    string `mapstructure:"active"`
	Completed string `mapstructure:"completed"`
	Fallback  string `mapstructure:"fallback"`
}

// TUIConfig holds the layout thresholds of the interactive editor.
type TUIConfig struct {
	CompactWidth int `mapstructure:"compact_width" validate:"gte=0"`
	NarrowWidth  int `mapstructure:"narrow_width" validate:"gte=0"`
	CharLimit    int `mapstructure:"char_limit" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	labels := view.DefaultLabels()

	v.SetDefault("filter", string(task.FilterAll))
	v.SetDefault("storage.backend", blob.BackendFile)
	v.SetDefault("storage.format", persist.FormatJSON)
	v.SetDefault("storage.key", persist.DefaultKey)
	v.SetDefault("log.level", "warn")
	v.SetDefault("labels.all", labels.All)
	v.SetDefault("labels.active", labels.Active)
	v.SetDefault("labels.completed", labels.Completed)
	v.SetDefault("labels.fallback", labels.Fallback)
	v.SetDefault("tui.compact_width", 80)
	v.SetDefault("tui.narrow_width", 48)
	v.SetDefault("tui.char_limit", 256)
}

// New creates a Config holding the built-in defaults for configDir.
// No file or environment is read.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
func New(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	return decode(v, configDir)
}

// Load reads <dir>/config.yaml (optional), <dir>/.env (optional) and
// TASKLIST_* environment variables on top of the defaults.
// Real environment variables win over .env entries.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	if err := godotenv.Load(filepath.Join(dir, EnvFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", EnvFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AddConfigPath(dir)
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v, dir)
}

func decode(v *viper.Viper, dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Dir = dir
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.Format = strings.ToLower(strings.TrimSpace(cfg.Storage.Format))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Filter = strings.ToLower(strings.TrimSpace(cfg.Filter))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LogLevel returns the effective log level; Debug overrides the configured one.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.Log.Level
}

// DefaultFilter returns the configured starting filter, FilterAll when unset.
func (c *Config) DefaultFilter() task.Filter {
	f, err := task.ParseFilter(c.Filter)
	if err != nil {
		return task.FilterAll
	}
	return f
}

// ViewLabels converts the configured labels for the view projector.
func (c *Config) ViewLabels() view.Labels {
	return view.Labels{
		All:       c.Labels.All,
		Active:    c.Labels.Active,
		Completed: c.Labels.Completed,
		Fallback:  c.Labels.Fallback,
	}
}

// Codec returns the persistence codec for the configured format.
func (c *Config) Codec() (persist.Codec, error) {
	return persist.CodecFor(c.Storage.Format)
}

// BlobOptions describes the configured blob store.
func (c *Config) BlobOptions() (blob.Options, error) {
	codec, err := c.Codec()
	if err != nil {
		return blob.Options{}, err
	}
	return blob.Options{
		Backend: c.Storage.Backend,
		Dir:     c.Dir,
		Ext:     codec.Ext(),
	}, nil
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
