package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL  = "https://www.omdbapi.com/"
	DefaultSeed     = "Pokemon"
	DefaultDebounce = 300 * time.Millisecond
)

// Config holds all application configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Search   SearchConfig   `mapstructure:"search"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ProviderConfig holds metadata provider configuration
type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// SearchConfig holds search controller configuration
type SearchConfig struct {
	Seed       string        `mapstructure:"seed"`        // Initial search text
	Debounce   time.Duration `mapstructure:"debounce"`    // Quiet period before a fetch
	FenceStale bool          `mapstructure:"fence_stale"` // Drop completions superseded by a newer fetch
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowHelp bool `mapstructure:"show_help"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// MetricsConfig holds the optional prometheus endpoint
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // e.g. "127.0.0.1:9464", empty disables
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL: DefaultBaseURL,
		},
		Search: SearchConfig{
			Seed:       DefaultSeed,
			Debounce:   DefaultDebounce,
			FenceStale: true,
		},
		UI: UIConfig{
			ShowHelp: true,
		},
		Logging: LoggingConfig{
			File:   defaultLogPath(),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick", "flick.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "flick", "flick.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flick")
	}
}

// LoadConfig loads configuration from .env, config file and environment
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	return loadWith(v)
}

// LoadConfigFile loads configuration from an explicit file path
func LoadConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	return loadWith(v)
}

func loadWith(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	// Environment variable overrides: FLICK_PROVIDER_API_KEY, FLICK_SEARCH_DEBOUNCE, ...
	v.SetEnvPrefix("FLICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("provider.api_key", "FLICK_PROVIDER_API_KEY", "OMDB_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("provider.base_url", cfg.Provider.BaseURL)
	v.SetDefault("provider.api_key", cfg.Provider.APIKey)
	v.SetDefault("search.seed", cfg.Search.Seed)
	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("search.fence_stale", cfg.Search.FenceStale)
	v.SetDefault("ui.show_help", cfg.UI.ShowHelp)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)
}

// Validate checks settings that have no usable default
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Provider.APIKey) == "" {
		return domain.ErrMissingAPIKey
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base URL is required")
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search debounce must not be negative: %s", c.Search.Debounce)
	}
	return nil
}

// SaveConfig writes the configuration to the default config file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return saveTo(filepath.Join(configPath, "config.yaml"), cfg)
}

func saveTo(configFile string, cfg *Config) error {
	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("provider.base_url", cfg.Provider.BaseURL)
	v.Set("provider.api_key", cfg.Provider.APIKey)

	v.Set("search.seed", cfg.Search.Seed)
	v.Set("search.debounce", cfg.Search.Debounce.String())
	v.Set("search.fence_stale", cfg.Search.FenceStale)

	v.Set("ui.show_help", cfg.UI.ShowHelp)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	v.Set("metrics.addr", cfg.Metrics.Addr)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the config directory path
func GetConfigPath() string {
	return defaultConfigPath()
}
