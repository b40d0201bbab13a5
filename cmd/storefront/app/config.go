package app

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/server"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/export"
	"github.com/agentstation/storefront/pkg/storage"
)

// EnvPrefix prefixes environment variables read into the config, e.g.
// STOREFRONT_BASE_URL.
const EnvPrefix = "STOREFRONT"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Backend
	BaseURL      string
	ProductsPath string
	FallbackPath string
	CartPath     string
	ReceiptPath  string
	APIKey       string
	APIAuth      string
	HTTPTimeout  time.Duration

	// Local state
	Storage     string
	StateDir    string
	RedisURL    string
	CartKey     string
	DownloadDir string
	ExportAs    string

	// AssumeYes answers every confirmation prompt with yes.
	AssumeYes bool

	// Dev backend
	Addr     string
	SeedFile string

	// Logging configuration
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (STOREFRONT_*)
// 3. .env files
// 4. Config file (~/.storefront.yaml or ./.storefront.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), "")
}

// LoadConfigFile is LoadConfig with an explicit config file.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".storefront")

		// Missing config file is fine
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL:      v.GetString("base_url"),
		ProductsPath: v.GetString("products_path"),
		FallbackPath: v.GetString("fallback_path"),
		CartPath:     v.GetString("cart_path"),
		ReceiptPath:  v.GetString("receipt_path"),
		APIKey:       v.GetString("api_key"),
		APIAuth:      v.GetString("api_auth"),
		HTTPTimeout:  v.GetDuration("http_timeout"),

		Storage:     v.GetString("storage"),
		StateDir:    v.GetString("state_dir"),
		RedisURL:    v.GetString("redis_url"),
		CartKey:     v.GetString("cart_key"),
		DownloadDir: v.GetString("download_dir"),
		ExportAs:    v.GetString("export_format"),

		AssumeYes: v.GetBool("assume_yes"),

		Addr:     v.GetString("addr"),
		SeedFile: v.GetString("seed_file"),

		// Logging configuration
		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	paths := storefront.DefaultPaths()
	v.SetDefault("base_url", storefront.DefaultBaseURL)
	v.SetDefault("products_path", paths.Products)
	v.SetDefault("fallback_path", paths.ProductsFallback)
	v.SetDefault("cart_path", paths.Cart)
	v.SetDefault("receipt_path", paths.Receipt)
	v.SetDefault("api_auth", "bearer")
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("storage", string(storage.KindFile))
	v.SetDefault("cart_key", constants.CartKey)
	v.SetDefault("download_dir", ".")
	v.SetDefault("export_format", export.FormatJSON.String())
	v.SetDefault("addr", "localhost:8080")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Paths returns the backend endpoint paths.
func (c *Config) Paths() storefront.Paths {
	return storefront.Paths{
		Products:         c.ProductsPath,
		ProductsFallback: c.FallbackPath,
		Cart:             c.CartPath,
		Receipt:          c.ReceiptPath,
	}
}

// StorageConfig returns the cart storage configuration.
func (c *Config) StorageConfig() storage.Config {
	dir := c.StateDir
	if dir != "" && strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}
	return storage.Config{
		Kind:     storage.Kind(c.Storage),
		Dir:      dir,
		RedisURL: c.RedisURL,
	}
}

// ClientOptions translates the config into storefront client options. The
// storage backend is supplied by the caller.
func (c *Config) ClientOptions() ([]storefront.Option, error) {
	opts := []storefront.Option{
		storefront.WithBaseURL(c.BaseURL),
		storefront.WithPaths(c.Paths()),
		storefront.WithTimeout(c.HTTPTimeout),
		storefront.WithCartKey(c.CartKey),
		storefront.WithDownloadDir(c.DownloadDir),
	}
	if c.APIKey != "" {
		opts = append(opts, storefront.WithAPIKey(c.APIAuth, c.APIKey))
	}
	if c.ExportAs != "" {
		f, err := export.ParseFormat(c.ExportAs)
		if err != nil {
			return nil, err
		}
		opts = append(opts, storefront.WithExportFormat(f))
	}
	return opts, nil
}

// ServerConfig builds the dev backend configuration from Addr and SeedFile.
func (c *Config) ServerConfig() (server.Config, error) {
	cfg := server.DefaultConfig()
	cfg.SeedFile = c.SeedFile

	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return cfg, errors.NewConfigError("addr", "expected host:port, got "+c.Addr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return cfg, errors.NewConfigError("addr", "invalid port "+port, err)
	}
	cfg.Host = host
	cfg.Port = p
	return cfg, nil
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local is loaded first so it wins; godotenv never overrides
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
