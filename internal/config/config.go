package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"` // current application environment (local, dev, production)
	TelegramAPIToken string   `mapstructure:"-"`   // Telegram API token loaded from environment
	Telegram         Telegram `mapstructure:"telegram"`
	DB               DB       `mapstructure:"database"` // database configuration section
	Redis            Redis    `mapstructure:"redis"`
	Sheets           Sheets   `mapstructure:"sheets"`
	Catalog          Catalog  `mapstructure:"catalog"`
}

type Telegram struct {
	Debug bool `mapstructure:"debug"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis configures the course cache.
type Redis struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"-"` // loaded from environment
	DB        int           `mapstructure:"db"`
	CourseTTL time.Duration `mapstructure:"course_ttl"` // lifetime of cached catalog and course rows
}

// Sheets locates the catalog spreadsheet.
type Sheets struct {
	APIKey               string `mapstructure:"-"` // loaded from environment
	CatalogSpreadsheetID string `mapstructure:"catalog_spreadsheet_id"`
	CatalogRange         string `mapstructure:"catalog_range"`
}

type Catalog struct {
	RefreshSpec string `mapstructure:"refresh_spec"` // cron spec of the course reload
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from config files and environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("gsheet_api_key", "GSHEET_API_KEY")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.course_ttl", "6h")
	v.SetDefault("sheets.catalog_range", "코드 목록")
	v.SetDefault("catalog.refresh_spec", "0 */6 * * *")
}

func fromViper(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Sheets.APIKey = v.GetString("gsheet_api_key")
	cfg.Redis.Password = v.GetString("redis_password")

	var missing []string
	if cfg.TelegramAPIToken == "" {
		missing = append(missing, "TELEGRAM_API_TOKEN")
	}
	if cfg.DB.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.Sheets.APIKey == "" {
		missing = append(missing, "GSHEET_API_KEY")
	}
	if cfg.Sheets.CatalogSpreadsheetID == "" {
		missing = append(missing, "SHEETS_CATALOG_SPREADSHEET_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnvironmentVariables, strings.Join(missing, ", "))
	}

	return &cfg, nil
}
