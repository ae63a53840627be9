package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config captures all runtime configuration derived from environment variables
// and an optional config file.
type Config struct {
	AppName          string `mapstructure:"app_name"`
	Port             string `mapstructure:"port" validate:"required"`
	ReadTimeoutSecs  int    `mapstructure:"server_read_timeout" validate:"gt=0"`
	WriteTimeoutSecs int    `mapstructure:"server_write_timeout" validate:"gt=0"`
	IdleTimeoutSecs  int    `mapstructure:"server_idle_timeout" validate:"gt=0"`

	DBDriver          string `mapstructure:"db_driver" validate:"oneof=sqlite postgres"`
	DBURL             string `mapstructure:"db_url" validate:"required"`
	DBMaxConns        int    `mapstructure:"db_max_conns" validate:"gt=0"`
	DBMinConns        int    `mapstructure:"db_min_conns" validate:"gte=0"`
	DBMaxIdleSecs     int    `mapstructure:"db_max_conn_idle_secs" validate:"gte=0"`
	DBMaxLifeSecs     int    `mapstructure:"db_max_conn_lifetime_secs" validate:"gte=0"`
	DBConnTimeoutSecs int    `mapstructure:"db_conn_timeout_secs" validate:"gte=0"`
	DBStatementCache  int    `mapstructure:"db_statement_cache_capacity" validate:"gte=0"`

	// LookupMode selects whether the title query is matched against the
	// normalized film title or the exact film code.
	LookupMode     string `mapstructure:"lookup_mode" validate:"oneof=title code"`
	StaticDir      string `mapstructure:"static_dir" validate:"required"`
	PosterFallback string `mapstructure:"poster_fallback" validate:"required,startswith=/"`

	AssetBackend   string `mapstructure:"asset_backend" validate:"oneof=dir minio"`
	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessKey string `mapstructure:"minio_access_key"`
	MinioSecretKey string `mapstructure:"minio_secret_key"`
	MinioBucket    string `mapstructure:"minio_bucket"`
	MinioUseSSL    bool   `mapstructure:"minio_use_ssl"`

	LogPath  string `mapstructure:"log_path"`
	LogDebug bool   `mapstructure:"log_debug"`
}

var defaults = map[string]any{
	"APP_NAME":                    "rtfilms",
	"PORT":                        "8080",
	"SERVER_READ_TIMEOUT":         15,
	"SERVER_WRITE_TIMEOUT":        15,
	"SERVER_IDLE_TIMEOUT":         60,
	"DB_DRIVER":                   "sqlite",
	"DB_URL":                      "rtfilms.db",
	"DB_MAX_CONNS":                20,
	"DB_MIN_CONNS":                2,
	"DB_MAX_CONN_IDLE_SECS":       300,
	"DB_MAX_CONN_LIFETIME_SECS":   3600,
	"DB_CONN_TIMEOUT_SECS":        10,
	"DB_STATEMENT_CACHE_CAPACITY": 256,
	"LOOKUP_MODE":                 "title",
	"STATIC_DIR":                  "public",
	"POSTER_FALLBACK":             "/images/poster2.png",
	"ASSET_BACKEND":               "dir",
	"MINIO_ENDPOINT":              "",
	"MINIO_ACCESS_KEY":            "",
	"MINIO_SECRET_KEY":            "",
	"MINIO_BUCKET":                "",
	"MINIO_USE_SSL":               true,
	"LOG_PATH":                    "",
	"LOG_DEBUG":                   false,
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an optional config file (.env, yaml, toml, ...) whose
// values sit below environment variables in precedence.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if strings.HasSuffix(path, ".env") {
			v.SetConfigType("env")
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return describe(fieldErrs[0])
		}
		return err
	}

	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if c.AssetBackend == "minio" {
		if c.MinioEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when ASSET_BACKEND=minio")
		}
		if c.MinioBucket == "" {
			return fmt.Errorf("MINIO_BUCKET is required when ASSET_BACKEND=minio")
		}
	}
	return nil
}

// describe turns a validator error into a message naming the environment variable.
func describe(fe validator.FieldError) error {
	key := envName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", key)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Errorf("%s must be positive", key)
	case "gte":
		return fmt.Errorf("%s must be non-negative", key)
	case "startswith":
		return fmt.Errorf("%s must start with %q", key, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", key)
	}
}

func envName(field string) string {
	if f, ok := fieldEnv[field]; ok {
		return f
	}
	return strings.ToUpper(field)
}

var fieldEnv = map[string]string{
	"Port":              "PORT",
	"ReadTimeoutSecs":   "SERVER_READ_TIMEOUT",
	"WriteTimeoutSecs":  "SERVER_WRITE_TIMEOUT",
	"IdleTimeoutSecs":   "SERVER_IDLE_TIMEOUT",
	"DBDriver":          "DB_DRIVER",
	"DBURL":             "DB_URL",
	"DBMaxConns":        "DB_MAX_CONNS",
	"DBMinConns":        "DB_MIN_CONNS",
	"DBMaxIdleSecs":     "DB_MAX_CONN_IDLE_SECS",
	"DBMaxLifeSecs":     "DB_MAX_CONN_LIFETIME_SECS",
	"DBConnTimeoutSecs": "DB_CONN_TIMEOUT_SECS",
	"DBStatementCache":  "DB_STATEMENT_CACHE_CAPACITY",
	"LookupMode":        "LOOKUP_MODE",
	"StaticDir":         "STATIC_DIR",
	"PosterFallback":    "POSTER_FALLBACK",
	"AssetBackend":      "ASSET_BACKEND",
}
