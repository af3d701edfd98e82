package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration, loaded from config.yaml
// with HALLBOOKING_* environment overrides.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Yoco     YocoConfig     `mapstructure:"yoco"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Booking  BookingConfig  `mapstructure:"booking"`
	LogLevel string         `mapstructure:"log_level"`
	GinMode  string         `mapstructure:"gin_mode"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Name     string `mapstructure:"name"`
}

// RedisConfig is optional; an empty Addr disables the availability cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type YocoConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	SecretKey string `mapstructure:"secret_key"`
	SiteURL   string `mapstructure:"site_url"` // callback URLs are derived from this
}

type NotifyConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	FromEmail  string `mapstructure:"from_email"`
	AdminEmail string `mapstructure:"admin_email"`
}

type BookingConfig struct {
	StaleDraftAge time.Duration `mapstructure:"stale_draft_age"`
}

// Load reads config.yaml from ./config (or the given path) and applies
// environment overrides. Missing file is fine when env vars cover the rest.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("HALLBOOKING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.user", "root")
	v.SetDefault("database.host", "127.0.0.1:3306")
	v.SetDefault("database.name", "hallbooking")
	v.SetDefault("redis.cache_ttl", time.Minute)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("yoco.base_url", "https://payments.yoco.com/api")
	v.SetDefault("yoco.site_url", "http://localhost:3000")
	v.SetDefault("notify.base_url", "https://api.resend.com")
	v.SetDefault("booking.stale_draft_age", 30*24*time.Hour)
	v.SetDefault("log_level", "info")
}
