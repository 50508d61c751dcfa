package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Store selection: "firestore" or "mongo".
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	// Firebase / Firestore.
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	NotifyTopic             string `mapstructure:"NOTIFY_TOPIC"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB     int    `mapstructure:"REDIS_QUEUE_DB"`
	CatalogCacheTTL  int    `mapstructure:"CATALOG_CACHE_TTL_SECONDS"`
	CacheEnabled     bool   `mapstructure:"CACHE_ENABLED"`
	IntegrityEnabled bool   `mapstructure:"INTEGRITY_CHECK_ENABLED"`
	IntegrityCron    string `mapstructure:"INTEGRITY_CHECK_CRON"`

	// Comandas.
	ComandaSecret   string `mapstructure:"COMANDA_SECRET"`
	ComandaTTLHours int    `mapstructure:"COMANDA_TTL_HOURS"`
	RequireComanda  bool   `mapstructure:"REQUIRE_COMANDA"`

	// Admin auth: Firebase custom claim that marks staff accounts.
	AdminClaim string `mapstructure:"ADMIN_CLAIM"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("STORE_DRIVER", "firestore")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("NOTIFY_TOPIC", "")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("DATABASE_NAME", "fazenda_do_rosa")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("CATALOG_CACHE_TTL_SECONDS", 600)
	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("INTEGRITY_CHECK_ENABLED", true)
	viper.SetDefault("INTEGRITY_CHECK_CRON", "*/30 * * * *")
	viper.SetDefault("COMANDA_SECRET", "")
	viper.SetDefault("COMANDA_TTL_HOURS", 72)
	viper.SetDefault("REQUIRE_COMANDA", false)
	viper.SetDefault("ADMIN_CLAIM", "admin")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the business timezone used to decide "today".
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CatalogCacheTTL returns the cache lifetime for services and cabins.
func CatalogCacheTTL() time.Duration {
	return time.Duration(AppConfig.CatalogCacheTTL) * time.Second
}

// ComandaTTL returns how long a freshly issued comanda stays valid.
func ComandaTTL() time.Duration {
	return time.Duration(AppConfig.ComandaTTLHours) * time.Hour
}
