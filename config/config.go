package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	TokenTTLHours     int    `mapstructure:"TOKEN_TTL_HOURS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`

	// Scheduling. Weekdays, working hours and displayed times are all
	// resolved in SchedulingTimezone.
	SchedulingTimezone  string `mapstructure:"SCHEDULING_TIMEZONE"`
	SlotCacheTTLSeconds int    `mapstructure:"SLOT_CACHE_TTL_SECONDS"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TOKEN_TTL_HOURS", 24*30)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "careerpath")
	viper.SetDefault("SCHEDULING_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("SLOT_CACHE_TTL_SECONDS", 300)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SchedulingLocation resolves the configured scheduling timezone. An
// unknown zone name is a startup error, never a silent fallback to UTC.
func SchedulingLocation() (*time.Location, error) {
	name := AppConfig.SchedulingTimezone
	if name == "" {
		name = "Asia/Kolkata"
	}
	return time.LoadLocation(name)
}

// SlotCacheTTL returns how long computed slot lists stay cached.
func SlotCacheTTL() time.Duration {
	return time.Duration(AppConfig.SlotCacheTTLSeconds) * time.Second
}

// TokenTTL returns the lifetime of issued session tokens.
func TokenTTL() time.Duration {
	if AppConfig.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(AppConfig.TokenTTLHours) * time.Hour
}
