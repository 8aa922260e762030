package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	Pruner   PrunerConfig
	Timeline TimelineConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// StoreConfig selects the booking store backend. Backend is one of
// "file", "postgres" or "redis"; FilePath only applies to "file".
type StoreConfig struct {
	Backend  string
	FilePath string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PrunerConfig struct {
	Retention time.Duration
	Interval  time.Duration
}

// TimelineConfig describes the business day window used by the timeline
// view, in minutes since midnight, plus the rendered width in pixels.
type TimelineConfig struct {
	DayStartMinutes int
	DayEndMinutes   int
	Width           float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	retention, err := time.ParseDuration(viper.GetString("PRUNE_RETENTION"))
	if err != nil {
		retention = time.Hour
	}

	interval, err := time.ParseDuration(viper.GetString("PRUNE_INTERVAL"))
	if err != nil {
		interval = 30 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Store: StoreConfig{
			Backend:  viper.GetString("STORE_BACKEND"),
			FilePath: viper.GetString("STORE_FILE_PATH"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Pruner: PrunerConfig{
			Retention: retention,
			Interval:  interval,
		},
		Timeline: TimelineConfig{
			DayStartMinutes: viper.GetInt("BUSINESS_DAY_START"),
			DayEndMinutes:   viper.GetInt("BUSINESS_DAY_END"),
			Width:           viper.GetFloat64("TIMELINE_WIDTH"),
		},
	}

	if config.Store.Backend == "" {
		config.Store.Backend = "file"
	}
	if config.Store.FilePath == "" {
		config.Store.FilePath = "bookings.json"
	}
	if config.Timeline.DayStartMinutes == 0 && config.Timeline.DayEndMinutes == 0 {
		config.Timeline.DayStartMinutes = 8 * 60
		config.Timeline.DayEndMinutes = 18 * 60
	}
	if config.Timeline.Width == 0 {
		config.Timeline.Width = 1280
	}

	return config, nil
}
