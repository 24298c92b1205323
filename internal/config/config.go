// backend-go/internal/config/config.go
package config

import (
	"fmt"
	"sync"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Analysis AnalysisConfig
	Cache    CacheConfig
	Storage  StorageConfig
}

type AppConfig struct {
	LogLevel  string
	LogFormat string
}

// AnalysisConfig is read once at startup and never mutated afterwards.
type AnalysisConfig struct {
	AlgoVersion string
	Params      domain.Params
	Roles       map[string]domain.SkuRole
	BatchLimit  int // Max workbooks analyzed concurrently
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RunTTLSeconds int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// Load reads .env, the optional CONFIG_FILE and the environment. It runs once
// per process; later calls return the same result.
func Load() (*Config, error) {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		instance, loadErr = build(viper.GetViper())
	})

	return instance, loadErr
}

func setDefaults(v *viper.Viper) {
	d := domain.DefaultParams()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("ANALYSIS_ALGO_VERSION", pipeline.DefaultAlgoVersion)
	v.SetDefault("ANALYSIS_DAYS", d.Days)
	v.SetDefault("ANALYSIS_LEAD_TIME_DAYS", d.LeadTimeDays)
	v.SetDefault("ANALYSIS_SAFETY_DAYS", d.SafetyDays)
	v.SetDefault("ANALYSIS_TARGET_COVER_DAYS", d.TargetCoverDays)
	v.SetDefault("ANALYSIS_LOW_STOCK_THRESHOLD", d.LowStockThreshold)
	v.SetDefault("ANALYSIS_OVERSTOCK_THRESHOLD", d.OverstockThreshold)
	v.SetDefault("ANALYSIS_BATCH_LIMIT", 4)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_RUN_TTL_SECONDS", 86400)
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
}

func build(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	roles := domain.DefaultRoles()
	if v.IsSet("roles") {
		custom := make(map[string]domain.SkuRole)
		if err := v.UnmarshalKey("roles", &custom); err != nil {
			return nil, fmt.Errorf("failed to decode roles: %w", err)
		}
		if len(custom) > 0 {
			roles = custom
		}
	}

	cfg := &Config{
		App: AppConfig{
			LogLevel:  v.GetString("LOG_LEVEL"),
			LogFormat: v.GetString("LOG_FORMAT"),
		},
		Analysis: AnalysisConfig{
			AlgoVersion: v.GetString("ANALYSIS_ALGO_VERSION"),
			Params: domain.Params{
				Days:               v.GetInt("ANALYSIS_DAYS"),
				LeadTimeDays:       v.GetFloat64("ANALYSIS_LEAD_TIME_DAYS"),
				SafetyDays:         v.GetFloat64("ANALYSIS_SAFETY_DAYS"),
				TargetCoverDays:    v.GetFloat64("ANALYSIS_TARGET_COVER_DAYS"),
				LowStockThreshold:  v.GetFloat64("ANALYSIS_LOW_STOCK_THRESHOLD"),
				OverstockThreshold: v.GetFloat64("ANALYSIS_OVERSTOCK_THRESHOLD"),
			}.WithValidDays(),
			Roles:      roles,
			BatchLimit: v.GetInt("ANALYSIS_BATCH_LIMIT"),
		},
		Cache: CacheConfig{
			Enabled:       v.GetBool("CACHE_ENABLED"),
			RedisURL:      v.GetString("REDIS_URL"),
			RedisHost:     v.GetString("REDIS_HOST"),
			RedisPort:     v.GetString("REDIS_PORT"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			RunTTLSeconds: v.GetInt("CACHE_RUN_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
	}
	if cfg.Analysis.BatchLimit <= 0 {
		cfg.Analysis.BatchLimit = 1
	}

	return cfg, nil
}

// Pipeline returns the pipeline view of the analysis section.
func (a AnalysisConfig) Pipeline() pipeline.AnalysisConfig {
	return pipeline.AnalysisConfig{
		AlgoVersion: a.AlgoVersion,
		Roles:       a.Roles,
	}
}
