package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the explicit application configuration, constructed once at
// startup and passed to whichever component needs it. There is no shared
// global instance.
type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS       CORSConfig
	Log        LogConfig
	Data       DataConfig
	Exports    ExportsConfig
	Enrollment EnrollmentConfig
	Metrics    MetricsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DataConfig locates the flat-file snapshot directory.
type DataConfig struct {
	Dir string
}

// ExportsConfig locates rendered report output.
type ExportsConfig struct {
	Dir string
}

// EnrollmentConfig tunes the ledger business rules.
type EnrollmentConfig struct {
	MaxCreditsPerStudent int
}

// MetricsConfig gates the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// A missing .env is the normal case for the console: run on defaults.
	// Viper reports an explicit config file that does not exist as a plain
	// path error, not as ConfigFileNotFoundError.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Data = DataConfig{Dir: v.GetString("DATA_DIR")}
	cfg.Exports = ExportsConfig{Dir: v.GetString("EXPORTS_DIR")}

	maxCredits := v.GetInt("MAX_CREDITS_PER_STUDENT")
	if maxCredits <= 0 {
		maxCredits = 24
	}
	cfg.Enrollment = EnrollmentConfig{MaxCreditsPerStudent: maxCredits}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("EXPORTS_DIR", "./exports")

	v.SetDefault("MAX_CREDITS_PER_STUDENT", 24)
	v.SetDefault("ENABLE_METRICS", false)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
