package config

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	RedisURL       string
	TdsDefaultRate decimal.Decimal // percentage applied to gross ROI at generation time; zero disables the pre-fill
	AdminHeader    string          // trusted-proxy header marking admin actors
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	tdsRate := decimal.Zero
	if raw := viper.GetString("TDS_DEFAULT_RATE"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err == nil && !parsed.IsNegative() {
			tdsRate = parsed
		}
	}

	adminHeader := viper.GetString("ADMIN_ACTOR_HEADER")
	if adminHeader == "" {
		adminHeader = "X-Actor-Admin"
	}

	return &Config{
		Env:            env,
		Port:           port,
		DatabaseURL:    dbURL,
		RedisURL:       viper.GetString("REDIS_URL"),
		TdsDefaultRate: tdsRate,
		AdminHeader:    adminHeader,
	}, nil
}
