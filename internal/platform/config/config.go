package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// BaseCurrency is the reporting base; all journal amounts are recorded
	// in it.
	BaseCurrency string

	// System account codes used by automatic event posting.
	CashAccountCode    string
	RevenueAccountCode string
	ExpenseAccountCode string

	// Rate limiting, expressed in ulule/limiter format (e.g. "100-M").
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "QAR")
	viper.SetDefault("CASH_ACCOUNT_CODE", "1000")
	viper.SetDefault("REVENUE_ACCOUNT_CODE", "4000")
	viper.SetDefault("EXPENSE_ACCOUNT_CODE", "5000")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	cfg.CashAccountCode = viper.GetString("CASH_ACCOUNT_CODE")
	cfg.RevenueAccountCode = viper.GetString("REVENUE_ACCOUNT_CODE")
	cfg.ExpenseAccountCode = viper.GetString("EXPENSE_ACCOUNT_CODE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
