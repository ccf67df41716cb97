package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Env  string
	Port string

	// Store selection: empty RedisAddr keeps wallets in memory.
	RedisAddr string
	RedisPass string
	RedisDB   int

	JWTSecret string
	TokenTTL  time.Duration

	InitialBalance decimal.Decimal
	MinBet         decimal.Decimal
	MaxBet         decimal.Decimal
	MinStep        decimal.Decimal

	CurrencySymbol string
	CurrencyPrefix bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPass:      getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:       24 * time.Hour,
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
		CurrencyPrefix: true,
	}

	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
	}
	cfg.RedisDB = db

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %v", err)
		}
		cfg.TokenTTL = d
	}

	cfg.InitialBalance, err = decimalEnv("INITIAL_BALANCE", "1000")
	if err != nil {
		return nil, err
	}
	cfg.MinBet, err = decimalEnv("MIN_BET", "0.01")
	if err != nil {
		return nil, err
	}
	cfg.MaxBet, err = decimalEnv("MAX_BET", "1000")
	if err != nil {
		return nil, err
	}
	cfg.MinStep, err = decimalEnv("MIN_STEP", "0.01")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func decimalEnv(key, fallback string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
