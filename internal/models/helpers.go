package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculatePayout is the full win payout: stake times the *target* multiplier
// (the house pays the requested multiplier, not the realized one), floored to
// cents.
func CalculatePayout(stake decimal.Decimal, targetMultiplier float64) decimal.Decimal {
	return stake.Mul(decimal.NewFromFloat(targetMultiplier)).RoundDown(2)
}

func GenerateRoundID() string {
	return fmt.Sprintf("round_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// GenerateClientSeed returns 128 bits of hex-encoded entropy.
func GenerateClientSeed() (string, error) {
	bytes := make([]byte, 16)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate client seed: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}
