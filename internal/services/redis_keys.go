package services

import "time"

const (
	KeyWallet       = "wallet:%s"
	KeyRound        = "round:%s"
	KeyPlayerRounds = "player:%s:rounds"

	TTLRound = 7 * 24 * time.Hour // 7 days

	// Keep only the most recent rounds per player
	MaxStoredRounds = 100
)
