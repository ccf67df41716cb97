package models

import "github.com/shopspring/decimal"

// Commitment is one fairness epoch: the server seed kept secret, the hash
// published before any bet, and the nonce counter for bets made against it.
// SecretHash must always be the SHA-256 of Secret.
type Commitment struct {
	Secret     string `json:"-"`
	SecretHash string `json:"secret_hash"`
	Nonce      int64  `json:"nonce"`
}

// Wallet is the server-side state for one player: balance plus the active
// commitment and the player's client seed.
type Wallet struct {
	PlayerID string          `json:"player_id" redis:"player_id"`
	Balance  decimal.Decimal `json:"balance" redis:"balance"`

	ClientSeed     string `json:"client_seed" redis:"client_seed"`
	ServerSeed     string `json:"server_seed" redis:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash" redis:"server_seed_hash"`
	Nonce          int64  `json:"nonce" redis:"nonce"`

	TotalWagered decimal.Decimal `json:"total_wagered" redis:"total_wagered"`
	TotalWon     decimal.Decimal `json:"total_won" redis:"total_won"`
}
