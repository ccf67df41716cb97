package models

// Wire DTOs for the RGS protocol. Field names follow the RGS contract
// (camelCase), unlike the rest of the app's snake_case JSON.

type AuthenticateResponse struct {
	Balance        float64        `json:"balance"`
	ServerSeedHash string         `json:"serverSeedHash"`
	Nonce          int64          `json:"nonce"`
	CurrencyConfig CurrencyConfig `json:"currencyConfig"`
	MinBet         float64        `json:"minBet"`
	MaxBet         float64        `json:"maxBet"`
	MinStep        float64        `json:"minStep"`
}

type PlayRequest struct {
	BetAmount        float64 `json:"betAmount" binding:"required,gt=0"`
	TargetMultiplier float64 `json:"targetMultiplier" binding:"required,gte=1.01"`
	ClientSeed       string  `json:"clientSeed" binding:"required"`
	Nonce            int64   `json:"nonce" binding:"required,gte=1"`
	IsInstantBet     bool    `json:"isInstantBet,omitempty"`
}

type PlayResponse struct {
	Multiplier float64 `json:"multiplier"`
	IsWin      bool    `json:"isWin"`
	NewBalance float64 `json:"newBalance"`
	WinAmount  float64 `json:"winAmount"`
	ServerSeed string  `json:"serverSeed"`
}

type RotateSeedResponse struct {
	NewServerSeedHash string `json:"newServerSeedHash"`
	NewNonce          int64  `json:"newNonce"`
}
