package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetLimits are the table limits handed out by the server on authenticate.
type BetLimits struct {
	MinBet  decimal.Decimal `json:"min_bet"`
	MaxBet  decimal.Decimal `json:"max_bet"`
	MinStep decimal.Decimal `json:"min_step"`
}

type CurrencyConfig struct {
	Symbol string `json:"symbol"`
	Prefix bool   `json:"prefix"`
}

// BetResult is a resolved wager. WinAmount pays the requested target
// multiplier, never the (possibly higher) realized outcome.
type BetResult struct {
	OutcomeMultiplier float64         `json:"outcome_multiplier"`
	IsWin             bool            `json:"is_win"`
	WinAmount         decimal.Decimal `json:"win_amount"`
	NewBalance        decimal.Decimal `json:"new_balance"`
	RevealedSecret    string          `json:"revealed_secret"`
}

// HistoryEntry is the immutable record of a resolved bet. It carries the full
// fairness triple so the outcome can be re-verified offline at any time.
type HistoryEntry struct {
	Multiplier float64         `json:"multiplier"`
	IsWin      bool            `json:"is_win"`
	Stake      decimal.Decimal `json:"stake"`
	Target     float64         `json:"target"`
	WinAmount  decimal.Decimal `json:"win_amount"`
	ServerSeed string          `json:"server_seed"`
	ClientSeed string          `json:"client_seed"`
	Nonce      int64           `json:"nonce"`
	PlacedAt   time.Time       `json:"placed_at"`
}

// Round is the server-side record of a resolved play.
type Round struct {
	ID         string          `json:"id" redis:"id"`
	PlayerID   string          `json:"player_id" redis:"player_id"`
	Stake      decimal.Decimal `json:"stake" redis:"stake"`
	Target     float64         `json:"target" redis:"target"`
	Multiplier float64         `json:"multiplier" redis:"multiplier"`
	IsWin      bool            `json:"is_win" redis:"is_win"`
	WinAmount  decimal.Decimal `json:"win_amount" redis:"win_amount"`
	ClientSeed string          `json:"client_seed" redis:"client_seed"`
	ServerSeed string          `json:"server_seed" redis:"server_seed"`
	Nonce      int64           `json:"nonce" redis:"nonce"`
	CreatedAt  time.Time       `json:"created_at" redis:"created_at"`
}
