package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type AutoBetAction string

const (
	AutoBetReset             AutoBetAction = "reset"
	AutoBetIncreaseByPercent AutoBetAction = "increase_by_percent"
)

// AutoBetRule decides the next stake after a win or a loss. Value is the
// percentage for AutoBetIncreaseByPercent and ignored for AutoBetReset.
type AutoBetRule struct {
	Action AutoBetAction `json:"action"`
	Value  float64       `json:"value"`
}

// Apply computes the next stake from the current one.
func (r AutoBetRule) Apply(current, base decimal.Decimal) decimal.Decimal {
	switch r.Action {
	case AutoBetIncreaseByPercent:
		factor := decimal.NewFromFloat(1 + r.Value/100)
		return current.Mul(factor)
	default:
		return base
	}
}

// AutoBetPolicy drives one auto-bet run. StopOnProfit and StopOnLoss are
// optional thresholds on the run's cumulative profit; nil disables them.
type AutoBetPolicy struct {
	TotalBets        int64            `json:"total_bets"`
	BaseStake        decimal.Decimal  `json:"base_stake"`
	TargetMultiplier float64          `json:"target_multiplier"`
	OnWin            AutoBetRule      `json:"on_win"`
	OnLoss           AutoBetRule      `json:"on_loss"`
	StopOnProfit     *decimal.Decimal `json:"stop_on_profit,omitempty"`
	StopOnLoss       *decimal.Decimal `json:"stop_on_loss,omitempty"`
}

func (p *AutoBetPolicy) Validate() error {
	if p.TotalBets <= 0 {
		return &ValidationError{Field: "total_bets", Reason: "must be positive"}
	}
	if !p.BaseStake.IsPositive() {
		return &ValidationError{Field: "base_stake", Reason: "must be positive"}
	}
	switch p.OnWin.Action {
	case AutoBetReset, AutoBetIncreaseByPercent:
	default:
		return &ValidationError{Field: "on_win", Reason: fmt.Sprintf("unknown action %q", p.OnWin.Action)}
	}
	switch p.OnLoss.Action {
	case AutoBetReset, AutoBetIncreaseByPercent:
	default:
		return &ValidationError{Field: "on_loss", Reason: fmt.Sprintf("unknown action %q", p.OnLoss.Action)}
	}
	if p.StopOnProfit != nil && !p.StopOnProfit.IsPositive() {
		return &ValidationError{Field: "stop_on_profit", Reason: "must be positive when set"}
	}
	if p.StopOnLoss != nil && !p.StopOnLoss.IsPositive() {
		return &ValidationError{Field: "stop_on_loss", Reason: "must be positive when set"}
	}
	return nil
}
