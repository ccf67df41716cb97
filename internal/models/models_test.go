package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevator-game/internal/models"
)

func TestCalculatePayout(t *testing.T) {
	// stake 10 at target 2.00 pays 20.00 even if the outcome came in higher
	payout := models.CalculatePayout(decimal.NewFromInt(10), 2.00)
	assert.True(t, payout.Equal(decimal.NewFromInt(20)), "got %s", payout)

	// payouts are floored to cents
	payout = models.CalculatePayout(decimal.RequireFromString("0.10"), 1.115)
	assert.Equal(t, "0.11", payout.StringFixed(2))
}

func TestGenerateClientSeed(t *testing.T) {
	seed, err := models.GenerateClientSeed()
	require.NoError(t, err)
	assert.Len(t, seed, 32)

	other, err := models.GenerateClientSeed()
	require.NoError(t, err)
	assert.NotEqual(t, seed, other)
}

func TestAutoBetRuleApply(t *testing.T) {
	base := decimal.NewFromInt(5)
	current := decimal.NewFromInt(8)

	reset := models.AutoBetRule{Action: models.AutoBetReset}
	assert.True(t, reset.Apply(current, base).Equal(base))

	increase := models.AutoBetRule{Action: models.AutoBetIncreaseByPercent, Value: 50}
	assert.True(t, increase.Apply(current, base).Equal(decimal.NewFromInt(12)))
}

func TestAutoBetPolicyValidate(t *testing.T) {
	valid := models.AutoBetPolicy{
		TotalBets:        3,
		BaseStake:        decimal.NewFromInt(2),
		TargetMultiplier: 2.0,
		OnWin:            models.AutoBetRule{Action: models.AutoBetReset},
		OnLoss:           models.AutoBetRule{Action: models.AutoBetReset},
	}
	require.NoError(t, valid.Validate())

	var verr *models.ValidationError

	invalid := valid
	invalid.TotalBets = 0
	require.ErrorAs(t, invalid.Validate(), &verr)

	invalid = valid
	invalid.BaseStake = decimal.Zero
	require.ErrorAs(t, invalid.Validate(), &verr)

	invalid = valid
	invalid.OnLoss.Action = "martingale"
	require.ErrorAs(t, invalid.Validate(), &verr)

	invalid = valid
	negative := decimal.NewFromInt(-1)
	invalid.StopOnLoss = &negative
	require.ErrorAs(t, invalid.Validate(), &verr)
}
