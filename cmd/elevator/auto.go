package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"elevator-game/internal/autobet"
	"elevator-game/internal/models"
	"elevator-game/internal/session"
)

var (
	autoBets        int64
	autoStake       string
	autoTarget      float64
	autoOnWin       string
	autoOnWinPct    float64
	autoOnLoss      string
	autoOnLossPct   float64
	autoStopProfit  string
	autoStopLoss    string
	autoInstant     bool
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Run an auto-bet sequence",
	Long: `Place a fixed number of bets with a stake progression. A win or a loss
can either reset the stake to its base or increase it by a percentage. Ctrl-C
stops after the in-flight bet resolves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := buildPolicy()
		if err != nil {
			return err
		}

		gc, err := newGameClient()
		if err != nil {
			return err
		}

		s := session.New(gc)
		if err := s.Authenticate(cmd.Context()); err != nil {
			return err
		}
		currency := s.Currency()
		fmt.Printf("balance    %s\n", formatAmount(currency, s.Balance().StringFixed(2)))
		fmt.Printf("commitment %s\n\n", s.ServerSeedHash())

		ctrl := autobet.New(s)
		ctrl.OnBet = func(n int64, stake decimal.Decimal, result *models.BetResult) {
			outcome := "loss"
			if result.IsWin {
				outcome = "win "
			}
			fmt.Printf("#%-4d stake %8s  %.2fx  %s  balance %s\n",
				n, formatAmount(currency, stake.StringFixed(2)),
				result.OutcomeMultiplier, outcome,
				formatAmount(currency, result.NewBalance.StringFixed(2)))
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		defer signal.Stop(interrupt)
		go func() {
			<-interrupt
			fmt.Println("\nstopping after the current bet...")
			ctrl.Stop()
		}()

		if err := ctrl.Start(cmd.Context(), *policy, autoInstant); err != nil {
			return err
		}
		report := ctrl.Wait()

		fmt.Printf("\nfinished: %s\n", report.Reason)
		fmt.Printf("bets %d  wins %d  losses %d\n", report.BetsPlaced, report.Wins, report.Losses)
		fmt.Printf("profit %s  balance %s\n",
			formatAmount(currency, report.Profit.StringFixed(2)),
			formatAmount(currency, s.Balance().StringFixed(2)))
		if report.Err != nil {
			return report.Err
		}
		return nil
	},
}

func buildPolicy() (*models.AutoBetPolicy, error) {
	stake, err := decimal.NewFromString(autoStake)
	if err != nil {
		return nil, fmt.Errorf("invalid --stake: %v", err)
	}

	onWin, err := parseRule(autoOnWin, autoOnWinPct, "--on-win")
	if err != nil {
		return nil, err
	}
	onLoss, err := parseRule(autoOnLoss, autoOnLossPct, "--on-loss")
	if err != nil {
		return nil, err
	}

	policy := &models.AutoBetPolicy{
		TotalBets:        autoBets,
		BaseStake:        stake,
		TargetMultiplier: autoTarget,
		OnWin:            onWin,
		OnLoss:           onLoss,
	}

	if autoStopProfit != "" {
		v, err := decimal.NewFromString(autoStopProfit)
		if err != nil {
			return nil, fmt.Errorf("invalid --stop-profit: %v", err)
		}
		policy.StopOnProfit = &v
	}
	if autoStopLoss != "" {
		v, err := decimal.NewFromString(autoStopLoss)
		if err != nil {
			return nil, fmt.Errorf("invalid --stop-loss: %v", err)
		}
		policy.StopOnLoss = &v
	}

	return policy, policy.Validate()
}

func parseRule(action string, pct float64, flag string) (models.AutoBetRule, error) {
	switch models.AutoBetAction(action) {
	case models.AutoBetReset:
		return models.AutoBetRule{Action: models.AutoBetReset}, nil
	case models.AutoBetIncreaseByPercent:
		return models.AutoBetRule{Action: models.AutoBetIncreaseByPercent, Value: pct}, nil
	default:
		return models.AutoBetRule{}, fmt.Errorf("%s must be %q or %q", flag,
			models.AutoBetReset, models.AutoBetIncreaseByPercent)
	}
}

func init() {
	autoCmd.Flags().Int64Var(&autoBets, "bets", 10, "number of bets to place")
	autoCmd.Flags().StringVar(&autoStake, "stake", "1", "base stake")
	autoCmd.Flags().Float64Var(&autoTarget, "target", 2.00, "target multiplier")
	autoCmd.Flags().StringVar(&autoOnWin, "on-win", "reset", "stake rule after a win")
	autoCmd.Flags().Float64Var(&autoOnWinPct, "on-win-pct", 0, "percent increase after a win")
	autoCmd.Flags().StringVar(&autoOnLoss, "on-loss", "reset", "stake rule after a loss")
	autoCmd.Flags().Float64Var(&autoOnLossPct, "on-loss-pct", 0, "percent increase after a loss")
	autoCmd.Flags().StringVar(&autoStopProfit, "stop-profit", "", "stop when run profit reaches this")
	autoCmd.Flags().StringVar(&autoStopLoss, "stop-loss", "", "stop when run loss reaches this")
	autoCmd.Flags().BoolVar(&autoInstant, "instant", false, "skip the bet pacing delay")
}
