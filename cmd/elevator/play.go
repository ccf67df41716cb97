package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"elevator-game/internal/fair"
	"elevator-game/internal/session"
)

var (
	playStake   string
	playTarget  float64
	playInstant bool
	playSeed    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Place a single bet",
	RunE: func(cmd *cobra.Command, args []string) error {
		stake, err := decimal.NewFromString(playStake)
		if err != nil {
			return fmt.Errorf("invalid --stake: %v", err)
		}

		gc, err := newGameClient()
		if err != nil {
			return err
		}

		s := session.New(gc)
		if err := s.Authenticate(cmd.Context()); err != nil {
			return err
		}
		if playSeed != "" {
			if err := s.SetClientSeed(playSeed); err != nil {
				return err
			}
		}

		currency := s.Currency()
		fmt.Printf("balance    %s\n", formatAmount(currency, s.Balance().StringFixed(2)))
		fmt.Printf("commitment %s\n", s.ServerSeedHash())
		fmt.Printf("clientSeed %s\n", s.ClientSeed())

		nonce := s.Nonce()
		result, err := s.PlaceBet(cmd.Context(), stake, playTarget, playInstant)
		if err != nil {
			return err
		}

		outcome := "LOSS"
		if result.IsWin {
			outcome = "WIN "
		}
		fmt.Printf("\n%s  outcome %.2fx  target %.2fx  payout %s\n",
			outcome, result.OutcomeMultiplier, playTarget,
			formatAmount(currency, result.WinAmount.StringFixed(2)))
		fmt.Printf("balance    %s\n", formatAmount(currency, result.NewBalance.StringFixed(2)))
		fmt.Printf("serverSeed %s\n", result.RevealedSecret)

		// replay the outcome locally so the player never has to trust the wire
		replayed, _, err := fair.VerifyBet(result.RevealedSecret, s.ClientSeed(), nonce)
		if err != nil {
			return err
		}
		if replayed != result.OutcomeMultiplier {
			return fmt.Errorf("verification FAILED: server reported %.2fx, replay gives %.2fx",
				result.OutcomeMultiplier, replayed)
		}
		fmt.Println("verified   outcome replays from the revealed seed")
		return nil
	},
}

func init() {
	playCmd.Flags().StringVar(&playStake, "stake", "1", "bet amount")
	playCmd.Flags().Float64Var(&playTarget, "target", 2.00, "target multiplier")
	playCmd.Flags().BoolVar(&playInstant, "instant", false, "skip the bet pacing delay")
	playCmd.Flags().StringVar(&playSeed, "client-seed", "", "use a specific client seed")
}
