package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"elevator-game/internal/client"
	"elevator-game/internal/config"
	"elevator-game/internal/logger"
	"elevator-game/internal/models"
)

var (
	flagServer  string
	flagToken   string
	flagTimeout time.Duration
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "elevator",
	Short: "Provably-fair elevator game client",
	Long: `Play the elevator multiplier game against a remote game server or a
built-in local one. Every outcome is derived from a committed server seed and
can be re-verified offline with the verify command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()

		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger.Init(&logger.Options{Level: level})
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "",
		"game server base URL (default: built-in local server)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "",
		"bearer token for a remote server")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second,
		"request timeout for remote calls")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"debug logging")

	rootCmd.AddCommand(playCmd, autoCmd, rotateCmd, verifyCmd, simCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newGameClient picks the transport: a live server when --server is set,
// otherwise the in-process one.
func newGameClient() (client.GameClient, error) {
	if flagServer != "" {
		if flagToken == "" {
			return nil, fmt.Errorf("--token is required with --server")
		}
		return client.NewHTTPClient(flagServer, flagToken, flagTimeout), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return client.NewMockClient(cfg), nil
}

func formatAmount(currency models.CurrencyConfig, amount string) string {
	if currency.Symbol == "" {
		return amount
	}
	if currency.Prefix {
		return currency.Symbol + amount
	}
	return amount + currency.Symbol
}
