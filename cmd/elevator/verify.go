package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"elevator-game/internal/fair"
)

var verifyExpectHash string

var verifyCmd = &cobra.Command{
	Use:   "verify <serverSeed> <clientSeed> <nonce>",
	Short: "Replay a bet outcome from a revealed seed pair",
	Long: `Recompute the outcome multiplier from a revealed server seed, your
client seed and the bet's nonce. Optionally check that the seed matches the
hash the server committed to before the bet.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverSeed, clientSeed := args[0], args[1]
		nonce, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid nonce: %v", err)
		}

		if verifyExpectHash != "" {
			if fair.HashSeed(serverSeed) != verifyExpectHash {
				return fmt.Errorf("commitment MISMATCH: sha256(serverSeed) = %s, expected %s",
					fair.HashSeed(serverSeed), verifyExpectHash)
			}
			fmt.Println("commitment ok: seed hashes to the published value")
		}

		multiplier, digest, err := fair.VerifyBet(serverSeed, clientSeed, nonce)
		if err != nil {
			return err
		}

		fmt.Printf("multiplier %.2fx\n", multiplier)
		fmt.Printf("digest     %s\n", digest)
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyExpectHash, "expect-hash", "",
		"the serverSeedHash the server published before the bet")
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate the server seed on a remote server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagServer == "" {
			return fmt.Errorf("rotate needs --server; the local server's seed lives only for one process")
		}

		gc, err := newGameClient()
		if err != nil {
			return err
		}

		rotated, err := gc.RotateServerSeed(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("newServerSeedHash %s\n", rotated.NewServerSeedHash)
		fmt.Printf("newNonce          %d\n", rotated.NewNonce)
		return nil
	},
}
