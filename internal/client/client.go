package client

import (
	"context"

	"elevator-game/internal/models"
)

// GameClient is the boundary between the wager session and the game server.
// The mock implementation runs the full protocol locally; the HTTP one
// forwards to a live RGS. Selected at construction time, never branched on.
type GameClient interface {
	Authenticate(ctx context.Context) (*models.AuthenticateResponse, error)
	Play(ctx context.Context, req *models.PlayRequest) (*models.PlayResponse, error)
	RotateServerSeed(ctx context.Context) (*models.RotateSeedResponse, error)
}
