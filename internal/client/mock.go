package client

import (
	"context"

	"elevator-game/internal/config"
	"elevator-game/internal/models"
	"elevator-game/internal/services"
)

const mockPlayerID = "local-player"

// MockClient runs the entire RGS protocol in process: the same game service
// the HTTP server uses, backed by an in-memory wallet. It exists to prove the
// commitment scheme round-trips without a live backend.
type MockClient struct {
	svc *services.GameService
}

func NewMockClient(cfg *config.Config) *MockClient {
	store := services.NewMemoryStore(cfg.InitialBalance)
	return &MockClient{svc: services.NewGameService(store, cfg)}
}

func (c *MockClient) Authenticate(_ context.Context) (*models.AuthenticateResponse, error) {
	return c.svc.Authenticate(mockPlayerID)
}

func (c *MockClient) Play(_ context.Context, req *models.PlayRequest) (*models.PlayResponse, error) {
	return c.svc.Play(mockPlayerID, req)
}

func (c *MockClient) RotateServerSeed(_ context.Context) (*models.RotateSeedResponse, error) {
	return c.svc.RotateServerSeed(mockPlayerID)
}

var _ GameClient = (*MockClient)(nil)
