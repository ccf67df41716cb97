package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevator-game/internal/client"
	"elevator-game/internal/config"
	"elevator-game/internal/fair"
	"elevator-game/internal/handlers"
	"elevator-game/internal/middleware"
	"elevator-game/internal/models"
	"elevator-game/internal/services"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		InitialBalance: decimal.NewFromInt(1000),
		MinBet:         decimal.RequireFromString("0.01"),
		MaxBet:         decimal.NewFromInt(1000),
		MinStep:        decimal.RequireFromString("0.01"),
		CurrencySymbol: "$",
		CurrencyPrefix: true,
	}
}

func testRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *services.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := services.NewMemoryStore(cfg.InitialBalance)
	jwtService := services.NewJWTService(cfg)
	gameService := services.NewGameService(store, cfg)

	sessionHandler := handlers.NewSessionHandler(jwtService)
	gameHandler := handlers.NewGameHandler(gameService)

	router := gin.New()
	router.POST("/session", sessionHandler.CreateSession)
	router.POST("/verify", gameHandler.Verify)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/authenticate", gameHandler.Authenticate)
		protected.POST("/play", gameHandler.Play)
		protected.POST("/rotate-server-seed", gameHandler.RotateServerSeed)
		protected.GET("/history", gameHandler.GetHistory)
	}

	return router, jwtService
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestCreateSessionIssuesToken(t *testing.T) {
	router, _ := testRouter(t, testConfig())

	var resp struct {
		Token    string `json:"token"`
		PlayerID string `json:"playerId"`
	}
	w := doJSON(t, router, http.MethodPost, "/session", "", nil, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.PlayerID, "guest_")
}

func TestCreateSessionKeepsSuppliedPlayerID(t *testing.T) {
	router, _ := testRouter(t, testConfig())

	var resp struct {
		Token    string `json:"token"`
		PlayerID string `json:"playerId"`
	}
	w := doJSON(t, router, http.MethodPost, "/session", "",
		gin.H{"playerId": "alice"}, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", resp.PlayerID)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := testRouter(t, testConfig())

	w := doJSON(t, router, http.MethodPost, "/api/authenticate", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/play", "garbage-token", gin.H{}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticatePlayRotateFlow(t *testing.T) {
	router, jwtService := testRouter(t, testConfig())
	token, err := jwtService.IssueToken("player-1")
	require.NoError(t, err)

	var auth models.AuthenticateResponse
	w := doJSON(t, router, http.MethodPost, "/api/authenticate", token, nil, &auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1000.0, auth.Balance)
	assert.Len(t, auth.ServerSeedHash, 64)
	assert.Equal(t, int64(1), auth.Nonce)
	assert.Equal(t, 0.01, auth.MinBet)
	assert.Equal(t, 1000.0, auth.MaxBet)

	var play models.PlayResponse
	w = doJSON(t, router, http.MethodPost, "/api/play", token, models.PlayRequest{
		BetAmount:        10,
		TargetMultiplier: 2.00,
		ClientSeed:       "my-seed",
		Nonce:            1,
	}, &play)
	require.Equal(t, http.StatusOK, w.Code)

	// revealed seed matches the commitment and replays to the settled outcome
	assert.Equal(t, auth.ServerSeedHash, fair.HashSeed(play.ServerSeed))
	replayed, _, err := fair.VerifyBet(play.ServerSeed, "my-seed", 1)
	require.NoError(t, err)
	assert.Equal(t, replayed, play.Multiplier)

	if play.IsWin {
		assert.Equal(t, 20.0, play.WinAmount)
		assert.Equal(t, 1010.0, play.NewBalance)
	} else {
		assert.Equal(t, 0.0, play.WinAmount)
		assert.Equal(t, 990.0, play.NewBalance)
	}

	var rotate models.RotateSeedResponse
	w = doJSON(t, router, http.MethodPost, "/api/rotate-server-seed", token, nil, &rotate)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, auth.ServerSeedHash, rotate.NewServerSeedHash)
	assert.Equal(t, int64(1), rotate.NewNonce)
}

func TestPlayRejectsWrongNonce(t *testing.T) {
	router, jwtService := testRouter(t, testConfig())
	token, err := jwtService.IssueToken("player-1")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/authenticate", token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/play", token, models.PlayRequest{
		BetAmount:        10,
		TargetMultiplier: 2.00,
		ClientSeed:       "my-seed",
		Nonce:            5,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nonce")
}

func TestPlayRejectsOversizedStake(t *testing.T) {
	router, jwtService := testRouter(t, testConfig())
	token, err := jwtService.IssueToken("player-1")
	require.NoError(t, err)

	doJSON(t, router, http.MethodPost, "/api/authenticate", token, nil, nil)

	w := doJSON(t, router, http.MethodPost, "/api/play", token, models.PlayRequest{
		BetAmount:        5000,
		TargetMultiplier: 2.00,
		ClientSeed:       "my-seed",
		Nonce:            1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryReturnsSettledRounds(t *testing.T) {
	router, jwtService := testRouter(t, testConfig())
	token, err := jwtService.IssueToken("player-1")
	require.NoError(t, err)

	doJSON(t, router, http.MethodPost, "/api/authenticate", token, nil, nil)
	for nonce := int64(1); nonce <= 3; nonce++ {
		w := doJSON(t, router, http.MethodPost, "/api/play", token, models.PlayRequest{
			BetAmount:        1,
			TargetMultiplier: 1.50,
			ClientSeed:       "my-seed",
			Nonce:            nonce,
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var resp struct {
		Rounds []*models.Round `json:"rounds"`
		Count  int             `json:"count"`
	}
	w := doJSON(t, router, http.MethodGet, "/api/history", token, nil, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, resp.Count)

	// newest first
	assert.Equal(t, int64(3), resp.Rounds[0].Nonce)
	assert.Equal(t, int64(1), resp.Rounds[2].Nonce)
}

func TestVerifyEndpointReplaysOutcome(t *testing.T) {
	router, _ := testRouter(t, testConfig())

	serverSeed := fair.HashSeed("known") // any 64-char hex string works as a seed
	expected, digest, err := fair.VerifyBet(serverSeed, "client", 3)
	require.NoError(t, err)

	var resp struct {
		Multiplier float64 `json:"multiplier"`
		Digest     string  `json:"digest"`
	}
	w := doJSON(t, router, http.MethodPost, "/verify", "", gin.H{
		"serverSeed": serverSeed,
		"clientSeed": "client",
		"nonce":      3,
	}, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, expected, resp.Multiplier)
	assert.Equal(t, digest, resp.Digest)
}

func TestVerifyRejectsMissingFields(t *testing.T) {
	router, _ := testRouter(t, testConfig())

	w := doJSON(t, router, http.MethodPost, "/verify", "", gin.H{
		"clientSeed": "client",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// The HTTP client and the handler stack speak the same wire contract; a
// session driven over a real listener behaves like one on the mock client.
func TestHTTPClientAgainstLiveHandlers(t *testing.T) {
	router, jwtService := testRouter(t, testConfig())
	token, err := jwtService.IssueToken("player-1")
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	defer srv.Close()

	gc := client.NewHTTPClient(srv.URL+"/api", token, 5*time.Second)

	auth, err := gc.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, auth.Balance)

	play, err := gc.Play(context.Background(), &models.PlayRequest{
		BetAmount:        10,
		TargetMultiplier: 2.00,
		ClientSeed:       "wire-seed",
		Nonce:            1,
	})
	require.NoError(t, err)
	assert.Equal(t, auth.ServerSeedHash, fair.HashSeed(play.ServerSeed))

	rotated, err := gc.RotateServerSeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rotated.NewNonce)

	// a stale nonce after rotation surfaces as a transport error with the
	// server's validation detail
	_, err = gc.Play(context.Background(), &models.PlayRequest{
		BetAmount:        10,
		TargetMultiplier: 2.00,
		ClientSeed:       "wire-seed",
		Nonce:            2,
	})
	var terr *models.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusBadRequest, terr.Status)
}
