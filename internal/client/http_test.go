package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevator-game/internal/client"
	"elevator-game/internal/models"
)

func TestHTTPClientAuthenticate(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/authenticate", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"balance":        1000.0,
			"serverSeedHash": "abcd1234",
			"nonce":          1,
			"currencyConfig": map[string]interface{}{"symbol": "$", "prefix": true},
			"minBet":         0.01,
			"maxBet":         1000.0,
			"minStep":        0.01,
		})
	}))
	defer server.Close()

	c := client.NewHTTPClient(server.URL, "token-123", 5*time.Second)
	auth, err := c.Authenticate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, 1000.0, auth.Balance)
	assert.Equal(t, "abcd1234", auth.ServerSeedHash)
	assert.Equal(t, int64(1), auth.Nonce)
}

func TestHTTPClientPlay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.PlayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 10.0, req.BetAmount)
		assert.Equal(t, int64(3), req.Nonce)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"multiplier": 2.5,
			"isWin":      true,
			"newBalance": 1010.0,
			"winAmount":  20.0,
			"serverSeed": "revealed-seed",
		})
	}))
	defer server.Close()

	c := client.NewHTTPClient(server.URL, "t", 5*time.Second)
	resp, err := c.Play(context.Background(), &models.PlayRequest{
		BetAmount: 10, TargetMultiplier: 2, ClientSeed: "abc", Nonce: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, resp.Multiplier)
	assert.True(t, resp.IsWin)
	assert.Equal(t, "revealed-seed", resp.ServerSeed)
}

func TestHTTPClientMalformedResponse(t *testing.T) {
	cases := []string{
		`{"multiplier": 2.5}`,                  // missing fields
		`{"multiplier": 2.5, "isWin": true, "newBalance": 1, "winAmount": 2, "serverSeed": ""}`, // empty seed
		`not json at all`,
	}

	for i, body := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		c := client.NewHTTPClient(server.URL, "t", 5*time.Second)
		_, err := c.Play(context.Background(), &models.PlayRequest{
			BetAmount: 1, TargetMultiplier: 2, ClientSeed: "abc", Nonce: 1,
		})

		var terr *models.TransportError
		require.ErrorAs(t, err, &terr, "case %d", i)
		server.Close()
	}
}

func TestHTTPClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "upstream down"})
	}))
	defer server.Close()

	c := client.NewHTTPClient(server.URL, "t", 5*time.Second)
	_, err := c.Authenticate(context.Background())

	var terr *models.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusBadGateway, terr.Status)
	assert.Contains(t, terr.Error(), "upstream down")
}

func TestHTTPClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := client.NewHTTPClient(server.URL, "t", time.Second)
	_, err := c.RotateServerSeed(context.Background())

	var terr *models.TransportError
	require.ErrorAs(t, err, &terr)
}
