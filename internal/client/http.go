package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"elevator-game/internal/models"
)

const defaultRequestTimeout = 10 * time.Second

// HTTPClient talks to a live RGS over its JSON wire contract. Responses are
// shape-validated before being trusted; anything malformed or non-2xx
// surfaces as a TransportError.
type HTTPClient struct {
	baseURL   string
	authToken string
	http      *http.Client
}

func NewHTTPClient(baseURL, authToken string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPClient{
		baseURL:   baseURL,
		authToken: authToken,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Authenticate(ctx context.Context) (*models.AuthenticateResponse, error) {
	var wire authenticateWire
	if err := c.post(ctx, "authenticate", "/authenticate", nil, &wire); err != nil {
		return nil, err
	}
	return wire.validate()
}

func (c *HTTPClient) Play(ctx context.Context, req *models.PlayRequest) (*models.PlayResponse, error) {
	var wire playWire
	if err := c.post(ctx, "play", "/play", req, &wire); err != nil {
		return nil, err
	}
	return wire.validate()
}

func (c *HTTPClient) RotateServerSeed(ctx context.Context) (*models.RotateSeedResponse, error) {
	var wire rotateWire
	if err := c.post(ctx, "rotate-server-seed", "/rotate-server-seed", nil, &wire); err != nil {
		return nil, err
	}
	return wire.validate()
}

func (c *HTTPClient) post(ctx context.Context, op, path string, body, out interface{}) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return &models.TransportError{Op: op, Err: fmt.Errorf("encode request: %v", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &payload)
	if err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)

		message := errBody.Error
		if errBody.Details != "" {
			message = fmt.Sprintf("%s: %s", errBody.Error, errBody.Details)
		}
		if message == "" {
			message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return &models.TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%s", message)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %v", err)}
	}
	return nil
}

// Wire shapes decode with pointer fields so missing keys are detectable;
// the validate methods reject incomplete responses before anything trusts
// them.

type authenticateWire struct {
	Balance        *float64               `json:"balance"`
	ServerSeedHash *string                `json:"serverSeedHash"`
	Nonce          *int64                 `json:"nonce"`
	CurrencyConfig *models.CurrencyConfig `json:"currencyConfig"`
	MinBet         *float64               `json:"minBet"`
	MaxBet         *float64               `json:"maxBet"`
	MinStep        *float64               `json:"minStep"`
}

func (w *authenticateWire) validate() (*models.AuthenticateResponse, error) {
	if w.Balance == nil || w.ServerSeedHash == nil || *w.ServerSeedHash == "" ||
		w.Nonce == nil || w.CurrencyConfig == nil ||
		w.MinBet == nil || w.MaxBet == nil || w.MinStep == nil {
		return nil, &models.TransportError{
			Op:  "authenticate",
			Err: fmt.Errorf("invalid authenticate response shape"),
		}
	}
	return &models.AuthenticateResponse{
		Balance:        *w.Balance,
		ServerSeedHash: *w.ServerSeedHash,
		Nonce:          *w.Nonce,
		CurrencyConfig: *w.CurrencyConfig,
		MinBet:         *w.MinBet,
		MaxBet:         *w.MaxBet,
		MinStep:        *w.MinStep,
	}, nil
}

type playWire struct {
	Multiplier *float64 `json:"multiplier"`
	IsWin      *bool    `json:"isWin"`
	NewBalance *float64 `json:"newBalance"`
	WinAmount  *float64 `json:"winAmount"`
	ServerSeed *string  `json:"serverSeed"`
}

func (w *playWire) validate() (*models.PlayResponse, error) {
	if w.Multiplier == nil || w.IsWin == nil || w.NewBalance == nil ||
		w.WinAmount == nil || w.ServerSeed == nil || *w.ServerSeed == "" {
		return nil, &models.TransportError{
			Op:  "play",
			Err: fmt.Errorf("invalid play response shape"),
		}
	}
	return &models.PlayResponse{
		Multiplier: *w.Multiplier,
		IsWin:      *w.IsWin,
		NewBalance: *w.NewBalance,
		WinAmount:  *w.WinAmount,
		ServerSeed: *w.ServerSeed,
	}, nil
}

type rotateWire struct {
	NewServerSeedHash *string `json:"newServerSeedHash"`
	NewNonce          *int64  `json:"newNonce"`
}

func (w *rotateWire) validate() (*models.RotateSeedResponse, error) {
	if w.NewServerSeedHash == nil || *w.NewServerSeedHash == "" || w.NewNonce == nil {
		return nil, &models.TransportError{
			Op:  "rotate-server-seed",
			Err: fmt.Errorf("invalid rotate-server-seed response shape"),
		}
	}
	return &models.RotateSeedResponse{
		NewServerSeedHash: *w.NewServerSeedHash,
		NewNonce:          *w.NewNonce,
	}, nil
}

var _ GameClient = (*HTTPClient)(nil)
