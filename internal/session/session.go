package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"elevator-game/internal/client"
	"elevator-game/internal/fair"
	"elevator-game/internal/models"
)

// ErrBetInFlight rejects a remote operation while another one is
// outstanding. The nonce protocol requires strictly sequential bets, and a
// bet issued during a rotation would carry the pre-rotation nonce.
var ErrBetInFlight = errors.New("a bet is already in flight")

// ErrNotAuthenticated rejects operations before Authenticate has run.
var ErrNotAuthenticated = errors.New("session not authenticated")

// Stats tracks the running session, reset on every Authenticate.
type Stats struct {
	Profit       decimal.Decimal
	TotalWagered decimal.Decimal
	StartedAt    time.Time
}

// WagerSession owns the client-side game state: balance, the active
// commitment's published hash, the nonce mirror, the client seed and the bet
// history. Bets are atomic: the stake is reserved up front and refunded in
// full if the play call fails for any reason.
type WagerSession struct {
	gc client.GameClient

	mu            sync.Mutex
	authenticated bool
	betInFlight   bool

	balance        decimal.Decimal
	clientSeed     string
	serverSeedHash string
	nonce          int64
	limits         models.BetLimits
	currency       models.CurrencyConfig
	history        []models.HistoryEntry
	stats          Stats
}

func New(gc client.GameClient) *WagerSession {
	return &WagerSession{gc: gc}
}

// Authenticate establishes a fresh commitment with the server and resets all
// session state: balance, limits, history, stats, and a brand-new client seed.
func (s *WagerSession) Authenticate(ctx context.Context) error {
	s.mu.Lock()
	if s.betInFlight {
		s.mu.Unlock()
		return ErrBetInFlight
	}
	s.betInFlight = true
	s.mu.Unlock()

	auth, err := s.gc.Authenticate(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.betInFlight = false

	if err != nil {
		return err
	}

	clientSeed, err := models.GenerateClientSeed()
	if err != nil {
		return err
	}

	s.authenticated = true
	s.balance = decimal.NewFromFloat(auth.Balance)
	s.serverSeedHash = auth.ServerSeedHash
	s.nonce = auth.Nonce
	s.clientSeed = clientSeed
	s.limits = models.BetLimits{
		MinBet:  decimal.NewFromFloat(auth.MinBet),
		MaxBet:  decimal.NewFromFloat(auth.MaxBet),
		MinStep: decimal.NewFromFloat(auth.MinStep),
	}
	s.currency = auth.CurrencyConfig
	s.history = nil
	s.stats = Stats{
		Profit:       decimal.Zero,
		TotalWagered: decimal.Zero,
		StartedAt:    time.Now(),
	}
	return nil
}

// PlaceBet runs one wager to settlement. At most one bet may be in flight;
// a concurrent call fails with ErrBetInFlight. Validation failures change
// nothing. Transport failures refund the reserved stake and leave balance,
// nonce and history exactly as they were.
func (s *WagerSession) PlaceBet(ctx context.Context, stake decimal.Decimal, target float64, instant bool) (*models.BetResult, error) {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	if s.betInFlight {
		s.mu.Unlock()
		return nil, ErrBetInFlight
	}
	if err := s.validateBet(stake, target); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	// Optimistically reserve the stake. Refunded on any failure below.
	s.balance = s.balance.Sub(stake)
	s.stats.TotalWagered = s.stats.TotalWagered.Add(stake)
	s.betInFlight = true

	req := &models.PlayRequest{
		BetAmount:        stake.InexactFloat64(),
		TargetMultiplier: target,
		ClientSeed:       s.clientSeed,
		Nonce:            s.nonce,
		IsInstantBet:     instant,
	}
	s.mu.Unlock()

	resp, err := s.gc.Play(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.betInFlight = false

	if err != nil {
		s.balance = s.balance.Add(stake)
		s.stats.TotalWagered = s.stats.TotalWagered.Sub(stake)
		return nil, err
	}

	winAmount := decimal.NewFromFloat(resp.WinAmount)
	entry := models.HistoryEntry{
		Multiplier: resp.Multiplier,
		IsWin:      resp.IsWin,
		Stake:      stake,
		Target:     target,
		WinAmount:  winAmount,
		ServerSeed: resp.ServerSeed,
		ClientSeed: req.ClientSeed,
		Nonce:      req.Nonce,
		PlacedAt:   time.Now(),
	}
	s.history = append([]models.HistoryEntry{entry}, s.history...)

	s.balance = decimal.NewFromFloat(resp.NewBalance)
	s.nonce++
	s.stats.Profit = s.stats.Profit.Add(winAmount).Sub(stake)

	return &models.BetResult{
		OutcomeMultiplier: resp.Multiplier,
		IsWin:             resp.IsWin,
		WinAmount:         winAmount,
		NewBalance:        s.balance,
		RevealedSecret:    resp.ServerSeed,
	}, nil
}

func (s *WagerSession) validateBet(stake decimal.Decimal, target float64) error {
	if stake.LessThan(s.limits.MinBet) {
		return &models.ValidationError{
			Field:  "stake",
			Reason: fmt.Sprintf("below minimum bet of %s", s.limits.MinBet),
		}
	}
	if stake.GreaterThan(s.limits.MaxBet) {
		return &models.ValidationError{
			Field:  "stake",
			Reason: fmt.Sprintf("above maximum bet of %s", s.limits.MaxBet),
		}
	}
	if stake.GreaterThan(s.balance) {
		return &models.ValidationError{
			Field:  "stake",
			Reason: fmt.Sprintf("insufficient balance: have %s, need %s", s.balance, stake),
		}
	}
	if target < fair.MinTarget || target > fair.MaxMultiplier {
		return &models.ValidationError{
			Field:  "target",
			Reason: fmt.Sprintf("must be between %.2f and %.0f", fair.MinTarget, fair.MaxMultiplier),
		}
	}
	return nil
}

// RotateCommitment retires the current fairness epoch. Disallowed while a bet
// is pending.
func (s *WagerSession) RotateCommitment(ctx context.Context) error {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if s.betInFlight {
		s.mu.Unlock()
		return ErrBetInFlight
	}
	s.betInFlight = true
	s.mu.Unlock()

	rotated, err := s.gc.RotateServerSeed(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.betInFlight = false

	if err != nil {
		return err
	}
	s.serverSeedHash = rotated.NewServerSeedHash
	s.nonce = rotated.NewNonce
	return nil
}

// RegenerateClientSeed swaps in a fresh client seed. An explicit player
// action, independent of commitment rotation.
func (s *WagerSession) RegenerateClientSeed() (string, error) {
	seed, err := models.GenerateClientSeed()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientSeed = seed
	return seed, nil
}

// SetClientSeed installs a player-chosen seed.
func (s *WagerSession) SetClientSeed(seed string) error {
	if seed == "" {
		return &models.ValidationError{Field: "client_seed", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientSeed = seed
	return nil
}

func (s *WagerSession) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

func (s *WagerSession) Nonce() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nonce
}

func (s *WagerSession) ClientSeed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientSeed
}

func (s *WagerSession) ServerSeedHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverSeedHash
}

func (s *WagerSession) Limits() models.BetLimits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits
}

func (s *WagerSession) Currency() models.CurrencyConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// History returns the resolved bets, newest first.
func (s *WagerSession) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]models.HistoryEntry, len(s.history))
	copy(history, s.history)
	return history
}

func (s *WagerSession) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
