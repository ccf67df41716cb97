package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"elevator-game/internal/config"
	"elevator-game/internal/fair"
	"elevator-game/internal/models"
)

// GameService is the authoritative game server core: it owns wallet custody,
// the per-player commitment, and outcome settlement. The mock HTTP server and
// the in-process mock client both sit on top of it.
type GameService struct {
	store       WalletStore
	limits      models.BetLimits
	currency    models.CurrencyConfig
	broadcaster Broadcaster

	// Serializes plays so the nonce check and balance update are atomic.
	mu sync.Mutex
}

func NewGameService(store WalletStore, cfg *config.Config) *GameService {
	return &GameService{
		store: store,
		limits: models.BetLimits{
			MinBet:  cfg.MinBet,
			MaxBet:  cfg.MaxBet,
			MinStep: cfg.MinStep,
		},
		currency: models.CurrencyConfig{
			Symbol: cfg.CurrencySymbol,
			Prefix: cfg.CurrencyPrefix,
		},
	}
}

// SetBroadcaster attaches a live round feed. Optional.
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *GameService) Limits() models.BetLimits { return s.limits }

// Authenticate establishes a fresh commitment for the player: a new server
// seed is generated, its hash published, and the nonce reset to 1.
func (s *GameService) Authenticate(playerID string) (*models.AuthenticateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.store.GetWallet(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	commitment, err := fair.NewCommitment()
	if err != nil {
		return nil, err
	}

	wallet.ServerSeed = commitment.Secret
	wallet.ServerSeedHash = commitment.SecretHash
	wallet.Nonce = commitment.Nonce

	if err := s.store.SaveWallet(wallet); err != nil {
		return nil, fmt.Errorf("failed to save wallet: %v", err)
	}

	return &models.AuthenticateResponse{
		Balance:        wallet.Balance.InexactFloat64(),
		ServerSeedHash: wallet.ServerSeedHash,
		Nonce:          wallet.Nonce,
		CurrencyConfig: s.currency,
		MinBet:         s.limits.MinBet.InexactFloat64(),
		MaxBet:         s.limits.MaxBet.InexactFloat64(),
		MinStep:        s.limits.MinStep.InexactFloat64(),
	}, nil
}

// Play settles one wager. The whole operation is atomic: either the balance
// is debited+credited, the nonce advanced and the round recorded, or nothing
// changes and a validation error is returned.
func (s *GameService) Play(playerID string, req *models.PlayRequest) (*models.PlayResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.store.GetWallet(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}
	if wallet.ServerSeed == "" {
		return nil, &models.ValidationError{Field: "session", Reason: "not authenticated"}
	}

	stake := decimal.NewFromFloat(req.BetAmount)
	if err := s.validatePlay(wallet, stake, req); err != nil {
		return nil, err
	}

	multiplier := fair.DeriveOutcome(wallet.ServerSeed, req.ClientSeed, req.Nonce)
	isWin := multiplier >= req.TargetMultiplier

	winAmount := decimal.Zero
	newBalance := wallet.Balance.Sub(stake)
	if isWin {
		winAmount = models.CalculatePayout(stake, req.TargetMultiplier)
		newBalance = newBalance.Add(winAmount)
	}

	revealedSeed := wallet.ServerSeed

	wallet.Balance = newBalance
	wallet.Nonce++
	wallet.TotalWagered = wallet.TotalWagered.Add(stake)
	wallet.TotalWon = wallet.TotalWon.Add(winAmount)

	if err := s.store.SaveWallet(wallet); err != nil {
		return nil, fmt.Errorf("failed to save wallet: %v", err)
	}

	round := &models.Round{
		ID:         models.GenerateRoundID(),
		PlayerID:   playerID,
		Stake:      stake,
		Target:     req.TargetMultiplier,
		Multiplier: multiplier,
		IsWin:      isWin,
		WinAmount:  winAmount,
		ClientSeed: req.ClientSeed,
		ServerSeed: revealedSeed,
		Nonce:      req.Nonce,
		CreatedAt:  time.Now(),
	}
	if err := s.store.SaveRound(round); err != nil {
		return nil, fmt.Errorf("failed to save round: %v", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastRound(round)
	}

	return &models.PlayResponse{
		Multiplier: multiplier,
		IsWin:      isWin,
		NewBalance: newBalance.InexactFloat64(),
		WinAmount:  winAmount.InexactFloat64(),
		ServerSeed: revealedSeed,
	}, nil
}

func (s *GameService) validatePlay(wallet *models.Wallet, stake decimal.Decimal, req *models.PlayRequest) error {
	if stake.LessThan(s.limits.MinBet) {
		return &models.ValidationError{
			Field:  "betAmount",
			Reason: fmt.Sprintf("below minimum bet of %s", s.limits.MinBet),
		}
	}
	if stake.GreaterThan(s.limits.MaxBet) {
		return &models.ValidationError{
			Field:  "betAmount",
			Reason: fmt.Sprintf("above maximum bet of %s", s.limits.MaxBet),
		}
	}
	if stake.GreaterThan(wallet.Balance) {
		return &models.ValidationError{
			Field:  "betAmount",
			Reason: fmt.Sprintf("insufficient balance: have %s, need %s", wallet.Balance, stake),
		}
	}
	if req.TargetMultiplier < fair.MinTarget || req.TargetMultiplier > fair.MaxMultiplier {
		return &models.ValidationError{
			Field:  "targetMultiplier",
			Reason: fmt.Sprintf("must be between %.2f and %.0f", fair.MinTarget, fair.MaxMultiplier),
		}
	}
	if req.ClientSeed == "" {
		return &models.ValidationError{Field: "clientSeed", Reason: "must not be empty"}
	}
	if req.Nonce != wallet.Nonce {
		return &models.ValidationError{
			Field:  "nonce",
			Reason: fmt.Sprintf("expected %d, got %d", wallet.Nonce, req.Nonce),
		}
	}
	return nil
}

// RotateServerSeed retires the current commitment and starts a new epoch with
// the nonce back at 1. Bets already settled stay verifiable because their
// seed was revealed in each play response.
func (s *GameService) RotateServerSeed(playerID string) (*models.RotateSeedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.store.GetWallet(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	commitment, err := fair.NewCommitment()
	if err != nil {
		return nil, err
	}

	wallet.ServerSeed = commitment.Secret
	wallet.ServerSeedHash = commitment.SecretHash
	wallet.Nonce = commitment.Nonce

	if err := s.store.SaveWallet(wallet); err != nil {
		return nil, fmt.Errorf("failed to save wallet: %v", err)
	}

	return &models.RotateSeedResponse{
		NewServerSeedHash: wallet.ServerSeedHash,
		NewNonce:          wallet.Nonce,
	}, nil
}

// VerifyRound replays the outcome engine for an audit request.
func (s *GameService) VerifyRound(serverSeed, clientSeed string, nonce int64) (float64, string, error) {
	return fair.VerifyBet(serverSeed, clientSeed, nonce)
}

// GetRounds returns the player's resolved rounds, newest first.
func (s *GameService) GetRounds(playerID string, limit int64) ([]*models.Round, error) {
	return s.store.GetRounds(playerID, limit)
}
