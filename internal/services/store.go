package services

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"elevator-game/internal/models"
)

// WalletStore is the persistence boundary of the game server. The memory
// implementation is the default; redis is an optional deployment backend.
type WalletStore interface {
	GetWallet(playerID string) (*models.Wallet, error)
	SaveWallet(wallet *models.Wallet) error
	SaveRound(round *models.Round) error
	GetRounds(playerID string, limit int64) ([]*models.Round, error)
	Close() error
}

// MemoryStore keeps all wallets and rounds in process memory.
type MemoryStore struct {
	mu             sync.RWMutex
	wallets        map[string]*models.Wallet
	rounds         map[string][]*models.Round
	initialBalance decimal.Decimal
}

func NewMemoryStore(initialBalance decimal.Decimal) *MemoryStore {
	return &MemoryStore{
		wallets:        make(map[string]*models.Wallet),
		rounds:         make(map[string][]*models.Round),
		initialBalance: initialBalance,
	}
}

// GetWallet returns the player's wallet, creating one with the starting
// balance and a fresh client seed on first sight.
func (s *MemoryStore) GetWallet(playerID string) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wallet, ok := s.wallets[playerID]; ok {
		copied := *wallet
		return &copied, nil
	}

	clientSeed, err := models.GenerateClientSeed()
	if err != nil {
		return nil, err
	}

	wallet := &models.Wallet{
		PlayerID:   playerID,
		Balance:    s.initialBalance,
		ClientSeed: clientSeed,
		Nonce:      1,
	}
	s.wallets[playerID] = wallet

	copied := *wallet
	return &copied, nil
}

func (s *MemoryStore) SaveWallet(wallet *models.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *wallet
	s.wallets[wallet.PlayerID] = &copied
	return nil
}

func (s *MemoryStore) SaveRound(round *models.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *round
	rounds := append(s.rounds[round.PlayerID], &copied)
	if len(rounds) > MaxStoredRounds {
		rounds = rounds[len(rounds)-MaxStoredRounds:]
	}
	s.rounds[round.PlayerID] = rounds
	return nil
}

// GetRounds returns the player's resolved rounds, newest first.
func (s *MemoryStore) GetRounds(playerID string, limit int64) ([]*models.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.rounds[playerID]
	rounds := make([]*models.Round, len(stored))
	for i, r := range stored {
		copied := *r
		rounds[len(stored)-1-i] = &copied
	}

	sort.SliceStable(rounds, func(i, j int) bool {
		return rounds[i].CreatedAt.After(rounds[j].CreatedAt)
	})

	if limit > 0 && int64(len(rounds)) > limit {
		rounds = rounds[:limit]
	}
	return rounds, nil
}

func (s *MemoryStore) Close() error { return nil }
