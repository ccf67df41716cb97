package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"elevator-game/internal/config"
	"elevator-game/internal/models"
)

// RedisStore implements WalletStore on redis. Wallets and rounds are stored
// as JSON blobs; a per-player sorted set indexes rounds by time.
type RedisStore struct {
	client         *redis.Client
	ctx            context.Context
	initialBalance decimal.Decimal
}

func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisStore{
		client:         client,
		ctx:            ctx,
		initialBalance: cfg.InitialBalance,
	}, nil
}

func (s *RedisStore) GetWallet(playerID string) (*models.Wallet, error) {
	key := fmt.Sprintf(KeyWallet, playerID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
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

		if err := s.SaveWallet(wallet); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %v", err)
		}
		return wallet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %v", err)
	}

	return &wallet, nil
}

func (s *RedisStore) SaveWallet(wallet *models.Wallet) error {
	key := fmt.Sprintf(KeyWallet, wallet.PlayerID)

	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %v", err)
	}

	return s.client.Set(s.ctx, key, data, 0).Err()
}

func (s *RedisStore) SaveRound(round *models.Round) error {
	roundKey := fmt.Sprintf(KeyRound, round.ID)

	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %v", err)
	}

	if err := s.client.Set(s.ctx, roundKey, data, TTLRound).Err(); err != nil {
		return fmt.Errorf("failed to save round: %v", err)
	}

	playerRoundsKey := fmt.Sprintf(KeyPlayerRounds, round.PlayerID)
	score := float64(round.CreatedAt.Unix())

	if err := s.client.ZAdd(s.ctx, playerRoundsKey, redis.Z{
		Score:  score,
		Member: round.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index round: %v", err)
	}

	s.client.ZRemRangeByRank(s.ctx, playerRoundsKey, 0, -int64(MaxStoredRounds)-1)
	s.client.Expire(s.ctx, playerRoundsKey, TTLRound)

	return nil
}

func (s *RedisStore) GetRounds(playerID string, limit int64) ([]*models.Round, error) {
	if limit <= 0 || limit > MaxStoredRounds {
		limit = 50
	}

	playerRoundsKey := fmt.Sprintf(KeyPlayerRounds, playerID)

	roundIDs, err := s.client.ZRevRange(s.ctx, playerRoundsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get round IDs: %v", err)
	}

	var rounds []*models.Round
	for _, roundID := range roundIDs {
		data, err := s.client.Get(s.ctx, fmt.Sprintf(KeyRound, roundID)).Result()
		if err != nil {
			continue
		}

		var round models.Round
		if err := json.Unmarshal([]byte(data), &round); err != nil {
			continue
		}

		rounds = append(rounds, &round)
	}

	return rounds, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ WalletStore = (*RedisStore)(nil)
