package fair

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"elevator-game/internal/models"
)

const (
	HouseEdge     = 0.01 // 1% house edge
	MaxMultiplier = 1_000_000.0
	MinMultiplier = 1.00
	MinTarget     = 1.01
)

// DeriveOutcome maps (serverSeed, clientSeed, nonce) to the outcome multiplier.
// Pure function: identical inputs always produce the identical multiplier,
// which is what makes the commitment scheme verifiable after the seed reveal.
//
// The first 4 bytes of HMAC-SHA256(serverSeed, "clientSeed:nonce") are read as
// a big-endian uint32 and normalized to r in [0, 1). The multiplier is
// (1 - HouseEdge) / r floored to 2 decimal places and clamped to
// [MinMultiplier, MaxMultiplier]; r == 0 pays the absolute ceiling.
func DeriveOutcome(serverSeed, clientSeed string, nonce int64) float64 {
	digest := outcomeDigest(serverSeed, clientSeed, nonce)

	value := binary.BigEndian.Uint32(digest[:4])
	r := float64(value) / 4294967296.0 // 2^32

	if r == 0 {
		return MaxMultiplier
	}

	multiplier := math.Floor((1-HouseEdge)/r*100) / 100

	if multiplier < MinMultiplier {
		multiplier = MinMultiplier
	}
	if multiplier > MaxMultiplier {
		multiplier = MaxMultiplier
	}

	return multiplier
}

// OutcomeDigestHex returns the hex HMAC the outcome was derived from, for
// display alongside verification results.
func OutcomeDigestHex(serverSeed, clientSeed string, nonce int64) string {
	return hex.EncodeToString(outcomeDigest(serverSeed, clientSeed, nonce))
}

func outcomeDigest(serverSeed, clientSeed string, nonce int64) []byte {
	message := fmt.Sprintf("%s:%d", clientSeed, nonce)
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(message))
	return h.Sum(nil)
}

// GenerateServerSeed returns 256 bits of hex-encoded entropy.
func GenerateServerSeed() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate server seed: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}

// HashSeed is the one-way commitment published before any bet is taken.
func HashSeed(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(hash[:])
}

// NewCommitment generates a fresh secret with its hash, nonce counter at 1.
func NewCommitment() (models.Commitment, error) {
	seed, err := GenerateServerSeed()
	if err != nil {
		return models.Commitment{}, err
	}
	return models.Commitment{
		Secret:     seed,
		SecretHash: HashSeed(seed),
		Nonce:      1,
	}, nil
}
