package fair

import (
	"elevator-game/internal/models"
)

// VerifyBet replays the outcome derivation with the revealed server seed and
// returns the recomputed multiplier plus the HMAC it came from. It runs
// entirely locally; the caller compares the multiplier against the one
// recorded at bet time. It errors only on malformed inputs, never on a
// mismatch.
func VerifyBet(serverSeed, clientSeed string, nonce int64) (float64, string, error) {
	if serverSeed == "" {
		return 0, "", &models.ValidationError{Field: "server_seed", Reason: "must not be empty"}
	}
	if clientSeed == "" {
		return 0, "", &models.ValidationError{Field: "client_seed", Reason: "must not be empty"}
	}
	if nonce < 1 {
		return 0, "", &models.ValidationError{Field: "nonce", Reason: "must be at least 1"}
	}

	multiplier := DeriveOutcome(serverSeed, clientSeed, nonce)
	return multiplier, OutcomeDigestHex(serverSeed, clientSeed, nonce), nil
}

// CheckEntry re-verifies a resolved bet from its history record. Returns the
// recomputed multiplier and whether it matches what was recorded.
func CheckEntry(entry models.HistoryEntry) (float64, bool, error) {
	multiplier, _, err := VerifyBet(entry.ServerSeed, entry.ClientSeed, entry.Nonce)
	if err != nil {
		return 0, false, err
	}
	return multiplier, multiplier == entry.Multiplier, nil
}
