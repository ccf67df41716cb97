package fair

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SimReport summarizes a simulated run of the outcome engine at a fixed
// target multiplier, staking one unit per round.
type SimReport struct {
	Rounds  int
	Target  float64
	Wins    int
	WinRate float64
	RTP     float64
	StdDev  float64
}

// Simulate plays `rounds` consecutive nonces against one seed pair and
// reports the observed return to player. With the 1% house edge the RTP
// should converge on 0.99 for any target.
func Simulate(serverSeed, clientSeed string, target float64, rounds int) SimReport {
	payouts := make([]float64, rounds)
	wins := 0

	for i := 0; i < rounds; i++ {
		outcome := DeriveOutcome(serverSeed, clientSeed, int64(i+1))
		if outcome >= target {
			payouts[i] = target
			wins++
		}
	}

	return SimReport{
		Rounds:  rounds,
		Target:  target,
		Wins:    wins,
		WinRate: float64(wins) / float64(rounds),
		RTP:     stat.Mean(payouts, nil),
		StdDev:  math.Sqrt(stat.Variance(payouts, nil)),
	}
}
