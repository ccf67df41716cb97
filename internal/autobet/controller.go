package autobet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"elevator-game/internal/models"
	"elevator-game/internal/session"
)

// ErrAlreadyRunning rejects Start while a run is active.
var ErrAlreadyRunning = errors.New("auto-bet run already active")

// defaultPace is the delay between bets when instant mode is off.
const defaultPace = 200 * time.Millisecond

type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

// StopReason records why a run ended.
type StopReason string

const (
	StopCompleted         StopReason = "completed"
	StopOnProfit          StopReason = "stop_on_profit"
	StopOnLoss            StopReason = "stop_on_loss"
	StopInsufficientFunds StopReason = "insufficient_funds"
	StopRequested         StopReason = "stopped"
	StopError             StopReason = "error"
)

// Report summarizes a finished run. Profit is cumulative over the run only,
// independent of the session's lifetime stats.
type Report struct {
	BetsPlaced int64
	Wins       int64
	Losses     int64
	Profit     decimal.Decimal
	FinalStake decimal.Decimal
	Reason     StopReason
	Err        error
}

// Controller drives a sequence of bets on a WagerSession according to an
// AutoBetPolicy. One run at a time; Stop never cancels the bet already in
// flight, it resolves and no further bet is scheduled.
type Controller struct {
	session *session.WagerSession
	pace    time.Duration

	// OnBet, when set before Start, observes every resolved bet.
	OnBet func(n int64, stake decimal.Decimal, result *models.BetResult)

	mu     sync.Mutex
	state  State
	stop   chan struct{}
	done   chan struct{}
	report *Report
}

func New(s *session.WagerSession) *Controller {
	return &Controller{session: s, pace: defaultPace}
}

// Start validates the policy and launches the run. It returns immediately;
// use Wait for the report.
func (c *Controller) Start(ctx context.Context, policy models.AutoBetPolicy, instant bool) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return ErrAlreadyRunning
	}
	c.state = StateRunning
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.report = nil

	go c.run(ctx, policy, instant)
	return nil
}

// Stop requests a graceful stop. Safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return
	}
	c.state = StateStopping
	close(c.stop)
}

// Wait blocks until the current run finishes and returns its report, or nil
// if no run was started.
func (c *Controller) Wait() *Report {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) run(ctx context.Context, p models.AutoBetPolicy, instant bool) {
	report := &Report{Profit: decimal.Zero}
	defer c.finish(report)

	pace := c.pace
	if instant {
		pace = 0
	}

	stake := c.clamp(p.BaseStake)
	remaining := p.TotalBets

	for {
		if c.stopped(ctx) {
			report.Reason = StopRequested
			return
		}
		if stake.GreaterThan(c.session.Balance()) {
			report.Reason = StopInsufficientFunds
			return
		}

		remaining--
		result, err := c.session.PlaceBet(ctx, stake, p.TargetMultiplier, instant)
		if err != nil {
			report.Reason = StopError
			report.Err = err
			return
		}

		report.BetsPlaced++
		report.FinalStake = stake
		if result.IsWin {
			report.Wins++
		} else {
			report.Losses++
		}
		report.Profit = report.Profit.Add(result.WinAmount).Sub(stake)

		if c.OnBet != nil {
			c.OnBet(report.BetsPlaced, stake, result)
		}

		if remaining == 0 {
			report.Reason = StopCompleted
			return
		}
		if p.StopOnProfit != nil && report.Profit.GreaterThanOrEqual(*p.StopOnProfit) {
			report.Reason = StopOnProfit
			return
		}
		if p.StopOnLoss != nil && report.Profit.LessThanOrEqual(p.StopOnLoss.Neg()) {
			report.Reason = StopOnLoss
			return
		}

		if result.IsWin {
			stake = p.OnWin.Apply(stake, p.BaseStake)
		} else {
			stake = p.OnLoss.Apply(stake, p.BaseStake)
		}
		stake = c.clamp(stake)

		if pace > 0 {
			select {
			case <-time.After(pace):
			case <-c.stop:
				report.Reason = StopRequested
				return
			case <-ctx.Done():
				report.Reason = StopRequested
				return
			}
		}
	}
}

func (c *Controller) stopped(ctx context.Context) bool {
	select {
	case <-c.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (c *Controller) clamp(stake decimal.Decimal) decimal.Decimal {
	limits := c.session.Limits()
	if stake.LessThan(limits.MinBet) {
		return limits.MinBet
	}
	if stake.GreaterThan(limits.MaxBet) {
		return limits.MaxBet
	}
	return stake
}

func (c *Controller) finish(report *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = report
	c.state = StateIdle
	close(c.done)
}
