package broker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState string

const (
	CircuitClosed   CircuitState = "CLOSED"    // Normal operation
	CircuitOpen     CircuitState = "OPEN"      // Failing, rejecting submissions
	CircuitHalfOpen CircuitState = "HALF_OPEN" // Letting one submission probe the broker
)

// BreakerConfig holds circuit breaker configuration.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive transient failures before opening.
	// Zero disables the breaker.
	FailureThreshold int
	// Cooldown is how long the circuit stays open before a probe is allowed.
	Cooldown time.Duration
}

// BreakerSubmitter stops calling an unhealthy broker. Only transient failures count
// against the broker; rejected orders do not.
type BreakerSubmitter struct {
	next   OrderSubmitter
	cfg    BreakerConfig
	logger zerolog.Logger
	now    func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	lastFailureTime time.Time
}

// NewBreakerSubmitter wraps next with a circuit breaker.
func NewBreakerSubmitter(next OrderSubmitter, cfg BreakerConfig, logger zerolog.Logger) *BreakerSubmitter {
	return &BreakerSubmitter{
		next:   next,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		state:  CircuitClosed,
	}
}

// SubmitOrder submits doc unless the circuit is open.
func (b *BreakerSubmitter) SubmitOrder(ctx context.Context, doc *models.OrderDocument) (*OrderResult, error) {
	if err := b.allow(); err != nil {
		return nil, err
	}

	result, err := b.next.SubmitOrder(ctx, doc)
	if apperrors.IsRetryable(err) {
		b.recordFailure()
	} else {
		// A rejection still means the broker answered.
		b.recordSuccess()
	}
	return result, err
}

// State returns the current circuit state.
func (b *BreakerSubmitter) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the circuit.
func (b *BreakerSubmitter) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionTo(CircuitClosed)
}

func (b *BreakerSubmitter) allow() error {
	if b.cfg.FailureThreshold <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitOpen:
		if b.now().Sub(b.lastFailureTime) < b.cfg.Cooldown {
			// Not retryable: a retry loop would only spin against the open circuit.
			return apperrors.NewBrokerError("CIRCUIT_OPEN",
				"broker unavailable after repeated failures", apperrors.ErrConnectionFailed)
		}
		b.transitionTo(CircuitHalfOpen)
	case CircuitHalfOpen:
		return apperrors.NewBrokerError("CIRCUIT_OPEN",
			"broker probe in progress", apperrors.ErrConnectionFailed)
	}
	return nil
}

func (b *BreakerSubmitter) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != CircuitClosed {
		b.logger.Info().Msg("Broker recovered, circuit closed")
	}
	b.transitionTo(CircuitClosed)
}

func (b *BreakerSubmitter) recordFailure() {
	if b.cfg.FailureThreshold <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailureTime = b.now()
	switch b.state {
	case CircuitClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transitionTo(CircuitOpen)
			b.logger.Warn().Int("failures", b.cfg.FailureThreshold).Dur("cooldown", b.cfg.Cooldown).
				Msg("Circuit opened, pausing submissions")
		}
	case CircuitHalfOpen:
		b.transitionTo(CircuitOpen)
	}
}

func (b *BreakerSubmitter) transitionTo(state CircuitState) {
	b.state = state
	b.failures = 0
}
