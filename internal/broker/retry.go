package broker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
	"spread-trader/pkg/utils"
)

// RetryingSubmitter retries transient submission failures of the wrapped submitter.
// Errors not marked retryable are returned after the first attempt.
type RetryingSubmitter struct {
	next   OrderSubmitter
	cfg    utils.RetryConfig
	logger zerolog.Logger
}

// NewRetryingSubmitter wraps next with retry behavior.
func NewRetryingSubmitter(next OrderSubmitter, cfg utils.RetryConfig, logger zerolog.Logger) *RetryingSubmitter {
	cfg.ShouldRetry = apperrors.IsRetryable
	return &RetryingSubmitter{next: next, cfg: cfg, logger: logger}
}

// SubmitOrder submits doc, retrying transient failures with backoff.
func (r *RetryingSubmitter) SubmitOrder(ctx context.Context, doc *models.OrderDocument) (*OrderResult, error) {
	attempt := 0
	start := time.Now()

	result, err := utils.RetryWithResult(ctx, r.cfg, func() (*OrderResult, error) {
		attempt++
		res, err := r.next.SubmitOrder(ctx, doc)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Bool("retryable", apperrors.IsRetryable(err)).
				Msg("Order submission failed")
		}
		return res, err
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "submitting order after %d attempt(s)", attempt)
	}

	r.logger.Debug().
		Str("order_id", result.OrderID).
		Int("attempts", attempt).
		Dur("duration", time.Since(start)).
		Msg("Order submitted")
	return result, nil
}
