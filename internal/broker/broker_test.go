package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
	"spread-trader/internal/strategy"
	"spread-trader/pkg/utils"
)

var expiration = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

func condorDocument(t *testing.T) *models.OrderDocument {
	t.Helper()
	condor, err := strategy.BuildIronCondor("XYZ", expiration,
		decimal.NewFromInt(90), decimal.NewFromInt(95), decimal.NewFromInt(105), decimal.NewFromInt(110), 2, true)
	require.NoError(t, err)

	doc, err := strategy.Assemble(condor, models.OrderTypeNetCredit, models.DurationDay, models.SessionNormal,
		decimal.NewNullDecimal(decimal.RequireFromString("1.15")))
	require.NoError(t, err)
	return doc
}

func TestEncodeOrderIronCondor(t *testing.T) {
	payload, err := EncodeOrder(condorDocument(t))
	require.NoError(t, err)

	var w WireOrder
	require.NoError(t, json.Unmarshal(payload, &w))

	assert.Equal(t, "NET_CREDIT", w.OrderType)
	assert.Equal(t, "DAY", w.Duration)
	assert.Equal(t, "NORMAL", w.Session)
	assert.Equal(t, "SINGLE", w.OrderStrategyType)
	assert.Equal(t, "IRON_CONDOR", w.ComplexOrderStrategyType)
	require.NotNil(t, w.Price)
	assert.True(t, w.Price.Equal(decimal.RequireFromString("1.15")))

	require.Len(t, w.OrderLegCollection, 4)
	wantSymbols := []string{
		"XYZ   250620P00090000",
		"XYZ   250620P00095000",
		"XYZ   250620C00105000",
		"XYZ   250620C00110000",
	}
	wantInstructions := []string{"BUY_TO_OPEN", "SELL_TO_OPEN", "SELL_TO_OPEN", "BUY_TO_OPEN"}
	for i, leg := range w.OrderLegCollection {
		assert.Equal(t, wantSymbols[i], leg.Instrument.Symbol)
		assert.Equal(t, wantInstructions[i], leg.Instruction)
		assert.Equal(t, 2, leg.Quantity)
		assert.Equal(t, "OPTION", leg.Instrument.AssetType)
	}
}

func TestEncodeOrderOmitsMarketPrice(t *testing.T) {
	spread, err := strategy.BuildVerticalSpread("XYZ", expiration, decimal.NewFromInt(100), decimal.NewFromInt(105),
		models.OptionTypeCall, models.OrderSideBuy, 1)
	require.NoError(t, err)
	doc, err := strategy.Assemble(spread, models.OrderTypeMarket, models.DurationDay, models.SessionNormal, decimal.NullDecimal{})
	require.NoError(t, err)

	payload, err := EncodeOrder(doc)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.NotContains(t, raw, "price")
	assert.Equal(t, "VERTICAL", raw["complexOrderStrategyType"])
}

func TestEncodeOrderNil(t *testing.T) {
	_, err := EncodeOrder(nil)
	assert.Error(t, err)
}

func TestPaperSubmitter(t *testing.T) {
	paper := NewPaperSubmitter()
	doc := condorDocument(t)

	result, err := paper.SubmitOrder(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)

	order, ok := paper.GetOrder(result.OrderID)
	require.True(t, ok)
	assert.Same(t, doc, order.Document)
	assert.NotEmpty(t, order.Payload)
	assert.Len(t, paper.Orders(), 1)

	paper.Reset()
	assert.Empty(t, paper.Orders())
}

func TestRetryingSubmitterRetriesTransientErrors(t *testing.T) {
	paper := NewPaperSubmitter()
	paper.FailNext(
		apperrors.NewTransientBrokerError("503", "unavailable", apperrors.ErrConnectionFailed),
		apperrors.NewTransientBrokerError("429", "slow down", apperrors.ErrRateLimited),
	)

	cfg := utils.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1}
	submitter := NewRetryingSubmitter(paper, cfg, zerolog.Nop())

	result, err := submitter.SubmitOrder(context.Background(), condorDocument(t))
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)
}

func TestRetryingSubmitterStopsOnRejection(t *testing.T) {
	paper := NewPaperSubmitter()
	paper.FailNext(apperrors.NewBrokerError("400", "invalid leg", apperrors.ErrOrderRejected))

	cfg := utils.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1}
	submitter := NewRetryingSubmitter(paper, cfg, zerolog.Nop())

	_, err := submitter.SubmitOrder(context.Background(), condorDocument(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrOrderRejected))
	assert.Empty(t, paper.Orders(), "rejected order must not be retried into acceptance")
}

func TestBreakerSubmitterOpensAfterTransientFailures(t *testing.T) {
	paper := NewPaperSubmitter()
	transient := apperrors.NewTransientBrokerError("503", "unavailable", apperrors.ErrConnectionFailed)
	paper.FailNext(transient, transient)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	breaker := NewBreakerSubmitter(paper, BreakerConfig{FailureThreshold: 2, Cooldown: time.Minute}, zerolog.Nop())
	breaker.now = func() time.Time { return now }
	doc := condorDocument(t)

	for i := 0; i < 2; i++ {
		_, err := breaker.SubmitOrder(context.Background(), doc)
		require.Error(t, err)
	}
	assert.Equal(t, CircuitOpen, breaker.State())

	_, err := breaker.SubmitOrder(context.Background(), doc)
	require.Error(t, err)
	var be *apperrors.BrokerError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "CIRCUIT_OPEN", be.Code)
	assert.False(t, apperrors.IsRetryable(err))
	assert.Empty(t, paper.Orders())

	now = now.Add(2 * time.Minute)
	result, err := breaker.SubmitOrder(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)
	assert.Equal(t, CircuitClosed, breaker.State())
}

func TestBreakerSubmitterIgnoresRejections(t *testing.T) {
	paper := NewPaperSubmitter()
	rejected := apperrors.NewBrokerError("400", "invalid leg", apperrors.ErrOrderRejected)
	paper.FailNext(rejected, rejected, rejected)

	breaker := NewBreakerSubmitter(paper, BreakerConfig{FailureThreshold: 1, Cooldown: time.Minute}, zerolog.Nop())
	for i := 0; i < 3; i++ {
		_, err := breaker.SubmitOrder(context.Background(), condorDocument(t))
		assert.True(t, errors.Is(err, apperrors.ErrOrderRejected))
	}
	assert.Equal(t, CircuitClosed, breaker.State())
}
