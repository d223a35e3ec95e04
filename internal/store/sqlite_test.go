package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
	"spread-trader/internal/strategy"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func condorRecord(t *testing.T, symbol string) *OrderRecord {
	t.Helper()
	condor, err := strategy.BuildIronCondor(symbol, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(90), decimal.NewFromInt(95), decimal.NewFromInt(105), decimal.NewFromInt(110), 1, true)
	require.NoError(t, err)
	doc, err := strategy.Assemble(condor, models.OrderTypeMarket, models.DurationDay, models.SessionNormal, decimal.NullDecimal{})
	require.NoError(t, err)
	return NewOrderRecord(doc, []byte(`{}`))
}

func TestNewOrderRecordMarketOrder(t *testing.T) {
	record := condorRecord(t, "xyz")
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "XYZ", record.Symbol)
	assert.Equal(t, models.ComplexIronCondor, record.Strategy)
	assert.Equal(t, models.NetCredit, record.PriceType)
	assert.Empty(t, record.Price)
}

func TestGetOrderNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetOrder(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDataNotFound))
}

func TestListOrdersFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := condorRecord(t, "SPY")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	require.NoError(t, s.SaveOrder(ctx, older))
	require.NoError(t, s.SaveOrder(ctx, condorRecord(t, "SPY")))
	require.NoError(t, s.SaveOrder(ctx, condorRecord(t, "QQQ")))

	all, err := s.ListOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	spy, err := s.ListOrders(ctx, OrderFilter{Symbol: "spy"})
	require.NoError(t, err)
	require.Len(t, spy, 2)
	assert.Equal(t, older.ID, spy[1].ID, "newest first")

	limited, err := s.ListOrders(ctx, OrderFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	recent, err := s.ListOrders(ctx, OrderFilter{StartDate: time.Now().Add(-time.Minute)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := condorRecord(t, "XYZ")
	require.NoError(t, s.SaveOrder(ctx, record))
	require.NoError(t, s.UpdateOrderStatus(ctx, record.ID, StatusSubmitted, "PAPER_1_1"))

	got, err := s.GetOrder(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, got.Status)
	assert.Equal(t, "PAPER_1_1", got.BrokerOrderID)

	submitted, err := s.ListOrders(ctx, OrderFilter{Status: StatusSubmitted})
	require.NoError(t, err)
	assert.Len(t, submitted, 1)

	err = s.UpdateOrderStatus(ctx, "missing", StatusFailed, "")
	assert.True(t, errors.Is(err, apperrors.ErrDataNotFound))
}

func TestSaveOrderRequiresID(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SaveOrder(context.Background(), &OrderRecord{}))
}
