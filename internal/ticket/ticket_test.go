package ticket

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

var defaults = Defaults{Duration: models.DurationDay, Session: models.SessionNormal}

const condorTicket = `
strategy: iron_condor
symbol: xyz
expiration: 2025-06-20
quantity: 2
put_low_strike: 90
put_high_strike: 95
call_low_strike: 105
call_high_strike: 110
limit_price: "1.15"
`

func TestBuildIronCondorTicket(t *testing.T) {
	tk, err := Parse(strings.NewReader(condorTicket))
	require.NoError(t, err)

	doc, err := tk.Build(defaults)
	require.NoError(t, err)

	assert.Equal(t, models.ComplexIronCondor, doc.ComplexType)
	assert.Equal(t, models.NetCredit, doc.NetPriceType)
	assert.Equal(t, models.OrderTypeNetCredit, doc.OrderType, "order type defaults to the strategy's own")
	assert.Equal(t, models.DurationDay, doc.Duration)
	assert.Equal(t, 2, doc.Quantity)
	assert.True(t, doc.Price.Decimal.Equal(decimal.RequireFromString("1.15")))
	require.Len(t, doc.Legs(), 4)
	assert.Equal(t, "XYZ", doc.Underlying())
}

func TestBuildVerticalTicket(t *testing.T) {
	tk, err := Parse(strings.NewReader(`
strategy: vertical
symbol: XYZ
expiration: "2025-06-20"
quantity: 1
option_type: call
low_strike: 100
high_strike: 105
low_side: buy
order_type: market
duration: gtc
session: extended
`))
	require.NoError(t, err)

	doc, err := tk.Build(defaults)
	require.NoError(t, err)
	assert.Equal(t, models.NetDebit, doc.NetPriceType)
	assert.Equal(t, models.OrderTypeMarket, doc.OrderType)
	assert.Equal(t, models.DurationGoodTillCancel, doc.Duration)
	assert.Equal(t, models.SessionExtended, doc.Session)
	assert.False(t, doc.Price.Valid)
}

func TestBuildClosingVerticalTicket(t *testing.T) {
	tk := &Ticket{
		Strategy: "vertical", Symbol: "XYZ", Expiration: "2025-06-20", Quantity: 1, Closing: true,
		OptionType: "call", LowStrike: decimal.NewFromInt(100), HighStrike: decimal.NewFromInt(105), LowSide: "buy",
		OrderType: "market",
	}
	doc, err := tk.Build(defaults)
	require.NoError(t, err)

	legs := doc.Legs()
	assert.Equal(t, "SELL_TO_CLOSE", legs[0].Instruction())
	assert.Equal(t, "BUY_TO_CLOSE", legs[1].Instruction())
	assert.Equal(t, models.NetCredit, doc.NetPriceType)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("strategy: vertical\nstrikes: [1, 2]\n"))
	assert.Error(t, err)
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	base := func() *Ticket {
		tk, err := Parse(strings.NewReader(condorTicket))
		require.NoError(t, err)
		return tk
	}

	tests := []struct {
		name   string
		mutate func(*Ticket)
		kind   error
	}{
		{"strategy", func(tk *Ticket) { tk.Strategy = "butterfly" }, apperrors.ErrInvalidStrategy},
		{"expiration", func(tk *Ticket) { tk.Expiration = "20/06/2025" }, apperrors.ErrInvalidLeg},
		{"overlap", func(tk *Ticket) { tk.CallLowStrike = decimal.NewFromInt(93) }, apperrors.ErrInvalidStrikeOrdering},
		{"debit variant", func(tk *Ticket) { tk.Variant = "debit" }, apperrors.ErrUnsupportedStrategyVariant},
		{"unknown variant", func(tk *Ticket) { tk.Variant = "wide" }, apperrors.ErrUnsupportedStrategyVariant},
		{"closing debit variant", func(tk *Ticket) {
			tk.Closing = true
			tk.Variant = "debit"
		}, apperrors.ErrUnsupportedStrategyVariant},
		{"order type", func(tk *Ticket) { tk.OrderType = "stop" }, apperrors.ErrInvalidOrderType},
		{"duration", func(tk *Ticket) { tk.Duration = "week" }, apperrors.ErrInvalidDuration},
		{"session", func(tk *Ticket) { tk.Session = "overnight" }, apperrors.ErrInvalidSession},
		{"missing price", func(tk *Ticket) { tk.LimitPrice = nil }, apperrors.ErrMissingPrice},
		{"price type", func(tk *Ticket) { tk.OrderType = "net_debit" }, apperrors.ErrPriceTypeMismatch},
		{"quantity", func(tk *Ticket) { tk.Quantity = 0 }, apperrors.ErrInvalidLeg},
		{"vertical option type", func(tk *Ticket) {
			tk.Strategy = "vertical"
			tk.OptionType = "straddle"
		}, apperrors.ErrInvalidLeg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := base()
			tt.mutate(tk)
			_, err := tk.Build(defaults)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestEncodeParsesBack(t *testing.T) {
	tk, err := Parse(strings.NewReader(condorTicket))
	require.NoError(t, err)

	data, err := Encode(tk)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "condor.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.CallHighStrike.Equal(decimal.NewFromInt(110)))
	require.NotNil(t, loaded.LimitPrice)
	assert.True(t, loaded.LimitPrice.Equal(decimal.RequireFromString("1.15")))
}
