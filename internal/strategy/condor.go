package strategy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// IronCondor combines a put vertical below a call vertical on the same underlying,
// expiration and quantity.
type IronCondor struct {
	put  *VerticalSpread
	call *VerticalSpread
}

// BuildIronCondor builds an opening short iron condor: a credit put spread (long putLow,
// short putHigh) and a credit call spread (short callLow, long callHigh). Only the credit
// variant is modeled; creditVariant=false is rejected.
func BuildIronCondor(symbol string, expiration time.Time, putLow, putHigh, callLow, callHigh decimal.Decimal,
	quantity int, creditVariant bool) (*IronCondor, error) {
	if err := checkCondorStrikes(putLow, putHigh, callLow, callHigh); err != nil {
		return nil, err
	}
	if !creditVariant {
		return nil, apperrors.NewStrategyError(apperrors.ErrUnsupportedStrategyVariant, "credit_variant", false,
			"debit (reverse) iron condors are not supported")
	}

	put, err := BuildVerticalSpread(symbol, expiration, putLow, putHigh, models.OptionTypePut, models.OrderSideBuy, quantity)
	if err != nil {
		return nil, err
	}
	call, err := BuildVerticalSpread(symbol, expiration, callLow, callHigh, models.OptionTypeCall, models.OrderSideSell, quantity)
	if err != nil {
		return nil, err
	}
	return NewIronCondor(put, call)
}

// BuildClosingIronCondor builds the order that closes a short iron condor opened with the
// given strikes. Every leg trades the opposite side with the CLOSING effect, which makes
// both sub-spreads (and the order) a net debit.
func BuildClosingIronCondor(symbol string, expiration time.Time, putLow, putHigh, callLow, callHigh decimal.Decimal,
	quantity int) (*IronCondor, error) {
	if err := checkCondorStrikes(putLow, putHigh, callLow, callHigh); err != nil {
		return nil, err
	}

	put, err := BuildClosingVerticalSpread(symbol, expiration, putLow, putHigh, models.OptionTypePut, models.OrderSideBuy, quantity)
	if err != nil {
		return nil, err
	}
	call, err := BuildClosingVerticalSpread(symbol, expiration, callLow, callHigh, models.OptionTypeCall, models.OrderSideSell, quantity)
	if err != nil {
		return nil, err
	}
	return NewIronCondor(put, call)
}

// NewIronCondor composes two already-built verticals into a condor, checking that they
// form the condor shape: a put spread entirely below a call spread, sharing underlying,
// expiration, quantity and position effect.
func NewIronCondor(put, call *VerticalSpread) (*IronCondor, error) {
	if put == nil || call == nil {
		return nil, apperrors.NewStrategyError(apperrors.ErrInvalidStrategy, "spreads", nil, "both spreads are required")
	}
	if put.OptionType() != models.OptionTypePut || call.OptionType() != models.OptionTypeCall {
		return nil, apperrors.InvalidSpread("option_type", fmt.Sprintf("%s/%s", put.OptionType(), call.OptionType()),
			"iron condor needs a put spread and a call spread")
	}
	if err := checkCondorStrikes(put.Low().Strike(), put.High().Strike(), call.Low().Strike(), call.High().Strike()); err != nil {
		return nil, err
	}
	if put.Underlying() != call.Underlying() {
		return nil, apperrors.InvalidStrikeOrdering(fmt.Sprintf("%s/%s", put.Underlying(), call.Underlying()),
			"put and call spreads must share the underlying")
	}
	if !put.Expiration().Equal(call.Expiration()) {
		return nil, apperrors.InvalidStrikeOrdering(
			fmt.Sprintf("%s/%s", put.Expiration().Format(models.ExpirationLayout), call.Expiration().Format(models.ExpirationLayout)),
			"put and call spreads must share the expiration")
	}
	if put.Quantity() != call.Quantity() {
		return nil, apperrors.InvalidStrikeOrdering(fmt.Sprintf("%d/%d", put.Quantity(), call.Quantity()),
			"put and call spreads must share the quantity")
	}
	if put.PositionEffect() != call.PositionEffect() {
		return nil, apperrors.InvalidSpread("position_effect", fmt.Sprintf("%s/%s", put.PositionEffect(), call.PositionEffect()),
			"put and call spreads must both open or both close")
	}

	want := models.NetCredit
	if put.PositionEffect() == models.PositionEffectClosing {
		want = models.NetDebit
	}
	if put.NetPriceType() != want || call.NetPriceType() != want {
		return nil, apperrors.NewStrategyError(apperrors.ErrUnsupportedStrategyVariant, "price_type",
			fmt.Sprintf("%s/%s", put.NetPriceType(), call.NetPriceType()),
			"only the short (credit) iron condor is supported")
	}

	return &IronCondor{put: put, call: call}, nil
}

func checkCondorStrikes(putLow, putHigh, callLow, callHigh decimal.Decimal) error {
	if putLow.LessThan(putHigh) && putHigh.LessThan(callLow) && callLow.LessThan(callHigh) {
		return nil
	}
	return apperrors.InvalidStrikeOrdering(fmt.Sprintf("%s/%s/%s/%s", putLow, putHigh, callLow, callHigh),
		"strikes must be strictly ascending: put low < put high < call low < call high")
}

// PutSpread returns the put vertical.
func (c *IronCondor) PutSpread() *VerticalSpread { return c.put }

// CallSpread returns the call vertical.
func (c *IronCondor) CallSpread() *VerticalSpread { return c.call }

// Legs returns the four legs in ascending strike order: put low, put high, call low, call high.
func (c *IronCondor) Legs() []models.Leg {
	return append(c.put.Legs(), c.call.Legs()...)
}

func (c *IronCondor) Quantity() int { return c.put.Quantity() }

func (c *IronCondor) NetPriceType() models.NetPriceType { return c.put.NetPriceType() }

func (c *IronCondor) ComplexType() models.ComplexOrderStrategyType {
	return models.ComplexIronCondor
}

func (c *IronCondor) Expiration() time.Time { return c.put.Expiration() }

func (c *IronCondor) Underlying() string { return c.put.Underlying() }

func (c *IronCondor) PositionEffect() models.PositionEffect { return c.put.PositionEffect() }

func (c *IronCondor) sealed() {}
