package strategy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// VerticalSpread is a two-leg strategy on one option type and expiration with strictly
// ordered strikes, one long leg and one short leg.
type VerticalSpread struct {
	low       models.Leg
	high      models.Leg
	priceType models.NetPriceType
}

// BuildVerticalSpread builds an opening vertical spread. lowSide is the side of the
// lower-strike leg; the higher-strike leg takes the opposite side.
func BuildVerticalSpread(symbol string, expiration time.Time, lowStrike, highStrike decimal.Decimal,
	optionType models.OptionType, lowSide models.OrderSide, quantity int) (*VerticalSpread, error) {
	return buildVertical(symbol, expiration, lowStrike, highStrike, optionType, lowSide, models.PositionEffectOpening, quantity)
}

// BuildClosingVerticalSpread builds the order that closes a vertical spread previously
// opened with openedLowSide on its lower strike. Both legs trade the opposite side of the
// open position and carry the CLOSING position effect; strike ordering is unchanged.
func BuildClosingVerticalSpread(symbol string, expiration time.Time, lowStrike, highStrike decimal.Decimal,
	optionType models.OptionType, openedLowSide models.OrderSide, quantity int) (*VerticalSpread, error) {
	lowSide, ok := openedLowSide.Opposite()
	if !ok {
		return nil, apperrors.InvalidLeg("side", openedLowSide, "must be BUY or SELL")
	}
	return buildVertical(symbol, expiration, lowStrike, highStrike, optionType, lowSide, models.PositionEffectClosing, quantity)
}

func buildVertical(symbol string, expiration time.Time, lowStrike, highStrike decimal.Decimal,
	optionType models.OptionType, lowSide models.OrderSide, effect models.PositionEffect, quantity int) (*VerticalSpread, error) {
	if !lowStrike.LessThan(highStrike) {
		return nil, apperrors.InvalidSpread("strikes", fmt.Sprintf("%s/%s", lowStrike, highStrike),
			"lower strike must be strictly below higher strike")
	}

	highSide, ok := lowSide.Opposite()
	if !ok {
		return nil, apperrors.InvalidLeg("side", lowSide, "must be BUY or SELL")
	}

	low, err := BuildLeg(symbol, expiration, lowStrike, optionType, lowSide, effect, quantity)
	if err != nil {
		return nil, err
	}
	high, err := BuildLeg(symbol, expiration, highStrike, optionType, highSide, effect, quantity)
	if err != nil {
		return nil, err
	}

	priceType, err := Classify(optionType, low.Side, high.Side)
	if err != nil {
		return nil, err
	}

	return &VerticalSpread{low: low, high: high, priceType: priceType}, nil
}

// Low returns the lower-strike leg.
func (v *VerticalSpread) Low() models.Leg { return v.low }

// High returns the higher-strike leg.
func (v *VerticalSpread) High() models.Leg { return v.high }

// Legs returns the lower-strike leg followed by the higher-strike leg.
func (v *VerticalSpread) Legs() []models.Leg {
	return []models.Leg{v.low, v.high}
}

func (v *VerticalSpread) Quantity() int { return v.low.Quantity }

func (v *VerticalSpread) NetPriceType() models.NetPriceType { return v.priceType }

func (v *VerticalSpread) ComplexType() models.ComplexOrderStrategyType {
	return models.ComplexVertical
}

func (v *VerticalSpread) OptionType() models.OptionType { return v.low.Instrument.OptionType }

func (v *VerticalSpread) Expiration() time.Time { return v.low.Instrument.Expiration }

func (v *VerticalSpread) Underlying() string { return v.low.Instrument.Underlying }

func (v *VerticalSpread) PositionEffect() models.PositionEffect { return v.low.PositionEffect }

// Width returns the distance between the two strikes.
func (v *VerticalSpread) Width() decimal.Decimal {
	return v.high.Strike().Sub(v.low.Strike())
}

func (v *VerticalSpread) sealed() {}
