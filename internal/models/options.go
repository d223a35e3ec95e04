package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExpirationLayout is the date layout used for option expirations.
const ExpirationLayout = "2006-01-02"

// Instrument identifies a single listed option contract.
type Instrument struct {
	Underlying string
	Expiration time.Time
	Strike     decimal.Decimal
	OptionType OptionType
}

// OCC symbol field limits: a six-character root and an eight-digit strike in thousandths.
const (
	MaxOCCRootLength = 6
	MaxOCCStrike     = 100000
)

// OCCSymbol renders the 21-character OCC option symbol, e.g. "XYZ   250620C00100000".
// Underlyings longer than MaxOCCRootLength or strikes at or above MaxOCCStrike do not fit.
func (i Instrument) OCCSymbol() string {
	strike := i.Strike.Mul(decimal.NewFromInt(1000)).IntPart()
	return fmt.Sprintf("%-6s%s%s%08d", i.Underlying, i.Expiration.Format("060102"), i.OptionType.Code(), strike)
}

func (i Instrument) String() string {
	return fmt.Sprintf("%s %s %s %s", i.Underlying, i.Expiration.Format(ExpirationLayout), i.Strike.String(), i.OptionType)
}

// Leg is one buy/sell instruction for a single option contract within an order.
type Leg struct {
	Instrument     Instrument
	Side           OrderSide
	PositionEffect PositionEffect
	Quantity       int
}

// Strike is shorthand for the leg's instrument strike.
func (l Leg) Strike() decimal.Decimal {
	return l.Instrument.Strike
}

// Instruction combines side and position effect into the brokerage instruction token.
func (l Leg) Instruction() string {
	switch {
	case l.Side == OrderSideBuy && l.PositionEffect == PositionEffectOpening:
		return "BUY_TO_OPEN"
	case l.Side == OrderSideSell && l.PositionEffect == PositionEffectOpening:
		return "SELL_TO_OPEN"
	case l.Side == OrderSideBuy && l.PositionEffect == PositionEffectClosing:
		return "BUY_TO_CLOSE"
	case l.Side == OrderSideSell && l.PositionEffect == PositionEffectClosing:
		return "SELL_TO_CLOSE"
	}
	return ""
}

// ParseExpiration parses a YYYY-MM-DD expiration date.
func ParseExpiration(s string) (time.Time, error) {
	t, err := time.Parse(ExpirationLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiration %q (use YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
