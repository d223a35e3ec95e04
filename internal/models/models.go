// Package models provides domain models for the option strategy order builder.
package models

import (
	"strings"
)

// OptionType represents the right of an option contract.
type OptionType string

const (
	OptionTypeCall OptionType = "CALL"
	OptionTypePut  OptionType = "PUT"
)

// Valid reports whether t is a known option type.
func (t OptionType) Valid() bool {
	return t == OptionTypeCall || t == OptionTypePut
}

// Code returns the single-letter OCC code for the option type.
func (t OptionType) Code() string {
	switch t {
	case OptionTypeCall:
		return "C"
	case OptionTypePut:
		return "P"
	default:
		return ""
	}
}

// ParseOptionType parses an option type token (CALL, PUT, C, P; any case).
func ParseOptionType(s string) (OptionType, bool) {
	switch normalize(s) {
	case "CALL", "C":
		return OptionTypeCall, true
	case "PUT", "P":
		return OptionTypePut, true
	}
	return "", false
}

// OrderSide represents the side of an order leg.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

var oppositeSide = map[OrderSide]OrderSide{
	OrderSideBuy:  OrderSideSell,
	OrderSideSell: OrderSideBuy,
}

// Valid reports whether s is a known side.
func (s OrderSide) Valid() bool {
	_, ok := oppositeSide[s]
	return ok
}

// Opposite returns the other side. ok is false for unknown sides.
func (s OrderSide) Opposite() (OrderSide, bool) {
	o, ok := oppositeSide[s]
	return o, ok
}

// ParseOrderSide parses a side token (BUY, SELL, LONG, SHORT; any case).
func ParseOrderSide(s string) (OrderSide, bool) {
	switch normalize(s) {
	case "BUY", "LONG":
		return OrderSideBuy, true
	case "SELL", "SHORT":
		return OrderSideSell, true
	}
	return "", false
}

// PositionEffect represents whether a leg opens or closes a position.
type PositionEffect string

const (
	PositionEffectOpening PositionEffect = "OPENING"
	PositionEffectClosing PositionEffect = "CLOSING"
)

// Valid reports whether e is a known position effect.
func (e PositionEffect) Valid() bool {
	return e == PositionEffectOpening || e == PositionEffectClosing
}

// ParsePositionEffect parses a position effect token (OPENING, OPEN, CLOSING, CLOSE).
func ParsePositionEffect(s string) (PositionEffect, bool) {
	switch normalize(s) {
	case "OPENING", "OPEN":
		return PositionEffectOpening, true
	case "CLOSING", "CLOSE":
		return PositionEffectClosing, true
	}
	return "", false
}

// NetPriceType classifies a multi-leg structure as paying or receiving premium.
type NetPriceType string

const (
	NetDebit  NetPriceType = "DEBIT"
	NetCredit NetPriceType = "CREDIT"
)

// Valid reports whether p is a known net price type.
func (p NetPriceType) Valid() bool {
	return p == NetDebit || p == NetCredit
}

// OrderType represents the pricing instruction of an order.
type OrderType string

const (
	OrderTypeMarket    OrderType = "MARKET"
	OrderTypeLimit     OrderType = "LIMIT"
	OrderTypeNetDebit  OrderType = "NET_DEBIT"
	OrderTypeNetCredit OrderType = "NET_CREDIT"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeNetDebit, OrderTypeNetCredit:
		return true
	}
	return false
}

// RequiresPrice reports whether orders of this type must carry a limit price.
func (t OrderType) RequiresPrice() bool {
	return t == OrderTypeLimit || t == OrderTypeNetDebit || t == OrderTypeNetCredit
}

// ParseOrderType parses an order type token. Dashes and spaces are treated as underscores.
func ParseOrderType(s string) (OrderType, bool) {
	t := OrderType(normalize(s))
	return t, t.Valid()
}

// Duration represents how long an order stays working.
type Duration string

const (
	DurationDay            Duration = "DAY"
	DurationGoodTillCancel Duration = "GOOD_TILL_CANCEL"
)

// Valid reports whether d is a known duration.
func (d Duration) Valid() bool {
	return d == DurationDay || d == DurationGoodTillCancel
}

// ParseDuration parses a duration token (DAY, GOOD_TILL_CANCEL, GTC).
func ParseDuration(s string) (Duration, bool) {
	switch normalize(s) {
	case "DAY":
		return DurationDay, true
	case "GOOD_TILL_CANCEL", "GTC":
		return DurationGoodTillCancel, true
	}
	return "", false
}

// Session represents the trading session an order is eligible for.
type Session string

const (
	SessionNormal   Session = "NORMAL"
	SessionExtended Session = "EXTENDED"
)

// Valid reports whether s is a known session.
func (s Session) Valid() bool {
	return s == SessionNormal || s == SessionExtended
}

// ParseSession parses a session token (NORMAL, EXTENDED).
func ParseSession(s string) (Session, bool) {
	v := Session(normalize(s))
	return v, v.Valid()
}

// OrderStrategyType describes how the legs of an order relate at the brokerage.
type OrderStrategyType string

const (
	OrderStrategySingle  OrderStrategyType = "SINGLE"
	OrderStrategyOCO     OrderStrategyType = "OCO"
	OrderStrategyTrigger OrderStrategyType = "TRIGGER"
)

// ComplexOrderStrategyType tags the shape of a multi-leg option order.
type ComplexOrderStrategyType string

const (
	ComplexVertical   ComplexOrderStrategyType = "VERTICAL"
	ComplexIronCondor ComplexOrderStrategyType = "IRON_CONDOR"
)

// Cardinality returns the number of legs the shape is made of.
func (c ComplexOrderStrategyType) Cardinality() int {
	switch c {
	case ComplexVertical:
		return 2
	case ComplexIronCondor:
		return 4
	}
	return 0
}

func normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
