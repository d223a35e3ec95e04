package models

import (
	"github.com/shopspring/decimal"
)

// OrderDocument is a fully assembled multi-leg order, ready to be encoded and submitted.
// It is treated as an immutable value once assembled.
type OrderDocument struct {
	OrderType         OrderType
	Duration          Duration
	Session           Session
	Price             decimal.NullDecimal
	OrderStrategyType OrderStrategyType
	ComplexType       ComplexOrderStrategyType
	NetPriceType      NetPriceType
	Quantity          int
	legs              []Leg
}

// NewOrderDocument creates a document owning a private copy of legs.
func NewOrderDocument(legs []Leg) *OrderDocument {
	return &OrderDocument{legs: append([]Leg(nil), legs...)}
}

// Legs returns a copy of the ordered leg sequence.
func (d *OrderDocument) Legs() []Leg {
	return append([]Leg(nil), d.legs...)
}

// LegCount returns the number of legs in the document.
func (d *OrderDocument) LegCount() int {
	return len(d.legs)
}

// Underlying returns the underlying symbol shared by the legs.
func (d *OrderDocument) Underlying() string {
	if len(d.legs) == 0 {
		return ""
	}
	return d.legs[0].Instrument.Underlying
}
