// Package strategy builds multi-leg option orders (vertical spreads and iron condors)
// from primitive trading parameters. Everything here is pure: no I/O, no shared state.
package strategy

import (
	"spread-trader/internal/models"
)

// Strategy is the closed set of multi-leg shapes the order envelope can wrap.
// It is implemented only by *VerticalSpread and *IronCondor.
type Strategy interface {
	// Legs returns the legs in canonical (ascending strike) order.
	Legs() []models.Leg
	// Quantity returns the quantity shared by every leg.
	Quantity() int
	NetPriceType() models.NetPriceType
	ComplexType() models.ComplexOrderStrategyType

	sealed()
}

var (
	_ Strategy = (*VerticalSpread)(nil)
	_ Strategy = (*IronCondor)(nil)
)
