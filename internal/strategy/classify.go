package strategy

import (
	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

type spreadShape struct {
	optionType models.OptionType
	lowSide    models.OrderSide
	highSide   models.OrderSide
}

// A vertical is a debit when the more valuable leg is bought: the lower strike for calls,
// the higher strike for puts. The put rows follow market convention so that the put side
// of a short iron condor (long low, short high) is a credit. See "Classification rule" in DESIGN.md.
var spreadClassification = map[spreadShape]models.NetPriceType{
	{models.OptionTypeCall, models.OrderSideBuy, models.OrderSideSell}: models.NetDebit,  // bull call
	{models.OptionTypeCall, models.OrderSideSell, models.OrderSideBuy}: models.NetCredit, // bear call
	{models.OptionTypePut, models.OrderSideBuy, models.OrderSideSell}:  models.NetCredit, // bull put
	{models.OptionTypePut, models.OrderSideSell, models.OrderSideBuy}:  models.NetDebit,  // bear put
}

// Classify determines whether a vertical spread with the given sides on its lower and
// higher strikes is a net-debit or net-credit structure.
func Classify(optionType models.OptionType, lowSide, highSide models.OrderSide) (models.NetPriceType, error) {
	if !optionType.Valid() {
		return "", apperrors.InvalidLeg("option_type", optionType, "must be CALL or PUT")
	}
	if !lowSide.Valid() {
		return "", apperrors.InvalidLeg("side", lowSide, "must be BUY or SELL")
	}
	if !highSide.Valid() {
		return "", apperrors.InvalidLeg("side", highSide, "must be BUY or SELL")
	}
	if lowSide == highSide {
		return "", apperrors.InvalidSpread("sides", lowSide, "a vertical spread needs one long and one short leg")
	}
	return spreadClassification[spreadShape{optionType, lowSide, highSide}], nil
}

// CanonicalOrderType returns the net order type matching a strategy's price type.
func CanonicalOrderType(p models.NetPriceType) models.OrderType {
	if p == models.NetCredit {
		return models.OrderTypeNetCredit
	}
	return models.OrderTypeNetDebit
}
