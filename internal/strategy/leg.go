package strategy

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// BuildLeg constructs a single order leg. The expiration is normalized to its calendar date
// and the symbol to upper case.
func BuildLeg(symbol string, expiration time.Time, strike decimal.Decimal, optionType models.OptionType,
	side models.OrderSide, effect models.PositionEffect, quantity int) (models.Leg, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	switch {
	case quantity <= 0:
		return models.Leg{}, apperrors.InvalidLeg("quantity", quantity, "quantity must be positive")
	case !optionType.Valid():
		return models.Leg{}, apperrors.InvalidLeg("option_type", optionType, "must be CALL or PUT")
	case !side.Valid():
		return models.Leg{}, apperrors.InvalidLeg("side", side, "must be BUY or SELL")
	case !effect.Valid():
		return models.Leg{}, apperrors.InvalidLeg("position_effect", effect, "must be OPENING or CLOSING")
	case symbol == "":
		return models.Leg{}, apperrors.InvalidLeg("symbol", symbol, "symbol cannot be empty")
	case len(symbol) > models.MaxOCCRootLength:
		return models.Leg{}, apperrors.InvalidLeg("symbol", symbol, "symbol longer than 6 characters")
	case expiration.IsZero():
		return models.Leg{}, apperrors.InvalidLeg("expiration", expiration, "expiration is required")
	case !strike.IsPositive():
		return models.Leg{}, apperrors.InvalidLeg("strike", strike, "strike must be positive")
	case strike.GreaterThanOrEqual(decimal.NewFromInt(models.MaxOCCStrike)):
		return models.Leg{}, apperrors.InvalidLeg("strike", strike, "strike must be below 100000")
	}

	return models.Leg{
		Instrument: models.Instrument{
			Underlying: symbol,
			Expiration: expirationDate(expiration),
			Strike:     strike,
			OptionType: optionType,
		},
		Side:           side,
		PositionEffect: effect,
		Quantity:       quantity,
	}, nil
}

func expirationDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
