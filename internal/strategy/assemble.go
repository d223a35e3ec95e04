package strategy

import (
	"github.com/shopspring/decimal"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// Assemble wraps a strategy's legs with order-level attributes into a submittable
// document. Nothing is returned unless every check passes.
func Assemble(s Strategy, orderType models.OrderType, duration models.Duration, session models.Session,
	limitPrice decimal.NullDecimal) (*models.OrderDocument, error) {
	if isNil(s) {
		return nil, apperrors.NewStrategyError(apperrors.ErrInvalidStrategy, "strategy", nil, "strategy is required")
	}
	if !orderType.Valid() {
		return nil, apperrors.NewStrategyError(apperrors.ErrInvalidOrderType, "order_type", orderType,
			"must be MARKET, LIMIT, NET_DEBIT or NET_CREDIT")
	}
	if !duration.Valid() {
		return nil, apperrors.NewStrategyError(apperrors.ErrInvalidDuration, "duration", duration,
			"must be DAY or GOOD_TILL_CANCEL")
	}
	if !session.Valid() {
		return nil, apperrors.NewStrategyError(apperrors.ErrInvalidSession, "session", session,
			"must be NORMAL or EXTENDED")
	}
	if err := checkPrice(orderType, limitPrice); err != nil {
		return nil, err
	}
	if err := checkPriceType(s, orderType); err != nil {
		return nil, err
	}

	legs := s.Legs()
	if len(legs) != s.ComplexType().Cardinality() {
		return nil, apperrors.NewStrategyError(apperrors.ErrInvalidStrategy, "legs", len(legs),
			"leg count does not match strategy shape")
	}

	doc := models.NewOrderDocument(legs)
	doc.OrderType = orderType
	doc.Duration = duration
	doc.Session = session
	doc.Price = limitPrice
	doc.OrderStrategyType = models.OrderStrategySingle
	doc.ComplexType = s.ComplexType()
	doc.NetPriceType = s.NetPriceType()
	doc.Quantity = s.Quantity()
	return doc, nil
}

func checkPrice(orderType models.OrderType, limitPrice decimal.NullDecimal) error {
	switch {
	case orderType.RequiresPrice() && !limitPrice.Valid:
		return apperrors.NewStrategyError(apperrors.ErrMissingPrice, "limit_price", nil,
			string(orderType)+" orders require a limit price")
	case !orderType.RequiresPrice() && limitPrice.Valid:
		return apperrors.NewStrategyError(apperrors.ErrUnexpectedPrice, "limit_price", limitPrice.Decimal,
			string(orderType)+" orders must not carry a limit price")
	case limitPrice.Valid && !limitPrice.Decimal.IsPositive():
		return apperrors.NewStrategyError(apperrors.ErrInvalidPrice, "limit_price", limitPrice.Decimal,
			"limit price must be positive")
	}
	return nil
}

func checkPriceType(s Strategy, orderType models.OrderType) error {
	if orderType != models.OrderTypeNetDebit && orderType != models.OrderTypeNetCredit {
		return nil
	}
	if want := CanonicalOrderType(s.NetPriceType()); orderType != want {
		return apperrors.NewStrategyError(apperrors.ErrPriceTypeMismatch, "order_type", orderType,
			"strategy is a net "+string(s.NetPriceType())+", use "+string(want))
	}
	return nil
}

func isNil(s Strategy) bool {
	switch v := s.(type) {
	case *VerticalSpread:
		return v == nil
	case *IronCondor:
		return v == nil
	}
	return s == nil
}
