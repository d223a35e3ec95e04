package agents

import (
	"errors"
	"fmt"

	apperrors "spread-trader/internal/errors"
)

// ErrorDescription is a stable code plus a user-facing message for a failed tool call.
type ErrorDescription struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var errorCatalog = []struct {
	kind    error
	code    string
	message string
}{
	{apperrors.ErrInvalidLeg, "INVALID_LEG", "A leg parameter is invalid"},
	{apperrors.ErrInvalidSpreadConfiguration, "INVALID_SPREAD", "The spread legs do not form a valid vertical"},
	{apperrors.ErrInvalidStrikeOrdering, "INVALID_STRIKE_ORDERING", "Iron condor strikes must satisfy put low < put high < call low < call high with shared expiration and quantity"},
	{apperrors.ErrUnsupportedStrategyVariant, "UNSUPPORTED_VARIANT", "Only the credit iron condor is supported"},
	{apperrors.ErrMissingPrice, "MISSING_PRICE", "A limit price is required for this order type"},
	{apperrors.ErrUnexpectedPrice, "UNEXPECTED_PRICE", "Market orders must not carry a price"},
	{apperrors.ErrInvalidPrice, "INVALID_PRICE", "The limit price must be positive"},
	{apperrors.ErrPriceTypeMismatch, "PRICE_TYPE_MISMATCH", "The order type contradicts the strategy's debit or credit classification"},
	{apperrors.ErrInvalidOrderType, "INVALID_ORDER_TYPE", "Order type must be MARKET, LIMIT, NET_DEBIT or NET_CREDIT"},
	{apperrors.ErrInvalidDuration, "INVALID_DURATION", "Duration must be DAY or GOOD_TILL_CANCEL"},
	{apperrors.ErrInvalidSession, "INVALID_SESSION", "Session must be NORMAL or EXTENDED"},
	{apperrors.ErrInvalidStrategy, "INVALID_STRATEGY", "The strategy is missing or malformed"},
	{apperrors.ErrOrderRejected, "ORDER_REJECTED", "The order was rejected"},
	{apperrors.ErrConnectionFailed, "BROKER_UNAVAILABLE", "The brokerage could not be reached"},
	{apperrors.ErrRateLimited, "RATE_LIMITED", "Too many requests, try again later"},
	{apperrors.ErrDatabaseError, "JOURNAL_ERROR", "The order journal could not be written"},
	{errInvalidArguments, "INVALID_ARGUMENTS", "The tool arguments could not be parsed"},
	{errUnknownTool, "UNKNOWN_TOOL", "No such tool"},
}

// DescribeError maps an error to its code and a user-facing message. Field-level detail
// from a StrategyError is appended to the message.
func DescribeError(err error) ErrorDescription {
	if err == nil {
		return ErrorDescription{}
	}

	desc := ErrorDescription{Code: "INTERNAL", Message: "Unexpected error"}
	for _, entry := range errorCatalog {
		if errors.Is(err, entry.kind) {
			desc.Code = entry.code
			desc.Message = entry.message
			break
		}
	}

	var se *apperrors.StrategyError
	if errors.As(err, &se) {
		desc.Field = se.Field
		if se.Field != "" {
			desc.Message = fmt.Sprintf("%s: %s (%v) %s", desc.Message, se.Field, se.Value, se.Reason)
		} else {
			desc.Message = fmt.Sprintf("%s: %s", desc.Message, se.Reason)
		}
		return desc
	}

	var be *apperrors.BrokerError
	if errors.As(err, &be) && be.Message != "" {
		desc.Message = fmt.Sprintf("%s: %s", desc.Message, be.Message)
	}
	return desc
}
