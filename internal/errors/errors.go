// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Strategy construction sentinel errors. Every StrategyError unwraps to one of these.
var (
	ErrInvalidLeg                 = errors.New("invalid leg")
	ErrInvalidSpreadConfiguration = errors.New("invalid spread configuration")
	ErrInvalidStrikeOrdering      = errors.New("invalid strike ordering")
	ErrUnsupportedStrategyVariant = errors.New("unsupported strategy variant")
	ErrMissingPrice               = errors.New("missing limit price")
	ErrUnexpectedPrice            = errors.New("unexpected limit price")
	ErrInvalidPrice               = errors.New("invalid limit price")
	ErrPriceTypeMismatch          = errors.New("order type does not match strategy price type")
	ErrInvalidOrderType           = errors.New("invalid order type")
	ErrInvalidDuration            = errors.New("invalid duration")
	ErrInvalidSession             = errors.New("invalid session")
	ErrInvalidStrategy            = errors.New("invalid strategy")
)

// Adapter sentinel errors.
var (
	ErrOrderRejected    = errors.New("order rejected")
	ErrConnectionFailed = errors.New("connection failed")
	ErrRateLimited      = errors.New("rate limited")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
)

// StrategyError is a local validation failure raised while building legs, spreads,
// condors or order envelopes. It is never retryable.
type StrategyError struct {
	Kind   error
	Field  string
	Value  interface{}
	Reason string
}

func (e *StrategyError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s (%v): %s", e.Kind, e.Field, e.Value, e.Reason)
}

func (e *StrategyError) Unwrap() error {
	return e.Kind
}

// NewStrategyError creates a new StrategyError of the given kind.
func NewStrategyError(kind error, field string, value interface{}, reason string) *StrategyError {
	return &StrategyError{
		Kind:   kind,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// InvalidLeg creates an ErrInvalidLeg error.
func InvalidLeg(field string, value interface{}, reason string) *StrategyError {
	return NewStrategyError(ErrInvalidLeg, field, value, reason)
}

// InvalidSpread creates an ErrInvalidSpreadConfiguration error.
func InvalidSpread(field string, value interface{}, reason string) *StrategyError {
	return NewStrategyError(ErrInvalidSpreadConfiguration, field, value, reason)
}

// InvalidStrikeOrdering creates an ErrInvalidStrikeOrdering error.
func InvalidStrikeOrdering(value interface{}, reason string) *StrategyError {
	return NewStrategyError(ErrInvalidStrikeOrdering, "strikes", value, reason)
}

// BrokerError represents an error from the order submission collaborator.
type BrokerError struct {
	Code      string
	Message   string
	Retryable bool
	Err       error
}

func (e *BrokerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("broker error [%s]: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("broker error [%s]: %s", e.Code, e.Message)
}

func (e *BrokerError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the failure is transient.
func (e *BrokerError) IsRetryable() bool {
	return e.Retryable
}

// NewBrokerError creates a new non-retryable BrokerError.
func NewBrokerError(code, message string, err error) *BrokerError {
	return &BrokerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewTransientBrokerError creates a BrokerError that may be retried.
func NewTransientBrokerError(code, message string, err error) *BrokerError {
	return &BrokerError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Err:       err,
	}
}

// RetryableError is implemented by errors that know whether they are transient.
type RetryableError interface {
	error
	IsRetryable() bool
}

// IsRetryable reports whether any error in err's chain is marked retryable.
func IsRetryable(err error) bool {
	var re RetryableError
	if errors.As(err, &re) {
		return re.IsRetryable()
	}
	return false
}

// DataError represents a persistence-related error.
type DataError struct {
	DataType string
	ID       string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.ID, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.ID, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, id, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		ID:       id,
		Message:  message,
		Err:      err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
