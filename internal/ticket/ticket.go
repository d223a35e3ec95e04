// Package ticket parses order tickets, the YAML (or JSON) description of one strategy
// order, and runs them through the strategy engine.
package ticket

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
	"spread-trader/internal/strategy"
)

// Strategy names accepted in tickets.
const (
	StrategyVertical   = "vertical"
	StrategyIronCondor = "iron_condor"
)

// Ticket describes one vertical spread or iron condor order.
//
// For a closing vertical, LowSide is the side the lower strike was opened with.
type Ticket struct {
	Strategy   string `yaml:"strategy" json:"strategy,omitempty"`
	Symbol     string `yaml:"symbol" json:"symbol"`
	Expiration string `yaml:"expiration" json:"expiration"`
	Quantity   int    `yaml:"quantity" json:"quantity"`
	Closing    bool   `yaml:"closing,omitempty" json:"closing,omitempty"`

	// Vertical spread
	OptionType string          `yaml:"option_type,omitempty" json:"option_type,omitempty"`
	LowStrike  decimal.Decimal `yaml:"low_strike,omitempty" json:"low_strike,omitempty"`
	HighStrike decimal.Decimal `yaml:"high_strike,omitempty" json:"high_strike,omitempty"`
	LowSide    string          `yaml:"low_side,omitempty" json:"low_side,omitempty"`

	// Iron condor
	PutLowStrike   decimal.Decimal `yaml:"put_low_strike,omitempty" json:"put_low_strike,omitempty"`
	PutHighStrike  decimal.Decimal `yaml:"put_high_strike,omitempty" json:"put_high_strike,omitempty"`
	CallLowStrike  decimal.Decimal `yaml:"call_low_strike,omitempty" json:"call_low_strike,omitempty"`
	CallHighStrike decimal.Decimal `yaml:"call_high_strike,omitempty" json:"call_high_strike,omitempty"`
	Variant        string          `yaml:"variant,omitempty" json:"variant,omitempty"` // credit (default) or debit

	// Envelope
	OrderType  string           `yaml:"order_type,omitempty" json:"order_type,omitempty"`
	LimitPrice *decimal.Decimal `yaml:"limit_price,omitempty" json:"limit_price,omitempty"`
	Duration   string           `yaml:"duration,omitempty" json:"duration,omitempty"`
	Session    string           `yaml:"session,omitempty" json:"session,omitempty"`
}

// Defaults fill envelope fields a ticket leaves empty.
type Defaults struct {
	Duration models.Duration
	Session  models.Session
}

// Load reads and parses a ticket file.
func Load(path string) (*Ticket, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ticket: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a single YAML ticket. Unknown fields are rejected.
func Parse(r io.Reader) (*Ticket, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Ticket
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parsing ticket: empty document")
		}
		return nil, fmt.Errorf("parsing ticket: %w", err)
	}
	return &t, nil
}

// Encode renders t as YAML.
func Encode(t *Ticket) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Kind resolves the ticket's strategy name.
func (t *Ticket) Kind() (string, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(t.Strategy)), "-", "_") {
	case "vertical", "vertical_spread":
		return StrategyVertical, nil
	case "iron_condor", "condor":
		return StrategyIronCondor, nil
	}
	return "", apperrors.NewStrategyError(apperrors.ErrInvalidStrategy, "strategy", t.Strategy,
		"must be vertical or iron_condor")
}

// BuildStrategy runs the legs of the ticket through the matching factory.
func (t *Ticket) BuildStrategy() (strategy.Strategy, error) {
	kind, err := t.Kind()
	if err != nil {
		return nil, err
	}

	expiration, err := models.ParseExpiration(t.Expiration)
	if err != nil {
		return nil, apperrors.InvalidLeg("expiration", t.Expiration, "must be a YYYY-MM-DD date")
	}

	if kind == StrategyIronCondor {
		credit, err := t.creditVariant()
		if err != nil {
			return nil, err
		}
		if !credit {
			return nil, apperrors.NewStrategyError(apperrors.ErrUnsupportedStrategyVariant, "variant", t.Variant,
				"debit (reverse) iron condors are not supported")
		}
		if t.Closing {
			return strategy.BuildClosingIronCondor(t.Symbol, expiration,
				t.PutLowStrike, t.PutHighStrike, t.CallLowStrike, t.CallHighStrike, t.Quantity)
		}
		return strategy.BuildIronCondor(t.Symbol, expiration,
			t.PutLowStrike, t.PutHighStrike, t.CallLowStrike, t.CallHighStrike, t.Quantity, true)
	}

	optionType, ok := models.ParseOptionType(t.OptionType)
	if !ok {
		return nil, apperrors.InvalidLeg("option_type", t.OptionType, "must be CALL or PUT")
	}
	side, ok := models.ParseOrderSide(t.LowSide)
	if !ok {
		return nil, apperrors.InvalidLeg("low_side", t.LowSide, "must be BUY or SELL")
	}
	if t.Closing {
		return strategy.BuildClosingVerticalSpread(t.Symbol, expiration, t.LowStrike, t.HighStrike, optionType, side, t.Quantity)
	}
	return strategy.BuildVerticalSpread(t.Symbol, expiration, t.LowStrike, t.HighStrike, optionType, side, t.Quantity)
}

func (t *Ticket) creditVariant() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(t.Variant)) {
	case "", "credit", "short":
		return true, nil
	case "debit", "long", "reverse":
		return false, nil
	}
	return false, apperrors.NewStrategyError(apperrors.ErrUnsupportedStrategyVariant, "variant", t.Variant,
		"must be credit or debit")
}

// Build constructs the strategy and assembles its order document. An empty order type
// means the strategy's own NET_DEBIT or NET_CREDIT; empty duration and session come
// from defaults.
func (t *Ticket) Build(defaults Defaults) (*models.OrderDocument, error) {
	s, err := t.BuildStrategy()
	if err != nil {
		return nil, err
	}

	orderType := strategy.CanonicalOrderType(s.NetPriceType())
	if t.OrderType != "" {
		var ok bool
		if orderType, ok = models.ParseOrderType(t.OrderType); !ok {
			return nil, apperrors.NewStrategyError(apperrors.ErrInvalidOrderType, "order_type", t.OrderType,
				"must be MARKET, LIMIT, NET_DEBIT or NET_CREDIT")
		}
	}

	duration := defaults.Duration
	if t.Duration != "" {
		var ok bool
		if duration, ok = models.ParseDuration(t.Duration); !ok {
			return nil, apperrors.NewStrategyError(apperrors.ErrInvalidDuration, "duration", t.Duration,
				"must be DAY or GOOD_TILL_CANCEL")
		}
	}

	session := defaults.Session
	if t.Session != "" {
		var ok bool
		if session, ok = models.ParseSession(t.Session); !ok {
			return nil, apperrors.NewStrategyError(apperrors.ErrInvalidSession, "session", t.Session,
				"must be NORMAL or EXTENDED")
		}
	}

	var price decimal.NullDecimal
	if t.LimitPrice != nil {
		price = decimal.NewNullDecimal(*t.LimitPrice)
	}

	return strategy.Assemble(s, orderType, duration, session, price)
}
