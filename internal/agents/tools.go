// Package agents exposes the strategy engine to AI assistants as function tools.
package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"spread-trader/internal/broker"
	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/logging"
	"spread-trader/internal/models"
	"spread-trader/internal/store"
	"spread-trader/internal/ticket"
)

// Tool names.
const (
	ToolBuildVerticalSpread = "build_vertical_spread"
	ToolBuildIronCondor     = "build_iron_condor"
)

var (
	errUnknownTool      = errors.New("unknown tool")
	errInvalidArguments = errors.New("invalid tool arguments")
	errSubmitDisabled   = errors.New("order submission is not configured")
)

// ToolExecutor executes AI tool calls against the strategy engine.
type ToolExecutor struct {
	submitter broker.OrderSubmitter
	journal   store.OrderStore
	defaults  ticket.Defaults
	logger    zerolog.Logger
}

// NewToolExecutor creates a new tool executor. submitter and journal may be nil, in
// which case submit requests fail and documents are not journaled.
func NewToolExecutor(submitter broker.OrderSubmitter, journal store.OrderStore, defaults ticket.Defaults, logger zerolog.Logger) *ToolExecutor {
	return &ToolExecutor{
		submitter: submitter,
		journal:   journal,
		defaults:  defaults,
		logger:    logger,
	}
}

const envelopeProperties = `
						"order_type": {
							"type": "string",
							"enum": ["MARKET", "LIMIT", "NET_DEBIT", "NET_CREDIT"],
							"description": "Order type. Omit to use the strategy's own NET_DEBIT or NET_CREDIT."
						},
						"limit_price": {
							"type": "string",
							"description": "Positive net limit price, e.g. \"1.15\". Required unless order_type is MARKET."
						},
						"duration": {
							"type": "string",
							"enum": ["DAY", "GOOD_TILL_CANCEL"],
							"description": "Order duration. Omit to use the configured default."
						},
						"session": {
							"type": "string",
							"enum": ["NORMAL", "EXTENDED"],
							"description": "Trading session. Omit to use the configured default."
						},
						"closing": {
							"type": "boolean",
							"description": "Build the order that closes a position opened with these parameters.",
							"default": false
						},
						"submit": {
							"type": "boolean",
							"description": "Submit the order after building it. Defaults to returning the document only.",
							"default": false
						}`

// GetToolDefinitions returns all available tool definitions for OpenAI function calling.
func GetToolDefinitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolBuildVerticalSpread,
				Description: "Build a two-leg vertical spread order on one underlying, expiration and option type. The lower strike takes low_side and the higher strike the opposite side. Buying the more valuable leg makes the spread a debit, otherwise it is a credit.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"symbol": {
							"type": "string",
							"description": "Underlying symbol (e.g., SPY, XYZ)"
						},
						"expiration": {
							"type": "string",
							"description": "Expiration date, YYYY-MM-DD"
						},
						"option_type": {
							"type": "string",
							"enum": ["CALL", "PUT"]
						},
						"low_strike": {
							"type": "string",
							"description": "Lower strike price"
						},
						"high_strike": {
							"type": "string",
							"description": "Higher strike price, strictly above low_strike"
						},
						"low_side": {
							"type": "string",
							"enum": ["BUY", "SELL"],
							"description": "Side of the lower-strike leg (for closing orders, the side it was opened with)"
						},
						"quantity": {
							"type": "integer",
							"description": "Contracts per leg",
							"minimum": 1
						},` + envelopeProperties + `
					},
					"required": ["symbol", "expiration", "option_type", "low_strike", "high_strike", "low_side", "quantity"],
					"additionalProperties": false
				}`),
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolBuildIronCondor,
				Description: "Build a four-leg short iron condor order: a credit put spread below a credit call spread, sharing underlying, expiration and quantity. Strikes must satisfy put_low < put_high < call_low < call_high.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"symbol": {
							"type": "string",
							"description": "Underlying symbol (e.g., SPY, XYZ)"
						},
						"expiration": {
							"type": "string",
							"description": "Expiration date, YYYY-MM-DD"
						},
						"put_low_strike": {
							"type": "string",
							"description": "Long put strike"
						},
						"put_high_strike": {
							"type": "string",
							"description": "Short put strike"
						},
						"call_low_strike": {
							"type": "string",
							"description": "Short call strike"
						},
						"call_high_strike": {
							"type": "string",
							"description": "Long call strike"
						},
						"quantity": {
							"type": "integer",
							"description": "Contracts per leg",
							"minimum": 1
						},
						"variant": {
							"type": "string",
							"enum": ["credit", "debit"],
							"description": "Only credit is supported",
							"default": "credit"
						},` + envelopeProperties + `
					},
					"required": ["symbol", "expiration", "put_low_strike", "put_high_strike", "call_low_strike", "call_high_strike", "quantity"],
					"additionalProperties": false
				}`),
			},
		},
	}
}

// Request is one build request: the order ticket plus whether to submit it.
// It is also the argument shape shared by both tools.
type Request struct {
	ticket.Ticket
	Submit bool `json:"submit"`
}

// LegResult describes one leg of a built order.
type LegResult struct {
	Instruction string `json:"instruction"`
	Symbol      string `json:"symbol"`
	OptionType  string `json:"option_type"`
	Strike      string `json:"strike"`
	Quantity    int    `json:"quantity"`
}

// ToolResult is the JSON returned by ExecuteTool.
type ToolResult struct {
	OK         bool              `json:"ok"`
	Strategy   string            `json:"strategy,omitempty"`
	Underlying string            `json:"underlying,omitempty"`
	Expiration string            `json:"expiration,omitempty"`
	PriceType  string            `json:"price_type,omitempty"`
	OrderType  string            `json:"order_type,omitempty"`
	Price      string            `json:"price,omitempty"`
	Quantity   int               `json:"quantity,omitempty"`
	Legs       []LegResult       `json:"legs,omitempty"`
	Order      json.RawMessage   `json:"order,omitempty"`
	JournalID  string            `json:"journal_id,omitempty"`
	OrderID    string            `json:"order_id,omitempty"`
	Status     string            `json:"status,omitempty"`
	Error      *ErrorDescription `json:"error,omitempty"`
}

// ExecuteTool executes a tool call and returns the result as a JSON string. On failure
// the returned string still carries the described error so it can be relayed to the
// assistant, and the error is returned alongside it.
func (te *ToolExecutor) ExecuteTool(ctx context.Context, toolName string, args json.RawMessage) (string, error) {
	result, err := te.execute(ctx, toolName, args)
	if err != nil {
		logging.LogRejected(te.logger, toolName, err)
		desc := DescribeError(err)
		result = &ToolResult{OK: false, Error: &desc}
	}

	out, mErr := json.Marshal(result)
	if mErr != nil {
		return "", fmt.Errorf("encoding tool result: %w", mErr)
	}
	return string(out), err
}

func (te *ToolExecutor) execute(ctx context.Context, toolName string, args json.RawMessage) (*ToolResult, error) {
	var strategyName string
	switch toolName {
	case ToolBuildVerticalSpread:
		strategyName = ticket.StrategyVertical
	case ToolBuildIronCondor:
		strategyName = ticket.StrategyIronCondor
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, toolName)
	}

	var req Request
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	req.Strategy = strategyName

	return te.Run(ctx, req)
}

// Run builds the requested order, journals it when a journal is configured and
// submits it when asked.
func (te *ToolExecutor) Run(ctx context.Context, req Request) (*ToolResult, error) {
	doc, err := req.Build(te.defaults)
	if err != nil {
		return nil, err
	}

	payload, err := broker.EncodeOrder(doc)
	if err != nil {
		return nil, err
	}

	result := describeDocument(doc, payload)
	result.Status = store.StatusDraft

	var record *store.OrderRecord
	if te.journal != nil {
		record = store.NewOrderRecord(doc, payload)
		if err := te.journal.SaveOrder(ctx, record); err != nil {
			return nil, err
		}
		result.JournalID = record.ID
	}

	if !req.Submit {
		logging.LogOrder(te.logger, doc, "", result.Status)
		return result, nil
	}

	if te.submitter == nil {
		return nil, apperrors.NewBrokerError("SUBMIT_DISABLED", errSubmitDisabled.Error(), apperrors.ErrOrderRejected)
	}

	submitted, err := te.submitter.SubmitOrder(ctx, doc)
	if err != nil {
		te.recordStatus(ctx, record, store.StatusFailed, "")
		return nil, err
	}
	te.recordStatus(ctx, record, store.StatusSubmitted, submitted.OrderID)

	result.OrderID = submitted.OrderID
	result.Status = submitted.Status
	logging.LogOrder(te.logger, doc, submitted.OrderID, submitted.Status)
	return result, nil
}

func (te *ToolExecutor) recordStatus(ctx context.Context, record *store.OrderRecord, status, orderID string) {
	if record == nil {
		return
	}
	if err := te.journal.UpdateOrderStatus(ctx, record.ID, status, orderID); err != nil {
		te.logger.Warn().Err(err).Str("journal_id", record.ID).Msg("Failed to update journal status")
	}
}

func describeDocument(doc *models.OrderDocument, payload []byte) *ToolResult {
	result := &ToolResult{
		OK:         true,
		Strategy:   string(doc.ComplexType),
		Underlying: doc.Underlying(),
		PriceType:  string(doc.NetPriceType),
		OrderType:  string(doc.OrderType),
		Quantity:   doc.Quantity,
		Order:      json.RawMessage(payload),
	}
	if doc.Price.Valid {
		result.Price = doc.Price.Decimal.String()
	}
	for i, leg := range doc.Legs() {
		if i == 0 {
			result.Expiration = leg.Instrument.Expiration.Format(models.ExpirationLayout)
		}
		result.Legs = append(result.Legs, LegResult{
			Instruction: leg.Instruction(),
			Symbol:      leg.Instrument.OCCSymbol(),
			OptionType:  string(leg.Instrument.OptionType),
			Strike:      leg.Strike().String(),
			Quantity:    leg.Quantity,
		})
	}
	return result
}
