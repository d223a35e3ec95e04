package broker

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"spread-trader/internal/models"
)

// WireOrder is the brokerage order-entry JSON schema.
type WireOrder struct {
	OrderType                string           `json:"orderType"`
	Session                  string           `json:"session"`
	Duration                 string           `json:"duration"`
	Price                    *decimal.Decimal `json:"price,omitempty"`
	OrderStrategyType        string           `json:"orderStrategyType"`
	ComplexOrderStrategyType string           `json:"complexOrderStrategyType"`
	Quantity                 int              `json:"quantity"`
	OrderLegCollection       []WireOrderLeg   `json:"orderLegCollection"`
}

// WireOrderLeg is one entry of the order leg collection.
type WireOrderLeg struct {
	Instruction string         `json:"instruction"`
	Quantity    int            `json:"quantity"`
	Instrument  WireInstrument `json:"instrument"`
}

// WireInstrument identifies an option contract on the wire.
type WireInstrument struct {
	Symbol           string `json:"symbol"`
	AssetType        string `json:"assetType"`
	PutCall          string `json:"putCall"`
	UnderlyingSymbol string `json:"underlyingSymbol"`
}

// ToWire converts an order document to its wire representation, preserving leg order.
func ToWire(doc *models.OrderDocument) (*WireOrder, error) {
	if doc == nil {
		return nil, fmt.Errorf("order document is nil")
	}

	w := &WireOrder{
		OrderType:                string(doc.OrderType),
		Session:                  string(doc.Session),
		Duration:                 string(doc.Duration),
		OrderStrategyType:        string(doc.OrderStrategyType),
		ComplexOrderStrategyType: string(doc.ComplexType),
		Quantity:                 doc.Quantity,
	}
	if doc.Price.Valid {
		p := doc.Price.Decimal
		w.Price = &p
	}

	for _, leg := range doc.Legs() {
		instruction := leg.Instruction()
		if instruction == "" {
			return nil, fmt.Errorf("leg %s has no instruction for %s/%s", leg.Instrument, leg.Side, leg.PositionEffect)
		}
		w.OrderLegCollection = append(w.OrderLegCollection, WireOrderLeg{
			Instruction: instruction,
			Quantity:    leg.Quantity,
			Instrument: WireInstrument{
				Symbol:           leg.Instrument.OCCSymbol(),
				AssetType:        "OPTION",
				PutCall:          string(leg.Instrument.OptionType),
				UnderlyingSymbol: leg.Instrument.Underlying,
			},
		})
	}
	return w, nil
}

// EncodeOrder serializes an order document to brokerage JSON.
func EncodeOrder(doc *models.OrderDocument) ([]byte, error) {
	w, err := ToWire(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}
