// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"spread-trader/internal/models"
)

// OrderStore defines the interface for the order journal.
type OrderStore interface {
	SaveOrder(ctx context.Context, record *OrderRecord) error
	GetOrder(ctx context.Context, id string) (*OrderRecord, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]OrderRecord, error)
	UpdateOrderStatus(ctx context.Context, id, status, brokerOrderID string) error

	// Lifecycle
	Close() error
}

// Journal statuses.
const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusFailed    = "FAILED"
)

// OrderRecord is one journaled order document.
type OrderRecord struct {
	ID            string
	BrokerOrderID string
	Symbol        string
	Strategy      models.ComplexOrderStrategyType
	OrderType     models.OrderType
	PriceType     models.NetPriceType
	Price         string // empty for market orders
	Quantity      int
	Status        string
	Payload       []byte // brokerage JSON encoding
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrderRecord describes doc and its encoded payload as a draft journal record.
func NewOrderRecord(doc *models.OrderDocument, payload []byte) *OrderRecord {
	now := time.Now().UTC()
	record := &OrderRecord{
		ID:        uuid.NewString(),
		Symbol:    doc.Underlying(),
		Strategy:  doc.ComplexType,
		OrderType: doc.OrderType,
		PriceType: doc.NetPriceType,
		Quantity:  doc.Quantity,
		Status:    StatusDraft,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Price.Valid {
		record.Price = doc.Price.Decimal.String()
	}
	return record
}

// OrderFilter represents filters for querying journaled orders.
type OrderFilter struct {
	Symbol    string
	Strategy  models.ComplexOrderStrategyType
	Status    string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
