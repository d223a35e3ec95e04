// Package broker provides the order submission boundary: brokerage wire encoding and
// submitter implementations.
package broker

import (
	"context"
	"time"

	"spread-trader/internal/models"
)

// OrderSubmitter sends an assembled order document to a brokerage.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, doc *models.OrderDocument) (*OrderResult, error)
}

// OrderResult represents the result of an order placement.
type OrderResult struct {
	OrderID     string
	Status      string
	Message     string
	SubmittedAt time.Time
}

// Order statuses reported by submitters.
const (
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
	StatusDraft    = "DRAFT"
)
