package broker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"spread-trader/internal/models"
)

// PaperOrder is an order accepted by the paper submitter.
type PaperOrder struct {
	ID          string
	Document    *models.OrderDocument
	Payload     []byte
	Status      string
	SubmittedAt time.Time
}

// PaperSubmitter implements OrderSubmitter by recording orders in memory.
type PaperSubmitter struct {
	orders       map[string]*PaperOrder
	orderCounter int
	failures     []error

	mu sync.RWMutex
}

// NewPaperSubmitter creates a new paper order submitter.
func NewPaperSubmitter() *PaperSubmitter {
	return &PaperSubmitter{
		orders: make(map[string]*PaperOrder),
	}
}

// SubmitOrder encodes the document and records it as accepted.
func (p *PaperSubmitter) SubmitOrder(ctx context.Context, doc *models.OrderDocument) (*OrderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := EncodeOrder(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding paper order: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.failures) > 0 {
		err := p.failures[0]
		p.failures = p.failures[1:]
		return nil, err
	}

	p.orderCounter++
	now := time.Now()
	orderID := fmt.Sprintf("PAPER_%d_%d", now.Unix(), p.orderCounter)

	p.orders[orderID] = &PaperOrder{
		ID:          orderID,
		Document:    doc,
		Payload:     payload,
		Status:      StatusAccepted,
		SubmittedAt: now,
	}

	return &OrderResult{
		OrderID:     orderID,
		Status:      StatusAccepted,
		Message:     "Paper order placed",
		SubmittedAt: now,
	}, nil
}

// FailNext makes the next submissions fail with the given errors, in order.
func (p *PaperSubmitter) FailNext(errs ...error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures = append(p.failures, errs...)
}

// GetOrder returns a recorded order.
func (p *PaperSubmitter) GetOrder(orderID string) (PaperOrder, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	o, ok := p.orders[orderID]
	if !ok {
		return PaperOrder{}, false
	}
	return *o, true
}

// Orders returns all recorded orders, oldest first.
func (p *PaperSubmitter) Orders() []PaperOrder {
	p.mu.RLock()
	defer p.mu.RUnlock()

	orders := make([]PaperOrder, 0, len(p.orders))
	for _, o := range p.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].SubmittedAt.Equal(orders[j].SubmittedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].SubmittedAt.Before(orders[j].SubmittedAt)
	})
	return orders
}

// Reset clears all recorded orders and pending failures.
func (p *PaperSubmitter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.orders = make(map[string]*PaperOrder)
	p.orderCounter = 0
	p.failures = nil
}
