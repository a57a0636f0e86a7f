package payment

import (
	"context"
	"fmt"
	"time"

	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopGateway)(nil)

// NoopGateway fakes order creation for dev mode and tests; no network calls.
type NoopGateway struct{}

func NewNoopGateway() *NoopGateway { return &NoopGateway{} }

func (g *NoopGateway) Name() string { return "noop" }

func (g *NoopGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.GatewayOrder, error) {
	return &model.GatewayOrder{
		ID:       fmt.Sprintf("order_dev_%d", time.Now().UnixNano()),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
		Notes:    notes,
	}, nil
}
