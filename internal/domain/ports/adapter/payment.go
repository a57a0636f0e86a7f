package adapter

import (
	"context"

	"course-marketplace/internal/domain/model"
)

// PaymentGateway creates orders with the external payment provider.
type PaymentGateway interface {
	Name() string
	// CreateOrder registers an order for amount minor units and returns the
	// provider's order object. notes travel opaquely to the provider and come
	// back on the verification callback.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.GatewayOrder, error)
}
