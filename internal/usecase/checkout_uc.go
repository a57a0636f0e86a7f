package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/adapter"
	"course-marketplace/internal/infra/logging"
	"course-marketplace/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// CheckoutUseCase issues gateway orders for priced baskets.
type CheckoutUseCase interface {
	CreateOrder(ctx context.Context, basket *model.Basket) (*model.CheckoutOrder, error)
}

const gatewayCallTimeout = 15 * time.Second

type checkoutUC struct {
	pricing  PricingUseCase
	gateway  adapter.PaymentGateway
	currency string
	log      *zerolog.Logger
}

func NewCheckoutUseCase(pricing PricingUseCase, gateway adapter.PaymentGateway, currency string, logger *zerolog.Logger) *checkoutUC {
	if currency == "" {
		currency = "INR"
	}
	return &checkoutUC{pricing: pricing, gateway: gateway, currency: currency, log: logger}
}

// CreateOrder resolves the server-side total, registers a gateway order for
// it in minor units, and returns the order together with the computed total
// so the client can display the charged amount independent of its request.
func (u *checkoutUC) CreateOrder(ctx context.Context, basket *model.Basket) (*model.CheckoutOrder, error) {
	l := logging.With(ctx, u.log)
	defer logging.TraceDuration(l, "CheckoutUC.CreateOrder")()

	total, err := u.pricing.ResolveTotal(ctx, basket.CourseIDs)
	if err != nil {
		metrics.IncOrder("rejected", string(basket.Kind))
		return nil, err
	}

	amount := int64(math.Round(total * 100))

	// Receipt is a per-request correlation token; ULID keeps it unique and
	// time-ordered. The gateway's own order id remains the true key.
	receipt := ulid.Make().String()
	notes := map[string]string{
		model.NoteCourseIDs: strings.Join(basket.CourseIDs, ","),
		model.NoteKind:      string(basket.Kind),
	}

	gwCtx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	order, err := u.gateway.CreateOrder(gwCtx, amount, u.currency, receipt, notes)
	if err != nil {
		metrics.IncOrder("gateway_error", string(basket.Kind))
		l.Error().Err(err).Str("receipt", receipt).Msg("gateway order creation failed")
		if gwCtx.Err() != nil {
			return nil, domain.ErrGatewayError
		}
		return nil, err
	}

	metrics.IncOrder("created", string(basket.Kind))
	metrics.ObserveOrderAmount(amount)
	l.Info().
		Str("order_id", order.ID).
		Str("kind", string(basket.Kind)).
		Int64("amount_paise", amount).
		Int("courses", len(basket.CourseIDs)).
		Msg("gateway order created")

	return &model.CheckoutOrder{GatewayOrder: *order, CalculatedAmount: total}, nil
}
