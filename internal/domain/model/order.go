package model

// GatewayOrder is the payment provider's order object as we receive it back
// from the orders API. It is owned by the gateway; we only reference its ID
// during verification.
type GatewayOrder struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"` // minor units (paise)
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes"`
}

// Note keys attached to every gateway order so the verify callback can
// reconcile which courses were in the basket.
const (
	NoteCourseIDs = "course_ids"
	NoteKind      = "kind"
)

// CheckoutOrder is what the order endpoint returns to the client: the raw
// gateway order plus the server-computed total in major units, so the client
// can display and cross-check the charged amount independent of anything it
// requested.
type CheckoutOrder struct {
	GatewayOrder
	CalculatedAmount float64 `json:"calculatedAmount"`
}

// PaymentCallback is the transient verification message posted by the client
// after the gateway checkout completes. It is consumed exactly once and never
// persisted.
type PaymentCallback struct {
	OrderID   string
	PaymentID string
	Signature string
}

func (c PaymentCallback) Complete() bool {
	return c.OrderID != "" && c.PaymentID != "" && c.Signature != ""
}
