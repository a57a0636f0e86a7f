package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks the payment callback signature:
// hex(HMAC-SHA256(secret, order_id + "|" + payment_id)). The comparison is
// constant-time; the expected value must never be logged or returned to the
// caller, only the boolean outcome.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
