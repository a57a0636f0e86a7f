package model

import "time"

type GrantSource string

const (
	GrantSourceRazorpay GrantSource = "razorpay"
	GrantSourceManual   GrantSource = "manual_enrollment"
)

// EntitlementRecord is one time-bounded access grant for a (user, course)
// pair. PurchaseDate and DurationMonths are frozen at grant time so later
// policy changes never retroactively alter an existing grant. A re-purchase
// replaces the whole record with a freshly computed window.
type EntitlementRecord struct {
	PurchaseDate   time.Time   `json:"purchaseDate"`
	ExpiryDate     time.Time   `json:"expiryDate"`
	DurationMonths int         `json:"durationMonths"`
	OrderID        string      `json:"orderId,omitempty"`
	PaymentID      string      `json:"paymentId,omitempty"`
	Source         GrantSource `json:"source,omitempty"`
}

// NewEntitlementRecord computes the access window from now. Expiry is
// calendar-month arithmetic (AddDate), not months*30 days, so that re-grants
// land on the same day-of-month the policy promises.
func NewEntitlementRecord(now time.Time, durationMonths int, orderID, paymentID string, source GrantSource) EntitlementRecord {
	if durationMonths < 1 {
		durationMonths = 1
	}
	return EntitlementRecord{
		PurchaseDate:   now,
		ExpiryDate:     now.AddDate(0, durationMonths, 0),
		DurationMonths: durationMonths,
		OrderID:        orderID,
		PaymentID:      paymentID,
		Source:         source,
	}
}

// EntitlementSet is a user's full entitlement state: the flat set of ids
// ever granted plus the per-course records carrying expiry windows.
type EntitlementSet struct {
	UserID             string                       `json:"userId"`
	PurchasedCourseIDs []string                     `json:"purchasedCourseIds"`
	Purchases          map[string]EntitlementRecord `json:"purchases"`
}

// HasAccess decides whether access to a course is valid at the given time.
//
// A course id present in PurchasedCourseIDs with no matching Purchases record
// is treated as permanently valid. Such entries are legacy/manual grants that
// predate expiry tracking; the asymmetry with re-purchased records (which do
// expire) is a deliberate backward-compatibility rule, not an oversight.
func (s *EntitlementSet) HasAccess(courseID string, now time.Time) bool {
	if s == nil {
		return false
	}
	owned := false
	for _, id := range s.PurchasedCourseIDs {
		if id == courseID {
			owned = true
			break
		}
	}
	if !owned {
		return false
	}
	rec, ok := s.Purchases[courseID]
	if !ok {
		return true
	}
	return !now.After(rec.ExpiryDate)
}
