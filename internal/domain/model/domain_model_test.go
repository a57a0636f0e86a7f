//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"course-marketplace/internal/domain"
)

// --- Course Model Tests ---

func TestNewCourse(t *testing.T) {
	t.Run("should create a course successfully", func(t *testing.T) {
		c, err := NewCourse("CS301", "Data Structures and Algorithms", 499)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if c.ID != "CS301" || c.Title != "Data Structures and Algorithms" || c.Price != 499 {
			t.Errorf("unexpected course fields: %+v", c)
		}
	})

	t.Run("should generate an id when none is given", func(t *testing.T) {
		c, err := NewCourse("", "Untitled", 10)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if c.ID == "" {
			t.Error("expected a generated id")
		}
	})

	t.Run("should reject empty title", func(t *testing.T) {
		if _, err := NewCourse("CS301", "", 10); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should reject negative price", func(t *testing.T) {
		if _, err := NewCourse("CS301", "Algorithms", -1); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// --- Basket Tests ---

func TestNewBasket(t *testing.T) {
	t.Run("single course id yields a single basket", func(t *testing.T) {
		b, err := NewBasket("CS301", nil)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if b.Kind != BasketKindSingle {
			t.Errorf("expected single kind, got %s", b.Kind)
		}
		if len(b.CourseIDs) != 1 || b.CourseIDs[0] != "CS301" {
			t.Errorf("unexpected ids: %v", b.CourseIDs)
		}
	})

	t.Run("course id list yields a bundle and drops duplicates", func(t *testing.T) {
		b, err := NewBasket("", []string{"CS301", "CS302", "CS301"})
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if b.Kind != BasketKindBundle {
			t.Errorf("expected bundle kind, got %s", b.Kind)
		}
		if len(b.CourseIDs) != 2 || b.CourseIDs[0] != "CS301" || b.CourseIDs[1] != "CS302" {
			t.Errorf("unexpected ids: %v", b.CourseIDs)
		}
	})

	t.Run("both forms populated is rejected", func(t *testing.T) {
		if _, err := NewBasket("CS301", []string{"CS302"}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("neither form populated is rejected", func(t *testing.T) {
		if _, err := NewBasket("", nil); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("blank id inside the list is rejected", func(t *testing.T) {
		if _, err := NewBasket("", []string{"CS301", ""}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// --- Entitlement Record Tests ---

func TestNewEntitlementRecord(t *testing.T) {
	t.Run("expiry is calendar months, not fixed days", func(t *testing.T) {
		purchase := time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)
		rec := NewEntitlementRecord(purchase, 5, "order_1", "pay_1", GrantSourceRazorpay)

		want := purchase.AddDate(0, 5, 0)
		if !rec.ExpiryDate.Equal(want) {
			t.Errorf("expected expiry %v, got %v", want, rec.ExpiryDate)
		}
		if rec.DurationMonths != 5 {
			t.Errorf("expected duration 5, got %d", rec.DurationMonths)
		}
	})

	t.Run("duration below one month is clamped to one", func(t *testing.T) {
		purchase := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		rec := NewEntitlementRecord(purchase, 0, "", "", GrantSourceManual)
		if rec.DurationMonths != 1 {
			t.Errorf("expected clamped duration 1, got %d", rec.DurationMonths)
		}
		if !rec.ExpiryDate.Equal(purchase.AddDate(0, 1, 0)) {
			t.Errorf("unexpected expiry %v", rec.ExpiryDate)
		}
	})
}

// --- Access Policy Tests ---

func TestEntitlementSet_HasAccess(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

	t.Run("unowned course has no access", func(t *testing.T) {
		set := &EntitlementSet{UserID: "u1", Purchases: map[string]EntitlementRecord{}}
		if set.HasAccess("CS301", now) {
			t.Error("expected no access for unowned course")
		}
	})

	t.Run("owned course with unexpired record has access", func(t *testing.T) {
		rec := NewEntitlementRecord(now.AddDate(0, -1, 0), 5, "order_1", "pay_1", GrantSourceRazorpay)
		set := &EntitlementSet{
			UserID:             "u1",
			PurchasedCourseIDs: []string{"CS301"},
			Purchases:          map[string]EntitlementRecord{"CS301": rec},
		}
		if !set.HasAccess("CS301", now) {
			t.Error("expected access within window")
		}
	})

	t.Run("expired record denies access", func(t *testing.T) {
		rec := NewEntitlementRecord(now.AddDate(0, -6, 0), 5, "order_1", "pay_1", GrantSourceRazorpay)
		set := &EntitlementSet{
			UserID:             "u1",
			PurchasedCourseIDs: []string{"CS301"},
			Purchases:          map[string]EntitlementRecord{"CS301": rec},
		}
		if set.HasAccess("CS301", now) {
			t.Error("expected no access after expiry")
		}
	})

	t.Run("access at the exact expiry instant is still valid", func(t *testing.T) {
		rec := NewEntitlementRecord(now.AddDate(0, -5, 0), 5, "order_1", "pay_1", GrantSourceRazorpay)
		set := &EntitlementSet{
			UserID:             "u1",
			PurchasedCourseIDs: []string{"CS301"},
			Purchases:          map[string]EntitlementRecord{"CS301": rec},
		}
		if !set.HasAccess("CS301", rec.ExpiryDate) {
			t.Error("expected access at the expiry boundary")
		}
	})

	t.Run("owned course without record is permanently valid", func(t *testing.T) {
		set := &EntitlementSet{
			UserID:             "u1",
			PurchasedCourseIDs: []string{"LEGACY1"},
			Purchases:          map[string]EntitlementRecord{},
		}
		farFuture := now.AddDate(50, 0, 0)
		if !set.HasAccess("LEGACY1", farFuture) {
			t.Error("expected permanent access for record-less ownership")
		}
	})

	t.Run("nil set has no access", func(t *testing.T) {
		var set *EntitlementSet
		if set.HasAccess("CS301", now) {
			t.Error("expected no access on nil set")
		}
	})
}

// --- Policy Settings Tests ---

func TestPolicySettings(t *testing.T) {
	t.Run("defaults enable payments with five-month duration", func(t *testing.T) {
		s := DefaultPolicySettings()
		if !s.IsPaymentEnabled {
			t.Error("expected payments enabled by default")
		}
		if s.CourseDurationMonths != 5 {
			t.Errorf("expected default duration 5, got %d", s.CourseDurationMonths)
		}
	})

	t.Run("normalize clamps non-positive duration back to default", func(t *testing.T) {
		s := PolicySettings{IsPaymentEnabled: false, CourseDurationMonths: 0}.Normalize()
		if s.CourseDurationMonths != DefaultCourseDurationMonths {
			t.Errorf("expected %d, got %d", DefaultCourseDurationMonths, s.CourseDurationMonths)
		}
		if s.IsPaymentEnabled {
			t.Error("normalize must not touch the payment toggle")
		}
	})
}
