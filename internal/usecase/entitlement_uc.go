package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
	"course-marketplace/internal/infra/adapters/payment"
	"course-marketplace/internal/infra/logging"
	"course-marketplace/internal/infra/metrics"
)

// Compile-time check
var _ EntitlementUseCase = (*entitlementUC)(nil)

// EntitlementUseCase verifies payment callbacks and grants time-bounded
// course access. Callers are already authenticated at the API boundary.
type EntitlementUseCase interface {
	// VerifyAndGrant checks the callback signature and, on success, grants
	// every course in the basket with paid provenance.
	VerifyAndGrant(ctx context.Context, userID string, cb model.PaymentCallback, basket *model.Basket) error
	// FreeEnroll grants without payment, allowed only while the global
	// payment toggle is off.
	FreeEnroll(ctx context.Context, userID string, basket *model.Basket) error
	// EntitlementsFor returns the user's full entitlement set.
	EntitlementsFor(ctx context.Context, userID string) (*model.EntitlementSet, error)
	// HasAccess evaluates the access policy for one course at server time.
	HasAccess(ctx context.Context, userID, courseID string, now time.Time) (bool, error)
}

type entitlementUC struct {
	entitlements  repository.EntitlementRepository
	settings      repository.SettingsRepository
	journal       repository.GrantJournalRepository
	webhookSecret string
	log           *zerolog.Logger
}

func NewEntitlementUseCase(
	entitlements repository.EntitlementRepository,
	settings repository.SettingsRepository,
	journal repository.GrantJournalRepository,
	webhookSecret string,
	logger *zerolog.Logger,
) *entitlementUC {
	return &entitlementUC{
		entitlements:  entitlements,
		settings:      settings,
		journal:       journal,
		webhookSecret: webhookSecret,
		log:           logger,
	}
}

func (u *entitlementUC) VerifyAndGrant(ctx context.Context, userID string, cb model.PaymentCallback, basket *model.Basket) error {
	l := logging.With(ctx, u.log)

	if !cb.Complete() {
		metrics.IncSignatureCheck("malformed")
		return domain.ErrMissingFields
	}

	// Sole authenticity boundary: everything downstream trusts the callback
	// only after this passes. The expected digest stays out of logs and
	// responses.
	if !payment.VerifySignature(u.webhookSecret, cb.OrderID, cb.PaymentID, cb.Signature) {
		metrics.IncSignatureCheck("mismatch")
		l.Warn().
			Str("order_id", cb.OrderID).
			Str("payment_id", cb.PaymentID).
			Msg("payment signature mismatch")
		return domain.ErrInvalidSignature
	}
	metrics.IncSignatureCheck("ok")

	return u.grant(ctx, userID, basket.CourseIDs, cb.OrderID, cb.PaymentID, model.GrantSourceRazorpay)
}

func (u *entitlementUC) FreeEnroll(ctx context.Context, userID string, basket *model.Basket) error {
	s, err := u.settings.Get(ctx, repository.NoTX)
	if err != nil {
		return fmt.Errorf("%w: read settings: %v", domain.ErrOperationFailed, err)
	}
	if s.IsPaymentEnabled {
		// Free path is only open while paid mode is globally off.
		return domain.ErrPaymentsEnabled
	}
	return u.grant(ctx, userID, basket.CourseIDs, "", "", model.GrantSourceManual)
}

// grant writes the entitlement records for all course ids as one atomic
// profile update: the flat id set is unioned and the per-course records are
// overwritten with a freshly computed window (re-purchase resets access).
func (u *entitlementUC) grant(ctx context.Context, userID string, courseIDs []string, orderID, paymentID string, source model.GrantSource) error {
	l := logging.With(ctx, u.log)

	s, err := u.settings.Get(ctx, repository.NoTX)
	if err != nil {
		return fmt.Errorf("%w: read settings: %v", domain.ErrOperationFailed, err)
	}
	rec := model.NewEntitlementRecord(time.Now(), s.CourseDurationMonths, orderID, paymentID, source)

	if err := u.entitlements.Grant(ctx, repository.NoTX, userID, courseIDs, rec); err != nil {
		// A verified payment with no entitlement write is a billable defect:
		// alert, journal for reconciliation, and surface the failure.
		metrics.IncGrant(string(source), "failed")
		metrics.IncGrantWriteFailure()
		l.Error().Err(err).
			Str("user_id", userID).
			Str("order_id", orderID).
			Strs("course_ids", courseIDs).
			Msg("entitlement write failed after verified payment")

		entry := model.NewGrantJournalEntry(userID, courseIDs, orderID, paymentID, source, rec.DurationMonths)
		if jerr := u.journal.Append(ctx, repository.NoTX, entry); jerr != nil {
			l.Error().Err(jerr).Str("journal_id", entry.ID).Msg("grant journal append failed")
		}
		return fmt.Errorf("%w: %v", domain.ErrOperationFailed, err)
	}

	metrics.IncGrant(string(source), "ok")
	l.Info().
		Str("user_id", userID).
		Strs("course_ids", courseIDs).
		Str("source", string(source)).
		Int("duration_months", rec.DurationMonths).
		Time("expiry", rec.ExpiryDate).
		Msg("entitlement granted")
	return nil
}

func (u *entitlementUC) EntitlementsFor(ctx context.Context, userID string) (*model.EntitlementSet, error) {
	return u.entitlements.FindByUser(ctx, repository.NoTX, userID)
}

func (u *entitlementUC) HasAccess(ctx context.Context, userID, courseID string, now time.Time) (bool, error) {
	set, err := u.entitlements.FindByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return false, err
	}
	return set.HasAccess(courseID, now), nil
}
