//go:build !integration

// File: internal/usecase/mocks_test.go
package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
)

// memCourseRepo is a small in-memory implementation used by unit tests.
type memCourseRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{store: make(map[string]*model.Course)}
}

var _ repository.CourseRepository = (*memCourseRepo)(nil)

func (m *memCourseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCourseRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Course, 0, len(m.store))
	for _, c := range m.store {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCourseRepo) Save(ctx context.Context, tx repository.Tx, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.store[c.ID] = &cp
	return nil
}

// memEntitlementRepo keeps per-user entitlement sets in memory. GrantErr lets
// a test simulate the write failing after a verified payment.
type memEntitlementRepo struct {
	mu       sync.RWMutex
	profiles map[string]*model.EntitlementSet
	GrantErr error
}

func newMemEntitlementRepo() *memEntitlementRepo {
	return &memEntitlementRepo{profiles: make(map[string]*model.EntitlementSet)}
}

var _ repository.EntitlementRepository = (*memEntitlementRepo)(nil)

func (m *memEntitlementRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.EntitlementSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.profiles[userID]
	if !ok {
		return &model.EntitlementSet{UserID: userID, Purchases: map[string]model.EntitlementRecord{}}, nil
	}
	cp := model.EntitlementSet{
		UserID:             set.UserID,
		PurchasedCourseIDs: append([]string(nil), set.PurchasedCourseIDs...),
		Purchases:          make(map[string]model.EntitlementRecord, len(set.Purchases)),
	}
	for k, v := range set.Purchases {
		cp.Purchases[k] = v
	}
	return &cp, nil
}

func (m *memEntitlementRepo) Grant(ctx context.Context, tx repository.Tx, userID string, courseIDs []string, rec model.EntitlementRecord) error {
	if m.GrantErr != nil {
		return m.GrantErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.profiles[userID]
	if !ok {
		set = &model.EntitlementSet{UserID: userID, Purchases: map[string]model.EntitlementRecord{}}
		m.profiles[userID] = set
	}
	for _, id := range courseIDs {
		present := false
		for _, have := range set.PurchasedCourseIDs {
			if have == id {
				present = true
				break
			}
		}
		if !present {
			set.PurchasedCourseIDs = append(set.PurchasedCourseIDs, id)
		}
		set.Purchases[id] = rec
	}
	return nil
}

// seedLegacy injects a flat-list ownership without a purchase record, the way
// pre-migration profiles look.
func (m *memEntitlementRepo) seedLegacy(userID, courseID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.profiles[userID]
	if !ok {
		set = &model.EntitlementSet{UserID: userID, Purchases: map[string]model.EntitlementRecord{}}
		m.profiles[userID] = set
	}
	set.PurchasedCourseIDs = append(set.PurchasedCourseIDs, courseID)
}

// memSettingsRepo stores one policy value; Get returns defaults until Save.
type memSettingsRepo struct {
	mu     sync.RWMutex
	stored *model.PolicySettings
	GetErr error
}

func newMemSettingsRepo() *memSettingsRepo { return &memSettingsRepo{} }

var _ repository.SettingsRepository = (*memSettingsRepo)(nil)

func (m *memSettingsRepo) Get(ctx context.Context, tx repository.Tx) (model.PolicySettings, error) {
	if m.GetErr != nil {
		return model.PolicySettings{}, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stored == nil {
		return model.DefaultPolicySettings(), nil
	}
	return m.stored.Normalize(), nil
}

func (m *memSettingsRepo) Save(ctx context.Context, tx repository.Tx, s model.PolicySettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := s
	m.stored = &cp
	return nil
}

// memJournalRepo records journal traffic for assertions.
type memJournalRepo struct {
	mu      sync.RWMutex
	entries []*model.GrantJournalEntry
}

func newMemJournalRepo() *memJournalRepo { return &memJournalRepo{} }

var _ repository.GrantJournalRepository = (*memJournalRepo)(nil)

func (m *memJournalRepo) Append(ctx context.Context, tx repository.Tx, e *model.GrantJournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memJournalRepo) ListUnresolved(ctx context.Context, tx repository.Tx, limit int) ([]*model.GrantJournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.GrantJournalEntry
	for _, e := range m.entries {
		if !e.Resolved {
			cp := *e
			out = append(out, &cp)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memJournalRepo) MarkResolved(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id {
			e.Resolved = true
			e.RetriedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memJournalRepo) MarkRetried(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id {
			e.RetriedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockPaymentGateway lets tests script the provider response.
type MockPaymentGateway struct {
	CreateOrderFunc func(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.GatewayOrder, error)

	LastAmount   int64
	LastCurrency string
	LastNotes    map[string]string
}

func (g *MockPaymentGateway) Name() string { return "mock" }

func (g *MockPaymentGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.GatewayOrder, error) {
	g.LastAmount = amount
	g.LastCurrency = currency
	g.LastNotes = notes
	if g.CreateOrderFunc != nil {
		return g.CreateOrderFunc(ctx, amount, currency, receipt, notes)
	}
	return &model.GatewayOrder{
		ID:       "order_mock_1",
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
		Notes:    notes,
	}, nil
}

// MockTxManager runs fn immediately with NoTX unless a test overrides it.
type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

var _ repository.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// newTestLogger creates a silent zerolog.Logger so test output stays clean.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
