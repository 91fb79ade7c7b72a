// Package store is the in-memory source of truth for the shop's collections.
// It is the only caller of the gateway; every write goes through it and is
// merged back into memory once storage accepted it.
package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/metrics"
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/saga"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrNotAuthenticated    = errors.New("no authenticated user")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

const (
	tableUsers          = "users"
	tableProducts       = "products"
	tableSuppliers      = "suppliers"
	tablePurchases      = "purchase_invoices"
	tableSales          = "sales_invoices"
	tableSalesItems     = "sales_items"
	tableSalesPayments  = "sales_payments"
	tableWorkerPayments = "worker_payments"
)

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.m = m }
}

// WithPolicy selects how compound commands react to a failing step.
func WithPolicy(p saga.Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithStaticAdmin enables the hardcoded administrator login.
func WithStaticAdmin(enabled bool) Option {
	return func(s *Store) { s.staticAdmin = enabled }
}

// WithRestoreStockOnDelete makes invoice deletion reverse the stock movement it recorded.
func WithRestoreStockOnDelete(enabled bool) Option {
	return func(s *Store) { s.restoreStock = enabled }
}

// WithSessionTTL bounds the lifetime of static administrator tokens.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Store) { s.sessionTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	gw           gateway.Gateway
	log          *zap.Logger
	m            *metrics.Metrics
	policy       saga.Policy
	staticAdmin  bool
	restoreStock bool
	sessionTTL   time.Duration
	now          func() time.Time

	mu             sync.RWMutex
	products       []models.Product
	suppliers      []models.Supplier
	purchases      []models.PurchaseInvoice
	sales          []models.SalesInvoice
	workers        []models.User
	workerPayments []models.WorkerPayment
	language       models.Language
	currentUser    *models.User
	loading        bool

	// adminTokens and revoked map access tokens to their expiry.
	adminTokens  map[string]time.Time
	revoked      map[string]time.Time
	adminProfile models.User
}

func New(gw gateway.Gateway, opts ...Option) *Store {
	s := &Store{
		gw:             gw,
		log:            zap.NewNop(),
		policy:         saga.Compensate,
		sessionTTL:     24 * time.Hour,
		now:            time.Now,
		products:       []models.Product{},
		suppliers:      []models.Supplier{},
		purchases:      []models.PurchaseInvoice{},
		sales:          []models.SalesInvoice{},
		workers:        []models.User{},
		workerPayments: []models.WorkerPayment{},
		language:       models.LangFR,
		adminTokens:    map[string]time.Time{},
		revoked:        map[string]time.Time{},
		adminProfile:   StaticAdmin(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("store")
	return s
}

func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) Suppliers() []models.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.suppliers)
}

func (s *Store) PurchaseInvoices() []models.PurchaseInvoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.purchases)
}

func (s *Store) SalesInvoices() []models.SalesInvoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SalesInvoice, len(s.sales))
	for i, inv := range s.sales {
		out[i] = cloneSale(inv)
	}
	return out
}

func (s *Store) Workers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.workers)
}

func (s *Store) WorkerPayments() []models.WorkerPayment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.workerPayments)
}

func (s *Store) Language() models.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *Store) SetLanguage(lang models.Language) error {
	if !lang.Valid() {
		return ErrUnsupportedLanguage
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	return nil
}

// CurrentUser returns the profile of the last sign-in, if any. Requests are
// authorized per token through Authenticate, never through this.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return models.User{}, false
	}
	return *s.currentUser, true
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.products, func(p models.Product) bool { return p.ID == id })
}

func (s *Store) Supplier(id string) (models.Supplier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.suppliers, func(v models.Supplier) bool { return v.ID == id })
}

func (s *Store) PurchaseInvoice(id string) (models.PurchaseInvoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.purchases, func(v models.PurchaseInvoice) bool { return v.ID == id })
}

func (s *Store) SalesInvoice(id string) (models.SalesInvoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := find(s.sales, func(v models.SalesInvoice) bool { return v.ID == id })
	if !ok {
		return inv, false
	}
	return cloneSale(inv), true
}

func (s *Store) Worker(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.workers, func(v models.User) bool { return v.ID == id })
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// track records the outcome of a command. errp points at the command's named error result.
func (s *Store) track(command string, errp *error) {
	err := *errp
	s.m.ObserveCommand(command, err)
	if err != nil {
		s.log.Error("command failed", zap.String("command", command), zap.Error(err))
	}
}

func cloneSale(inv models.SalesInvoice) models.SalesInvoice {
	inv.Items = slices.Clone(inv.Items)
	inv.PaymentHistory = slices.Clone(inv.PaymentHistory)
	return inv
}

func find[T any](list []T, match func(T) bool) (T, bool) {
	for _, v := range list {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

func replaceWhere[T any](list []T, match func(T) bool, v T) []T {
	out := slices.Clone(list)
	for i := range out {
		if match(out[i]) {
			out[i] = v
		}
	}
	return out
}

func removeWhere[T any](list []T, match func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}
