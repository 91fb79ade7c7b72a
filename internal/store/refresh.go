package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/models"
)

var (
	productsQuery  = gateway.Query{Table: tableProducts, Order: gateway.Desc("created_at")}
	suppliersQuery = gateway.Query{Table: tableSuppliers, Order: gateway.Desc("created_at")}
	purchasesQuery = gateway.Query{Table: tablePurchases, Order: gateway.Desc("date")}
	salesQuery     = gateway.Query{
		Table: tableSales,
		Order: gateway.Desc("date"),
		Embeds: []gateway.Embed{
			{Alias: "paymentHistory", Table: tableSalesPayments, ForeignKey: "invoice_id"},
			{Alias: "items", Table: tableSalesItems, ForeignKey: "invoice_id"},
		},
	}
	usersQuery          = gateway.Query{Table: tableUsers}
	workerPaymentsQuery = gateway.Query{Table: tableWorkerPayments, Order: gateway.Desc("date")}
)

// Init restores the profile of an existing session and loads every collection.
func (s *Store) Init(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Refresh reloads all collections concurrently. Each collection that arrived
// replaces its in-memory copy; a failed one keeps the previous state. The
// returned error joins the individual failures.
func (s *Store) Refresh(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var (
		g              errgroup.Group
		profile        *models.User
		products       []models.Product
		suppliers      []models.Supplier
		purchases      []models.PurchaseInvoice
		sales          []models.SalesInvoice
		users          []models.User
		workerPayments []models.WorkerPayment
		errs           = make(map[string]error, 7)
		errsMu         sync.Mutex
	)
	record := func(name string, err error) {
		errsMu.Lock()
		errs[name] = err
		errsMu.Unlock()
	}

	g.Go(func() error {
		p, err := s.loadProfile(ctx)
		profile = p
		record("profile", err)
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = fetch[models.Product](ctx, s.gw, productsQuery)
		record(tableProducts, err)
		return nil
	})
	g.Go(func() error {
		var err error
		suppliers, err = fetch[models.Supplier](ctx, s.gw, suppliersQuery)
		record(tableSuppliers, err)
		return nil
	})
	g.Go(func() error {
		var err error
		purchases, err = fetch[models.PurchaseInvoice](ctx, s.gw, purchasesQuery)
		record(tablePurchases, err)
		return nil
	})
	g.Go(func() error {
		var err error
		sales, err = fetch[models.SalesInvoice](ctx, s.gw, salesQuery)
		record(tableSales, err)
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = fetch[models.User](ctx, s.gw, usersQuery)
		record(tableUsers, err)
		return nil
	})
	g.Go(func() error {
		var err error
		workerPayments, err = fetch[models.WorkerPayment](ctx, s.gw, workerPaymentsQuery)
		record(tableWorkerPayments, err)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	var failed []error
	apply := func(name string, set func()) {
		err := errs[name]
		s.m.ObserveRefresh(name, err)
		if err != nil {
			s.log.Error("refresh failed, keeping previous state", zap.String("collection", name), zap.Error(err))
			failed = append(failed, fmt.Errorf("refresh %s: %w", name, err))
			return
		}
		set()
	}

	apply("profile", func() {
		if profile != nil && s.currentUser == nil {
			s.currentUser = profile
		}
	})
	apply(tableProducts, func() { s.products = products })
	apply(tableSuppliers, func() { s.suppliers = suppliers })
	apply(tablePurchases, func() { s.purchases = purchases })
	apply(tableSales, func() { s.sales = sales })
	apply(tableUsers, func() { s.workers = workersOf(users) })
	apply(tableWorkerPayments, func() { s.workerPayments = workerPayments })

	return errors.Join(failed...)
}

// loadProfile returns the profile of the active session when no user is signed in yet.
func (s *Store) loadProfile(ctx context.Context) (*models.User, error) {
	if _, ok := s.CurrentUser(); ok {
		return nil, nil
	}
	session, err := s.gw.Session(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return s.profileByEmail(ctx, session.Email)
}

func workersOf(users []models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleWorker {
			out = append(out, u)
		}
	}
	return out
}
