package store

import (
	"fmt"
	"slices"
	"time"

	"autoparts-backend/internal/models"
)

const (
	dayLayout        = "2006-01-02"
	dashboardDays    = 7
	dashboardLowShow = 5
)

type DailyTotals struct {
	Day       string  `json:"day"`
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
}

type DashboardStats struct {
	TotalEarnings float64          `json:"totalEarnings"`
	ProductCount  int              `json:"productCount"`
	LowStockCount int              `json:"lowStockCount"`
	SalesCount    int              `json:"salesCount"`
	LowStock      []models.Product `json:"lowStock"`
	LastDays      []DailyTotals    `json:"lastDays"`
}

// Dashboard summarizes the collections. Earnings are what was actually paid;
// the daily series covers the last seven calendar days (UTC), today included.
func (s *Store) Dashboard() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := DashboardStats{
		ProductCount: len(s.products),
		SalesCount:   len(s.sales),
		LowStock:     []models.Product{},
	}
	for _, inv := range s.sales {
		st.TotalEarnings += inv.PaidAmount
	}
	for _, p := range s.products {
		if !p.LowStock() {
			continue
		}
		st.LowStockCount++
		if len(st.LowStock) < dashboardLowShow {
			st.LowStock = append(st.LowStock, p)
		}
	}

	today := s.now().UTC()
	index := make(map[string]int, dashboardDays)
	st.LastDays = make([]DailyTotals, dashboardDays)
	for i := range st.LastDays {
		day := today.AddDate(0, 0, -(dashboardDays - 1 - i)).Format(dayLayout)
		st.LastDays[i].Day = day
		index[day] = i
	}
	for _, inv := range s.sales {
		if i, ok := index[inv.Date.UTC().Format(dayLayout)]; ok {
			st.LastDays[i].Sales += inv.TotalAmount
		}
	}
	for _, inv := range s.purchases {
		if i, ok := index[inv.Date.UTC().Format(dayLayout)]; ok {
			st.LastDays[i].Purchases += inv.TotalAmount
		}
	}
	return st
}

type Report struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	TotalSales     float64   `json:"totalSales"`
	TotalPurchases float64   `json:"totalPurchases"`
	TotalEarnings  float64   `json:"totalEarnings"`
	SalesCount     int       `json:"salesCount"`
	PurchaseCount  int       `json:"purchaseCount"`
	DebtCreated    float64   `json:"debtCreated"`
}

// Report totals the invoices dated within [from, to]. The whole of to's day is included.
func (s *Store) Report(from, to time.Time) (Report, error) {
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), to.Location())
	if end.Before(from) {
		return Report{}, fmt.Errorf("report range ends before it starts")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r := Report{From: from, To: end}
	in := func(t time.Time) bool { return !t.Before(from) && !t.After(end) }
	for _, inv := range s.sales {
		if in(inv.Date) {
			r.SalesCount++
			r.TotalSales += inv.TotalAmount
			r.DebtCreated += inv.DebtAmount
		}
	}
	for _, inv := range s.purchases {
		if in(inv.Date) {
			r.PurchaseCount++
			r.TotalPurchases += inv.TotalAmount
		}
	}
	r.TotalEarnings = r.TotalSales - r.TotalPurchases
	return r, nil
}

type SupplierHistory struct {
	Supplier   models.Supplier          `json:"supplier"`
	Invoices   []models.PurchaseInvoice `json:"invoices"`
	TotalSpent float64                  `json:"totalSpent"`
}

func (s *Store) SupplierHistory(id string) (SupplierHistory, error) {
	sup, ok := s.Supplier(id)
	if !ok {
		return SupplierHistory{}, fmt.Errorf("%s %s: %w", tableSuppliers, id, ErrNotFound)
	}

	h := SupplierHistory{Supplier: sup, Invoices: []models.PurchaseInvoice{}}
	for _, inv := range s.PurchaseInvoices() {
		if inv.SupplierID == id {
			h.Invoices = append(h.Invoices, inv)
			h.TotalSpent += inv.TotalAmount
		}
	}
	return h, nil
}

type WorkerHistory struct {
	Worker    models.User            `json:"worker"`
	Payments  []models.WorkerPayment `json:"payments"`
	TotalPaid float64                `json:"totalPaid"`
}

// WorkerHistory lists a worker's payments, newest first.
func (s *Store) WorkerHistory(id string) (WorkerHistory, error) {
	w, ok := s.Worker(id)
	if !ok {
		return WorkerHistory{}, fmt.Errorf("%s %s: %w", tableUsers, id, ErrNotFound)
	}

	h := WorkerHistory{Worker: w, Payments: []models.WorkerPayment{}}
	for _, p := range s.WorkerPayments() {
		if p.WorkerID == id {
			h.Payments = append(h.Payments, p)
			h.TotalPaid += p.Amount
		}
	}
	slices.SortStableFunc(h.Payments, func(a, b models.WorkerPayment) int {
		return b.Date.Compare(a.Date)
	})
	return h, nil
}
