package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-backend/internal/models"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
}

func statsStore() *Store {
	s := New(nil, WithClock(func() time.Time { return at(10, 15) }))
	s.products = []models.Product{
		{ID: "p1", ProductInput: models.ProductInput{Name: "Filtre", InitialQuantity: 10, CurrentQuantity: 3}},
		{ID: "p2", ProductInput: models.ProductInput{Name: "Bougie", InitialQuantity: 10, CurrentQuantity: 5}},
		{ID: "p3", ProductInput: models.ProductInput{Name: "Courroie", InitialQuantity: 0, CurrentQuantity: 0}},
	}
	s.sales = []models.SalesInvoice{
		{ID: "s1", TotalAmount: 1000, PaidAmount: 600, DebtAmount: 400, Date: at(10, 9)},
		{ID: "s2", TotalAmount: 100, PaidAmount: 40, DebtAmount: 60, Date: time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC)},
		{ID: "s3", TotalAmount: 200, PaidAmount: 200, Date: at(4, 10)},
		{ID: "s4", TotalAmount: 50, PaidAmount: 50, Date: at(1, 10)},
	}
	s.purchases = []models.PurchaseInvoice{
		{ID: "i1", PurchaseInvoiceInput: models.PurchaseInvoiceInput{SupplierID: "sup"}, TotalAmount: 300, Date: at(9, 12)},
		{ID: "i2", PurchaseInvoiceInput: models.PurchaseInvoiceInput{SupplierID: "other"}, TotalAmount: 70, Date: at(2, 12)},
	}
	s.suppliers = []models.Supplier{{ID: "sup", SupplierInput: models.SupplierInput{FullName: "Atlas"}}}
	return s
}

func TestDashboard(t *testing.T) {
	st := statsStore().Dashboard()

	assert.Equal(t, 890.0, st.TotalEarnings)
	assert.Equal(t, 3, st.ProductCount)
	assert.Equal(t, 2, st.LowStockCount)
	assert.Equal(t, 4, st.SalesCount)
	require.Len(t, st.LowStock, 2)
	assert.Equal(t, "p1", st.LowStock[0].ID)

	require.Len(t, st.LastDays, 7)
	assert.Equal(t, "2025-03-04", st.LastDays[0].Day)
	assert.Equal(t, 200.0, st.LastDays[0].Sales)
	assert.Equal(t, "2025-03-09", st.LastDays[5].Day)
	assert.Equal(t, 100.0, st.LastDays[5].Sales)
	assert.Equal(t, 300.0, st.LastDays[5].Purchases)
	assert.Equal(t, "2025-03-10", st.LastDays[6].Day)
	assert.Equal(t, 1000.0, st.LastDays[6].Sales)
}

func TestReportIncludesWholeEndDay(t *testing.T) {
	r, err := statsStore().Report(at(4, 0), at(9, 0))
	require.NoError(t, err)

	assert.Equal(t, 2, r.SalesCount)
	assert.Equal(t, 300.0, r.TotalSales)
	assert.Equal(t, 60.0, r.DebtCreated)
	assert.Equal(t, 1, r.PurchaseCount)
	assert.Equal(t, 300.0, r.TotalPurchases)
	assert.Equal(t, 0.0, r.TotalEarnings)
}

func TestReportRejectsInvertedRange(t *testing.T) {
	_, err := statsStore().Report(at(9, 0), at(4, 0))
	assert.Error(t, err)
}

func TestSupplierHistory(t *testing.T) {
	s := statsStore()
	h, err := s.SupplierHistory("sup")
	require.NoError(t, err)
	require.Len(t, h.Invoices, 1)
	assert.Equal(t, 300.0, h.TotalSpent)

	_, err = s.SupplierHistory("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkerHistoryNewestFirst(t *testing.T) {
	s := New(nil)
	s.workers = []models.User{{ID: "w1", Role: models.RoleWorker}}
	s.workerPayments = []models.WorkerPayment{
		{ID: "a", WorkerPaymentInput: models.WorkerPaymentInput{WorkerID: "w1", Amount: 100}, Date: at(1, 0)},
		{ID: "b", WorkerPaymentInput: models.WorkerPaymentInput{WorkerID: "w2", Amount: 999}, Date: at(2, 0)},
		{ID: "c", WorkerPaymentInput: models.WorkerPaymentInput{WorkerID: "w1", Amount: 50}, Date: at(3, 0)},
	}

	h, err := s.WorkerHistory("w1")
	require.NoError(t, err)
	require.Len(t, h.Payments, 2)
	assert.Equal(t, "c", h.Payments[0].ID)
	assert.Equal(t, 150.0, h.TotalPaid)

	_, err = s.WorkerHistory("w2")
	assert.ErrorIs(t, err, ErrNotFound)
}
