package store

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-backend/internal/models"
)

func TestBackupRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)

	sup := seedSupplier(t, h)
	p := seedProduct(t, h, sup.ID, 10)
	_, err := h.store.AddSalesInvoice(ctx, models.SalesInvoiceInput{
		Items:       []models.SalesItem{{ProductID: p.ID, ProductName: p.Name, Quantity: 1, Price: 120}},
		TotalAmount: 120,
		PaidAmount:  100,
		DebtAmount:  20,
	})
	require.NoError(t, err)
	require.NoError(t, h.store.SetLanguage(models.LangAR))

	var buf bytes.Buffer
	require.NoError(t, h.store.Backup(&buf))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	for _, key := range []string{"products", "suppliers", "purchaseInvoices", "salesInvoices", "workers", "workerPayments", "language"} {
		assert.Contains(t, doc, key)
	}
	assert.JSONEq(t, `"ar"`, string(doc["language"]))
	assert.Contains(t, string(doc["salesInvoices"]), `"paymentHistory"`)

	fresh := New(nil)
	require.NoError(t, fresh.Restore(bytes.NewReader(buf.Bytes())))

	want, err := json.Marshal(h.store.Snapshot())
	require.NoError(t, err)
	got, err := json.Marshal(fresh.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	assert.Equal(t, models.LangAR, fresh.Language())
}

func TestRestoreRejectsBadDocuments(t *testing.T) {
	s := New(nil)
	assert.Error(t, s.Restore(strings.NewReader("{not json")))
	assert.ErrorIs(t, s.Restore(strings.NewReader(`{"language":"en"}`)), ErrUnsupportedLanguage)

	require.NoError(t, s.Restore(strings.NewReader(`{}`)))
	assert.Equal(t, models.LangFR, s.Language())
	assert.NotNil(t, s.Products())
}

func TestSnapshotIsNeverTorn(t *testing.T) {
	small, err := json.Marshal(Snapshot{
		Products:  []models.Product{{ID: "p1"}},
		Suppliers: []models.Supplier{{ID: "s1"}},
		Language:  models.LangFR,
	})
	require.NoError(t, err)
	large, err := json.Marshal(Snapshot{
		Products:  []models.Product{{ID: "p1"}, {ID: "p2"}},
		Suppliers: []models.Supplier{{ID: "s1"}, {ID: "s2"}},
		Language:  models.LangAR,
	})
	require.NoError(t, err)

	s := New(nil)
	require.NoError(t, s.Restore(bytes.NewReader(small)))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		docs := [][]byte{small, large}
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			_ = s.Restore(bytes.NewReader(docs[i%2]))
		}
	}()

	for i := 0; i < 2000; i++ {
		snap := s.Snapshot()
		switch snap.Language {
		case models.LangFR:
			assert.Len(t, snap.Products, 1)
			assert.Len(t, snap.Suppliers, 1)
		case models.LangAR:
			assert.Len(t, snap.Products, 2)
			assert.Len(t, snap.Suppliers, 2)
		default:
			t.Fatalf("unexpected language %q", snap.Language)
		}
	}
	close(stop)
	wg.Wait()
}

func TestBackupFileName(t *testing.T) {
	at := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "autoparts_backup_2025-03-09.json", BackupFileName(at))
}
