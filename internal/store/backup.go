package store

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"autoparts-backend/internal/models"
)

// Snapshot is the whole in-memory state in application naming. It is also the
// backup document format.
type Snapshot struct {
	Products         []models.Product         `json:"products"`
	Suppliers        []models.Supplier        `json:"suppliers"`
	PurchaseInvoices []models.PurchaseInvoice `json:"purchaseInvoices"`
	SalesInvoices    []models.SalesInvoice    `json:"salesInvoices"`
	Workers          []models.User            `json:"workers"`
	WorkerPayments   []models.WorkerPayment   `json:"workerPayments"`
	Language         models.Language          `json:"language"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales := make([]models.SalesInvoice, len(s.sales))
	for i, inv := range s.sales {
		sales[i] = cloneSale(inv)
	}
	return Snapshot{
		Products:         slices.Clone(s.products),
		Suppliers:        slices.Clone(s.suppliers),
		PurchaseInvoices: slices.Clone(s.purchases),
		SalesInvoices:    sales,
		Workers:          slices.Clone(s.workers),
		WorkerPayments:   slices.Clone(s.workerPayments),
		Language:         s.language,
	}
}

// Backup writes the snapshot as JSON. Nothing is read from storage.
func (s *Store) Backup(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// BackupFileName names the download for a backup taken at t.
func BackupFileName(t time.Time) string {
	return "autoparts_backup_" + t.UTC().Format("2006-01-02") + ".json"
}

// Restore replaces the in-memory collections and language with a backup
// document. Storage is not written.
func (s *Store) Restore(r io.Reader) (err error) {
	defer s.track("restore", &err)

	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if snap.Language == "" {
		snap.Language = models.LangFR
	}
	if !snap.Language.Valid() {
		return fmt.Errorf("read backup: %w %q", ErrUnsupportedLanguage, snap.Language)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nonNil(snap.Products)
	s.suppliers = nonNil(snap.Suppliers)
	s.purchases = nonNil(snap.PurchaseInvoices)
	s.sales = nonNil(snap.SalesInvoices)
	s.workers = nonNil(snap.Workers)
	s.workerPayments = nonNil(snap.WorkerPayments)
	s.language = snap.Language
	return nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
