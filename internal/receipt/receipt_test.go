package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-backend/internal/models"
)

func TestRenderProducesPDF(t *testing.T) {
	client := "Garage El Amir"
	inv := models.SalesInvoice{
		ID:          "inv-1",
		ClientName:  &client,
		TotalAmount: 1700,
		PaidAmount:  1000,
		DebtAmount:  700,
		Date:        time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		Items: []models.SalesItem{
			{ProductName: "Filtre à huile", Quantity: 2, Price: 800},
			{ProductName: "Bougie", Quantity: 1, Price: 100},
		},
		PaymentHistory: []models.PaymentHistory{
			{Amount: 600, Date: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)},
			{Amount: 400, Date: time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC)},
		},
	}

	out, err := Render(Shop{Name: "AutoPro", Address: "Oran", Phone: "0550"}, inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "facture_abc.pdf", FileName(models.SalesInvoice{ID: "abc"}))
}
