// Package receipt renders sales invoices as PDF documents for the counter printer.
package receipt

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"autoparts-backend/internal/models"
)

const currency = "DZD"

// Shop is printed in the receipt header.
type Shop struct {
	Name    string
	Address string
	Phone   string
}

func money(v float64) string {
	return fmt.Sprintf("%.2f %s", v, currency)
}

// Render builds the PDF for one sales invoice.
func Render(shop Shop, inv models.SalesInvoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, shop.Name, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Left}),
		text.NewCol(4, "Facture de vente", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
	)

	client, phone := "Client comptoir", ""
	if inv.ClientName != nil && *inv.ClientName != "" {
		client = *inv.ClientName
	}
	if inv.ClientPhone != nil {
		phone = *inv.ClientPhone
	}
	m.AddRow(25,
		col.New(6).Add(
			text.New(shop.Address, props.Text{Size: 9}),
			text.New(shop.Phone, props.Text{Size: 9, Top: 5}),
		),
		col.New(6).Add(
			text.New("N° "+inv.ID, props.Text{Size: 9, Align: align.Right}),
			text.New("Date : "+inv.Date.Format("02/01/2006 15:04"), props.Text{Size: 9, Top: 5, Align: align.Right}),
			text.New(client, props.Text{Size: 9, Top: 10, Style: fontstyle.Bold, Align: align.Right}),
			text.New(phone, props.Text{Size: 9, Top: 15, Align: align.Right}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Article", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qté", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Prix unitaire", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Montant", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, it := range inv.Items {
		m.AddRow(8,
			text.NewCol(6, it.ProductName, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", it.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(it.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(it.Price*float64(it.Quantity)), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, money(inv.TotalAmount), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Payé", props.Text{Size: 9}),
		text.NewCol(2, money(inv.PaidAmount), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Reste à payer", props.Text{Size: 9}),
		text.NewCol(2, money(inv.DebtAmount), props.Text{Size: 9, Align: align.Right}),
	)

	if len(inv.PaymentHistory) > 1 {
		m.AddRow(12, text.NewCol(12, "Historique des versements", props.Text{Size: 10, Style: fontstyle.Bold, Top: 4}))
		for _, p := range inv.PaymentHistory {
			m.AddRow(6,
				text.NewCol(6, p.Date.Format("02/01/2006 15:04"), props.Text{Size: 8}),
				text.NewCol(6, money(p.Amount), props.Text{Size: 8, Align: align.Right}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", inv.ID, err)
	}
	return doc.GetBytes(), nil
}

// FileName is the download name of an invoice's receipt.
func FileName(inv models.SalesInvoice) string {
	return "facture_" + inv.ID + ".pdf"
}
