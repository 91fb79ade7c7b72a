package store

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"autoparts-backend/internal/models"
)

var (
	ErrOutOfStock = errors.New("product out of stock")
	ErrEmptyCart  = errors.New("cart is empty")
)

type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart is a point-of-sale basket. Quantities stay within the stock known when
// the product was added.
type Cart struct {
	lines []CartLine
}

// Add puts one unit of p in the cart, newest line first. A line already at the
// available stock is left as it is.
func (c *Cart) Add(p models.Product) error {
	if p.CurrentQuantity <= 0 {
		return fmt.Errorf("%s: %w", p.Name, ErrOutOfStock)
	}
	for i := range c.lines {
		if c.lines[i].Product.ID != p.ID {
			continue
		}
		if c.lines[i].Quantity < c.lines[i].Product.CurrentQuantity {
			c.lines[i].Quantity++
		}
		return nil
	}
	c.lines = prepend(c.lines, CartLine{Product: p, Quantity: 1})
	return nil
}

// ChangeQuantity moves a line's quantity by delta, clamped to [1, stock].
func (c *Cart) ChangeQuantity(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			q := c.lines[i].Quantity + delta
			q = min(q, c.lines[i].Product.CurrentQuantity)
			c.lines[i].Quantity = max(1, q)
		}
	}
}

func (c *Cart) Remove(productID string) {
	c.lines = removeWhere(c.lines, func(l CartLine) bool { return l.Product.ID == productID })
}

func (c *Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Product.SellingPrice * float64(l.Quantity)
	}
	return total
}

// Checkout turns the cart into a sales invoice input. With full set the whole
// total is paid; otherwise paid is taken as given and the rest becomes debt.
func (c *Cart) Checkout(clientName, clientPhone string, paid float64, full bool) (models.SalesInvoiceInput, error) {
	if len(c.lines) == 0 {
		return models.SalesInvoiceInput{}, ErrEmptyCart
	}

	total := c.Total()
	if full {
		paid = total
	}
	in := models.SalesInvoiceInput{
		ClientName:  optional(clientName),
		ClientPhone: optional(clientPhone),
		Items:       make([]models.SalesItem, 0, len(c.lines)),
		TotalAmount: total,
		PaidAmount:  paid,
		DebtAmount:  math.Max(0, total-paid),
	}
	for _, l := range c.lines {
		in.Items = append(in.Items, models.SalesItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			Price:       l.Product.SellingPrice,
		})
	}
	return in, nil
}

type CartRequestLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// NewCart fills a cart from the in-memory products.
func (s *Store) NewCart(lines []CartRequestLine) (*Cart, error) {
	c := &Cart{}
	for _, l := range lines {
		p, ok := s.Product(l.ProductID)
		if !ok {
			return nil, fmt.Errorf("%s %s: %w", tableProducts, l.ProductID, ErrNotFound)
		}
		if err := c.Add(p); err != nil {
			return nil, err
		}
		if l.Quantity > 1 {
			c.ChangeQuantity(p.ID, l.Quantity-1)
		}
	}
	return c, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
