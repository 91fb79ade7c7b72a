package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-backend/internal/models"
)

func cartProduct(id string, stock int, price float64) models.Product {
	return models.Product{ID: id, ProductInput: models.ProductInput{Name: "item " + id, CurrentQuantity: stock, SellingPrice: price}}
}

func TestCartAddCapsAtStock(t *testing.T) {
	var c Cart
	p := cartProduct("p1", 2, 800)

	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(p))
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	assert.ErrorIs(t, c.Add(cartProduct("p2", 0, 10)), ErrOutOfStock)
}

func TestCartNewestLineFirst(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(cartProduct("p1", 5, 1)))
	require.NoError(t, c.Add(cartProduct("p2", 5, 1)))
	assert.Equal(t, "p2", c.Lines()[0].Product.ID)

	c.Remove("p2")
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, "p1", c.Lines()[0].Product.ID)
}

func TestCartChangeQuantityClamps(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(cartProduct("p1", 4, 100)))

	c.ChangeQuantity("p1", 10)
	assert.Equal(t, 4, c.Lines()[0].Quantity)
	c.ChangeQuantity("p1", -10)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestCartCheckout(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(cartProduct("p1", 5, 800)))
	c.ChangeQuantity("p1", 1)
	require.NoError(t, c.Add(cartProduct("p2", 5, 100)))
	assert.Equal(t, 1700.0, c.Total())

	in, err := c.Checkout(" Garage El Amir ", "", 1000, false)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, in.TotalAmount)
	assert.Equal(t, 1000.0, in.PaidAmount)
	assert.Equal(t, 700.0, in.DebtAmount)
	require.NotNil(t, in.ClientName)
	assert.Equal(t, "Garage El Amir", *in.ClientName)
	assert.Nil(t, in.ClientPhone)
	require.Len(t, in.Items, 2)

	in, err = c.Checkout("", "", 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, in.PaidAmount)
	assert.Equal(t, 0.0, in.DebtAmount)

	in, err = c.Checkout("", "", 2000, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, in.DebtAmount)

	var empty Cart
	_, err = empty.Checkout("", "", 0, true)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewCartFromProducts(t *testing.T) {
	s := New(nil)
	s.products = []models.Product{cartProduct("p1", 3, 100)}

	c, err := s.NewCart([]CartRequestLine{{ProductID: "p1", Quantity: 5}})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Lines()[0].Quantity)

	_, err = s.NewCart([]CartRequestLine{{ProductID: "nope", Quantity: 1}})
	assert.ErrorIs(t, err, ErrNotFound)
}
