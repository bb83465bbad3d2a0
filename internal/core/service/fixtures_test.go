package service_test

import (
	"testing"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func mustMoney(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.MustParse(amount), "USD")
	assert.NoError(t, err)
	return m
}

func mustQuantity(t *testing.T, value int64) domain.Quantity {
	t.Helper()
	q, err := domain.NewQuantity(value, "kg")
	assert.NoError(t, err)
	return q
}

func mustItem(t *testing.T, productID, name, price string, qty int64) domain.OrderItem {
	t.Helper()
	item, err := domain.NewOrderItem(productID, name, mustMoney(t, price), mustQuantity(t, qty))
	assert.NoError(t, err)
	return item
}

// newTestOrder builds the canonical two-line order: 2 kg of apples at 1.50
// plus 3 kg of oranges at 2.00, total 9.00.
func newTestOrder(t *testing.T, status domain.OrderStatus) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("order1", 1, []domain.OrderItem{
		mustItem(t, "prod1", "Apple", "1.50", 2),
		mustItem(t, "prod2", "Orange", "2.00", 3),
	})
	assert.NoError(t, err)
	order.Status = status
	return order
}

func testProduct(t *testing.T, id, name, price string, stock int64) *domain.Product {
	t.Helper()
	return &domain.Product{
		ID:    id,
		Name:  name,
		Price: mustMoney(t, price),
		Stock: mustQuantity(t, stock),
	}
}
