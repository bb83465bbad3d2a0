package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderLine is an unpriced request for a product, as it arrives from the API
// surface. Pricing happens when the line becomes an OrderItem.
type OrderLine struct {
	ProductID string
	Quantity  int64
}

// OrderItem is a priced order line. Subtotal is computed once at construction
// and never recomputed.
type OrderItem struct {
	ProductID   string
	ProductName string
	UnitPrice   Money
	Quantity    Quantity
	Subtotal    Money
}

func NewOrderItem(productID, productName string, unitPrice Money, quantity Quantity) (OrderItem, error) {
	if productID == "" {
		return OrderItem{}, fmt.Errorf("%w: order item product id is empty", ErrValidation)
	}
	if quantity.Value() <= 0 {
		return OrderItem{}, fmt.Errorf("%w: order item quantity must be positive", ErrValidation)
	}
	subtotal, err := unitPrice.MulInt(quantity.Value())
	if err != nil {
		return OrderItem{}, err
	}
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Subtotal:    subtotal,
	}, nil
}

// Order is a user's set of line items with a lifecycle status. Items are fixed
// at construction; status, delivery info and assignees change only through the
// transition methods below.
type Order struct {
	ID        string
	UserID    uint64
	items     []OrderItem
	Total     Money
	Status    OrderStatus
	Delivery  *DeliveryInfo
	SellerID  uint64
	DriverID  uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder creates a PENDING order with total equal to the sum of item
// subtotals.
func NewOrder(id string, userID uint64, items []OrderItem) (*Order, error) {
	total, err := sumSubtotals(items)
	if err != nil {
		return nil, err
	}
	return newOrder(id, userID, items, total)
}

// NewOrderWithTotal creates a PENDING order with an explicitly supplied total
// (e.g. after discounts), skipping the subtotal sum.
func NewOrderWithTotal(id string, userID uint64, items []OrderItem, total Money) (*Order, error) {
	return newOrder(id, userID, items, total)
}

func newOrder(id string, userID uint64, items []OrderItem, total Money) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order id is empty", ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}
	now := time.Now()
	return &Order{
		ID:        id,
		UserID:    userID,
		items:     append([]OrderItem(nil), items...),
		Total:     total,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestoreOrder rebuilds an order from persisted state without validation.
func RestoreOrder(id string, userID uint64, items []OrderItem, total Money,
	status OrderStatus, delivery *DeliveryInfo, sellerID, driverID uint64,
	createdAt, updatedAt time.Time) *Order {
	return &Order{
		ID:        id,
		UserID:    userID,
		items:     items,
		Total:     total,
		Status:    status,
		Delivery:  delivery,
		SellerID:  sellerID,
		DriverID:  driverID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Items returns a read-only view of the order lines.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// UpdateStatus moves the order to status. Any transition out of a terminal
// status is rejected.
func (o *Order) UpdateStatus(status OrderStatus) error {
	if o.Status.Terminal() {
		return &InvalidStateError{Status: o.Status}
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel distinguishes an already cancelled order from a delivered one.
func (o *Order) Cancel() error {
	switch o.Status {
	case OrderStatusCancelled:
		return &InvalidStateError{Status: o.Status, Reason: "order already cancelled"}
	case OrderStatusDelivered:
		return &InvalidStateError{Status: o.Status, Reason: "cannot cancel delivered order"}
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) SetDeliveryInfo(info DeliveryInfo) error {
	if o.Status.Terminal() {
		return &InvalidStateError{Status: o.Status}
	}
	o.Delivery = &info
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) AssignSeller(sellerID uint64) error {
	if o.Status.Terminal() {
		return &InvalidStateError{Status: o.Status}
	}
	o.SellerID = sellerID
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) AssignDriver(driverID uint64) error {
	if o.Status.Terminal() {
		return &InvalidStateError{Status: o.Status}
	}
	o.DriverID = driverID
	o.UpdatedAt = time.Now()
	return nil
}

func sumSubtotals(items []OrderItem) (Money, error) {
	if len(items) == 0 {
		return Money{}, fmt.Errorf("%w: order has no items", ErrValidation)
	}
	total := items[0].Subtotal
	for _, item := range items[1:] {
		sum, err := total.Add(item.Subtotal)
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}
