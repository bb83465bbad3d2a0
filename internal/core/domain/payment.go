package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Payment records one charge attempt for an order. Created PENDING, finalized
// by the gateway call, optionally REFUNDED later.
type Payment struct {
	ID        string
	OrderID   string
	UserID    uint64
	Amount    Money
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewPayment(id, orderID string, userID uint64, amount Money) *Payment {
	now := time.Now()
	return &Payment{
		ID:        id,
		OrderID:   orderID,
		UserID:    userID,
		Amount:    amount,
		Status:    PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
