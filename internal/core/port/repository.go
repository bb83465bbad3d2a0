package port

import (
	"context"

	"github.com/freshmart/backend/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	UpdateDeliveryInfo(ctx context.Context, orderID string, info domain.DeliveryInfo) (*domain.Order, error)

	// Product
	ReadProduct(ctx context.Context, productID string) (*domain.Product, error)
	// UpdateStock applies a signed stock change. The decrement is conditional:
	// ErrInsufficientStock when the new stock would drop below zero.
	UpdateStock(ctx context.Context, productID string, delta int64) (*domain.Product, error)

	// Payment
	CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	ReadPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) (*domain.Payment, error)

	// Notification
	CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID uint64) ([]*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) (bool, error)
	CountUnreadNotifications(ctx context.Context, userID uint64) (int64, error)
}
