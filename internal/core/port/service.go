package port

import (
	"context"

	"github.com/freshmart/backend/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type UserService interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, login string, password string) (string, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, userID uint64, lines []domain.OrderLine) (*domain.Order, error)
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	UpdateDeliveryInfo(ctx context.Context, orderID string, info domain.DeliveryInfo) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*domain.Order, error)
	TrackOrder(ctx context.Context, orderID string) (*domain.DeliveryInfo, error)
	AssignSeller(ctx context.Context, orderID string, sellerID uint64) (*domain.Order, error)
	AssignDriver(ctx context.Context, orderID string, driverID uint64) (*domain.Order, error)
}

type CheckoutService interface {
	ProcessCheckout(ctx context.Context, orderID string) (*domain.Order, error)
}

// PaymentService charges and refunds orders through the external gateway.
type PaymentService interface {
	ProcessPayment(ctx context.Context, order *domain.Order) (bool, error)
	RefundPayment(ctx context.Context, orderID string) (*domain.Payment, error)
	GetPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error)
}

// Notifier is the dispatch side of notifications, consumed by the lifecycle
// services. Dispatch is best-effort for callers: they log a failed Notify and
// move on.
type Notifier interface {
	Notify(ctx context.Context, userID uint64, title, message string,
		ntype domain.NotificationType, referenceID string) (*domain.Notification, error)
}

type NotificationService interface {
	Notifier
	// StreamUserNotifications yields the user's stored notifications followed
	// by a live feed. The stream ends only when ctx is cancelled.
	StreamUserNotifications(ctx context.Context, userID uint64) (<-chan *domain.Notification, error)
	ListNotifications(ctx context.Context, userID uint64) ([]*domain.Notification, error)
	MarkNotificationAsRead(ctx context.Context, notificationID string) error
	GetUnreadNotificationCount(ctx context.Context, userID uint64) (int64, error)
}
