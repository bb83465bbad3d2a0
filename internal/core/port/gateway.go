package port

import (
	"context"

	"github.com/freshmart/backend/internal/core/domain"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock

// PaymentGateway is the external payment processor. A false result is a
// decline (e.g. amount over the gateway ceiling); an error is a transport
// failure. Neither is retried by the core.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, paymentID string, amount domain.Money) (bool, error)
	RefundPayment(ctx context.Context, paymentID string) (bool, error)
}

// EventPublisher pushes lifecycle events to an external broker, best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}
