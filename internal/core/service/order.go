package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService is the lifecycle façade used outside checkout: status updates,
// cancellation, delivery info, assignments and tracking. Every mutation loads
// the order, checks the state machine, persists and then notifies the user.
type OrderService struct {
	repo      port.Repository
	notifier  port.Notifier
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewOrderService(repo port.Repository, notifier port.Notifier,
	publisher port.EventPublisher, logger *zap.Logger) (*OrderService, error) {
	return &OrderService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PlaceOrder prices the requested lines from the product catalog and stores a
// new PENDING order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint64, lines []domain.OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domain.ErrValidation)
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.repo.ReadProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		quantity, err := domain.NewQuantity(line.Quantity, product.Stock.Unit())
		if err != nil {
			return nil, err
		}
		item, err := domain.NewOrderItem(product.ID, product.Name, product.Price, quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	order, err := domain.NewOrder(uuid.NewString(), userID, items)
	if err != nil {
		return nil, err
	}

	return s.CreateOrder(ctx, order)
}

func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, err
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	s.notify(ctx, newOrder.UserID, "Order Placed",
		fmt.Sprintf("Your order for %s has been placed", newOrder.Total),
		domain.NotificationOrderUpdate, newOrder.ID)
	s.publish(ctx, "order.created", newOrder)

	return newOrder, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.ReadOrder(ctx, orderID)
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, order.ID, order.Status)
	if err != nil {
		s.logger.Error("Update order status", zap.Error(err))
		return nil, err
	}

	s.notify(ctx, updated.UserID, "Order Update",
		fmt.Sprintf("Order %s is now %s", updated.ID, updated.Status),
		statusNotificationType(status), updated.ID)
	s.publish(ctx, "order.status", updated)

	return updated, nil
}

func (s *OrderService) UpdateDeliveryInfo(ctx context.Context, orderID string, info domain.DeliveryInfo) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.SetDeliveryInfo(info); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateDeliveryInfo(ctx, order.ID, info)
	if err != nil {
		s.logger.Error("Update delivery info", zap.Error(err))
		return nil, err
	}

	s.notify(ctx, updated.UserID, "Delivery Update",
		fmt.Sprintf("Delivery details for order %s were updated", updated.ID),
		domain.NotificationDelivery, updated.ID)

	return updated, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusCancelled)
	if err != nil {
		s.logger.Error("Cancel order", zap.Error(err))
		return nil, err
	}

	s.notify(ctx, updated.UserID, "Order Cancelled",
		fmt.Sprintf("Order %s has been cancelled", updated.ID),
		domain.NotificationOrderUpdate, updated.ID)
	s.publish(ctx, "order.cancelled", updated)

	return updated, nil
}

// TrackOrder fails until delivery info has been attached, regardless of the
// order status.
func (s *OrderService) TrackOrder(ctx context.Context, orderID string) (*domain.DeliveryInfo, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Delivery == nil {
		return nil, &domain.InvalidStateError{Status: order.Status, Reason: "order is not yet out for delivery"}
	}

	return order.Delivery, nil
}

func (s *OrderService) AssignSeller(ctx context.Context, orderID string, sellerID uint64) (*domain.Order, error) {
	return s.assign(ctx, orderID, "seller", func(o *domain.Order) error {
		return o.AssignSeller(sellerID)
	})
}

func (s *OrderService) AssignDriver(ctx context.Context, orderID string, driverID uint64) (*domain.Order, error) {
	return s.assign(ctx, orderID, "driver", func(o *domain.Order) error {
		return o.AssignDriver(driverID)
	})
}

func (s *OrderService) assign(ctx context.Context, orderID, role string, assignFn func(*domain.Order) error) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := assignFn(order); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Assign "+role, zap.Error(err))
		return nil, err
	}

	s.notify(ctx, updated.UserID, "Order Update",
		fmt.Sprintf("A %s has been assigned to order %s", role, updated.ID),
		domain.NotificationOrderUpdate, updated.ID)

	return updated, nil
}

// notify dispatches best-effort: a failure is logged, never returned.
func (s *OrderService) notify(ctx context.Context, userID uint64, title, message string,
	ntype domain.NotificationType, referenceID string) {
	if _, err := s.notifier.Notify(ctx, userID, title, message, ntype, referenceID); err != nil {
		s.logger.Warn("Notification dispatch failed",
			zap.Uint64("user", userID), zap.String("title", title), zap.Error(err))
	}
}

func (s *OrderService) publish(ctx context.Context, key string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, orderEvent(order)); err != nil {
		s.logger.Warn("Event publish failed", zap.String("key", key), zap.Error(err))
	}
}

func statusNotificationType(status domain.OrderStatus) domain.NotificationType {
	switch status {
	case domain.OrderStatusOutForDelivery, domain.OrderStatusDelivered:
		return domain.NotificationDelivery
	default:
		return domain.NotificationOrderUpdate
	}
}

type orderEventPayload struct {
	OrderID string             `json:"order_id"`
	UserID  uint64             `json:"user_id"`
	Status  domain.OrderStatus `json:"status"`
	Total   string             `json:"total"`
}

func orderEvent(order *domain.Order) orderEventPayload {
	return orderEventPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Total:   order.Total.String(),
	}
}
