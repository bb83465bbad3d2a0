package service

import (
	"context"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port"
	"go.uber.org/zap"
)

// CheckoutService runs the checkout pipeline: validate stock, charge payment,
// commit stock, confirm, notify. Steps run strictly in order and the first
// failure aborts the rest. Payment and stock commit are not transactional with
// each other: a decrement that fails after a successful charge is surfaced as
// an error without refunding (compensation is a manual RefundPayment call).
type CheckoutService struct {
	repo      port.Repository
	payments  port.PaymentService
	notifier  port.Notifier
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewCheckoutService(repo port.Repository, payments port.PaymentService,
	notifier port.Notifier, publisher port.EventPublisher, logger *zap.Logger) (*CheckoutService, error) {
	return &CheckoutService{
		repo:      repo,
		payments:  payments,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (s *CheckoutService) ProcessCheckout(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusPending {
		return nil, &domain.InvalidStateError{Status: order.Status, Reason: "checkout requires a pending order"}
	}

	items := order.Items()

	// Validate stock before touching payment. Fail fast on the first short
	// product; nothing is mutated yet.
	for _, item := range items {
		product, err := s.repo.ReadProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock.Value() < item.Quantity.Value() {
			return nil, &domain.InsufficientInventoryError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   item.Quantity.Value(),
				Available:   product.Stock.Value(),
			}
		}
	}

	if _, err := s.payments.ProcessPayment(ctx, order); err != nil {
		return nil, err
	}

	// Stock commit. From here the payment has already been captured; a failed
	// decrement (e.g. a concurrent checkout won the race) leaves the charge in
	// place and is reported to the caller.
	for _, item := range items {
		if _, err := s.repo.UpdateStock(ctx, item.ProductID, -item.Quantity.Value()); err != nil {
			s.logger.Error("Stock decrement failed after successful payment",
				zap.String("order", order.ID),
				zap.String("product", item.ProductID),
				zap.Error(err))
			return nil, err
		}
	}

	if err := order.UpdateStatus(domain.OrderStatusConfirmed); err != nil {
		return nil, err
	}
	confirmed, err := s.repo.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusConfirmed)
	if err != nil {
		s.logger.Error("Confirm order", zap.Error(err))
		return nil, err
	}

	if _, err := s.notifier.Notify(ctx, confirmed.UserID, "Order Confirmed",
		"Your order "+confirmed.ID+" has been confirmed",
		domain.NotificationOrderUpdate, confirmed.ID); err != nil {
		s.logger.Warn("Notification dispatch failed", zap.String("order", confirmed.ID), zap.Error(err))
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, "order.confirmed", orderEvent(confirmed)); err != nil {
			s.logger.Warn("Event publish failed", zap.String("order", confirmed.ID), zap.Error(err))
		}
	}

	return confirmed, nil
}
