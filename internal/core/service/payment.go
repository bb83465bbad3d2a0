package service

import (
	"context"
	"fmt"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService coordinates charges against the external gateway and keeps
// the Payment records in step with the gateway's answers.
type PaymentService struct {
	repo     port.Repository
	gateway  port.PaymentGateway
	notifier port.Notifier
	logger   *zap.Logger
}

func NewPaymentService(repo port.Repository, gateway port.PaymentGateway,
	notifier port.Notifier, logger *zap.Logger) (*PaymentService, error) {
	return &PaymentService{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// ProcessPayment charges the order total. The payment row is created PENDING
// before the gateway call and finalized COMPLETED or FAILED after it. A
// decline (including an amount over the gateway ceiling) is ErrPaymentFailed.
func (s *PaymentService) ProcessPayment(ctx context.Context, order *domain.Order) (bool, error) {
	if !order.Total.IsPositive() {
		return false, fmt.Errorf("%w: order total must be positive", domain.ErrValidation)
	}

	payment := domain.NewPayment(uuid.NewString(), order.ID, order.UserID, order.Total)
	if _, err := s.repo.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("Create payment", zap.Error(err))
		return false, err
	}

	ok, err := s.gateway.ProcessPayment(ctx, payment.ID, payment.Amount)
	if err != nil || !ok {
		if err != nil {
			s.logger.Error("Payment gateway call", zap.String("payment", payment.ID), zap.Error(err))
		}
		if _, uerr := s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusFailed); uerr != nil {
			s.logger.Error("Update payment status", zap.String("payment", payment.ID), zap.Error(uerr))
		}
		s.notify(ctx, payment.UserID, "Payment Failed",
			fmt.Sprintf("Payment of %s for order %s failed", payment.Amount, order.ID), payment.ID)
		return false, domain.ErrPaymentFailed
	}

	if _, err := s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusCompleted); err != nil {
		s.logger.Error("Update payment status", zap.String("payment", payment.ID), zap.Error(err))
		return false, err
	}

	s.notify(ctx, payment.UserID, "Payment Successful",
		fmt.Sprintf("Payment of %s for order %s was successful", payment.Amount, order.ID), payment.ID)

	return true, nil
}

// RefundPayment refunds the order's payment. Only a COMPLETED payment may be
// refunded; a gateway refusal leaves the payment status untouched.
func (s *PaymentService) RefundPayment(ctx context.Context, orderID string) (*domain.Payment, error) {
	payment, err := s.repo.ReadPaymentByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if payment.Status != domain.PaymentStatusCompleted {
		return nil, domain.ErrRefundNotAllowed
	}

	ok, err := s.gateway.RefundPayment(ctx, payment.ID)
	if err != nil {
		s.logger.Error("Refund gateway call", zap.String("payment", payment.ID), zap.Error(err))
		return nil, domain.ErrPaymentFailed
	}
	if !ok {
		return nil, domain.ErrPaymentFailed
	}

	refunded, err := s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusRefunded)
	if err != nil {
		s.logger.Error("Update payment status", zap.String("payment", payment.ID), zap.Error(err))
		return nil, err
	}

	s.notify(ctx, refunded.UserID, "Payment Refunded",
		fmt.Sprintf("Refund of %s for order %s was processed", refunded.Amount, orderID), refunded.ID)

	return refunded, nil
}

func (s *PaymentService) GetPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	return s.repo.ReadPaymentByOrder(ctx, orderID)
}

func (s *PaymentService) notify(ctx context.Context, userID uint64, title, message, referenceID string) {
	if _, err := s.notifier.Notify(ctx, userID, title, message, domain.NotificationPayment, referenceID); err != nil {
		s.logger.Warn("Notification dispatch failed",
			zap.Uint64("user", userID), zap.String("title", title), zap.Error(err))
	}
}
