package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port/mock"
	"github.com/freshmart/backend/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareCheckoutMocks func(t *testing.T, repo *mock.MockRepository,
	payments *mock.MockPaymentService, notifier *mock.MockNotifier)

func TestCheckout_ProcessCheckout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	tests := []struct {
		name      string
		mock      prepareCheckoutMocks
		expStatus domain.OrderStatus
		checkErr  func(t *testing.T, err error)
	}{
		{
			name: "Checkout good",
			mock: func(t *testing.T, repo *mock.MockRepository,
				payments *mock.MockPaymentService, notifier *mock.MockNotifier) {
				order := newTestOrder(t, domain.OrderStatusPending)
				confirmed := newTestOrder(t, domain.OrderStatusConfirmed)

				repo.EXPECT().ReadOrder(gomock.Any(), "order1").Return(order, nil)
				repo.EXPECT().ReadProduct(gomock.Any(), "prod1").
					Return(testProduct(t, "prod1", "Apple", "1.50", 10), nil)
				repo.EXPECT().ReadProduct(gomock.Any(), "prod2").
					Return(testProduct(t, "prod2", "Orange", "2.00", 10), nil)
				payments.EXPECT().ProcessPayment(gomock.Any(), order).Return(true, nil)
				repo.EXPECT().UpdateStock(gomock.Any(), "prod1", int64(-2)).
					Return(testProduct(t, "prod1", "Apple", "1.50", 8), nil)
				repo.EXPECT().UpdateStock(gomock.Any(), "prod2", int64(-3)).
					Return(testProduct(t, "prod2", "Orange", "2.00", 7), nil)
				repo.EXPECT().UpdateOrderStatus(gomock.Any(), "order1", domain.OrderStatusConfirmed).
					Return(confirmed, nil)
				notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Order Confirmed",
					gomock.Any(), domain.NotificationOrderUpdate, "order1").
					Return(&domain.Notification{}, nil)
			},
			expStatus: domain.OrderStatusConfirmed,
		},
		{
			name: "Insufficient stock fails before payment",
			mock: func(t *testing.T, repo *mock.MockRepository,
				payments *mock.MockPaymentService, notifier *mock.MockNotifier) {
				order := newTestOrder(t, domain.OrderStatusPending)

				repo.EXPECT().ReadOrder(gomock.Any(), "order1").Return(order, nil)
				repo.EXPECT().ReadProduct(gomock.Any(), "prod1").
					Return(testProduct(t, "prod1", "Apple", "1.50", 1), nil)
			},
			checkErr: func(t *testing.T, err error) {
				var invErr *domain.InsufficientInventoryError
				assert.ErrorAs(t, err, &invErr)
				assert.Equal(t, "prod1", invErr.ProductID)
				assert.Equal(t, int64(2), invErr.Requested)
				assert.Equal(t, int64(1), invErr.Available)
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			},
		},
		{
			name: "Payment failure leaves stock untouched",
			mock: func(t *testing.T, repo *mock.MockRepository,
				payments *mock.MockPaymentService, notifier *mock.MockNotifier) {
				order := newTestOrder(t, domain.OrderStatusPending)

				repo.EXPECT().ReadOrder(gomock.Any(), "order1").Return(order, nil)
				repo.EXPECT().ReadProduct(gomock.Any(), "prod1").
					Return(testProduct(t, "prod1", "Apple", "1.50", 10), nil)
				repo.EXPECT().ReadProduct(gomock.Any(), "prod2").
					Return(testProduct(t, "prod2", "Orange", "2.00", 10), nil)
				payments.EXPECT().ProcessPayment(gomock.Any(), order).
					Return(false, domain.ErrPaymentFailed)
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrPaymentFailed)
			},
		},
		{
			name: "Checkout requires a pending order",
			mock: func(t *testing.T, repo *mock.MockRepository,
				payments *mock.MockPaymentService, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), "order1").
					Return(newTestOrder(t, domain.OrderStatusConfirmed), nil)
			},
			checkErr: func(t *testing.T, err error) {
				var stateErr *domain.InvalidStateError
				assert.ErrorAs(t, err, &stateErr)
				assert.Equal(t, domain.OrderStatusConfirmed, stateErr.Status)
			},
		},
		{
			name: "Order not found",
			mock: func(t *testing.T, repo *mock.MockRepository,
				payments *mock.MockPaymentService, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), "order1").
					Return(nil, domain.ErrDataNotFound)
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrDataNotFound)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			payments := mock.NewMockPaymentService(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(t, repo, payments, notifier)

			s, err := service.NewCheckoutService(repo, payments, notifier, nil, logger)
			assert.NoError(t, err)

			result, err := s.ProcessCheckout(context.Background(), "order1")

			if test.checkErr != nil {
				test.checkErr(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expStatus, result.Status)
		})
	}
}

// A decrement that fails after the charge is surfaced to the caller without a
// refund attempt.
func TestCheckout_StockCommitFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	repo := mock.NewMockRepository(mockCtrl)
	payments := mock.NewMockPaymentService(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)

	order := newTestOrder(t, domain.OrderStatusPending)
	repo.EXPECT().ReadOrder(gomock.Any(), "order1").Return(order, nil)
	repo.EXPECT().ReadProduct(gomock.Any(), "prod1").
		Return(testProduct(t, "prod1", "Apple", "1.50", 10), nil)
	repo.EXPECT().ReadProduct(gomock.Any(), "prod2").
		Return(testProduct(t, "prod2", "Orange", "2.00", 10), nil)
	payments.EXPECT().ProcessPayment(gomock.Any(), order).Return(true, nil)
	repo.EXPECT().UpdateStock(gomock.Any(), "prod1", int64(-2)).
		Return(nil, domain.ErrInsufficientStock)

	s, err := service.NewCheckoutService(repo, payments, notifier, nil, logger)
	assert.NoError(t, err)

	result, err := s.ProcessCheckout(context.Background(), "order1")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}
