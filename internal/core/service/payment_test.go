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

type preparePaymentMocks func(t *testing.T, repo *mock.MockRepository,
	gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier)

func TestPayment_ProcessPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	tests := []struct {
		name     string
		order    func(t *testing.T) *domain.Order
		mock     preparePaymentMocks
		expOK    bool
		expError error
	}{
		{
			name:  "Charge good",
			order: func(t *testing.T) *domain.Order { return newTestOrder(t, domain.OrderStatusPending) },
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil, nil)
				gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any(), mustMoney(t, "9.00")).
					Return(true, nil)
				repo.EXPECT().UpdatePaymentStatus(gomock.Any(), gomock.Any(), domain.PaymentStatusCompleted).
					Return(nil, nil)
				notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Payment Successful",
					gomock.Any(), domain.NotificationPayment, gomock.Any()).
					Return(&domain.Notification{}, nil)
			},
			expOK: true,
		},
		{
			name:  "Gateway decline",
			order: func(t *testing.T) *domain.Order { return newTestOrder(t, domain.OrderStatusPending) },
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil, nil)
				gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any(), mustMoney(t, "9.00")).
					Return(false, nil)
				repo.EXPECT().UpdatePaymentStatus(gomock.Any(), gomock.Any(), domain.PaymentStatusFailed).
					Return(nil, nil)
				notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Payment Failed",
					gomock.Any(), domain.NotificationPayment, gomock.Any()).
					Return(&domain.Notification{}, nil)
			},
			expError: domain.ErrPaymentFailed,
		},
		{
			name:  "Gateway transport failure",
			order: func(t *testing.T) *domain.Order { return newTestOrder(t, domain.OrderStatusPending) },
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil, nil)
				gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any(), mustMoney(t, "9.00")).
					Return(false, errors.New("gateway unreachable"))
				repo.EXPECT().UpdatePaymentStatus(gomock.Any(), gomock.Any(), domain.PaymentStatusFailed).
					Return(nil, nil)
				notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Payment Failed",
					gomock.Any(), domain.NotificationPayment, gomock.Any()).
					Return(&domain.Notification{}, nil)
			},
			expError: domain.ErrPaymentFailed,
		},
		{
			name: "Zero total rejected",
			order: func(t *testing.T) *domain.Order {
				order, err := domain.NewOrderWithTotal("order1", 1, []domain.OrderItem{
					mustItem(t, "prod1", "Apple", "1.50", 2),
				}, mustMoney(t, "0"))
				assert.NoError(t, err)
				return order
			},
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
			},
			expError: domain.ErrValidation,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			gateway := mock.NewMockPaymentGateway(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(t, repo, gateway, notifier)

			s, err := service.NewPaymentService(repo, gateway, notifier, logger)
			assert.NoError(t, err)

			ok, err := s.ProcessPayment(context.Background(), test.order(t))

			assert.Equal(t, test.expOK, ok)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPayment_RefundPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	completed := func(t *testing.T) *domain.Payment {
		p := domain.NewPayment("pay1", "order1", 1, mustMoney(t, "9.00"))
		p.Status = domain.PaymentStatusCompleted
		return p
	}

	tests := []struct {
		name      string
		mock      preparePaymentMocks
		expStatus domain.PaymentStatus
		expError  error
	}{
		{
			name: "Refund good",
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				refunded := completed(t)
				refunded.Status = domain.PaymentStatusRefunded

				repo.EXPECT().ReadPaymentByOrder(gomock.Any(), "order1").Return(completed(t), nil)
				gateway.EXPECT().RefundPayment(gomock.Any(), "pay1").Return(true, nil)
				repo.EXPECT().UpdatePaymentStatus(gomock.Any(), "pay1", domain.PaymentStatusRefunded).
					Return(refunded, nil)
				notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Payment Refunded",
					gomock.Any(), domain.NotificationPayment, "pay1").
					Return(&domain.Notification{}, nil)
			},
			expStatus: domain.PaymentStatusRefunded,
		},
		{
			name: "Second refund rejected",
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				refunded := completed(t)
				refunded.Status = domain.PaymentStatusRefunded
				repo.EXPECT().ReadPaymentByOrder(gomock.Any(), "order1").Return(refunded, nil)
			},
			expError: domain.ErrRefundNotAllowed,
		},
		{
			name: "Pending payment rejected",
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				pending := domain.NewPayment("pay1", "order1", 1, mustMoney(t, "9.00"))
				repo.EXPECT().ReadPaymentByOrder(gomock.Any(), "order1").Return(pending, nil)
			},
			expError: domain.ErrRefundNotAllowed,
		},
		{
			name: "Gateway refusal keeps status",
			mock: func(t *testing.T, repo *mock.MockRepository,
				gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadPaymentByOrder(gomock.Any(), "order1").Return(completed(t), nil)
				gateway.EXPECT().RefundPayment(gomock.Any(), "pay1").Return(false, nil)
			},
			expError: domain.ErrPaymentFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			gateway := mock.NewMockPaymentGateway(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(t, repo, gateway, notifier)

			s, err := service.NewPaymentService(repo, gateway, notifier, logger)
			assert.NoError(t, err)

			result, err := s.RefundPayment(context.Background(), "order1")

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expStatus, result.Status)
		})
	}
}
