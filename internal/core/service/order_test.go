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

type prepareOrderMocks func(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier)

func newOrderService(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier) *service.OrderService {
	t.Helper()
	logger, _ := zap.NewProduction()
	s, err := service.NewOrderService(repo, notifier, nil, logger)
	assert.NoError(t, err)
	return s
}

func TestOrder_PlaceOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)

	repo.EXPECT().ReadProduct(gomock.Any(), "prod1").
		Return(testProduct(t, "prod1", "Apple", "1.50", 10), nil)
	repo.EXPECT().ReadProduct(gomock.Any(), "prod2").
		Return(testProduct(t, "prod2", "Orange", "2.00", 10), nil)
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
			return order, nil
		})
	notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Order Placed",
		gomock.Any(), domain.NotificationOrderUpdate, gomock.Any()).
		Return(&domain.Notification{}, nil)

	s := newOrderService(t, repo, notifier)

	order, err := s.PlaceOrder(context.Background(), 1, []domain.OrderLine{
		{ProductID: "prod1", Quantity: 2},
		{ProductID: "prod2", Quantity: 3},
	})
	assert.NoError(t, err)
	assert.Equal(t, "9.00 USD", order.Total.String())
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Len(t, order.Items(), 2)
}

func TestOrder_PlaceOrderEmpty(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s := newOrderService(t, mock.NewMockRepository(mockCtrl), mock.NewMockNotifier(mockCtrl))

	_, err := s.PlaceOrder(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrder_UpdateOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name     string
		status   domain.OrderStatus
		mock     prepareOrderMocks
		checkErr func(t *testing.T, err error)
	}{
		{
			name:   "Pending straight to delivered",
			status: domain.OrderStatusDelivered,
			mock: func(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), "order1").
					Return(newTestOrder(t, domain.OrderStatusPending), nil)
				repo.EXPECT().UpdateOrderStatus(gomock.Any(), "order1", domain.OrderStatusDelivered).
					Return(newTestOrder(t, domain.OrderStatusDelivered), nil)
				notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Order Update",
					gomock.Any(), domain.NotificationDelivery, "order1").
					Return(&domain.Notification{}, nil)
			},
		},
		{
			name:   "Transition out of delivered rejected",
			status: domain.OrderStatusPreparing,
			mock: func(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), "order1").
					Return(newTestOrder(t, domain.OrderStatusDelivered), nil)
			},
			checkErr: func(t *testing.T, err error) {
				var stateErr *domain.InvalidStateError
				assert.ErrorAs(t, err, &stateErr)
				assert.Equal(t, domain.OrderStatusDelivered, stateErr.Status)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(t, repo, notifier)

			s := newOrderService(t, repo, notifier)

			result, err := s.UpdateOrderStatus(context.Background(), "order1", test.status)

			if test.checkErr != nil {
				test.checkErr(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.status, result.Status)
		})
	}
}

func TestOrder_CancelOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name      string
		mock      prepareOrderMocks
		expReason string
	}{
		{
			name: "Cancel pending",
			mock: func(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), "order1").
					Return(newTestOrder(t, domain.OrderStatusPending), nil)
				repo.EXPECT().UpdateOrderStatus(gomock.Any(), "order1", domain.OrderStatusCancelled).
					Return(newTestOrder(t, domain.OrderStatusCancelled), nil)
				notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Order Cancelled",
					gomock.Any(), domain.NotificationOrderUpdate, "order1").
					Return(&domain.Notification{}, nil)
			},
		},
		{
			name: "Cancel delivered",
			mock: func(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), "order1").
					Return(newTestOrder(t, domain.OrderStatusDelivered), nil)
			},
			expReason: "cannot cancel delivered order",
		},
		{
			name: "Cancel twice",
			mock: func(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), "order1").
					Return(newTestOrder(t, domain.OrderStatusCancelled), nil)
			},
			expReason: "order already cancelled",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(t, repo, notifier)

			s := newOrderService(t, repo, notifier)

			result, err := s.CancelOrder(context.Background(), "order1")

			if test.expReason != "" {
				var stateErr *domain.InvalidStateError
				assert.ErrorAs(t, err, &stateErr)
				assert.Equal(t, test.expReason, stateErr.Reason)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.OrderStatusCancelled, result.Status)
		})
	}
}

func TestOrder_TrackOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("No delivery info yet", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ReadOrder(gomock.Any(), "order1").
			Return(newTestOrder(t, domain.OrderStatusPending), nil)

		s := newOrderService(t, repo, mock.NewMockNotifier(mockCtrl))

		_, err := s.TrackOrder(context.Background(), "order1")
		var stateErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("Delivery info attached", func(t *testing.T) {
		info, err := domain.NewDeliveryInfo("1 Main St", "+1000000")
		assert.NoError(t, err)
		info.TrackingNumber = "TRACK42"

		order := newTestOrder(t, domain.OrderStatusOutForDelivery)
		assert.NoError(t, order.SetDeliveryInfo(info))

		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ReadOrder(gomock.Any(), "order1").Return(order, nil)

		s := newOrderService(t, repo, mock.NewMockNotifier(mockCtrl))

		got, err := s.TrackOrder(context.Background(), "order1")
		assert.NoError(t, err)
		assert.Equal(t, "TRACK42", got.TrackingNumber)
	})
}

func TestOrder_AssignRoles(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)

	repo.EXPECT().ReadOrder(gomock.Any(), "order1").
		Return(newTestOrder(t, domain.OrderStatusConfirmed), nil)
	repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
			return order, nil
		})
	notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Order Update",
		gomock.Any(), domain.NotificationOrderUpdate, "order1").
		Return(&domain.Notification{}, nil)

	s := newOrderService(t, repo, notifier)

	result, err := s.AssignSeller(context.Background(), "order1", 7)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), result.SellerID)
}

// A failed notification dispatch never fails the order operation.
func TestOrder_NotificationFailureIgnored(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)

	repo.EXPECT().ReadOrder(gomock.Any(), "order1").
		Return(newTestOrder(t, domain.OrderStatusPending), nil)
	repo.EXPECT().UpdateOrderStatus(gomock.Any(), "order1", domain.OrderStatusConfirmed).
		Return(newTestOrder(t, domain.OrderStatusConfirmed), nil)
	notifier.EXPECT().Notify(gomock.Any(), uint64(1), "Order Update",
		gomock.Any(), domain.NotificationOrderUpdate, "order1").
		Return(nil, errors.New("dispatch backend down"))

	s := newOrderService(t, repo, notifier)

	result, err := s.UpdateOrderStatus(context.Background(), "order1", domain.OrderStatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, result.Status)
}
