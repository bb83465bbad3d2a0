package service

import (
	"context"
	"time"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService persists notifications and fans them out to live
// per-user subscribers.
type NotificationService struct {
	repo   port.Repository
	hub    *broadcaster
	logger *zap.Logger
}

// NewNotificationService creates the dispatcher. buffer is the per-subscriber
// live-feed capacity; notifications beyond it are dropped for that subscriber.
func NewNotificationService(repo port.Repository, buffer int, logger *zap.Logger) (*NotificationService, error) {
	return &NotificationService{
		repo:   repo,
		hub:    newBroadcaster(buffer),
		logger: logger,
	}, nil
}

func (s *NotificationService) Notify(ctx context.Context, userID uint64, title, message string,
	ntype domain.NotificationType, referenceID string) (*domain.Notification, error) {
	notification := &domain.Notification{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        ntype,
		ReferenceID: referenceID,
		CreatedAt:   time.Now(),
	}

	saved, err := s.repo.CreateNotification(ctx, notification)
	if err != nil {
		s.logger.Error("Create notification", zap.Error(err))
		return nil, err
	}

	if dropped := s.hub.publish(saved); dropped > 0 {
		s.logger.Warn("Dropped notification for slow subscribers",
			zap.Uint64("user", userID), zap.Int("dropped", dropped))
	}

	return saved, nil
}

// StreamUserNotifications yields the user's stored notifications followed by a
// live feed. The returned channel is closed only when ctx is cancelled;
// subscribers control termination by disconnecting.
func (s *NotificationService) StreamUserNotifications(ctx context.Context, userID uint64) (<-chan *domain.Notification, error) {
	live := s.hub.subscribe(userID)

	history, err := s.repo.ListNotificationsByUser(ctx, userID)
	if err != nil {
		s.hub.unsubscribe(userID, live)
		s.logger.Error("List notifications", zap.Error(err))
		return nil, err
	}

	out := make(chan *domain.Notification)
	go func() {
		defer close(out)
		defer s.hub.unsubscribe(userID, live)

		for _, n := range history {
			select {
			case out <- n:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case n := <-live:
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uint64) ([]*domain.Notification, error) {
	return s.repo.ListNotificationsByUser(ctx, userID)
}

func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	ok, err := s.repo.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		s.logger.Error("Mark notification read", zap.Error(err))
		return err
	}
	if !ok {
		return domain.ErrDataNotFound
	}
	return nil
}

func (s *NotificationService) GetUnreadNotificationCount(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.CountUnreadNotifications(ctx, userID)
}
