package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/backend/internal/core/domain"
)

const notificationColumns = "id, user_id, title, message, type, reference_id, read, created_at"

func (r *Repository) CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	statement := r.db.QueryBuilder.Insert("notifications").
		Columns("id", "user_id", "title", "message", "type", "reference_id", "read", "created_at").
		Values(notification.ID, notification.UserID, notification.Title, notification.Message,
			notification.Type, notification.ReferenceID, notification.Read, notification.CreatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return notification, nil
}

func (r *Repository) ListNotificationsByUser(ctx context.Context, userID uint64) ([]*domain.Notification, error) {
	statement := r.db.QueryBuilder.
		Select(notificationColumns).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Notification, 0)
	for rows.Next() {
		n := domain.Notification{}
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
			&n.ReferenceID, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		list = append(list, &n)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, notificationID string) (bool, error) {
	statement := r.db.QueryBuilder.Update("notifications").
		Set("read", true).
		Where(sq.Eq{"id": notificationID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) CountUnreadNotifications(ctx context.Context, userID uint64) (int64, error) {
	statement := r.db.QueryBuilder.
		Select("count(*)").
		From("notifications").
		Where(sq.Eq{"user_id": userID, "read": false})

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
