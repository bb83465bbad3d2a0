package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/backend/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = "id, order_id, user_id, amount, currency, status, created_at, updated_at"

func (r *Repository) CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.Insert("payments").
		Columns("id", "order_id", "user_id", "amount", "currency", "status", "created_at", "updated_at").
		Values(payment.ID, payment.OrderID, payment.UserID, payment.Amount.Amount(),
			payment.Amount.Currency(), payment.Status, payment.CreatedAt, payment.UpdatedAt)

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
	return payment, nil
}

func (r *Repository) ReadPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Select(paymentColumns).
		From("payments").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at DESC").
		Limit(1)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	payment, err := scanPayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return payment, nil
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.Update("payments").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": paymentID}).
		Suffix("RETURNING " + paymentColumns)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	payment, err := scanPayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return payment, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		id        string
		orderID   string
		userID    uint64
		amount    decimal.Decimal
		currency  string
		status    domain.PaymentStatus
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&id, &orderID, &userID, &amount, &currency, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	amountMoney, err := domain.NewMoney(amount, currency)
	if err != nil {
		return nil, err
	}

	return &domain.Payment{
		ID:        id,
		OrderID:   orderID,
		UserID:    userID,
		Amount:    amountMoney,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
