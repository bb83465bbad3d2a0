package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/backend/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

const productColumns = "id, name, price, currency, stock, unit"

func (r *Repository) ReadProduct(ctx context.Context, productID string) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select(productColumns).
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return product, nil
}

// UpdateStock applies a signed change with the non-negative guard in the WHERE
// clause, so concurrent decrements can never drive stock below zero.
func (r *Repository) UpdateStock(ctx context.Context, productID string, delta int64) (*domain.Product, error) {
	statement := r.db.QueryBuilder.Update("products").
		Set("stock", sq.Expr("stock + ?", delta)).
		Where(sq.Eq{"id": productID}).
		Where(sq.Expr("stock + ? >= 0", delta)).
		Suffix("RETURNING " + productColumns)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			// Guard failed or no such product; tell them apart.
			if _, rerr := r.ReadProduct(ctx, productID); rerr != nil {
				return nil, rerr
			}
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}

	return product, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		id       string
		name     string
		price    decimal.Decimal
		currency string
		stock    int64
		unit     string
	)

	err := row.Scan(&id, &name, &price, &currency, &stock, &unit)
	if err != nil {
		return nil, err
	}

	priceMoney, err := domain.NewMoney(price, currency)
	if err != nil {
		return nil, err
	}
	stockQty, err := domain.NewQuantity(stock, unit)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		ID:    id,
		Name:  name,
		Price: priceMoney,
		Stock: stockQty,
	}, nil
}
