package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/backend/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

const orderColumns = "id, user_id, items, total, currency, status, delivery, seller_id, driver_id, created_at, updated_at"

type orderItemRow struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Currency    string `json:"currency"`
	Quantity    int64  `json:"quantity"`
	Unit        string `json:"unit"`
	Subtotal    string `json:"subtotal"`
}

type deliveryRow struct {
	Address               string     `json:"address"`
	Phone                 string     `json:"phone"`
	TrackingNumber        string     `json:"tracking_number,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	DeliveryNotes         string     `json:"delivery_notes,omitempty"`
}

func itemRows(items []domain.OrderItem) []orderItemRow {
	rows := make([]orderItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, orderItemRow{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.Amount().String(),
			Currency:    item.UnitPrice.Currency(),
			Quantity:    item.Quantity.Value(),
			Unit:        item.Quantity.Unit(),
			Subtotal:    item.Subtotal.Amount().String(),
		})
	}
	return rows
}

func restoreItems(rows []orderItemRow) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(rows))
	for _, row := range rows {
		price, err := parseMoney(row.UnitPrice, row.Currency)
		if err != nil {
			return nil, err
		}
		subtotal, err := parseMoney(row.Subtotal, row.Currency)
		if err != nil {
			return nil, err
		}
		quantity, err := domain.NewQuantity(row.Quantity, row.Unit)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			UnitPrice:   price,
			Quantity:    quantity,
			Subtotal:    subtotal,
		})
	}
	return items, nil
}

func parseMoney(amount, currency string) (domain.Money, error) {
	d, err := decimal.Parse(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("parsing stored amount %q: %w", amount, err)
	}
	return domain.NewMoney(d, currency)
}

func deliveryRowOf(info domain.DeliveryInfo) deliveryRow {
	return deliveryRow{
		Address:               info.Address,
		Phone:                 info.Phone,
		TrackingNumber:        info.TrackingNumber,
		EstimatedDeliveryTime: info.EstimatedDeliveryTime,
		DeliveryNotes:         info.DeliveryNotes,
	}
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(itemRows(order.Items()))
	if err != nil {
		return nil, err
	}

	var delivery []byte
	if order.Delivery != nil {
		delivery, err = json.Marshal(deliveryRowOf(*order.Delivery))
		if err != nil {
			return nil, err
		}
	}

	statement := r.db.QueryBuilder.Insert("orders").
		Columns("id", "user_id", "items", "total", "currency", "status",
			"delivery", "seller_id", "driver_id", "created_at", "updated_at").
		Values(order.ID, order.UserID, items, order.Total.Amount(), order.Total.Currency(),
			order.Status, delivery, order.SellerID, order.DriverID, order.CreatedAt, order.UpdatedAt)

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
	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	return r.listOrders(ctx, sq.Eq{"user_id": userID})
}

func (r *Repository) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.listOrders(ctx, sq.Eq{"status": status})
}

func (r *Repository) listOrders(ctx context.Context, where sq.Eq) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns).
		From("orders").
		Where(where).
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

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var delivery []byte
	var err error
	if order.Delivery != nil {
		delivery, err = json.Marshal(deliveryRowOf(*order.Delivery))
		if err != nil {
			return nil, err
		}
	}

	statement := r.db.QueryBuilder.Update("orders").
		Set("status", order.Status).
		Set("delivery", delivery).
		Set("seller_id", order.SellerID).
		Set("driver_id", order.DriverID).
		Set("updated_at", order.UpdatedAt).
		Where(sq.Eq{"id": order.ID}).
		Suffix("RETURNING " + orderColumns)

	return r.mutateOrder(ctx, statement)
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": orderID}).
		Suffix("RETURNING " + orderColumns)

	return r.mutateOrder(ctx, statement)
}

func (r *Repository) UpdateDeliveryInfo(ctx context.Context, orderID string, info domain.DeliveryInfo) (*domain.Order, error) {
	delivery, err := json.Marshal(deliveryRowOf(info))
	if err != nil {
		return nil, err
	}

	statement := r.db.QueryBuilder.Update("orders").
		Set("delivery", delivery).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": orderID}).
		Suffix("RETURNING " + orderColumns)

	return r.mutateOrder(ctx, statement)
}

func (r *Repository) mutateOrder(ctx context.Context, statement sq.UpdateBuilder) (*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		id           string
		userID       uint64
		itemsJSON    []byte
		total        decimal.Decimal
		currency     string
		status       domain.OrderStatus
		deliveryJSON []byte
		sellerID     uint64
		driverID     uint64
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&id, &userID, &itemsJSON, &total, &currency, &status,
		&deliveryJSON, &sellerID, &driverID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var itemRows []orderItemRow
	if err := json.Unmarshal(itemsJSON, &itemRows); err != nil {
		return nil, fmt.Errorf("decoding order items: %w", err)
	}
	items, err := restoreItems(itemRows)
	if err != nil {
		return nil, err
	}

	totalMoney, err := domain.NewMoney(total, currency)
	if err != nil {
		return nil, err
	}

	var delivery *domain.DeliveryInfo
	if len(deliveryJSON) > 0 {
		var row deliveryRow
		if err := json.Unmarshal(deliveryJSON, &row); err != nil {
			return nil, fmt.Errorf("decoding delivery info: %w", err)
		}
		delivery = &domain.DeliveryInfo{
			Address:               row.Address,
			Phone:                 row.Phone,
			TrackingNumber:        row.TrackingNumber,
			EstimatedDeliveryTime: row.EstimatedDeliveryTime,
			DeliveryNotes:         row.DeliveryNotes,
		}
	}

	return domain.RestoreOrder(id, userID, items, totalMoney, status, delivery,
		sellerID, driverID, createdAt, updatedAt), nil
}
