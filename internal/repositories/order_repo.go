package repositories

import (
	"context"
	"errors"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	InsertLine(ctx context.Context, line *models.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	Stats(ctx context.Context, date string) (*models.OrderStats, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `o.id, o.order_number, o.table_id, o.total_amount, o.order_type, o.status, o.customer_notes, o.created_at`

func scanOrder(row pgx.Row, withTableNumber bool) (*models.Order, error) {
	o := &models.Order{}
	dest := []any{&o.ID, &o.OrderNumber, &o.TableID, &o.TotalAmount, &o.OrderType, &o.Status, &o.CustomerNotes, &o.CreatedAt}
	if withTableNumber {
		dest = append(dest, &o.TableNumber)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepo) Insert(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, order_number, table_id, total_amount, order_type, status, customer_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, order.ID, order.OrderNumber, order.TableID, order.TotalAmount,
		order.OrderType, order.Status, order.CustomerNotes).
		Scan(&order.CreatedAt)
}

func (r *orderRepo) InsertLine(ctx context.Context, line *models.OrderLine) error {
	query := `
		INSERT INTO order_items (id, order_id, menu_item_id, quantity, price, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, line.ID, line.OrderID, line.MenuItemID, line.Quantity,
		line.UnitPrice, line.SpecialInstructions)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `, t.table_number
		FROM orders o
		LEFT JOIN tables t ON o.table_id = t.id
		WHERE o.id = $1
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id), true)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("order", id.String())
	}
	if err != nil {
		return nil, err
	}
	order.Lines, err = r.linesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) linesFor(ctx context.Context, orderID uuid.UUID) ([]*models.OrderLine, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.price, oi.special_instructions,
		       COALESCE(mi.name, ''), COALESCE(mi.category, '')
		FROM order_items oi
		LEFT JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE oi.order_id = $1
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.OrderLine
	for rows.Next() {
		line := &models.OrderLine{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.MenuItemID, &line.Quantity,
			&line.UnitPrice, &line.SpecialInstructions, &line.Name, &line.Category); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *orderRepo) List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `, t.table_number
		FROM orders o
		LEFT JOIN tables t ON o.table_id = t.id
	`
	var conditions []string
	var args []any
	if filter != nil && filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, placeholderCondition(`o.status`, len(args)))
	}
	if filter != nil && filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		if len(args) == 1 {
			conditions = append(conditions, `DATE(o.created_at) = $1::date`)
		} else {
			conditions = append(conditions, `DATE(o.created_at) = $2::date`)
		}
	}
	if filter != nil && filter.TableID != nil {
		args = append(args, *filter.TableID)
		conditions = append(conditions, placeholderCondition(`o.table_id`, len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows, true)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	query := `UPDATE orders o SET status = $1 WHERE o.id = $2 RETURNING ` + orderColumns
	updated, err := scanOrder(r.db.QueryRow(ctx, query, status, id), false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("order", id.String())
	}
	return updated, err
}

func (r *orderRepo) Stats(ctx context.Context, date string) (*models.OrderStats, error) {
	stats := &models.OrderStats{}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount), 0),
		       COALESCE(AVG(total_amount), 0),
		       COUNT(CASE WHEN status = $2 THEN 1 END),
		       COUNT(CASE WHEN status = $3 THEN 1 END)
		FROM orders
		WHERE DATE(created_at) = $1::date
	`, date, models.OrderPending, models.OrderServed).
		Scan(&stats.Summary.TotalOrders, &stats.Summary.TotalSales, &stats.Summary.AverageOrderValue,
			&stats.Summary.PendingOrders, &stats.Summary.ServedOrders)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour,
		       COUNT(*) AS orders_count,
		       COALESCE(SUM(total_amount), 0) AS hourly_sales
		FROM orders
		WHERE DATE(created_at) = $1::date
		GROUP BY EXTRACT(HOUR FROM created_at)
		ORDER BY hour
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		h := &models.HourlySales{}
		if err := rows.Scan(&h.Hour, &h.OrdersCount, &h.Sales); err != nil {
			return nil, err
		}
		stats.Hourly = append(stats.Hourly, h)
	}
	return stats, rows.Err()
}
