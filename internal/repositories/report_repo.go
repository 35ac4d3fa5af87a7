package repositories

import (
	"context"

	"restomart/internal/models"
)

// ReportRepository holds the read-only rollup queries consumed by dashboards.
// These have no invariants beyond read consistency of a single query.
type ReportRepository interface {
	DailySales(ctx context.Context, date string) (*models.DailySalesReport, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type reportRepo struct {
	db DB
}

func NewReportRepo(db DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) DailySales(ctx context.Context, date string) (*models.DailySalesReport, error) {
	report := &models.DailySalesReport{Date: date}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount), 0),
		       COALESCE(AVG(total_amount), 0),
		       COALESCE(MIN(total_amount), 0),
		       COALESCE(MAX(total_amount), 0)
		FROM orders
		WHERE DATE(created_at) = $1::date AND status = $2
	`, date, models.OrderServed).
		Scan(&report.Summary.TotalOrders, &report.Summary.TotalSales, &report.Summary.AverageOrderValue,
			&report.Summary.MinOrderValue, &report.Summary.MaxOrderValue)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT mi.category,
		       COALESCE(SUM(oi.quantity), 0) AS items_sold,
		       COALESCE(SUM(oi.quantity * oi.price), 0) AS category_revenue
		FROM order_items oi
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		JOIN orders o ON oi.order_id = o.id
		WHERE DATE(o.created_at) = $1::date AND o.status = $2
		GROUP BY mi.category
		ORDER BY category_revenue DESC
	`, date, models.OrderServed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		cs := &models.CategorySales{}
		if err := rows.Scan(&cs.Category, &cs.ItemsSold, &cs.Revenue); err != nil {
			return nil, err
		}
		report.ByCategory = append(report.ByCategory, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hourRows, err := r.db.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour,
		       COUNT(*) AS orders_count,
		       COALESCE(SUM(total_amount), 0) AS hourly_sales
		FROM orders
		WHERE DATE(created_at) = $1::date AND status = $2
		GROUP BY EXTRACT(HOUR FROM created_at)
		ORDER BY hour
	`, date, models.OrderServed)
	if err != nil {
		return nil, err
	}
	defer hourRows.Close()
	for hourRows.Next() {
		h := &models.HourlySales{}
		if err := hourRows.Scan(&h.Hour, &h.OrdersCount, &h.Sales); err != nil {
			return nil, err
		}
		report.ByHour = append(report.ByHour, h)
	}
	return report, hourRows.Err()
}

func (r *reportRepo) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = $1 THEN 1 END),
		       COALESCE(SUM(CASE WHEN status = $2 THEN total_amount ELSE 0 END), 0)
		FROM orders
		WHERE DATE(created_at) = CURRENT_DATE
	`, models.OrderPending, models.OrderServed).
		Scan(&stats.TodayOrders, &stats.PendingOrders, &stats.TodaySales)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = $1 THEN 1 END)
		FROM tables
	`, models.TableOccupied).Scan(&stats.TotalTables, &stats.ActiveTables)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory WHERE is_low_stock = true`).
		Scan(&stats.LowStockItems)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations
		WHERE DATE(reservation_time) = CURRENT_DATE AND status = $1
	`, models.ReservationConfirmed).Scan(&stats.TodayReservations)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
