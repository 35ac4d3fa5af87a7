package models

// SalesSummary aggregates served orders for one day.
type SalesSummary struct {
	TotalOrders       int     `json:"total_orders"`
	TotalSales        float64 `json:"total_sales"`
	AverageOrderValue float64 `json:"average_order_value"`
	MinOrderValue     float64 `json:"min_order_value"`
	MaxOrderValue     float64 `json:"max_order_value"`
}

// CategorySales is revenue per menu category for one day.
type CategorySales struct {
	Category  string  `json:"category"`
	ItemsSold int     `json:"items_sold"`
	Revenue   float64 `json:"category_revenue"`
}

// DailySalesReport is the full daily sales rollup.
type DailySalesReport struct {
	Date       string           `json:"date"`
	Summary    SalesSummary     `json:"summary"`
	ByCategory []*CategorySales `json:"by_category"`
	ByHour     []*HourlySales   `json:"by_hour"`
}

// InventoryReport combines low-stock items with the per-category value rollup.
type InventoryReport struct {
	LowStockItems []*InventoryItem         `json:"low_stock_items"`
	ByCategory    []*InventoryCategoryStat `json:"by_category"`
}

// DashboardStats is the at-a-glance rollup consumed by dashboards.
type DashboardStats struct {
	TodayOrders       int     `json:"today_orders"`
	TodaySales        float64 `json:"today_sales"`
	PendingOrders     int     `json:"pending_orders"`
	ActiveTables      int     `json:"active_tables"`
	TotalTables       int     `json:"total_tables"`
	LowStockItems     int     `json:"low_stock_items"`
	TodayReservations int     `json:"today_reservations"`
}
