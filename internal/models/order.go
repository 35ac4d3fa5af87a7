package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Transitions between them are unconditional single-field
// writes; no transition table is enforced between order statuses.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderServed    = "served"
	OrderCancelled = "cancelled"
)

// TerminalOrderStatuses are the statuses that no longer block a table from
// deletion.
var TerminalOrderStatuses = []string{OrderServed, OrderCancelled}

const DefaultOrderType = "dine-in"

// Order is a placed order. TotalAmount is computed server-side as the sum of
// line extensions and fixed at creation.
type Order struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	OrderNumber   string       `json:"order_number" db:"order_number"`
	TableID       uuid.UUID    `json:"table_id" db:"table_id"`
	TotalAmount   float64      `json:"total_amount" db:"total_amount"`
	OrderType     string       `json:"order_type" db:"order_type"`
	Status        string       `json:"status" db:"status"`
	CustomerNotes *string      `json:"customer_notes" db:"customer_notes"`
	Lines         []*OrderLine `json:"items,omitempty"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`

	// Joined from tables for read endpoints.
	TableNumber *int `json:"table_number,omitempty"`
}

// OrderLine is one line of an order. UnitPrice is the menu item's price at
// order time and never re-derived afterwards.
type OrderLine struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	OrderID             uuid.UUID `json:"order_id" db:"order_id"`
	MenuItemID          uuid.UUID `json:"menu_item_id" db:"menu_item_id"`
	Quantity            int       `json:"quantity" db:"quantity"`
	UnitPrice           float64   `json:"price" db:"price"`
	SpecialInstructions *string   `json:"special_instructions" db:"special_instructions"`

	// Joined from menu_items for read endpoints.
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

// CreateOrderLine is one requested line in an order placement.
type CreateOrderLine struct {
	MenuItemID          uuid.UUID `json:"menu_item_id"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions *string   `json:"special_instructions,omitempty"`
}

// CreateOrderRequest is the order placement payload.
type CreateOrderRequest struct {
	TableID       uuid.UUID          `json:"table_id"`
	Lines         []*CreateOrderLine `json:"items"`
	OrderType     string             `json:"order_type,omitempty"`
	CustomerNotes *string            `json:"customer_notes,omitempty"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status  *string
	Date    *time.Time
	TableID *uuid.UUID
}

// OrderStatsSummary is the daily order rollup.
type OrderStatsSummary struct {
	TotalOrders       int     `json:"total_orders"`
	TotalSales        float64 `json:"total_sales"`
	AverageOrderValue float64 `json:"average_order_value"`
	PendingOrders     int     `json:"pending_orders"`
	ServedOrders      int     `json:"served_orders"`
}

// HourlySales is one hour bucket of order activity.
type HourlySales struct {
	Hour        int     `json:"hour"`
	OrdersCount int     `json:"orders_count"`
	Sales       float64 `json:"sales"`
}

// OrderStats combines the daily summary with its hourly breakdown.
type OrderStats struct {
	Summary OrderStatsSummary `json:"summary"`
	Hourly  []*HourlySales    `json:"hourly"`
}
