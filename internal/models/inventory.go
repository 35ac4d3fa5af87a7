package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is one stocked ingredient. IsLowStock is derived from
// CurrentStock and MinimumStock and is recomputed in the same statement as
// every stock mutation; it is never written on its own.
type InventoryItem struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Category      string     `json:"category" db:"category"`
	CurrentStock  float64    `json:"current_stock" db:"current_stock"`
	MinimumStock  float64    `json:"minimum_stock" db:"minimum_stock"`
	Unit          string     `json:"unit" db:"unit"`
	UnitPrice     float64    `json:"unit_price" db:"unit_price"`
	Supplier      *string    `json:"supplier" db:"supplier"`
	IsLowStock    bool       `json:"is_low_stock" db:"is_low_stock"`
	LastRestocked *time.Time `json:"last_restocked" db:"last_restocked"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// InventoryPatch holds optional fields for a partial inventory update.
type InventoryPatch struct {
	Name         *string  `json:"name,omitempty"`
	Category     *string  `json:"category,omitempty"`
	CurrentStock *float64 `json:"current_stock,omitempty"`
	MinimumStock *float64 `json:"minimum_stock,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
	Supplier     *string  `json:"supplier,omitempty"`
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	LowStock *bool
	Category *string
}

// InventoryCategoryStat is one row of the per-category rollup.
type InventoryCategoryStat struct {
	Category      string  `json:"category"`
	ItemCount     int     `json:"item_count"`
	TotalStock    float64 `json:"total_stock"`
	TotalValue    float64 `json:"total_value"`
	LowStockCount int     `json:"low_stock_count"`
}

// InventoryStats is the global inventory summary.
type InventoryStats struct {
	TotalItems    int                      `json:"total_items"`
	TotalValue    float64                  `json:"total_value"`
	LowStockItems int                      `json:"low_stock_items"`
	ByCategory    []*InventoryCategoryStat `json:"by_category"`
}
