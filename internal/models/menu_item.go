package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a sellable dish. IsAvailable is an operator-controlled flag,
// independent of ingredient stock levels.
type MenuItem struct {
	ID              uuid.UUID                `json:"id" db:"id"`
	Name            string                   `json:"name" db:"name"`
	Description     *string                  `json:"description" db:"description"`
	Price           float64                  `json:"price" db:"price"`
	Category        string                   `json:"category" db:"category"`
	ImageURL        *string                  `json:"image_url" db:"image_url"`
	PreparationTime *int                     `json:"preparation_time" db:"preparation_time"`
	IsAvailable     bool                     `json:"is_available" db:"is_available"`
	Ingredients     []*IngredientRequirement `json:"ingredients,omitempty"`
	CreatedAt       time.Time                `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at" db:"updated_at"`
}

// IngredientRequirement states how much of an inventory item one unit of a
// menu item consumes. Name, Unit and CurrentStock are joined from inventory.
type IngredientRequirement struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Name            string    `json:"name,omitempty"`
	Unit            string    `json:"unit,omitempty"`
	Quantity        float64   `json:"quantity"`
	CurrentStock    float64   `json:"current_stock,omitempty"`
}

// MenuPatch holds optional fields for a partial menu item update. A non-nil
// Ingredients slice replaces the full requirement set; an empty non-nil slice
// clears it.
type MenuPatch struct {
	Name            *string                  `json:"name,omitempty"`
	Description     *string                  `json:"description,omitempty"`
	Price           *float64                 `json:"price,omitempty"`
	Category        *string                  `json:"category,omitempty"`
	ImageURL        *string                  `json:"image_url,omitempty"`
	PreparationTime *int                     `json:"preparation_time,omitempty"`
	IsAvailable     *bool                    `json:"is_available,omitempty"`
	Ingredients     []*IngredientRequirement `json:"ingredients,omitempty"`
}

// MenuFilter narrows menu listings.
type MenuFilter struct {
	Category  *string
	Available *bool
}

// MenuCategoryStat is one row of the per-category menu rollup.
type MenuCategoryStat struct {
	Category  string  `json:"category"`
	ItemCount int     `json:"item_count"`
	AvgPrice  float64 `json:"avg_price"`
}

// InsufficientIngredient describes one ingredient that blocks an order.
type InsufficientIngredient struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Name            string    `json:"name"`
	CurrentStock    float64   `json:"current_stock"`
	Required        float64   `json:"required"`
}

// MenuAvailability is the result of an availability check for one menu item
// at a requested quantity.
type MenuAvailability struct {
	MenuItemID   uuid.UUID                 `json:"menu_item_id"`
	Name         string                    `json:"name,omitempty"`
	Available    bool                      `json:"available"`
	Reason       string                    `json:"reason,omitempty"`
	Insufficient []*InsufficientIngredient `json:"insufficient_ingredients,omitempty"`
}

// IngredientUsageStat reports how widely an inventory item is used across the
// menu, alongside its stock position.
type IngredientUsageStat struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	UsedInMenuItems int       `json:"used_in_menu_items"`
	RequiredPerUnit float64   `json:"required_per_unit"`
	CurrentStock    float64   `json:"current_stock"`
	MinimumStock    float64   `json:"minimum_stock"`
	IsLowStock      bool      `json:"is_low_stock"`
}
