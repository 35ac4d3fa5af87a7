package repositories

import (
	"context"
	"errors"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	ApplyDelta(ctx context.Context, id uuid.UUID, delta float64) (*models.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasIngredientReferences(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter *models.InventoryFilter) ([]*models.InventoryItem, error)
	LowStock(ctx context.Context) ([]*models.InventoryItem, error)
	CategoryStats(ctx context.Context) ([]*models.InventoryCategoryStat, error)
	Stats(ctx context.Context) (*models.InventoryStats, error)
}

type inventoryRepo struct {
	db DB
}

func NewInventoryRepo(db DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, name, category, current_stock, minimum_stock, unit, unit_price, supplier, is_low_stock, last_restocked, created_at, updated_at`

func scanInventoryItem(row pgx.Row) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.CurrentStock, &item.MinimumStock,
		&item.Unit, &item.UnitPrice, &item.Supplier, &item.IsLowStock, &item.LastRestocked,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create inserts the item with the low-stock flag derived from the stock
// values in the same statement.
func (r *inventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, name, category, current_stock, minimum_stock, unit, unit_price, supplier, is_low_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $4 <= $5)
		RETURNING is_low_stock, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, item.ID, item.Name, item.Category, item.CurrentStock,
		item.MinimumStock, item.Unit, item.UnitPrice, item.Supplier).
		Scan(&item.IsLowStock, &item.CreatedAt, &item.UpdatedAt)
}

func (r *inventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	item, err := scanInventoryItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("inventory item", id.String())
	}
	return item, err
}

// Update writes the merged item and recomputes the low-stock flag from the new
// values. last_restocked moves only when the stock level increases.
func (r *inventoryRepo) Update(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	query := `
		UPDATE inventory
		SET name = $1,
		    category = $2,
		    current_stock = $3,
		    minimum_stock = $4,
		    unit = $5,
		    unit_price = $6,
		    supplier = $7,
		    is_low_stock = $3 <= $4,
		    last_restocked = CASE WHEN $3 > current_stock THEN NOW() ELSE last_restocked END,
		    updated_at = NOW()
		WHERE id = $8
		RETURNING ` + inventoryColumns
	updated, err := scanInventoryItem(r.db.QueryRow(ctx, query, item.Name, item.Category,
		item.CurrentStock, item.MinimumStock, item.Unit, item.UnitPrice, item.Supplier, item.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("inventory item", item.ID.String())
	}
	return updated, err
}

// ApplyDelta adds delta to current_stock and recomputes is_low_stock in the
// same statement, so no observer can ever see the flag diverge from the stock
// value that produced it. A positive delta also stamps last_restocked.
func (r *inventoryRepo) ApplyDelta(ctx context.Context, id uuid.UUID, delta float64) (*models.InventoryItem, error) {
	query := `
		UPDATE inventory
		SET current_stock = current_stock + $1,
		    is_low_stock = (current_stock + $1) <= minimum_stock,
		    last_restocked = CASE WHEN $1 > 0 THEN NOW() ELSE last_restocked END,
		    updated_at = NOW()
		WHERE id = $2
		RETURNING ` + inventoryColumns
	item, err := scanInventoryItem(r.db.QueryRow(ctx, query, delta, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("inventory item", id.String())
	}
	return item, err
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundError("inventory item", id.String())
	}
	return nil
}

func (r *inventoryRepo) HasIngredientReferences(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM menu_ingredients WHERE inventory_item_id = $1)`, id).
		Scan(&exists)
	return exists, err
}

func (r *inventoryRepo) List(ctx context.Context, filter *models.InventoryFilter) ([]*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	var conditions []string
	var args []any
	if filter != nil && filter.LowStock != nil {
		args = append(args, *filter.LowStock)
		conditions = append(conditions, `is_low_stock = $1`)
	}
	if filter != nil && filter.Category != nil {
		args = append(args, *filter.Category)
		if len(args) == 1 {
			conditions = append(conditions, `category = $1`)
		} else {
			conditions = append(conditions, `category = $2`)
		}
	}
	if len(conditions) == 1 {
		query += ` WHERE ` + conditions[0]
	} else if len(conditions) == 2 {
		query += ` WHERE ` + conditions[0] + ` AND ` + conditions[1]
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

func (r *inventoryRepo) LowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE is_low_stock = true
		ORDER BY (current_stock / NULLIF(minimum_stock, 0)) ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

func collectInventoryItems(rows pgx.Rows) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepo) CategoryStats(ctx context.Context) ([]*models.InventoryCategoryStat, error) {
	query := `
		SELECT category,
		       COUNT(*) AS item_count,
		       COALESCE(SUM(current_stock), 0) AS total_stock,
		       COALESCE(SUM(current_stock * unit_price), 0) AS total_value,
		       COUNT(CASE WHEN is_low_stock THEN 1 END) AS low_stock_count
		FROM inventory
		GROUP BY category
		ORDER BY total_value DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.InventoryCategoryStat
	for rows.Next() {
		stat := &models.InventoryCategoryStat{}
		if err := rows.Scan(&stat.Category, &stat.ItemCount, &stat.TotalStock, &stat.TotalValue, &stat.LowStockCount); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *inventoryRepo) Stats(ctx context.Context) (*models.InventoryStats, error) {
	stats := &models.InventoryStats{}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(current_stock * unit_price), 0),
		       COUNT(CASE WHEN is_low_stock THEN 1 END)
		FROM inventory
	`).Scan(&stats.TotalItems, &stats.TotalValue, &stats.LowStockItems)
	if err != nil {
		return nil, err
	}
	stats.ByCategory, err = r.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
