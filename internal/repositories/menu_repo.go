package repositories

import (
	"context"
	"errors"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	ReplaceIngredients(ctx context.Context, menuItemID uuid.UUID, ingredients []*models.IngredientRequirement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	// GetAvailableForOrder returns the item only when it exists and its
	// availability flag is set; used by the order placement workflow.
	GetAvailableForOrder(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	List(ctx context.Context, filter *models.MenuFilter) ([]*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IsReferencedByOrders(ctx context.Context, id uuid.UUID) (bool, error)
	Categories(ctx context.Context) ([]*models.MenuCategoryStat, error)
	Search(ctx context.Context, query string, category *string) ([]*models.MenuItem, error)
	RequirementsFor(ctx context.Context, menuItemID uuid.UUID) ([]*models.IngredientRequirement, error)
	// InsufficientIngredients lists the ingredients whose current stock cannot
	// cover quantity units of the menu item.
	InsufficientIngredients(ctx context.Context, menuItemID uuid.UUID, quantity int) ([]*models.InsufficientIngredient, error)
	IngredientStats(ctx context.Context) ([]*models.IngredientUsageStat, error)
}

type menuRepo struct {
	db DB
}

func NewMenuRepo(db DB) MenuRepository {
	return &menuRepo{db: db}
}

const menuColumns = `id, name, description, price, category, image_url, preparation_time, is_available, created_at, updated_at`

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.ImageURL, &item.PreparationTime, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *menuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, price, category, image_url, preparation_time, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, item.ID, item.Name, item.Description, item.Price,
		item.Category, item.ImageURL, item.PreparationTime, item.IsAvailable).
		Scan(&item.CreatedAt, &item.UpdatedAt)
}

// ReplaceIngredients swaps the full ingredient requirement set of a menu item.
// Runs inside the caller's transaction when the swap must be atomic with the
// item write.
func (r *menuRepo) ReplaceIngredients(ctx context.Context, menuItemID uuid.UUID, ingredients []*models.IngredientRequirement) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM menu_ingredients WHERE menu_item_id = $1`, menuItemID); err != nil {
		return err
	}
	for _, ing := range ingredients {
		_, err := r.db.Exec(ctx,
			`INSERT INTO menu_ingredients (menu_item_id, inventory_item_id, quantity) VALUES ($1, $2, $3)`,
			menuItemID, ing.InventoryItemID, ing.Quantity)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *menuRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := scanMenuItem(r.db.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("menu item", id.String())
	}
	if err != nil {
		return nil, err
	}
	item.Ingredients, err = r.RequirementsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *menuRepo) GetAvailableForOrder(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1 AND is_available = true`
	item, err := scanMenuItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ConflictError("menu item", "menu item "+id.String()+" not available")
	}
	return item, err
}

func (r *menuRepo) List(ctx context.Context, filter *models.MenuFilter) ([]*models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items`
	var conditions []string
	var args []any
	if filter != nil && filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, placeholderCondition(`category`, len(args)))
	}
	if filter != nil && filter.Available != nil {
		args = append(args, *filter.Available)
		conditions = append(conditions, placeholderCondition(`is_available`, len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := collectMenuItems(rows)
	if err != nil {
		return nil, err
	}
	return items, r.attachIngredients(ctx, items)
}

func (r *menuRepo) Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET name = $1,
		    description = $2,
		    price = $3,
		    category = $4,
		    image_url = $5,
		    preparation_time = $6,
		    is_available = $7,
		    updated_at = NOW()
		WHERE id = $8
		RETURNING ` + menuColumns
	updated, err := scanMenuItem(r.db.QueryRow(ctx, query, item.Name, item.Description, item.Price,
		item.Category, item.ImageURL, item.PreparationTime, item.IsAvailable, item.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("menu item", item.ID.String())
	}
	return updated, err
}

func (r *menuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM menu_ingredients WHERE menu_item_id = $1`, id); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundError("menu item", id.String())
	}
	return nil
}

func (r *menuRepo) IsReferencedByOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE menu_item_id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *menuRepo) Categories(ctx context.Context) ([]*models.MenuCategoryStat, error) {
	query := `
		SELECT category, COUNT(*) AS item_count, COALESCE(AVG(price), 0) AS avg_price
		FROM menu_items
		WHERE is_available = true
		GROUP BY category
		ORDER BY category
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.MenuCategoryStat
	for rows.Next() {
		stat := &models.MenuCategoryStat{}
		if err := rows.Scan(&stat.Category, &stat.ItemCount, &stat.AvgPrice); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *menuRepo) Search(ctx context.Context, query string, category *string) ([]*models.MenuItem, error) {
	sql := `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE (name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		  AND is_available = true
	`
	args := []any{"%" + query + "%"}
	if category != nil {
		args = append(args, *category)
		sql += ` AND category = $2`
	}
	sql += ` ORDER BY category, name`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := collectMenuItems(rows)
	if err != nil {
		return nil, err
	}
	return items, r.attachIngredients(ctx, items)
}

func (r *menuRepo) RequirementsFor(ctx context.Context, menuItemID uuid.UUID) ([]*models.IngredientRequirement, error) {
	query := `
		SELECT mi.inventory_item_id, inv.name, inv.unit, mi.quantity, inv.current_stock
		FROM menu_ingredients mi
		JOIN inventory inv ON mi.inventory_item_id = inv.id
		WHERE mi.menu_item_id = $1
	`
	rows, err := r.db.Query(ctx, query, menuItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*models.IngredientRequirement
	for rows.Next() {
		ing := &models.IngredientRequirement{}
		if err := rows.Scan(&ing.InventoryItemID, &ing.Name, &ing.Unit, &ing.Quantity, &ing.CurrentStock); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *menuRepo) InsufficientIngredients(ctx context.Context, menuItemID uuid.UUID, quantity int) ([]*models.InsufficientIngredient, error) {
	query := `
		SELECT mi.inventory_item_id, inv.name, inv.current_stock, (mi.quantity * $2) AS total_required
		FROM menu_ingredients mi
		JOIN inventory inv ON mi.inventory_item_id = inv.id
		WHERE mi.menu_item_id = $1
		  AND inv.current_stock < (mi.quantity * $2)
	`
	rows, err := r.db.Query(ctx, query, menuItemID, quantity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insufficient []*models.InsufficientIngredient
	for rows.Next() {
		ing := &models.InsufficientIngredient{}
		if err := rows.Scan(&ing.InventoryItemID, &ing.Name, &ing.CurrentStock, &ing.Required); err != nil {
			return nil, err
		}
		insufficient = append(insufficient, ing)
	}
	return insufficient, rows.Err()
}

func (r *menuRepo) IngredientStats(ctx context.Context) ([]*models.IngredientUsageStat, error) {
	query := `
		SELECT inv.id, inv.name, inv.category,
		       COUNT(mi.menu_item_id) AS used_in_menu_items,
		       COALESCE(SUM(mi.quantity), 0) AS required_per_unit,
		       inv.current_stock, inv.minimum_stock, inv.is_low_stock
		FROM inventory inv
		LEFT JOIN menu_ingredients mi ON inv.id = mi.inventory_item_id
		GROUP BY inv.id, inv.name, inv.category, inv.current_stock, inv.minimum_stock, inv.is_low_stock
		ORDER BY used_in_menu_items DESC, inv.name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.IngredientUsageStat
	for rows.Next() {
		stat := &models.IngredientUsageStat{}
		if err := rows.Scan(&stat.InventoryItemID, &stat.Name, &stat.Category, &stat.UsedInMenuItems,
			&stat.RequiredPerUnit, &stat.CurrentStock, &stat.MinimumStock, &stat.IsLowStock); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func collectMenuItems(rows pgx.Rows) ([]*models.MenuItem, error) {
	var items []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuRepo) attachIngredients(ctx context.Context, items []*models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(items))
	byID := make(map[uuid.UUID]*models.MenuItem, len(items))
	for i, item := range items {
		ids[i] = item.ID
		byID[item.ID] = item
	}
	query := `
		SELECT mi.menu_item_id, mi.inventory_item_id, inv.name, inv.unit, mi.quantity
		FROM menu_ingredients mi
		JOIN inventory inv ON mi.inventory_item_id = inv.id
		WHERE mi.menu_item_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var menuItemID uuid.UUID
		ing := &models.IngredientRequirement{}
		if err := rows.Scan(&menuItemID, &ing.InventoryItemID, &ing.Name, &ing.Unit, &ing.Quantity); err != nil {
			return err
		}
		if item, ok := byID[menuItemID]; ok {
			item.Ingredients = append(item.Ingredients, ing)
		}
	}
	return rows.Err()
}
