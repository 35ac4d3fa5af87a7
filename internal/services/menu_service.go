package services

import (
	"context"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

// MenuService manages the sellable catalog. The availability flag on an item
// is operator-controlled; ingredient-level availability is a separate check
// computed on demand from current stock.
type MenuService interface {
	Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	List(ctx context.Context, filter *models.MenuFilter) ([]*models.MenuItem, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.MenuPatch) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]*models.MenuCategoryStat, error)
	Search(ctx context.Context, query string, category *string) ([]*models.MenuItem, error)
	// CheckAvailability reports whether quantity units of the item can be made
	// from current stock, listing every blocking ingredient.
	CheckAvailability(ctx context.Context, id uuid.UUID, quantity int) (*models.MenuAvailability, error)
	CheckAvailabilityBatch(ctx context.Context, requests []*models.CreateOrderLine) ([]*models.MenuAvailability, error)
	IngredientStats(ctx context.Context) ([]*models.IngredientUsageStat, error)
}

type menuService struct {
	pool     repositories.Pool
	menuRepo repositories.MenuRepository
}

func NewMenuService(pool repositories.Pool, menuRepo repositories.MenuRepository) MenuService {
	return &menuService{pool: pool, menuRepo: menuRepo}
}

func (s *menuService) validate(item *models.MenuItem) error {
	if item.Name == "" {
		return common.ValidationError("name", "is required")
	}
	if item.Category == "" {
		return common.ValidationError("category", "is required")
	}
	if err := common.ValidateNonNegativeFloat(item.Price, "price"); err != nil {
		return err
	}
	for _, ing := range item.Ingredients {
		if ing.InventoryItemID == uuid.Nil {
			return common.ValidationError("ingredients", "inventory_item_id is required")
		}
		if ing.Quantity <= 0 {
			return common.ValidationError("ingredients", "quantity must be positive")
		}
	}
	return nil
}

// Create writes the item and its ingredient requirements in one unit of work,
// so a menu item is never visible without its recipe.
func (s *menuService) Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := s.validate(item); err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		repo := repositories.NewMenuRepo(tx)
		if err := repo.Create(ctx, item); err != nil {
			return common.UnexpectedError("create menu item", err)
		}
		if len(item.Ingredients) > 0 {
			if err := repo.ReplaceIngredients(ctx, item.ID, item.Ingredients); err != nil {
				return common.UnexpectedError("save menu ingredients", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(ctx, id)
}

func (s *menuService) List(ctx context.Context, filter *models.MenuFilter) ([]*models.MenuItem, error) {
	return s.menuRepo.List(ctx, filter)
}

// Update merges the patch over the stored item; a non-nil Ingredients slice
// atomically replaces the requirement set in the same unit of work.
func (s *menuService) Update(ctx context.Context, id uuid.UUID, patch *models.MenuPatch) (*models.MenuItem, error) {
	var updated *models.MenuItem
	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		repo := repositories.NewMenuRepo(tx)
		item, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Description != nil {
			item.Description = patch.Description
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		if patch.Category != nil {
			item.Category = *patch.Category
		}
		if patch.ImageURL != nil {
			item.ImageURL = patch.ImageURL
		}
		if patch.PreparationTime != nil {
			item.PreparationTime = patch.PreparationTime
		}
		if patch.IsAvailable != nil {
			item.IsAvailable = *patch.IsAvailable
		}
		if patch.Ingredients != nil {
			item.Ingredients = patch.Ingredients
		}
		if err := s.validate(item); err != nil {
			return err
		}
		updated, err = repo.Update(ctx, item)
		if err != nil {
			return err
		}
		if patch.Ingredients != nil {
			if err := repo.ReplaceIngredients(ctx, id, patch.Ingredients); err != nil {
				return common.UnexpectedError("save menu ingredients", err)
			}
		}
		updated.Ingredients = item.Ingredients
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete refuses to remove an item that order history still references; the
// rows are the priced lines of past orders.
func (s *menuService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		repo := repositories.NewMenuRepo(tx)
		referenced, err := repo.IsReferencedByOrders(ctx, id)
		if err != nil {
			return common.UnexpectedError("check menu item references", err)
		}
		if referenced {
			return common.InUseError("menu item", "it appears in existing orders")
		}
		return repo.Delete(ctx, id)
	})
}

func (s *menuService) Categories(ctx context.Context) ([]*models.MenuCategoryStat, error) {
	return s.menuRepo.Categories(ctx)
}

func (s *menuService) Search(ctx context.Context, query string, category *string) ([]*models.MenuItem, error) {
	if query == "" {
		return nil, common.ValidationError("q", "is required")
	}
	return s.menuRepo.Search(ctx, query, category)
}

func (s *menuService) CheckAvailability(ctx context.Context, id uuid.UUID, quantity int) (*models.MenuAvailability, error) {
	if quantity <= 0 {
		quantity = 1
	}
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := &models.MenuAvailability{MenuItemID: id, Name: item.Name}
	if !item.IsAvailable {
		result.Reason = "menu item is marked unavailable"
		return result, nil
	}
	insufficient, err := s.menuRepo.InsufficientIngredients(ctx, id, quantity)
	if err != nil {
		return nil, common.UnexpectedError("check ingredient stock", err)
	}
	if len(insufficient) > 0 {
		result.Reason = "insufficient ingredients"
		result.Insufficient = insufficient
		return result, nil
	}
	result.Available = true
	return result, nil
}

func (s *menuService) CheckAvailabilityBatch(ctx context.Context, requests []*models.CreateOrderLine) ([]*models.MenuAvailability, error) {
	if len(requests) == 0 {
		return nil, common.ValidationError("items", "at least one item is required")
	}
	results := make([]*models.MenuAvailability, 0, len(requests))
	for _, req := range requests {
		result, err := s.CheckAvailability(ctx, req.MenuItemID, req.Quantity)
		if err != nil {
			if common.IsNotFound(err) {
				results = append(results, &models.MenuAvailability{
					MenuItemID: req.MenuItemID,
					Reason:     "menu item not found",
				})
				continue
			}
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *menuService) IngredientStats(ctx context.Context) ([]*models.IngredientUsageStat, error) {
	return s.menuRepo.IngredientStats(ctx)
}
