package services

import (
	"context"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

// InventoryService is the inventory ledger: it owns the stock level of every
// item together with the derived low-stock flag, and guarantees the two never
// diverge at rest.
type InventoryService interface {
	Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.InventoryPatch) (*models.InventoryItem, error)
	// ApplyDelta atomically adds delta to the item's stock (positive =
	// restock, negative = consumption) and recomputes the low-stock flag in
	// the same unit of work.
	ApplyDelta(ctx context.Context, id uuid.UUID, delta float64) (*models.InventoryItem, error)
	// CheckSufficiency is a pre-flight read; it does not protect against
	// concurrent consumption on its own.
	CheckSufficiency(ctx context.Context, id uuid.UUID, required float64) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.InventoryFilter) ([]*models.InventoryItem, error)
	LowStock(ctx context.Context) ([]*models.InventoryItem, error)
	CategoryStats(ctx context.Context) ([]*models.InventoryCategoryStat, error)
	Stats(ctx context.Context) (*models.InventoryStats, error)
}

type inventoryService struct {
	pool          repositories.Pool
	inventoryRepo repositories.InventoryRepository
}

func NewInventoryService(pool repositories.Pool, inventoryRepo repositories.InventoryRepository) InventoryService {
	return &inventoryService{pool: pool, inventoryRepo: inventoryRepo}
}

func (s *inventoryService) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.Name == "" {
		return nil, common.ValidationError("name", "is required")
	}
	if err := common.ValidateNonNegativeFloat(item.CurrentStock, "current_stock"); err != nil {
		return nil, err
	}
	if err := common.ValidateNonNegativeFloat(item.MinimumStock, "minimum_stock"); err != nil {
		return nil, err
	}
	if err := common.ValidateNonNegativeFloat(item.UnitPrice, "unit_price"); err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, common.UnexpectedError("create inventory item", err)
	}
	return item, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	return s.inventoryRepo.GetByID(ctx, id)
}

// Update merges the patch over the stored item and writes the result in one
// unit of work, so the low-stock flag is recomputed against the merged values.
func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, patch *models.InventoryPatch) (*models.InventoryItem, error) {
	var updated *models.InventoryItem
	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		repo := repositories.NewInventoryRepo(tx)
		item, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Category != nil {
			item.Category = *patch.Category
		}
		if patch.CurrentStock != nil {
			if err := common.ValidateNonNegativeFloat(*patch.CurrentStock, "current_stock"); err != nil {
				return err
			}
			item.CurrentStock = *patch.CurrentStock
		}
		if patch.MinimumStock != nil {
			if err := common.ValidateNonNegativeFloat(*patch.MinimumStock, "minimum_stock"); err != nil {
				return err
			}
			item.MinimumStock = *patch.MinimumStock
		}
		if patch.Unit != nil {
			item.Unit = *patch.Unit
		}
		if patch.UnitPrice != nil {
			if err := common.ValidateNonNegativeFloat(*patch.UnitPrice, "unit_price"); err != nil {
				return err
			}
			item.UnitPrice = *patch.UnitPrice
		}
		if patch.Supplier != nil {
			item.Supplier = patch.Supplier
		}
		updated, err = repo.Update(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *inventoryService) ApplyDelta(ctx context.Context, id uuid.UUID, delta float64) (*models.InventoryItem, error) {
	var item *models.InventoryItem
	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		var err error
		item, err = repositories.NewInventoryRepo(tx).ApplyDelta(ctx, id, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) CheckSufficiency(ctx context.Context, id uuid.UUID, required float64) (bool, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return item.CurrentStock >= required, nil
}

// Delete removes the item unless a menu item ingredient requirement still
// references it. Check and delete share one unit of work.
func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		repo := repositories.NewInventoryRepo(tx)
		referenced, err := repo.HasIngredientReferences(ctx, id)
		if err != nil {
			return common.UnexpectedError("check inventory references", err)
		}
		if referenced {
			return common.InUseError("inventory item", "it is used in menu items")
		}
		return repo.Delete(ctx, id)
	})
}

func (s *inventoryService) List(ctx context.Context, filter *models.InventoryFilter) ([]*models.InventoryItem, error) {
	return s.inventoryRepo.List(ctx, filter)
}

func (s *inventoryService) LowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	return s.inventoryRepo.LowStock(ctx)
}

func (s *inventoryService) CategoryStats(ctx context.Context) ([]*models.InventoryCategoryStat, error) {
	return s.inventoryRepo.CategoryStats(ctx)
}

func (s *inventoryService) Stats(ctx context.Context) (*models.InventoryStats, error) {
	return s.inventoryRepo.Stats(ctx)
}
