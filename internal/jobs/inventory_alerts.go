package jobs

import (
	"context"
	"log"

	"restomart/internal/models"
	"restomart/internal/repositories"
)

// InventoryAlertService periodically sweeps the inventory for items whose
// stock sits at or below their minimum. The flag itself is maintained
// transactionally on every stock write; the sweep only surfaces the current
// state to operators.
type InventoryAlertService struct {
	inventoryRepo repositories.InventoryRepository
}

func NewInventoryAlertService(inventoryRepo repositories.InventoryRepository) *InventoryAlertService {
	return &InventoryAlertService{inventoryRepo: inventoryRepo}
}

func (a *InventoryAlertService) CheckLowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	items, err := a.inventoryRepo.LowStock(ctx)
	if err != nil {
		log.Printf("Failed to list low stock items: %v", err)
		return nil, err
	}
	return items, nil
}

func (a *InventoryAlertService) LogLowStockAlerts(items []*models.InventoryItem) {
	if len(items) == 0 {
		return
	}
	log.Printf("Low stock alerts (%d items):", len(items))
	for _, item := range items {
		log.Printf("- '%s' has %.2f %s on hand (minimum: %.2f)",
			item.Name, item.CurrentStock, item.Unit, item.MinimumStock)
	}
}

// ScheduledLowStockCheck is the periodic entry point.
func (a *InventoryAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	items, err := a.CheckLowStock(ctx)
	if err != nil {
		log.Printf("Scheduled low stock check failed: %v", err)
		return err
	}
	a.LogLowStockAlerts(items)
	return nil
}
