package services

import (
	"context"
	"fmt"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// OrderService runs the order placement workflow: table availability, per-line
// menu validation, price snapshotting, persistence, and the table transition
// to occupied, all inside one unit of work. Any failure at any step aborts the
// whole sequence; partial orders are never observable.
type OrderService interface {
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error)
	// UpdateStatus is an unconditional single-field write; any status may
	// follow any other, keeping operator override flexible.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	Stats(ctx context.Context, date string) (*models.OrderStats, error)
}

type orderService struct {
	pool repositories.Pool

	orderRepo repositories.OrderRepository

	// deductStock wires ingredient consumption into the placement
	// transaction. The system this replaces shipped the deduction helper but
	// never called it on the create path; the toggle keeps that behavior
	// explicit instead of silent.
	deductStock bool
}

func NewOrderService(pool repositories.Pool, orderRepo repositories.OrderRepository, deductStock bool) OrderService {
	return &orderService{pool: pool, orderRepo: orderRepo, deductStock: deductStock}
}

// newOrderNumber generates a unique, time-derived order token. The numeric
// suffix keeps same-millisecond orders from colliding with the UNIQUE
// constraint on order_number.
func newOrderNumber() string {
	return fmt.Sprintf("ORD%d%s", time.Now().UnixMilli(), random.String(4, random.Numeric))
}

func (s *orderService) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if req.TableID == uuid.Nil {
		return nil, common.ValidationError("table_id", "is required")
	}
	if len(req.Lines) == 0 {
		return nil, common.ValidationError("items", "at least one item is required")
	}
	for _, line := range req.Lines {
		if line.MenuItemID == uuid.Nil {
			return nil, common.ValidationError("menu_item_id", "is required")
		}
		if err := common.ValidatePositiveInt(line.Quantity, "quantity", 1000); err != nil {
			return nil, err
		}
	}
	orderType := req.OrderType
	if orderType == "" {
		orderType = models.DefaultOrderType
	}

	var created *models.Order
	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		tables := repositories.NewTableRepo(tx)
		menu := repositories.NewMenuRepo(tx)
		orders := repositories.NewOrderRepo(tx)

		// Locking the table row serializes concurrent placements against the
		// same table: the second placement blocks here and then sees the
		// occupied status the first one committed.
		table, err := tables.GetByIDForUpdate(ctx, req.TableID)
		if err != nil {
			return err
		}
		if table.Status != models.TableAvailable {
			return common.ConflictError("table", "table is not available")
		}

		var totalAmount float64
		lines := make([]*models.OrderLine, 0, len(req.Lines))
		for _, reqLine := range req.Lines {
			item, err := menu.GetAvailableForOrder(ctx, reqLine.MenuItemID)
			if err != nil {
				return err
			}
			// Snapshot the price now; the line keeps it even if the menu item
			// is repriced later.
			totalAmount += item.Price * float64(reqLine.Quantity)
			lines = append(lines, &models.OrderLine{
				ID:                  uuid.New(),
				MenuItemID:          reqLine.MenuItemID,
				Quantity:            reqLine.Quantity,
				UnitPrice:           item.Price,
				SpecialInstructions: reqLine.SpecialInstructions,
				Name:                item.Name,
				Category:            item.Category,
			})
		}

		order := &models.Order{
			ID:            uuid.New(),
			OrderNumber:   newOrderNumber(),
			TableID:       req.TableID,
			TotalAmount:   totalAmount,
			OrderType:     orderType,
			Status:        models.OrderPending,
			CustomerNotes: req.CustomerNotes,
		}
		if err := orders.Insert(ctx, order); err != nil {
			return common.UnexpectedError("save order", err)
		}
		for _, line := range lines {
			line.OrderID = order.ID
			if err := orders.InsertLine(ctx, line); err != nil {
				return common.UnexpectedError("save order line", err)
			}
		}

		if s.deductStock {
			if err := deductIngredients(ctx, tx, lines); err != nil {
				return err
			}
		}

		if _, err := tables.UpdateStatus(ctx, req.TableID, models.TableOccupied); err != nil {
			return err
		}

		order.Lines = lines
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// deductIngredients consumes stock for every ingredient of every line within
// the caller's transaction. Each delta recomputes the low-stock flag in the
// same statement.
func deductIngredients(ctx context.Context, tx repositories.DB, lines []*models.OrderLine) error {
	menu := repositories.NewMenuRepo(tx)
	inventory := repositories.NewInventoryRepo(tx)
	for _, line := range lines {
		requirements, err := menu.RequirementsFor(ctx, line.MenuItemID)
		if err != nil {
			return common.UnexpectedError("load ingredient requirements", err)
		}
		for _, req := range requirements {
			if _, err := inventory.ApplyDelta(ctx, req.InventoryItemID, -req.Quantity*float64(line.Quantity)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if status == "" {
		return nil, common.ValidationError("status", "is required")
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

func (s *orderService) Stats(ctx context.Context, date string) (*models.OrderStats, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	stats, err := s.orderRepo.Stats(ctx, date)
	if err != nil {
		return nil, common.UnexpectedError("load order stats", err)
	}
	return stats, nil
}
