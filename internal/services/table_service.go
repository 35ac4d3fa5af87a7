package services

import (
	"context"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

// TableService owns table occupancy state. Status writes go through here
// exclusively; operator overrides may set any status (no transition table is
// enforced for manual changes).
type TableService interface {
	Create(ctx context.Context, table *models.Table) (*models.Table, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	List(ctx context.Context) ([]*models.Table, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.TablePatch) (*models.Table, error)
	TransitionTo(ctx context.Context, id uuid.UUID, status string) (*models.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAvailable(ctx context.Context, at time.Time, partySize int) ([]*models.Table, error)
}

type tableService struct {
	pool      repositories.Pool
	tableRepo repositories.TableRepository
}

func NewTableService(pool repositories.Pool, tableRepo repositories.TableRepository) TableService {
	return &tableService{pool: pool, tableRepo: tableRepo}
}

func (s *tableService) Create(ctx context.Context, table *models.Table) (*models.Table, error) {
	if err := common.ValidatePositiveInt(table.Number, "table_number", 10000); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveInt(table.Capacity, "capacity", 100); err != nil {
		return nil, err
	}
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	if table.Status == "" {
		table.Status = models.TableAvailable
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, common.UnexpectedError("create table", err)
	}
	return table, nil
}

func (s *tableService) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return s.tableRepo.GetByID(ctx, id)
}

func (s *tableService) List(ctx context.Context) ([]*models.Table, error) {
	return s.tableRepo.List(ctx)
}

func (s *tableService) Update(ctx context.Context, id uuid.UUID, patch *models.TablePatch) (*models.Table, error) {
	var updated *models.Table
	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		repo := repositories.NewTableRepo(tx)
		table, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Number != nil {
			table.Number = *patch.Number
		}
		if patch.Capacity != nil {
			if err := common.ValidatePositiveInt(*patch.Capacity, "capacity", 100); err != nil {
				return err
			}
			table.Capacity = *patch.Capacity
		}
		if patch.Location != nil {
			table.Location = patch.Location
		}
		if patch.Status != nil {
			table.Status = *patch.Status
		}
		updated, err = repo.Update(ctx, table)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// TransitionTo is the operator-driven status override: any state reaches any
// state. The order placement workflow drives available → occupied only.
func (s *tableService) TransitionTo(ctx context.Context, id uuid.UUID, status string) (*models.Table, error) {
	if status == "" {
		return nil, common.ValidationError("status", "is required")
	}
	return s.tableRepo.UpdateStatus(ctx, id, status)
}

// Delete refuses to remove a table that still has non-terminal orders or
// future reservations. Both checks and the delete run in one unit of work.
func (s *tableService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		repo := repositories.NewTableRepo(tx)
		activeOrders, err := repo.HasActiveOrders(ctx, id)
		if err != nil {
			return common.UnexpectedError("check table orders", err)
		}
		if activeOrders {
			return common.InUseError("table", "table has active orders")
		}
		futureReservations, err := repo.HasFutureReservations(ctx, id)
		if err != nil {
			return common.UnexpectedError("check table reservations", err)
		}
		if futureReservations {
			return common.InUseError("table", "table has future reservations")
		}
		return repo.Delete(ctx, id)
	})
}

func (s *tableService) FindAvailable(ctx context.Context, at time.Time, partySize int) ([]*models.Table, error) {
	if err := common.ValidatePositiveInt(partySize, "party_size", 100); err != nil {
		return nil, err
	}
	return s.tableRepo.FindAvailable(ctx, at, partySize)
}
