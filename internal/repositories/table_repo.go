package repositories

import (
	"context"
	"errors"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	// GetByIDForUpdate locks the table row for the rest of the enclosing
	// transaction, serializing concurrent check-then-act sequences on the
	// same table.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Table, error)
	List(ctx context.Context) ([]*models.Table, error)
	Update(ctx context.Context, table *models.Table) (*models.Table, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasActiveOrders(ctx context.Context, id uuid.UUID) (bool, error)
	HasFutureReservations(ctx context.Context, id uuid.UUID) (bool, error)
	FindAvailable(ctx context.Context, at time.Time, partySize int) ([]*models.Table, error)
}

type tableRepo struct {
	db DB
}

func NewTableRepo(db DB) TableRepository {
	return &tableRepo{db: db}
}

const tableColumns = `id, table_number, capacity, location, status, created_at`

func scanTable(row pgx.Row) (*models.Table, error) {
	t := &models.Table{}
	err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Location, &t.Status, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tableRepo) Create(ctx context.Context, table *models.Table) error {
	query := `
		INSERT INTO tables (id, table_number, capacity, location, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, table.ID, table.Number, table.Capacity, table.Location, table.Status).
		Scan(&table.CreatedAt)
}

func (r *tableRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("table", id.String())
	}
	return t, err
}

func (r *tableRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("table", id.String())
	}
	return t, err
}

func (r *tableRepo) List(ctx context.Context) ([]*models.Table, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY table_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTables(rows)
}

func (r *tableRepo) Update(ctx context.Context, table *models.Table) (*models.Table, error) {
	query := `
		UPDATE tables
		SET table_number = $1, capacity = $2, location = $3, status = $4
		WHERE id = $5
		RETURNING ` + tableColumns
	updated, err := scanTable(r.db.QueryRow(ctx, query, table.Number, table.Capacity, table.Location, table.Status, table.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("table", table.ID.String())
	}
	return updated, err
}

func (r *tableRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Table, error) {
	query := `UPDATE tables SET status = $1 WHERE id = $2 RETURNING ` + tableColumns
	updated, err := scanTable(r.db.QueryRow(ctx, query, status, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("table", id.String())
	}
	return updated, err
}

func (r *tableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundError("table", id.String())
	}
	return nil
}

func (r *tableRepo) HasActiveOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE table_id = $1 AND status NOT IN ($2, $3)
		)`, id, models.OrderServed, models.OrderCancelled).Scan(&exists)
	return exists, err
}

func (r *tableRepo) HasFutureReservations(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE table_id = $1 AND reservation_time > NOW()
		)`, id).Scan(&exists)
	return exists, err
}

// FindAvailable returns available tables that fit the party and have no active
// reservation within the conflict window around the requested time.
func (r *tableRepo) FindAvailable(ctx context.Context, at time.Time, partySize int) ([]*models.Table, error) {
	query := `
		SELECT ` + tableColumns + `
		FROM tables t
		WHERE t.capacity >= $1
		  AND t.status = $2
		  AND t.id NOT IN (
			SELECT r.table_id
			FROM reservations r
			WHERE r.reservation_time BETWEEN $3 AND $4
			  AND r.status IN ($5, $6)
		  )
		ORDER BY t.capacity ASC
	`
	rows, err := r.db.Query(ctx, query, partySize, models.TableAvailable,
		at.Add(-models.ReservationConflictWindow), at.Add(models.ReservationConflictWindow),
		models.ReservationConfirmed, models.ReservationSeated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTables(rows)
}

func collectTables(rows pgx.Rows) ([]*models.Table, error) {
	var tables []*models.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
