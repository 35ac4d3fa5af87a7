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

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, filter *models.ReservationFilter) ([]*models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// HasConflict reports whether an active reservation exists for the table
	// within the conflict window around at, optionally excluding one
	// reservation id (self-exclusion during updates).
	HasConflict(ctx context.Context, tableID uuid.UUID, at time.Time, exclude *uuid.UUID) (bool, error)
	Upcoming(ctx context.Context, hours int) ([]*models.Reservation, error)
}

type reservationRepo struct {
	db DB
}

func NewReservationRepo(db DB) ReservationRepository {
	return &reservationRepo{db: db}
}

const reservationColumns = `r.id, r.customer_name, r.customer_phone, r.customer_email, r.table_id, r.reservation_time, r.party_size, r.duration, r.special_requests, r.status, r.created_at`

func scanReservation(row pgx.Row, withTableNumber bool) (*models.Reservation, error) {
	res := &models.Reservation{}
	dest := []any{&res.ID, &res.CustomerName, &res.CustomerPhone, &res.CustomerEmail, &res.TableID,
		&res.ReservationTime, &res.PartySize, &res.Duration, &res.SpecialRequests, &res.Status, &res.CreatedAt}
	if withTableNumber {
		dest = append(dest, &res.TableNumber)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepo) Create(ctx context.Context, reservation *models.Reservation) error {
	query := `
		INSERT INTO reservations (id, customer_name, customer_phone, customer_email, table_id, reservation_time, party_size, duration, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, reservation.ID, reservation.CustomerName, reservation.CustomerPhone,
		reservation.CustomerEmail, reservation.TableID, reservation.ReservationTime, reservation.PartySize,
		reservation.Duration, reservation.SpecialRequests, reservation.Status).
		Scan(&reservation.CreatedAt)
}

func (r *reservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `, t.table_number
		FROM reservations r
		LEFT JOIN tables t ON r.table_id = t.id
		WHERE r.id = $1
	`
	res, err := scanReservation(r.db.QueryRow(ctx, query, id), true)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("reservation", id.String())
	}
	return res, err
}

func (r *reservationRepo) List(ctx context.Context, filter *models.ReservationFilter) ([]*models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `, t.table_number
		FROM reservations r
		LEFT JOIN tables t ON r.table_id = t.id
	`
	var conditions []string
	var args []any
	appendCondition := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, cond)
	}
	if filter != nil && filter.Date != nil {
		appendCondition(`DATE(r.reservation_time) = $1::date`, filter.Date.Format("2006-01-02"))
	}
	if filter != nil && filter.Status != nil {
		appendCondition(placeholderCondition(`r.status`, len(args)+1), *filter.Status)
	}
	if filter != nil && filter.TableID != nil {
		appendCondition(placeholderCondition(`r.table_id`, len(args)+1), *filter.TableID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY r.reservation_time ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepo) Update(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	query := `
		UPDATE reservations r
		SET customer_name = $1,
		    customer_phone = $2,
		    customer_email = $3,
		    table_id = $4,
		    reservation_time = $5,
		    party_size = $6,
		    duration = $7,
		    special_requests = $8,
		    status = $9
		WHERE r.id = $10
		RETURNING ` + reservationColumns
	updated, err := scanReservation(r.db.QueryRow(ctx, query, reservation.CustomerName, reservation.CustomerPhone,
		reservation.CustomerEmail, reservation.TableID, reservation.ReservationTime, reservation.PartySize,
		reservation.Duration, reservation.SpecialRequests, reservation.Status, reservation.ID), false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("reservation", reservation.ID.String())
	}
	return updated, err
}

func (r *reservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Reservation, error) {
	query := `UPDATE reservations r SET status = $1 WHERE r.id = $2 RETURNING ` + reservationColumns
	updated, err := scanReservation(r.db.QueryRow(ctx, query, status, id), false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("reservation", id.String())
	}
	return updated, err
}

func (r *reservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundError("reservation", id.String())
	}
	return nil
}

func (r *reservationRepo) HasConflict(ctx context.Context, tableID uuid.UUID, at time.Time, exclude *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE table_id = $1
			  AND reservation_time BETWEEN $2::timestamptz - INTERVAL '2 hours' AND $2::timestamptz + INTERVAL '2 hours'
			  AND status IN ($3, $4)
			  AND ($5::uuid IS NULL OR id != $5)
		)`
	var exists bool
	err := r.db.QueryRow(ctx, query, tableID, at, models.ReservationConfirmed, models.ReservationSeated, exclude).
		Scan(&exists)
	return exists, err
}

func (r *reservationRepo) Upcoming(ctx context.Context, hours int) ([]*models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `, t.table_number
		FROM reservations r
		LEFT JOIN tables t ON r.table_id = t.id
		WHERE r.reservation_time BETWEEN NOW() AND NOW() + INTERVAL '1 hour' * $1
		  AND r.status = $2
		ORDER BY r.reservation_time ASC
	`
	rows, err := r.db.Query(ctx, query, hours, models.ReservationConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows, true)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
