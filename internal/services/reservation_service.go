package services

import (
	"context"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

// ReservationService enforces the reservation invariants: no two active
// reservations within the conflict window on the same table, and party size
// within table capacity. All multi-step paths run in one unit of work.
type ReservationService interface {
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, filter *models.ReservationFilter) ([]*models.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.ReservationPatch) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Upcoming(ctx context.Context, hours int) ([]*models.Reservation, error)
}

type reservationService struct {
	pool            repositories.Pool
	reservationRepo repositories.ReservationRepository
}

func NewReservationService(pool repositories.Pool, reservationRepo repositories.ReservationRepository) ReservationService {
	return &reservationService{pool: pool, reservationRepo: reservationRepo}
}

func (s *reservationService) validate(reservation *models.Reservation) error {
	if reservation.CustomerName == "" {
		return common.ValidationError("customer_name", "is required")
	}
	if reservation.CustomerPhone == "" {
		return common.ValidationError("customer_phone", "is required")
	}
	if reservation.ReservationTime.IsZero() {
		return common.ValidationError("reservation_time", "is required")
	}
	return common.ValidatePositiveInt(reservation.PartySize, "party_size", 100)
}

// Create verifies the conflict window and the table capacity before inserting,
// all against a locked table row so concurrent requests for the same table
// serialize instead of double-booking.
func (s *reservationService) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if err := s.validate(reservation); err != nil {
		return nil, err
	}
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	if reservation.Duration <= 0 {
		reservation.Duration = models.DefaultReservationDuration
	}
	if reservation.Status == "" {
		reservation.Status = models.ReservationConfirmed
	}

	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		tables := repositories.NewTableRepo(tx)
		reservations := repositories.NewReservationRepo(tx)

		table, err := tables.GetByIDForUpdate(ctx, reservation.TableID)
		if err != nil {
			return err
		}
		conflict, err := reservations.HasConflict(ctx, reservation.TableID, reservation.ReservationTime, nil)
		if err != nil {
			return common.UnexpectedError("check reservation conflict", err)
		}
		if conflict {
			return common.ConflictError("table", "table is not available for the selected time")
		}
		if table.Capacity < reservation.PartySize {
			return common.ConflictError("table", "table capacity is insufficient for the party size")
		}
		return reservations.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *reservationService) List(ctx context.Context, filter *models.ReservationFilter) ([]*models.Reservation, error) {
	return s.reservationRepo.List(ctx, filter)
}

// Update merges the patch over the stored reservation. When the table or time
// changes, the conflict check re-runs against the merged values, excluding the
// reservation itself; when the table or party size changes, capacity is
// re-verified.
func (s *reservationService) Update(ctx context.Context, id uuid.UUID, patch *models.ReservationPatch) (*models.Reservation, error) {
	var updated *models.Reservation
	err := repositories.WithinTx(ctx, s.pool, func(tx repositories.DB) error {
		tables := repositories.NewTableRepo(tx)
		reservations := repositories.NewReservationRepo(tx)

		current, err := reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		merged := *current
		if patch.CustomerName != nil {
			merged.CustomerName = *patch.CustomerName
		}
		if patch.CustomerPhone != nil {
			merged.CustomerPhone = *patch.CustomerPhone
		}
		if patch.CustomerEmail != nil {
			merged.CustomerEmail = patch.CustomerEmail
		}
		if patch.TableID != nil {
			merged.TableID = *patch.TableID
		}
		if patch.ReservationTime != nil {
			merged.ReservationTime = *patch.ReservationTime
		}
		if patch.PartySize != nil {
			merged.PartySize = *patch.PartySize
		}
		if patch.Duration != nil {
			merged.Duration = *patch.Duration
		}
		if patch.SpecialRequests != nil {
			merged.SpecialRequests = patch.SpecialRequests
		}
		if patch.Status != nil {
			merged.Status = *patch.Status
		}
		if err := s.validate(&merged); err != nil {
			return err
		}

		placementChanged := patch.TableID != nil || patch.ReservationTime != nil
		if placementChanged {
			table, err := tables.GetByIDForUpdate(ctx, merged.TableID)
			if err != nil {
				return err
			}
			conflict, err := reservations.HasConflict(ctx, merged.TableID, merged.ReservationTime, &id)
			if err != nil {
				return common.UnexpectedError("check reservation conflict", err)
			}
			if conflict {
				return common.ConflictError("table", "table is not available for the selected time")
			}
			if table.Capacity < merged.PartySize {
				return common.ConflictError("table", "table capacity is insufficient for the party size")
			}
		} else if patch.PartySize != nil {
			table, err := tables.GetByID(ctx, merged.TableID)
			if err != nil {
				return err
			}
			if table.Capacity < merged.PartySize {
				return common.ConflictError("table", "table capacity is insufficient for the party size")
			}
		}

		updated, err = reservations.Update(ctx, &merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus is an unconditional single-field write, matching the table and
// order status override behavior.
func (s *reservationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Reservation, error) {
	if status == "" {
		return nil, common.ValidationError("status", "is required")
	}
	return s.reservationRepo.UpdateStatus(ctx, id, status)
}

func (s *reservationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reservationRepo.Delete(ctx, id)
}

func (s *reservationService) Upcoming(ctx context.Context, hours int) ([]*models.Reservation, error) {
	if hours <= 0 {
		hours = 24
	}
	return s.reservationRepo.Upcoming(ctx, hours)
}
