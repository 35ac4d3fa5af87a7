package jobs

import (
	"context"
	"fmt"
	"log"

	"restomart/internal/models"
	"restomart/internal/repositories"
)

// ReservationReminderService surfaces confirmed reservations due within the
// next hour so front-of-house can prepare tables.
type ReservationReminderService struct {
	reservationRepo repositories.ReservationRepository
}

func NewReservationReminderService(reservationRepo repositories.ReservationRepository) *ReservationReminderService {
	return &ReservationReminderService{reservationRepo: reservationRepo}
}

func (s *ReservationReminderService) UpcomingReservations(ctx context.Context) ([]*models.Reservation, error) {
	reservations, err := s.reservationRepo.Upcoming(ctx, 1)
	if err != nil {
		log.Printf("Failed to list upcoming reservations: %v", err)
		return nil, err
	}
	return reservations, nil
}

// ScheduledReminderCheck is the periodic entry point.
func (s *ReservationReminderService) ScheduledReminderCheck(ctx context.Context) error {
	reservations, err := s.UpcomingReservations(ctx)
	if err != nil {
		return err
	}
	if len(reservations) == 0 {
		return nil
	}
	log.Printf("Reservations due within the hour (%d):", len(reservations))
	for _, res := range reservations {
		table := "?"
		if res.TableNumber != nil {
			table = fmt.Sprintf("%d", *res.TableNumber)
		}
		log.Printf("- %s, party of %d, at %s (table %s)",
			res.CustomerName, res.PartySize,
			res.ReservationTime.Format("15:04"), table)
	}
	return nil
}
