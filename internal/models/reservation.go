package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation statuses. Confirmed and seated reservations block the table for
// the conflict window; cancelled and completed ones do not.
const (
	ReservationConfirmed = "confirmed"
	ReservationSeated    = "seated"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// ReservationConflictWindow is the symmetric buffer around a reservation time
// within which no second active reservation may exist on the same table. It is
// a domain constant, not configuration.
const ReservationConflictWindow = 2 * time.Hour

// DefaultReservationDuration is applied when the caller omits a duration.
const DefaultReservationDuration = 120

type Reservation struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	CustomerPhone   string    `json:"customer_phone" db:"customer_phone"`
	CustomerEmail   *string   `json:"customer_email" db:"customer_email"`
	TableID         uuid.UUID `json:"table_id" db:"table_id"`
	ReservationTime time.Time `json:"reservation_time" db:"reservation_time"`
	PartySize       int       `json:"party_size" db:"party_size"`
	Duration        int       `json:"duration" db:"duration"`
	SpecialRequests *string   `json:"special_requests" db:"special_requests"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// Joined from tables for read endpoints.
	TableNumber *int `json:"table_number,omitempty"`
}

// ReservationPatch holds optional fields for a reservation update. Changing
// TableID or ReservationTime re-runs the conflict check against the merged
// values before anything is written.
type ReservationPatch struct {
	CustomerName    *string    `json:"customer_name,omitempty"`
	CustomerPhone   *string    `json:"customer_phone,omitempty"`
	CustomerEmail   *string    `json:"customer_email,omitempty"`
	TableID         *uuid.UUID `json:"table_id,omitempty"`
	ReservationTime *time.Time `json:"reservation_time,omitempty"`
	PartySize       *int       `json:"party_size,omitempty"`
	Duration        *int       `json:"duration,omitempty"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
	Status          *string    `json:"status,omitempty"`
}

// ReservationFilter narrows reservation listings.
type ReservationFilter struct {
	Date    *time.Time
	Status  *string
	TableID *uuid.UUID
}
