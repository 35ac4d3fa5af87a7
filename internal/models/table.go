package models

import (
	"time"

	"github.com/google/uuid"
)

// Table statuses. The order workflow only ever drives available → occupied;
// operator overrides may set any status, including ones not listed here.
const (
	TableAvailable   = "available"
	TableOccupied    = "occupied"
	TableReserved    = "reserved"
	TableMaintenance = "maintenance"
)

type Table struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Number    int       `json:"table_number" db:"table_number"`
	Capacity  int       `json:"capacity" db:"capacity"`
	Location  *string   `json:"location" db:"location"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TablePatch holds optional fields for a partial table update.
type TablePatch struct {
	Number   *int    `json:"table_number,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Location *string `json:"location,omitempty"`
	Status   *string `json:"status,omitempty"`
}
