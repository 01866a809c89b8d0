package alert

import (
	"time"

	"github.com/google/uuid"
)

// Alert maps to the alerts table.
type Alert struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	Severity     string    `db:"severity" json:"severity"`
	Message      string    `db:"message" json:"message"`
	Reasoning    *string   `db:"reasoning" json:"reasoning,omitempty"`
	Acknowledged bool      `db:"acknowledged" json:"acknowledged"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
