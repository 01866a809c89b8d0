package timeline

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Details stores arbitrary event context as JSONB. A bare JSON string is
// accepted on input and wrapped as {"text": s}; anything else non-object
// collapses to an empty object.
type Details map[string]interface{}

func (d *Details) UnmarshalJSON(b []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err == nil {
		*d = m
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = Details{"text": s}
		return nil
	}
	*d = Details{}
	return nil
}

// Event maps to the timeline_events table. CreatedAt doubles as the event
// date and may be supplied by the caller.
type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Details   Details   `db:"details" json:"details"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
