package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. UserID is the external identity
// subject (JWT sub) the record is linked to; at most one patient per user.
type Patient struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UserID     *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Name       string     `db:"name" json:"name"`
	Age        int        `db:"age" json:"age"`
	Conditions []string   `db:"conditions" json:"conditions"`
	RiskLevel  string     `db:"risk_level" json:"risk_level"`
	Address    *string    `db:"address" json:"address,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}
