package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctors table. UserID is the external identity subject.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Bio       *string   `db:"bio" json:"bio,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Link maps to the patient_doctors table. Both sides are keyed by the
// external user id so a link can be created before either profile exists.
type Link struct {
	PatientUserID uuid.UUID `db:"patient_user_id" json:"patient_user_id"`
	DoctorUserID  uuid.UUID `db:"doctor_user_id" json:"doctor_user_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
