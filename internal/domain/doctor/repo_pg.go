package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebridge/carebridge/internal/domain/patient"
	"github.com/carebridge/carebridge/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, user_id, name, email, specialty, bio, address, created_at, updated_at`

func (r *repoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Email, &d.Specialty, &d.Bio,
		&d.Address, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctors (id, user_id, name, email, specialty, bio, address)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.UserID, d.Name, d.Email, d.Specialty, d.Bio, d.Address)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUserTaken
	}
	return err
}

func (r *repoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE user_id = $1`, userID))
}

func (r *repoPG) Connect(ctx context.Context, patientUserID, doctorUserID uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_doctors (patient_user_id, doctor_user_id)
		VALUES ($1,$2)
		ON CONFLICT (patient_user_id, doctor_user_id) DO NOTHING`,
		patientUserID, doctorUserID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) Disconnect(ctx context.Context, patientUserID, doctorUserID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM patient_doctors WHERE patient_user_id = $1 AND doctor_user_id = $2`,
		patientUserID, doctorUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) ListPatients(ctx context.Context, doctorUserID uuid.UUID, limit, offset int) ([]*patient.Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patients p
		JOIN patient_doctors pd ON pd.patient_user_id = p.user_id
		WHERE pd.doctor_user_id = $1`, doctorUserID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.user_id, p.name, p.age, p.conditions, p.risk_level, p.address, p.created_at, p.updated_at
		FROM patients p
		JOIN patient_doctors pd ON pd.patient_user_id = p.user_id
		WHERE pd.doctor_user_id = $1
		ORDER BY p.name LIMIT $2 OFFSET $3`, doctorUserID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*patient.Patient
	for rows.Next() {
		var p patient.Patient
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.Conditions, &p.RiskLevel,
			&p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &p)
	}
	return items, total, nil
}

func (r *repoPG) ListDoctors(ctx context.Context, patientUserID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM doctors d
		JOIN patient_doctors pd ON pd.doctor_user_id = d.user_id
		WHERE pd.patient_user_id = $1`, patientUserID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT d.id, d.user_id, d.name, d.email, d.specialty, d.bio, d.address, d.created_at, d.updated_at
		FROM doctors d
		JOIN patient_doctors pd ON pd.doctor_user_id = d.user_id
		WHERE pd.patient_user_id = $1
		ORDER BY d.name LIMIT $2 OFFSET $3`, patientUserID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}
