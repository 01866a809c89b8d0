package doctor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebridge/carebridge/internal/domain/patient"
)

// ── Mock Repository ──

type linkKey struct {
	patientUserID uuid.UUID
	doctorUserID  uuid.UUID
}

type mockRepo struct {
	doctors  map[uuid.UUID]*Doctor
	patients map[uuid.UUID]*patient.Patient
	links    map[linkKey]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		doctors:  make(map[uuid.UUID]*Doctor),
		patients: make(map[uuid.UUID]*patient.Patient),
		links:    make(map[linkKey]bool),
	}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	for _, existing := range m.doctors {
		if existing.UserID == d.UserID {
			return ErrUserTaken
		}
	}
	d.ID = uuid.New()
	m.doctors[d.ID] = d
	return nil
}
func (m *mockRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (m *mockRepo) Connect(_ context.Context, patientUserID, doctorUserID uuid.UUID) (bool, error) {
	k := linkKey{patientUserID, doctorUserID}
	if m.links[k] {
		return false, nil
	}
	m.links[k] = true
	return true, nil
}
func (m *mockRepo) Disconnect(_ context.Context, patientUserID, doctorUserID uuid.UUID) error {
	k := linkKey{patientUserID, doctorUserID}
	if !m.links[k] {
		return pgx.ErrNoRows
	}
	delete(m.links, k)
	return nil
}
func (m *mockRepo) ListPatients(_ context.Context, doctorUserID uuid.UUID, limit, offset int) ([]*patient.Patient, int, error) {
	var out []*patient.Patient
	for k := range m.links {
		if k.doctorUserID != doctorUserID {
			continue
		}
		for _, p := range m.patients {
			if p.UserID != nil && *p.UserID == k.patientUserID {
				out = append(out, p)
			}
		}
	}
	return out, len(out), nil
}
func (m *mockRepo) ListDoctors(_ context.Context, patientUserID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	var out []*Doctor
	for k := range m.links {
		if k.patientUserID != patientUserID {
			continue
		}
		for _, d := range m.doctors {
			if d.UserID == k.doctorUserID {
				out = append(out, d)
			}
		}
	}
	return out, len(out), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

// ── Service Tests ──

func TestCreateDoctor(t *testing.T) {
	svc, _ := newTestService()
	d := &Doctor{UserID: uuid.New(), Name: "Dr. Sarah Okafor"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
}

func TestCreateDoctor_RequiresUserID(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Create(context.Background(), &Doctor{Name: "Dr. X"}); err == nil {
		t.Error("expected error for missing user_id")
	}
}

func TestCreateDoctor_DuplicateUser(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	svc.Create(context.Background(), &Doctor{UserID: userID, Name: "Dr. First"})
	if err := svc.Create(context.Background(), &Doctor{UserID: userID, Name: "Dr. Second"}); err != ErrUserTaken {
		t.Errorf("expected ErrUserTaken, got %v", err)
	}
}

func TestConnect_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	patientUserID, doctorUserID := uuid.New(), uuid.New()
	created, err := svc.Connect(context.Background(), patientUserID, doctorUserID)
	if err != nil || !created {
		t.Fatalf("expected new link, got created=%v err=%v", created, err)
	}
	created, err = svc.Connect(context.Background(), patientUserID, doctorUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false on repeat connect")
	}
}

func TestConnect_RequiresBothIDs(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Connect(context.Background(), uuid.Nil, uuid.New()); err == nil {
		t.Error("expected error for missing patient_user_id")
	}
}

func TestDisconnect_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Disconnect(context.Background(), uuid.New(), uuid.New()); err != pgx.ErrNoRows {
		t.Errorf("expected pgx.ErrNoRows, got %v", err)
	}
}

func TestListPatients_OnlyLinked(t *testing.T) {
	svc, repo := newTestService()
	doctorUserID := uuid.New()
	linkedUser, otherUser := uuid.New(), uuid.New()
	repo.patients[uuid.New()] = &patient.Patient{ID: uuid.New(), UserID: &linkedUser, Name: "Linked"}
	repo.patients[uuid.New()] = &patient.Patient{ID: uuid.New(), UserID: &otherUser, Name: "Other"}
	svc.Connect(context.Background(), linkedUser, doctorUserID)

	items, total, err := svc.ListPatients(context.Background(), doctorUserID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "Linked" {
		t.Errorf("expected only the linked patient, got %d items", len(items))
	}
}

func TestListPatients_SkipsMissingProfiles(t *testing.T) {
	svc, _ := newTestService()
	doctorUserID := uuid.New()
	svc.Connect(context.Background(), uuid.New(), doctorUserID)

	items, total, err := svc.ListPatients(context.Background(), doctorUserID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("expected no patients for link without profile, got %d", len(items))
	}
}

func TestListDoctors(t *testing.T) {
	svc, _ := newTestService()
	patientUserID := uuid.New()
	d := &Doctor{UserID: uuid.New(), Name: "Dr. Sarah Okafor"}
	svc.Create(context.Background(), d)
	svc.Connect(context.Background(), patientUserID, d.UserID)

	items, total, err := svc.ListDoctors(context.Background(), patientUserID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || items[0].Name != "Dr. Sarah Okafor" {
		t.Errorf("expected the linked doctor, got %d items", len(items))
	}
}
