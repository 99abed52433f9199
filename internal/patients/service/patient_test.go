package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	patientserrors "medreg/internal/patients/errors"
	"medreg/internal/patients/validator"
	"medreg/pkg/config"
	mongotx "medreg/pkg/db/mongo"
	apperrors "medreg/pkg/errors"
	"medreg/pkg/logger"
	"medreg/pkg/model"
)

type mockPatientRepository struct {
	insertFunc      func(ctx context.Context, p *model.Patient) error
	existsByMRNFunc func(ctx context.Context, mrn string) (bool, error)
	findByIDFunc    func(ctx context.Context, id string) (*model.Patient, error)
	findAllFunc     func(ctx context.Context, limit int, offset int64) ([]*model.Patient, error)
	countFunc       func(ctx context.Context) (int64, error)
}

func (m *mockPatientRepository) Insert(ctx context.Context, p *model.Patient) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, p)
	}
	return nil
}

func (m *mockPatientRepository) ExistsByMRN(ctx context.Context, mrn string) (bool, error) {
	if m.existsByMRNFunc != nil {
		return m.existsByMRNFunc(ctx, mrn)
	}
	return false, nil
}

func (m *mockPatientRepository) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, patientserrors.ErrNotFound
}

func (m *mockPatientRepository) FindByMRN(ctx context.Context, mrn string) (*model.Patient, error) {
	return nil, patientserrors.ErrNotFound
}

func (m *mockPatientRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Patient, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Patient{}, nil
}

func (m *mockPatientRepository) Update(ctx context.Context, id string, p *model.Patient) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockPatientRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockPatientRepository) FindByPhone(ctx context.Context, phone string, limit int, offset int64) ([]*model.Patient, error) {
	return nil, nil
}

func (m *mockPatientRepository) CountByPhone(ctx context.Context, phone string) (int64, error) {
	return 0, nil
}

func (m *mockPatientRepository) FindByCity(ctx context.Context, city string, limit int, offset int64) ([]*model.Patient, error) {
	return nil, nil
}

func (m *mockPatientRepository) CountByCity(ctx context.Context, city string) (int64, error) {
	return 0, nil
}

func (m *mockPatientRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockPatientRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockPatientRepository) PatientService {
	cfg := testConfig()
	return NewPatientService(repo, validator.NewPatientValidator(cfg.Log), nil, cfg)
}

func TestRegister_AppliesDefaults(t *testing.T) {
	var inserted *model.Patient
	repo := &mockPatientRepository{
		insertFunc: func(ctx context.Context, p *model.Patient) error {
			inserted = p
			return nil
		},
	}
	svc := newTestService(repo)

	age := 45
	year := 2021
	patient := &model.Patient{
		MRN:              "MH-1234",
		FirstName:        "Ramesh Kumar Rao",
		Gender:           "m",
		CancerSite:       "Breast",
		Stage:            "stage iii",
		Phone:            "9876543210",
		Address:          "5th Cross, Bangalore 560032",
		Age:              &age,
		RegistrationYear: &year,
	}

	if err := svc.Register(context.Background(), patient); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if inserted == nil {
		t.Fatal("Insert was not called")
	}

	if inserted.PatientID != "BR1234" {
		t.Errorf("PatientID = %q, want BR1234", inserted.PatientID)
	}
	if inserted.FirstName != "Ramesh" || inserted.LastName != "Kumar Rao" {
		t.Errorf("name split = (%q, %q)", inserted.FirstName, inserted.LastName)
	}
	if inserted.Gender != "Male" {
		t.Errorf("Gender = %q, want Male", inserted.Gender)
	}
	if inserted.Phone != "+919876543210" {
		t.Errorf("Phone = %q, want +919876543210", inserted.Phone)
	}
	if inserted.Stage != "III" {
		t.Errorf("Stage = %q, want III", inserted.Stage)
	}
	if inserted.City != "Bangalore" || inserted.State != "Karnataka" {
		t.Errorf("city/state = (%q, %q)", inserted.City, inserted.State)
	}
	wantDOB := time.Date(1976, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !inserted.EstimatedDOB.Equal(wantDOB) {
		t.Errorf("EstimatedDOB = %v, want %v", inserted.EstimatedDOB, wantDOB)
	}
}

func TestRegister_DuplicateMRN(t *testing.T) {
	repo := &mockPatientRepository{
		existsByMRNFunc: func(ctx context.Context, mrn string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Register(context.Background(), &model.Patient{
		MRN:       "MH-1234",
		FirstName: "Asha",
		Gender:    "f",
	})
	if err == nil {
		t.Fatal("expected conflict error")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.StatusCode() != 409 {
		t.Errorf("status = %d, want 409", appErr.StatusCode())
	}
}

func TestRegister_DuplicateOnInsert(t *testing.T) {
	repo := &mockPatientRepository{
		insertFunc: func(ctx context.Context, p *model.Patient) error {
			return patientserrors.ErrDuplicateMRN
		},
	}
	svc := newTestService(repo)

	err := svc.Register(context.Background(), &model.Patient{
		MRN:       "MH-1234",
		FirstName: "Asha",
		Gender:    "f",
	})
	if err == nil {
		t.Fatal("expected conflict error")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 409 {
		t.Errorf("expected 409 conflict, got %v", err)
	}
}

func TestGetByID_EmptyID(t *testing.T) {
	svc := newTestService(&mockPatientRepository{})

	_, err := svc.GetByID(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty ID")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 400 {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestGetAll_CombinesCountAndList(t *testing.T) {
	repo := &mockPatientRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Patient, error) {
			return []*model.Patient{
				{ID: "1", FirstName: "A"},
				{ID: "2", FirstName: "B"},
			}, nil
		},
	}
	svc := newTestService(repo)

	patients, total, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d, want 42", total)
	}
	if len(patients) != 2 {
		t.Errorf("len(patients) = %d, want 2", len(patients))
	}
}

func TestGetAll_CountFailure(t *testing.T) {
	repo := &mockPatientRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			return 0, errors.New("boom")
		},
	}
	svc := newTestService(repo)

	if _, _, err := svc.GetAll(context.Background(), 10, 0); err == nil {
		t.Fatal("expected error when count fails")
	}
}
