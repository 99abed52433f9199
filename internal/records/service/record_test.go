package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	recordserrors "medreg/internal/records/errors"
	"medreg/internal/records/repository"
	"medreg/internal/records/validator"
	"medreg/pkg/config"
	apperrors "medreg/pkg/errors"
	"medreg/pkg/logger"
	"medreg/pkg/model"
)

type mockTreatmentRepository struct {
	createFunc        func(ctx context.Context, t *model.Treatment) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Treatment, error)
	findByPatientFunc func(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Treatment, error)
	countFunc         func(ctx context.Context, patientID string) (int64, error)
}

func (m *mockTreatmentRepository) Create(ctx context.Context, t *model.Treatment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	return nil
}

func (m *mockTreatmentRepository) FindByID(ctx context.Context, id string) (*model.Treatment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, recordserrors.ErrTreatmentNotFound
}

func (m *mockTreatmentRepository) FindByPatient(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Treatment, error) {
	if m.findByPatientFunc != nil {
		return m.findByPatientFunc(ctx, patientID, limit, offset)
	}
	return []*model.Treatment{}, nil
}

func (m *mockTreatmentRepository) CountByPatient(ctx context.Context, patientID string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, patientID)
	}
	return 0, nil
}

func (m *mockTreatmentRepository) Update(ctx context.Context, id string, t *model.Treatment) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockTreatmentRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type mockInvestigationRepository struct{}

func (m *mockInvestigationRepository) Create(ctx context.Context, inv *model.Investigation) error {
	return nil
}

func (m *mockInvestigationRepository) FindByID(ctx context.Context, id string) (*model.Investigation, error) {
	return nil, recordserrors.ErrInvestigationNotFound
}

func (m *mockInvestigationRepository) FindByPatient(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Investigation, error) {
	return []*model.Investigation{}, nil
}

func (m *mockInvestigationRepository) CountByPatient(ctx context.Context, patientID string) (int64, error) {
	return 0, nil
}

func (m *mockInvestigationRepository) Update(ctx context.Context, id string, inv *model.Investigation) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockInvestigationRepository) Delete(ctx context.Context, id string) error {
	return nil
}

var _ repository.TreatmentRepository = (*mockTreatmentRepository)(nil)
var _ repository.InvestigationRepository = (*mockInvestigationRepository)(nil)

func newTestService(treatments *mockTreatmentRepository) RecordService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{Log: log}
	return NewRecordService(treatments, &mockInvestigationRepository{}, validator.NewRecordValidator(log), cfg)
}

func validTreatment() *model.Treatment {
	return &model.Treatment{
		PatientID: "507f1f77bcf86cd799439011",
		Modality:  "Radiotherapy",
		StartedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestAddTreatment_Valid(t *testing.T) {
	var created *model.Treatment
	repo := &mockTreatmentRepository{
		createFunc: func(ctx context.Context, tr *model.Treatment) error {
			created = tr
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.AddTreatment(context.Background(), validTreatment()); err != nil {
		t.Fatalf("AddTreatment failed: %v", err)
	}
	if created == nil {
		t.Fatal("Create was not called")
	}
}

func TestAddTreatment_MissingModality(t *testing.T) {
	svc := newTestService(&mockTreatmentRepository{})

	treatment := validTreatment()
	treatment.Modality = ""

	err := svc.AddTreatment(context.Background(), treatment)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 422 {
		t.Errorf("expected 422, got %v", err)
	}
}

func TestGetTreatment_NotFound(t *testing.T) {
	svc := newTestService(&mockTreatmentRepository{})

	_, err := svc.GetTreatment(context.Background(), "507f1f77bcf86cd799439099")
	if err == nil {
		t.Fatal("expected not found error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestListTreatments_CombinesCountAndList(t *testing.T) {
	repo := &mockTreatmentRepository{
		findByPatientFunc: func(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Treatment, error) {
			return []*model.Treatment{validTreatment(), validTreatment()}, nil
		},
		countFunc: func(ctx context.Context, patientID string) (int64, error) {
			return 12, nil
		},
	}
	svc := newTestService(repo)

	treatments, total, err := svc.ListTreatments(context.Background(), "507f1f77bcf86cd799439011", 2, 0)
	if err != nil {
		t.Fatalf("ListTreatments failed: %v", err)
	}
	if len(treatments) != 2 {
		t.Errorf("got %d treatments, want 2", len(treatments))
	}
	if total != 12 {
		t.Errorf("got total %d, want 12", total)
	}
}

func TestListTreatments_CountFailure(t *testing.T) {
	repo := &mockTreatmentRepository{
		countFunc: func(ctx context.Context, patientID string) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.ListTreatments(context.Background(), "507f1f77bcf86cd799439011", 10, 0)
	if err == nil {
		t.Fatal("expected error when count fails")
	}
}
