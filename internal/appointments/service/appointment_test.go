package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	appointmentserrors "medreg/internal/appointments/errors"
	"medreg/internal/appointments/validator"
	"medreg/pkg/config"
	mongotx "medreg/pkg/db/mongo"
	apperrors "medreg/pkg/errors"
	"medreg/pkg/logger"
	"medreg/pkg/model"
)

type mockAppointmentRepository struct {
	createFunc          func(ctx context.Context, a *model.Appointment) error
	findByIDFunc        func(ctx context.Context, id string) (*model.Appointment, error)
	findOverlappingFunc func(ctx context.Context, patientID string, start, end time.Time) ([]*model.Appointment, error)
	updateFunc          func(ctx context.Context, id string, a *model.Appointment) (*mongo.UpdateResult, error)
}

func (m *mockAppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, a)
	}
	return nil
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, appointmentserrors.ErrNotFound
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) Update(ctx context.Context, id string, a *model.Appointment) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, a)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockAppointmentRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockAppointmentRepository) FindByPatient(ctx context.Context, patientID string, start, end *time.Time, limit int, offset int64) ([]*model.Appointment, error) {
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) FindOverlapping(ctx context.Context, patientID string, start, end time.Time) ([]*model.Appointment, error) {
	if m.findOverlappingFunc != nil {
		return m.findOverlappingFunc(ctx, patientID, start, end)
	}
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) CountByPatient(ctx context.Context, patientID string, start, end *time.Time) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockAppointmentRepository) AppointmentService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{Log: log}
	return NewAppointmentService(repo, validator.NewAppointmentValidator(log), nil, cfg)
}

func validAppointment() *model.Appointment {
	return &model.Appointment{
		PatientID:  "507f1f77bcf86cd799439011",
		Department: "Oncology",
		StartTime:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestBook_DefaultsToScheduled(t *testing.T) {
	var created *model.Appointment
	repo := &mockAppointmentRepository{
		createFunc: func(ctx context.Context, a *model.Appointment) error {
			created = a
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Book(context.Background(), validAppointment()); err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if created == nil {
		t.Fatal("Create was not called")
	}
	if created.Status != model.AppointmentStatusScheduled {
		t.Errorf("Status = %q, want %q", created.Status, model.AppointmentStatusScheduled)
	}
}

func TestBook_RejectsInvertedTimeRange(t *testing.T) {
	svc := newTestService(&mockAppointmentRepository{})

	appointment := validAppointment()
	appointment.StartTime, appointment.EndTime = appointment.EndTime, appointment.StartTime

	err := svc.Book(context.Background(), appointment)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 422 {
		t.Errorf("expected 422, got %v", err)
	}
}

func TestBook_RejectsOverlap(t *testing.T) {
	existing := validAppointment()
	existing.ID = "507f1f77bcf86cd799439012"
	existing.Status = model.AppointmentStatusScheduled

	repo := &mockAppointmentRepository{
		findOverlappingFunc: func(ctx context.Context, patientID string, start, end time.Time) ([]*model.Appointment, error) {
			return []*model.Appointment{existing}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Book(context.Background(), validAppointment())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 409 {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestBook_IgnoresCancelledOverlap(t *testing.T) {
	existing := validAppointment()
	existing.ID = "507f1f77bcf86cd799439012"
	existing.Status = model.AppointmentStatusCancelled

	repo := &mockAppointmentRepository{
		findOverlappingFunc: func(ctx context.Context, patientID string, start, end time.Time) ([]*model.Appointment, error) {
			return []*model.Appointment{existing}, nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Book(context.Background(), validAppointment()); err != nil {
		t.Fatalf("Book failed: %v", err)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	existing := validAppointment()
	existing.ID = "507f1f77bcf86cd799439012"
	existing.Status = model.AppointmentStatusCancelled

	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), existing.ID)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 409 {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestCancel_SetsStatus(t *testing.T) {
	existing := validAppointment()
	existing.ID = "507f1f77bcf86cd799439012"
	existing.Status = model.AppointmentStatusScheduled

	var updated *model.Appointment
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, a *model.Appointment) (*mongo.UpdateResult, error) {
			updated = a
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Cancel(context.Background(), existing.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if updated == nil || updated.Status != model.AppointmentStatusCancelled {
		t.Errorf("appointment not marked cancelled: %+v", updated)
	}
}
