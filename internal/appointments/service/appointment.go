package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	appointmentserrors "medreg/internal/appointments/errors"
	"medreg/internal/appointments/repository"
	"medreg/internal/appointments/validator"
	"medreg/pkg/config"
	apperrors "medreg/pkg/errors"
	"medreg/pkg/model"
	"medreg/pkg/notify"
)

type AppointmentService interface {
	Book(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error)
	Update(ctx context.Context, id string, updates *model.AppointmentUpdate) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	SearchByPatient(ctx context.Context, patientID string, startTime, endTime *time.Time, limit int, offset int64) ([]*model.Appointment, int64, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	validator *validator.AppointmentValidator
	events    *notify.Publisher
	cfg       *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	validator *validator.AppointmentValidator,
	events *notify.Publisher,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *appointmentService) Book(ctx context.Context, appointment *model.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}
	if err := s.validate(appointment); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, appointment); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, appointment); err != nil {
			return apperrors.Internal("Failed to book appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to book appointment", "patient_id", appointment.PatientID, "error", err)
		return err
	}

	s.cfg.Log.Info("Appointment booked",
		"id", appointment.ID,
		"patient_id", appointment.PatientID,
		"start_time", appointment.StartTime,
	)
	s.events.Publish(ctx, notify.EventAppointmentBooked, appointment.PatientID, appointment)
	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmentserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}

	return appointment, nil
}

func (s *appointmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = apperrors.Internal("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appointments, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

func (s *appointmentService) Update(ctx context.Context, id string, updates *model.AppointmentUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmentserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid appointment ID format")
		}
		return apperrors.Internal("Failed to check appointment existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Appointment update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeAppointmentUpdates(existing, updates)
	if err := s.validate(merged); err != nil {
		return err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update appointment", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Appointment updated", "id", id)
	return nil
}

func (s *appointmentService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	var cancelled *model.Appointment
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, appointmentserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Appointment", id)
			}
			if errors.Is(err, appointmentserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid appointment ID format")
			}
			return apperrors.Internal("Failed to retrieve appointment", err)
		}

		if existing.Status == model.AppointmentStatusCancelled {
			return apperrors.Conflict("Appointment is already cancelled")
		}

		existing.Status = model.AppointmentStatusCancelled
		if _, err := s.repo.Update(sessCtx, id, existing); err != nil {
			return apperrors.Internal("Failed to cancel appointment", err)
		}
		cancelled = existing
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Appointment cancelled", "id", id, "patient_id", cancelled.PatientID)
	s.events.Publish(ctx, notify.EventAppointmentCancelled, cancelled.PatientID, cancelled)
	return nil
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmentserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid appointment ID format")
		}
		return apperrors.Internal("Failed to delete appointment", err)
	}

	s.cfg.Log.Info("Appointment deleted", "id", id)
	return nil
}

func (s *appointmentService) SearchByPatient(ctx context.Context, patientID string, startTime, endTime *time.Time, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if patientID == "" {
		return nil, 0, apperrors.InvalidInput("PatientID is required")
	}

	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByPatient(ctx, patientID, startTime, endTime)
		if err != nil {
			s.cfg.Log.Error("Failed to count appointments by patient", "patient_id", patientID, "error", err)
			errCount = apperrors.Internal("Failed to count appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		appointments, err = s.repo.FindByPatient(ctx, patientID, startTime, endTime, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search appointments", "patient_id", patientID, "error", err)
			errFind = apperrors.Internal("Failed to search appointments", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

// --- Helpers ---

func (s *appointmentService) mergeAppointmentUpdates(existing *model.Appointment, updates *model.AppointmentUpdate) *model.Appointment {
	merged := *existing

	if updates.Department != "" {
		merged.Department = updates.Department
	}
	if updates.Reason != nil {
		merged.Reason = *updates.Reason
	}
	if updates.StartTime != nil {
		merged.StartTime = *updates.StartTime
	}
	if updates.EndTime != nil {
		merged.EndTime = *updates.EndTime
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

func (s *appointmentService) validate(appointment *model.Appointment) error {
	if err := s.validator.Validate(appointment); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.Validation("Appointment validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoOverlap rejects a booking whose time range intersects another
// non-cancelled appointment for the same patient.
func (s *appointmentService) verifyNoOverlap(ctx context.Context, appointment *model.Appointment) error {
	existing, err := s.repo.FindOverlapping(ctx, appointment.PatientID, appointment.StartTime, appointment.EndTime)
	if err != nil {
		return apperrors.Internal("Failed to check existing appointments", err)
	}

	for _, a := range existing {
		if a.ID == appointment.ID || a.Status == model.AppointmentStatusCancelled {
			continue
		}
		return apperrors.Conflict(fmt.Sprintf(
			"Appointment overlaps with existing appointment (%s - %s)",
			a.StartTime.Format(time.RFC3339),
			a.EndTime.Format(time.RFC3339),
		))
	}
	return nil
}
