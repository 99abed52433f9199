package service

import (
	"context"
	"errors"
	"sync"

	recordserrors "medreg/internal/records/errors"
	"medreg/internal/records/repository"
	"medreg/internal/records/validator"
	"medreg/pkg/config"
	apperrors "medreg/pkg/errors"
	"medreg/pkg/model"
)

type RecordService interface {
	AddTreatment(ctx context.Context, treatment *model.Treatment) error
	GetTreatment(ctx context.Context, id string) (*model.Treatment, error)
	ListTreatments(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Treatment, int64, error)
	UpdateTreatment(ctx context.Context, id string, updates *model.TreatmentUpdate) error
	DeleteTreatment(ctx context.Context, id string) error

	AddInvestigation(ctx context.Context, investigation *model.Investigation) error
	GetInvestigation(ctx context.Context, id string) (*model.Investigation, error)
	ListInvestigations(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Investigation, int64, error)
	UpdateInvestigation(ctx context.Context, id string, updates *model.InvestigationUpdate) error
	DeleteInvestigation(ctx context.Context, id string) error
}

type recordService struct {
	treatments     repository.TreatmentRepository
	investigations repository.InvestigationRepository
	validator      *validator.RecordValidator
	cfg            *config.Config
}

func NewRecordService(
	treatments repository.TreatmentRepository,
	investigations repository.InvestigationRepository,
	validator *validator.RecordValidator,
	cfg *config.Config,
) RecordService {
	return &recordService{
		treatments:     treatments,
		investigations: investigations,
		validator:      validator,
		cfg:            cfg,
	}
}

// --- Treatments ---

func (s *recordService) AddTreatment(ctx context.Context, treatment *model.Treatment) error {
	if err := s.validator.ValidateTreatment(treatment); err != nil {
		s.cfg.Log.Warn("Treatment validation failed", "error", err)
		return apperrors.Validation("Treatment validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.treatments.Create(ctx, treatment); err != nil {
		s.cfg.Log.Error("Failed to add treatment", "patient_id", treatment.PatientID, "error", err)
		return apperrors.Internal("Failed to add treatment", err)
	}

	s.cfg.Log.Info("Treatment added", "id", treatment.ID, "patient_id", treatment.PatientID)
	return nil
}

func (s *recordService) GetTreatment(ctx context.Context, id string) (*model.Treatment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Treatment ID cannot be empty")
	}

	treatment, err := s.treatments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordserrors.ErrTreatmentNotFound) {
			return nil, apperrors.NotFoundWithID("Treatment", id)
		}
		if errors.Is(err, recordserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid treatment ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve treatment", err)
	}

	return treatment, nil
}

func (s *recordService) ListTreatments(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Treatment, int64, error) {
	if patientID == "" {
		return nil, 0, apperrors.InvalidInput("PatientID is required")
	}

	var count int64
	var treatments []*model.Treatment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.treatments.CountByPatient(ctx, patientID)
		if err != nil {
			s.cfg.Log.Error("Failed to count treatments", "patient_id", patientID, "error", err)
			errCount = apperrors.Internal("Failed to count treatments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		treatments, err = s.treatments.FindByPatient(ctx, patientID, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list treatments", "patient_id", patientID, "error", err)
			errFind = apperrors.Internal("Failed to retrieve treatments", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return treatments, count, nil
}

func (s *recordService) UpdateTreatment(ctx context.Context, id string, updates *model.TreatmentUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Treatment ID cannot be empty")
	}

	existing, err := s.GetTreatment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateTreatmentUpdate(updates); err != nil {
		s.cfg.Log.Warn("Treatment update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Modality != "" {
		merged.Modality = updates.Modality
	}
	if updates.StartedAt != nil {
		merged.StartedAt = *updates.StartedAt
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	if _, err := s.treatments.Update(ctx, id, &merged); err != nil {
		s.cfg.Log.Error("Failed to update treatment", "id", id, "error", err)
		return apperrors.Internal("Failed to update treatment", err)
	}

	s.cfg.Log.Info("Treatment updated", "id", id)
	return nil
}

func (s *recordService) DeleteTreatment(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Treatment ID cannot be empty")
	}

	if err := s.treatments.Delete(ctx, id); err != nil {
		if errors.Is(err, recordserrors.ErrTreatmentNotFound) {
			return apperrors.NotFoundWithID("Treatment", id)
		}
		if errors.Is(err, recordserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid treatment ID format")
		}
		return apperrors.Internal("Failed to delete treatment", err)
	}

	s.cfg.Log.Info("Treatment deleted", "id", id)
	return nil
}

// --- Investigations ---

func (s *recordService) AddInvestigation(ctx context.Context, investigation *model.Investigation) error {
	if err := s.validator.ValidateInvestigation(investigation); err != nil {
		s.cfg.Log.Warn("Investigation validation failed", "error", err)
		return apperrors.Validation("Investigation validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.investigations.Create(ctx, investigation); err != nil {
		s.cfg.Log.Error("Failed to add investigation", "patient_id", investigation.PatientID, "error", err)
		return apperrors.Internal("Failed to add investigation", err)
	}

	s.cfg.Log.Info("Investigation added", "id", investigation.ID, "patient_id", investigation.PatientID)
	return nil
}

func (s *recordService) GetInvestigation(ctx context.Context, id string) (*model.Investigation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Investigation ID cannot be empty")
	}

	investigation, err := s.investigations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordserrors.ErrInvestigationNotFound) {
			return nil, apperrors.NotFoundWithID("Investigation", id)
		}
		if errors.Is(err, recordserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid investigation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve investigation", err)
	}

	return investigation, nil
}

func (s *recordService) ListInvestigations(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Investigation, int64, error) {
	if patientID == "" {
		return nil, 0, apperrors.InvalidInput("PatientID is required")
	}

	var count int64
	var investigations []*model.Investigation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.investigations.CountByPatient(ctx, patientID)
		if err != nil {
			s.cfg.Log.Error("Failed to count investigations", "patient_id", patientID, "error", err)
			errCount = apperrors.Internal("Failed to count investigations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		investigations, err = s.investigations.FindByPatient(ctx, patientID, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list investigations", "patient_id", patientID, "error", err)
			errFind = apperrors.Internal("Failed to retrieve investigations", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return investigations, count, nil
}

func (s *recordService) UpdateInvestigation(ctx context.Context, id string, updates *model.InvestigationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Investigation ID cannot be empty")
	}

	existing, err := s.GetInvestigation(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateInvestigationUpdate(updates); err != nil {
		s.cfg.Log.Warn("Investigation update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Result != nil {
		merged.Result = *updates.Result
	}
	if updates.ReportedAt != nil {
		merged.ReportedAt = *updates.ReportedAt
	}

	if _, err := s.investigations.Update(ctx, id, &merged); err != nil {
		s.cfg.Log.Error("Failed to update investigation", "id", id, "error", err)
		return apperrors.Internal("Failed to update investigation", err)
	}

	s.cfg.Log.Info("Investigation updated", "id", id)
	return nil
}

func (s *recordService) DeleteInvestigation(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Investigation ID cannot be empty")
	}

	if err := s.investigations.Delete(ctx, id); err != nil {
		if errors.Is(err, recordserrors.ErrInvestigationNotFound) {
			return apperrors.NotFoundWithID("Investigation", id)
		}
		if errors.Is(err, recordserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid investigation ID format")
		}
		return apperrors.Internal("Failed to delete investigation", err)
	}

	s.cfg.Log.Info("Investigation deleted", "id", id)
	return nil
}
