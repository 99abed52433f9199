package service

import (
	"context"
	"errors"
	"sync"

	patientserrors "medreg/internal/patients/errors"
	"medreg/internal/patients/repository"
	"medreg/internal/patients/validator"
	"medreg/pkg/config"
	apperrors "medreg/pkg/errors"
	"medreg/pkg/model"
	"medreg/pkg/normalize"
	"medreg/pkg/notify"
)

type PatientService interface {
	Register(ctx context.Context, patient *model.Patient) error
	GetByID(ctx context.Context, id string) (*model.Patient, error)
	GetByMRN(ctx context.Context, mrn string) (*model.Patient, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Patient, int64, error)
	Update(ctx context.Context, id string, updates *model.PatientUpdate) error
	Delete(ctx context.Context, id string) error
	SearchByPhone(ctx context.Context, phone string, limit int, offset int64) ([]*model.Patient, int64, error)
	SearchByCity(ctx context.Context, city string, limit int, offset int64) ([]*model.Patient, int64, error)
}

type patientService struct {
	repo      repository.PatientRepository
	validator *validator.PatientValidator
	events    *notify.Publisher
	cfg       *config.Config
}

func NewPatientService(
	repo repository.PatientRepository,
	validator *validator.PatientValidator,
	events *notify.Publisher,
	cfg *config.Config,
) PatientService {
	return &patientService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *patientService) Register(ctx context.Context, patient *model.Patient) error {
	s.sanitize(patient)
	s.applyDefaults(patient)
	if err := s.validate(patient); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByMRN(ctx, patient.MRN)
	if err != nil {
		return apperrors.Internal("Failed to check MRN existence", err)
	}
	if exists {
		return apperrors.Conflict("A patient with MRN " + patient.MRN + " is already registered")
	}

	if err := s.repo.Insert(ctx, patient); err != nil {
		if errors.Is(err, patientserrors.ErrDuplicateMRN) {
			return apperrors.Conflict("A patient with MRN " + patient.MRN + " is already registered")
		}
		s.cfg.Log.Error("Failed to register patient", "mrn", patient.MRN, "error", err)
		return apperrors.Internal("Failed to register patient", err)
	}

	s.cfg.Log.Info("Patient registered",
		"id", patient.ID,
		"patient_id", patient.PatientID,
		"mrn", patient.MRN,
	)
	s.events.Publish(ctx, notify.EventPatientRegistered, patient.PatientID, patient)
	return nil
}

func (s *patientService) GetByID(ctx context.Context, id string) (*model.Patient, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Patient ID cannot be empty")
	}

	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, patientserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Patient", id)
		}
		if errors.Is(err, patientserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid patient ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve patient", err)
	}

	return patient, nil
}

func (s *patientService) GetByMRN(ctx context.Context, mrn string) (*model.Patient, error) {
	if mrn == "" {
		return nil, apperrors.InvalidInput("MRN cannot be empty")
	}

	patient, err := s.repo.FindByMRN(ctx, mrn)
	if err != nil {
		if errors.Is(err, patientserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Patient", mrn)
		}
		return nil, apperrors.Internal("Failed to retrieve patient", err)
	}

	return patient, nil
}

func (s *patientService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Patient, int64, error) {
	var count int64
	var patients []*model.Patient
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count patients", "error", errCount)
			errCount = apperrors.Internal("Failed to count patients", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		patients, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list patients", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve patients", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return patients, count, nil
}

func (s *patientService) Update(ctx context.Context, id string, updates *model.PatientUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Patient ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, patientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Patient", id)
		}
		if errors.Is(err, patientserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid patient ID format")
		}
		return apperrors.Internal("Failed to check patient existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Patient update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergePatientUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update patient", "id", id, "error", err)
		return apperrors.Internal("Failed to update patient", err)
	}

	s.cfg.Log.Info("Patient updated", "id", id)
	s.events.Publish(ctx, notify.EventPatientUpdated, merged.PatientID, merged)
	return nil
}

func (s *patientService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Patient ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, patientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Patient", id)
		}
		if errors.Is(err, patientserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid patient ID format")
		}
		return apperrors.Internal("Failed to delete patient", err)
	}

	s.cfg.Log.Info("Patient deleted", "id", id)
	return nil
}

func (s *patientService) SearchByPhone(ctx context.Context, phone string, limit int, offset int64) ([]*model.Patient, int64, error) {
	if phone == "" {
		return nil, 0, apperrors.InvalidInput("Phone is required")
	}
	// Search with the same cleaning the stored values went through.
	cleaned := normalize.CleanPhoneNumber(phone)

	var count int64
	var patients []*model.Patient
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByPhone(ctx, cleaned)
		if err != nil {
			s.cfg.Log.Error("Failed to count patients by phone", "error", err)
			errCount = apperrors.Internal("Failed to count patients", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		patients, err = s.repo.FindByPhone(ctx, cleaned, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search patients by phone", "error", err)
			errFind = apperrors.Internal("Failed to search patients", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return patients, count, nil
}

func (s *patientService) SearchByCity(ctx context.Context, city string, limit int, offset int64) ([]*model.Patient, int64, error) {
	if city == "" {
		return nil, 0, apperrors.InvalidInput("City is required")
	}
	// Canonicalize the same way addresses are, so "bengaluru" finds Bangalore.
	if canonical, _ := normalize.ExtractCityState(city); canonical != "" {
		city = canonical
	}

	var count int64
	var patients []*model.Patient
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByCity(ctx, city)
		if err != nil {
			s.cfg.Log.Error("Failed to count patients by city", "city", city, "error", err)
			errCount = apperrors.Internal("Failed to count patients", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		patients, err = s.repo.FindByCity(ctx, city, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search patients by city", "city", city, "error", err)
			errFind = apperrors.Internal("Failed to search patients", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return patients, count, nil
}

// --- Helpers ---

func (s *patientService) sanitize(p *model.Patient) {
	first, last := normalize.SplitName(p.FirstName + " " + p.LastName)
	p.FirstName = first
	p.LastName = last

	p.Gender = normalize.ParseGender(p.Gender)
	p.Phone = normalize.CleanPhoneNumber(p.Phone)
	p.AltPhone1 = normalize.CleanPhoneNumber(p.AltPhone1)
	p.AltPhone2 = normalize.CleanPhoneNumber(p.AltPhone2)
	p.Stage = normalize.CleanStage(p.Stage)

	if p.City == "" && p.Address != "" {
		p.City, p.State = normalize.ExtractCityState(p.Address)
	}
}

func (s *patientService) applyDefaults(p *model.Patient) {
	if p.PatientID == "" {
		p.PatientID = normalize.GeneratePatientID(p.CancerSite, p.MRN)
	}
	if p.EstimatedDOB.IsZero() {
		p.EstimatedDOB = normalize.EstimateDOB(p.RegistrationYear, p.Age)
	}
}

func (s *patientService) mergePatientUpdates(existing *model.Patient, updates *model.PatientUpdate) *model.Patient {
	merged := *existing

	if updates.FirstName != "" {
		merged.FirstName = updates.FirstName
	}
	if updates.LastName != nil {
		merged.LastName = *updates.LastName
	}
	if updates.Age != nil {
		merged.Age = updates.Age
	}
	if updates.Gender != "" {
		merged.Gender = updates.Gender
	}
	if updates.Phone != nil {
		merged.Phone = *updates.Phone
	}
	if updates.AltPhone1 != nil {
		merged.AltPhone1 = *updates.AltPhone1
	}
	if updates.AltPhone2 != nil {
		merged.AltPhone2 = *updates.AltPhone2
	}
	if updates.CancerSite != "" {
		merged.CancerSite = updates.CancerSite
	}
	if updates.Stage != nil {
		merged.Stage = *updates.Stage
	}
	if updates.Diagnosis != nil {
		merged.Diagnosis = *updates.Diagnosis
	}
	if updates.RegistrationYear != nil {
		merged.RegistrationYear = updates.RegistrationYear
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}
	if updates.City != nil {
		merged.City = *updates.City
	}
	if updates.State != nil {
		merged.State = *updates.State
	}
	if updates.LoggedAt != nil {
		merged.LoggedAt = updates.LoggedAt
	}

	return &merged
}

func (s *patientService) validate(patient *model.Patient) error {
	if err := s.validator.Validate(patient); err != nil {
		s.cfg.Log.Warn("Patient validation failed", "error", err)
		return apperrors.Validation("Patient validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
