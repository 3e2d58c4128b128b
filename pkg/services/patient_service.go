package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/repositories"
)

// PatientUpdate carries the fields a PATCH may change; nil means unchanged.
type PatientUpdate struct {
	MRN       *string
	FirstName *string
	LastName  *string
	DOB       *time.Time
}

// PatientService provides CRUD over patients keyed by MRN.
// It enforces MRN uniqueness on create and MRN-changing update, and refuses
// to delete a patient that still has notes.
type PatientService interface {
	Create(ctx context.Context, patient *models.Patient) (*models.Patient, error)
	List(ctx context.Context) ([]*models.Patient, error)
	Get(ctx context.Context, mrn string) (*models.Patient, error)
	Update(ctx context.Context, mrn string, update *PatientUpdate) (*models.Patient, error)
	Delete(ctx context.Context, mrn string) error
}

type patientService struct {
	patients repositories.PatientRepository
	logger   *zap.Logger
}

// NewPatientService creates a new PatientService.
func NewPatientService(patients repositories.PatientRepository, logger *zap.Logger) PatientService {
	return &patientService{
		patients: patients,
		logger:   logger.Named("patient-service"),
	}
}

var _ PatientService = (*patientService)(nil)

func (s *patientService) Create(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("patient with MRN %s already exists: %w", patient.MRN, apperrors.ErrConflict)
		}
		return nil, err
	}

	s.logger.Info("Patient created", zap.String("mrn", patient.MRN))
	return s.patients.GetByMRN(ctx, patient.MRN)
}

func (s *patientService) List(ctx context.Context) ([]*models.Patient, error) {
	return s.patients.List(ctx)
}

func (s *patientService) Get(ctx context.Context, mrn string) (*models.Patient, error) {
	return s.patients.GetByMRN(ctx, mrn)
}

func (s *patientService) Update(ctx context.Context, mrn string, update *PatientUpdate) (*models.Patient, error) {
	patient, err := s.patients.GetByMRN(ctx, mrn)
	if err != nil {
		return nil, err
	}

	if update.MRN != nil && *update.MRN != mrn {
		// An MRN change must not collide with another patient.
		if _, err := s.patients.GetByMRN(ctx, *update.MRN); err == nil {
			return nil, fmt.Errorf("patient MRN %s is already in use: %w", *update.MRN, apperrors.ErrConflict)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		patient.MRN = *update.MRN
	}
	if update.FirstName != nil {
		patient.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		patient.LastName = *update.LastName
	}
	if update.DOB != nil {
		patient.DOB = *update.DOB
	}

	if err := s.patients.Update(ctx, mrn, patient); err != nil {
		return nil, err
	}

	s.logger.Info("Patient updated", zap.String("mrn", patient.MRN))
	return s.patients.GetByMRN(ctx, patient.MRN)
}

func (s *patientService) Delete(ctx context.Context, mrn string) error {
	if _, err := s.patients.GetByMRN(ctx, mrn); err != nil {
		return err
	}

	// Deletion order is note-before-patient by policy, not cascade.
	count, err := s.patients.CountNotes(ctx, mrn)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cannot delete patient with existing notes, delete %d note(s) first: %w",
			count, apperrors.ErrConflict)
	}

	if err := s.patients.Delete(ctx, mrn); err != nil {
		return err
	}

	s.logger.Info("Patient deleted", zap.String("mrn", mrn))
	return nil
}
