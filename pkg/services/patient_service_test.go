package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
)

func TestPatientCreate_Success(t *testing.T) {
	patients := &mockPatientRepo{
		GetByMRNFunc: func(ctx context.Context, mrn string) (*models.Patient, error) {
			return &models.Patient{MRN: mrn, FirstName: "María", LastName: "Rodríguez"}, nil
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	created, err := svc.Create(context.Background(), &models.Patient{
		MRN:       "MRN001",
		FirstName: "María",
		LastName:  "Rodríguez",
	})
	require.NoError(t, err)

	assert.Equal(t, "MRN001", created.MRN)
	assert.Equal(t, 1, patients.CreateCalls)
}

func TestPatientCreate_DuplicateMRN(t *testing.T) {
	patients := &mockPatientRepo{
		CreateFunc: func(ctx context.Context, patient *models.Patient) error {
			return apperrors.ErrConflict
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	_, err := svc.Create(context.Background(), &models.Patient{MRN: "MRN001"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "MRN001")
}

func TestPatientUpdate_PartialFields(t *testing.T) {
	stored := &models.Patient{MRN: "MRN001", FirstName: "María", LastName: "Rodríguez"}

	var updated *models.Patient
	patients := &mockPatientRepo{
		GetByMRNFunc: func(ctx context.Context, mrn string) (*models.Patient, error) {
			if mrn == "MRN001" {
				p := *stored
				return &p, nil
			}
			return nil, apperrors.ErrNotFound
		},
		UpdateFunc: func(ctx context.Context, mrn string, patient *models.Patient) error {
			assert.Equal(t, "MRN001", mrn)
			updated = patient
			return nil
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	last := "García"
	_, err := svc.Update(context.Background(), "MRN001", &PatientUpdate{LastName: &last})
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, "María", updated.FirstName) // untouched
	assert.Equal(t, "García", updated.LastName)
	assert.Equal(t, "MRN001", updated.MRN)
}

func TestPatientUpdate_MRNChangeCollision(t *testing.T) {
	patients := &mockPatientRepo{
		GetByMRNFunc: func(ctx context.Context, mrn string) (*models.Patient, error) {
			// Both the current and the target MRN exist.
			return &models.Patient{MRN: mrn}, nil
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	target := "MRN002"
	_, err := svc.Update(context.Background(), "MRN001", &PatientUpdate{MRN: &target})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "MRN002")
}

func TestPatientUpdate_MRNChangeToFreeMRN(t *testing.T) {
	var updated *models.Patient
	patients := &mockPatientRepo{
		GetByMRNFunc: func(ctx context.Context, mrn string) (*models.Patient, error) {
			if mrn == "MRN001" {
				return &models.Patient{MRN: "MRN001", FirstName: "Ana"}, nil
			}
			return nil, apperrors.ErrNotFound
		},
		UpdateFunc: func(ctx context.Context, mrn string, patient *models.Patient) error {
			updated = patient
			return nil
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	target := "MRN002"
	_, err := svc.Update(context.Background(), "MRN001", &PatientUpdate{MRN: &target})
	// The final GetByMRN re-read misses because the mock only knows MRN001;
	// the update itself must have carried the new MRN.
	require.Error(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "MRN002", updated.MRN)
}

func TestPatientUpdate_UnknownPatient(t *testing.T) {
	svc := NewPatientService(&mockPatientRepo{}, zap.NewNop())

	first := "Ana"
	_, err := svc.Update(context.Background(), "MRN404", &PatientUpdate{FirstName: &first})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPatientDelete_Success(t *testing.T) {
	patients := &mockPatientRepo{
		GetByMRNFunc: func(ctx context.Context, mrn string) (*models.Patient, error) {
			return &models.Patient{MRN: mrn}, nil
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "MRN001"))
	assert.Equal(t, 1, patients.DeleteCalls)
}

func TestPatientDelete_RefusedWithNotes(t *testing.T) {
	patients := &mockPatientRepo{
		GetByMRNFunc: func(ctx context.Context, mrn string) (*models.Patient, error) {
			return &models.Patient{MRN: mrn}, nil
		},
		CountNotesFunc: func(ctx context.Context, mrn string) (int, error) {
			return 3, nil
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	err := svc.Delete(context.Background(), "MRN001")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "3 note(s)")
	assert.Equal(t, 0, patients.DeleteCalls)
}

func TestPatientDelete_UnknownPatient(t *testing.T) {
	svc := NewPatientService(&mockPatientRepo{}, zap.NewNop())

	err := svc.Delete(context.Background(), "MRN404")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPatientUpdate_DOB(t *testing.T) {
	var updated *models.Patient
	patients := &mockPatientRepo{
		GetByMRNFunc: func(ctx context.Context, mrn string) (*models.Patient, error) {
			return &models.Patient{MRN: mrn}, nil
		},
		UpdateFunc: func(ctx context.Context, mrn string, patient *models.Patient) error {
			updated = patient
			return nil
		},
	}

	svc := NewPatientService(patients, zap.NewNop())

	dob := time.Date(1950, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), "MRN001", &PatientUpdate{DOB: &dob})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.DOB.Equal(dob))
}
