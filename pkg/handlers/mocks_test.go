package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/services"
)

// mockPatientService is a function-field mock of services.PatientService.
type mockPatientService struct {
	CreateFunc func(ctx context.Context, patient *models.Patient) (*models.Patient, error)
	ListFunc   func(ctx context.Context) ([]*models.Patient, error)
	GetFunc    func(ctx context.Context, mrn string) (*models.Patient, error)
	UpdateFunc func(ctx context.Context, mrn string, update *services.PatientUpdate) (*models.Patient, error)
	DeleteFunc func(ctx context.Context, mrn string) error

	CreateCalls int
}

var _ services.PatientService = (*mockPatientService)(nil)

func (m *mockPatientService) Create(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patient)
	}
	return patient, nil
}

func (m *mockPatientService) List(ctx context.Context) ([]*models.Patient, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPatientService) Get(ctx context.Context, mrn string) (*models.Patient, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, mrn)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPatientService) Update(ctx context.Context, mrn string, update *services.PatientUpdate) (*models.Patient, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mrn, update)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPatientService) Delete(ctx context.Context, mrn string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, mrn)
	}
	return nil
}

// mockNoteService is a function-field mock of services.NoteService.
type mockNoteService struct {
	CreateFunc        func(ctx context.Context, patientMRN, audioPath string) (*models.Note, error)
	ListFunc          func(ctx context.Context) ([]*models.Note, error)
	GetFunc           func(ctx context.Context, id uuid.UUID) (*models.Note, error)
	ListByPatientFunc func(ctx context.Context, mrn string) ([]*models.Note, error)
	ReprocessFunc     func(ctx context.Context, id uuid.UUID) (*models.Note, error)
	RemoveFunc        func(ctx context.Context, id uuid.UUID) error
	RemoveAllFunc     func(ctx context.Context) error
	HealthFunc        func(ctx context.Context) *services.AIHealth

	CreateCalls int
}

var _ services.NoteService = (*mockNoteService)(nil)

func (m *mockNoteService) Create(ctx context.Context, patientMRN, audioPath string) (*models.Note, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patientMRN, audioPath)
	}
	return &models.Note{PatientMRN: patientMRN, AudioPath: audioPath}, nil
}

func (m *mockNoteService) List(ctx context.Context) ([]*models.Note, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockNoteService) Get(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNoteService) ListByPatient(ctx context.Context, mrn string) ([]*models.Note, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, mrn)
	}
	return nil, nil
}

func (m *mockNoteService) Reprocess(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	if m.ReprocessFunc != nil {
		return m.ReprocessFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNoteService) Remove(ctx context.Context, id uuid.UUID) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	return nil
}

func (m *mockNoteService) RemoveAll(ctx context.Context) error {
	if m.RemoveAllFunc != nil {
		return m.RemoveAllFunc(ctx)
	}
	return nil
}

func (m *mockNoteService) Health(ctx context.Context) *services.AIHealth {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &services.AIHealth{Models: []string{}}
}
