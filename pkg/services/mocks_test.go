package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/repositories"
)

// mockPatientRepo is a function-field mock of repositories.PatientRepository.
type mockPatientRepo struct {
	CreateFunc     func(ctx context.Context, patient *models.Patient) error
	GetByMRNFunc   func(ctx context.Context, mrn string) (*models.Patient, error)
	ListFunc       func(ctx context.Context) ([]*models.Patient, error)
	UpdateFunc     func(ctx context.Context, mrn string, patient *models.Patient) error
	DeleteFunc     func(ctx context.Context, mrn string) error
	CountNotesFunc func(ctx context.Context, mrn string) (int, error)

	CreateCalls int
	DeleteCalls int
}

var _ repositories.PatientRepository = (*mockPatientRepo)(nil)

func (m *mockPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patient)
	}
	return nil
}

func (m *mockPatientRepo) GetByMRN(ctx context.Context, mrn string) (*models.Patient, error) {
	if m.GetByMRNFunc != nil {
		return m.GetByMRNFunc(ctx, mrn)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPatientRepo) List(ctx context.Context) ([]*models.Patient, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPatientRepo) Update(ctx context.Context, mrn string, patient *models.Patient) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mrn, patient)
	}
	return nil
}

func (m *mockPatientRepo) Delete(ctx context.Context, mrn string) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, mrn)
	}
	return nil
}

func (m *mockPatientRepo) CountNotes(ctx context.Context, mrn string) (int, error) {
	if m.CountNotesFunc != nil {
		return m.CountNotesFunc(ctx, mrn)
	}
	return 0, nil
}

// mockNoteRepo is a function-field mock of repositories.NoteRepository.
type mockNoteRepo struct {
	CreateFunc        func(ctx context.Context, note *models.Note) error
	GetFunc           func(ctx context.Context, id uuid.UUID) (*models.Note, error)
	ListFunc          func(ctx context.Context) ([]*models.Note, error)
	ListByPatientFunc func(ctx context.Context, mrn string) ([]*models.Note, error)
	UpdateResultsFunc func(ctx context.Context, id uuid.UUID, transcript, summary *string, assessment *models.OasisAssessment) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	DeleteAllFunc     func(ctx context.Context) error

	CreateCalls        int
	UpdateResultsCalls int

	// LastCreated captures the note passed to the most recent Create call.
	LastCreated *models.Note
}

var _ repositories.NoteRepository = (*mockNoteRepo)(nil)

func (m *mockNoteRepo) Create(ctx context.Context, note *models.Note) error {
	m.CreateCalls++
	m.LastCreated = note
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, note)
	}
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	return nil
}

func (m *mockNoteRepo) Get(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNoteRepo) List(ctx context.Context) ([]*models.Note, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockNoteRepo) ListByPatient(ctx context.Context, mrn string) ([]*models.Note, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, mrn)
	}
	return nil, nil
}

func (m *mockNoteRepo) UpdateResults(ctx context.Context, id uuid.UUID, transcript, summary *string, assessment *models.OasisAssessment) error {
	m.UpdateResultsCalls++
	if m.UpdateResultsFunc != nil {
		return m.UpdateResultsFunc(ctx, id, transcript, summary, assessment)
	}
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockNoteRepo) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}

// mockProcessor is a function-field mock of AudioProcessor.
type mockProcessor struct {
	ProcessFunc func(ctx context.Context, audioPath string) (*ProcessingResult, error)

	ProcessCalls int
}

var _ AudioProcessor = (*mockProcessor)(nil)

func (m *mockProcessor) Process(ctx context.Context, audioPath string) (*ProcessingResult, error) {
	m.ProcessCalls++
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, audioPath)
	}
	return &ProcessingResult{}, nil
}
