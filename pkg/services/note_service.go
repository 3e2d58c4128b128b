package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/ai"
	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/repositories"
	"github.com/homescribe/homescribe-engine/pkg/transcription"
)

// AIHealth reports upstream AI service reachability for the health
// endpoints. Model is the configured completion model; Models is what the
// endpoint actually serves, so a misconfigured model name is visible here.
type AIHealth struct {
	Whisper bool     `json:"whisper"`
	LLM     bool     `json:"llm"`
	Model   string   `json:"model"`
	Models  []string `json:"models"`
}

// NoteService provides operations over clinical visit notes.
type NoteService interface {
	// Create verifies the patient exists, runs the processing pipeline over
	// the stored audio file and persists the resulting note. If processing
	// fails, a minimal note is still persisted so the audio association is
	// never lost, and the error is returned to the caller.
	Create(ctx context.Context, patientMRN, audioPath string) (*models.Note, error)

	List(ctx context.Context) ([]*models.Note, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Note, error)
	ListByPatient(ctx context.Context, mrn string) ([]*models.Note, error)

	// Reprocess re-runs the pipeline over the note's stored audio and
	// overwrites transcript, summary and assessment in place.
	Reprocess(ctx context.Context, id uuid.UUID) (*models.Note, error)

	Remove(ctx context.Context, id uuid.UUID) error
	RemoveAll(ctx context.Context) error

	// Health probes the upstream transcription and completion services.
	Health(ctx context.Context) *AIHealth
}

type noteService struct {
	notes       repositories.NoteRepository
	patients    repositories.PatientRepository
	processor   AudioProcessor
	transcriber transcription.Transcriber
	llm         ai.ExtractionClient
	logger      *zap.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(
	notes repositories.NoteRepository,
	patients repositories.PatientRepository,
	processor AudioProcessor,
	transcriber transcription.Transcriber,
	llm ai.ExtractionClient,
	logger *zap.Logger,
) NoteService {
	return &noteService{
		notes:       notes,
		patients:    patients,
		processor:   processor,
		transcriber: transcriber,
		llm:         llm,
		logger:      logger.Named("note-service"),
	}
}

var _ NoteService = (*noteService)(nil)

func (s *noteService) Create(ctx context.Context, patientMRN, audioPath string) (*models.Note, error) {
	s.logger.Info("Creating note",
		zap.String("patient_mrn", patientMRN),
		zap.String("audio_path", audioPath))

	if _, err := s.patients.GetByMRN(ctx, patientMRN); err != nil {
		return nil, fmt.Errorf("patient %s: %w", patientMRN, err)
	}

	result, err := s.processor.Process(ctx, audioPath)
	if err != nil {
		s.logger.Error("Audio processing failed, persisting minimal note", zap.Error(err))

		// Keep the audio association even though processing failed.
		empty := ""
		failureSummary := fmt.Sprintf("Error processing: %s", err.Error())
		note := &models.Note{
			PatientMRN: patientMRN,
			AudioPath:  audioPath,
			Transcript: &empty,
			Summary:    &failureSummary,
		}
		if createErr := s.notes.Create(ctx, note); createErr != nil {
			s.logger.Error("Failed to persist minimal note", zap.Error(createErr))
		}

		return nil, err
	}

	note := &models.Note{
		PatientMRN: patientMRN,
		AudioPath:  audioPath,
		Transcript: &result.Transcript,
		Summary:    &result.Summary,
		OasisG:     result.Assessment,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("Note created", zap.String("note_id", note.ID.String()))

	// Re-read so the response carries the patient name projection.
	return s.notes.Get(ctx, note.ID)
}

func (s *noteService) List(ctx context.Context) ([]*models.Note, error) {
	return s.notes.List(ctx)
}

func (s *noteService) Get(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	return s.notes.Get(ctx, id)
}

func (s *noteService) ListByPatient(ctx context.Context, mrn string) ([]*models.Note, error) {
	return s.notes.ListByPatient(ctx, mrn)
}

func (s *noteService) Reprocess(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.AudioPath == "" {
		return nil, fmt.Errorf("note has no audio file: %w", apperrors.ErrNotFound)
	}

	s.logger.Info("Reprocessing note", zap.String("note_id", id.String()))

	result, err := s.processor.Process(ctx, note.AudioPath)
	if err != nil {
		return nil, err
	}

	if err := s.notes.UpdateResults(ctx, id, &result.Transcript, &result.Summary, result.Assessment); err != nil {
		return nil, fmt.Errorf("update note results: %w", err)
	}

	return s.notes.Get(ctx, id)
}

func (s *noteService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Note deleted", zap.String("note_id", id.String()))
	return nil
}

func (s *noteService) RemoveAll(ctx context.Context) error {
	if err := s.notes.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Info("All notes deleted")
	return nil
}

func (s *noteService) Health(ctx context.Context) *AIHealth {
	health := &AIHealth{
		Model:  s.llm.GetModel(),
		Models: []string{},
	}

	health.Whisper = s.transcriber.HealthCheck(ctx)

	models, err := s.llm.ListModels(ctx)
	if err != nil {
		s.logger.Warn("LLM health check failed", zap.Error(err))
	} else {
		health.LLM = true
		health.Models = models
	}

	return health
}
