package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/database"
	"github.com/homescribe/homescribe-engine/pkg/models"
)

// NoteRepository defines the interface for note data access.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, id uuid.UUID) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	ListByPatient(ctx context.Context, mrn string) ([]*models.Note, error)
	// UpdateResults overwrites the processing output of an existing note,
	// leaving id, patient linkage and audio path unchanged.
	UpdateResults(ctx context.Context, id uuid.UUID, transcript, summary *string, assessment *models.OasisAssessment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// noteRepository implements NoteRepository using PostgreSQL.
type noteRepository struct {
	db *database.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *database.DB) NoteRepository {
	return &noteRepository{db: db}
}

// marshalAssessment serializes an assessment for the jsonb column.
// A nil assessment is stored as SQL NULL.
func marshalAssessment(assessment *models.OasisAssessment) ([]byte, error) {
	if assessment == nil {
		return nil, nil
	}
	data, err := json.Marshal(assessment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assessment: %w", err)
	}
	return data, nil
}

// Create inserts a new note.
func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}

	oasis, err := marshalAssessment(note.OasisG)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notes (id, patient_mrn, audio_path, transcript, summary, oasis_g, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.Exec(ctx, query,
		note.ID,
		note.PatientMRN,
		note.AudioPath,
		note.Transcript,
		note.Summary,
		oasis,
		note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

const noteSelect = `
	SELECT n.id, n.patient_mrn, p.first_name || ' ' || p.last_name,
	       n.audio_path, n.transcript, n.summary, n.oasis_g, n.created_at
	FROM notes n
	JOIN patients p ON p.mrn = n.patient_mrn`

// scanNote scans one joined note row.
func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	var oasis []byte

	if err := row.Scan(
		&note.ID,
		&note.PatientMRN,
		&note.PatientName,
		&note.AudioPath,
		&note.Transcript,
		&note.Summary,
		&oasis,
		&note.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(oasis) > 0 {
		note.OasisG = &models.OasisAssessment{}
		if err := json.Unmarshal(oasis, note.OasisG); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
		}
	}

	return &note, nil
}

// Get retrieves a note by ID, including the owning patient's name.
func (r *noteRepository) Get(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	note, err := scanNote(r.db.QueryRow(ctx, noteSelect+` WHERE n.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// List returns all notes newest-first.
func (r *noteRepository) List(ctx context.Context) ([]*models.Note, error) {
	return r.queryNotes(ctx, noteSelect+` ORDER BY n.created_at DESC`)
}

// ListByPatient returns the patient's notes newest-first.
func (r *noteRepository) ListByPatient(ctx context.Context, mrn string) ([]*models.Note, error) {
	return r.queryNotes(ctx, noteSelect+` WHERE n.patient_mrn = $1 ORDER BY n.created_at DESC`, mrn)
}

func (r *noteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*models.Note, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// UpdateResults overwrites transcript, summary and assessment on a note.
func (r *noteRepository) UpdateResults(ctx context.Context, id uuid.UUID, transcript, summary *string, assessment *models.OasisAssessment) error {
	oasis, err := marshalAssessment(assessment)
	if err != nil {
		return err
	}

	query := `
		UPDATE notes
		SET transcript = $2, summary = $3, oasis_g = $4
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, transcript, summary, oasis)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a note by ID.
func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteAll removes every note.
func (r *noteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	return nil
}

// Ensure noteRepository implements NoteRepository at compile time.
var _ NoteRepository = (*noteRepository)(nil)
