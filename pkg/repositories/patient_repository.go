package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/database"
	"github.com/homescribe/homescribe-engine/pkg/models"
)

// PatientRepository defines the interface for patient data access.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByMRN(ctx context.Context, mrn string) (*models.Patient, error)
	List(ctx context.Context) ([]*models.Patient, error)
	Update(ctx context.Context, mrn string, patient *models.Patient) error
	Delete(ctx context.Context, mrn string) error
	CountNotes(ctx context.Context, mrn string) (int, error)
}

// patientRepository implements PatientRepository using PostgreSQL.
type patientRepository struct {
	db *database.DB
}

// NewPatientRepository creates a new patient repository.
func NewPatientRepository(db *database.DB) PatientRepository {
	return &patientRepository{db: db}
}

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts a new patient. A duplicate MRN maps to ErrConflict.
func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO patients (id, mrn, first_name, last_name, dob, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		patient.ID,
		patient.MRN,
		patient.FirstName,
		patient.LastName,
		patient.DOB,
		patient.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

// GetByMRN retrieves a patient by MRN, including the note count projection.
func (r *patientRepository) GetByMRN(ctx context.Context, mrn string) (*models.Patient, error) {
	query := `
		SELECT p.id, p.mrn, p.first_name, p.last_name, p.dob, p.created_at,
		       (SELECT COUNT(*) FROM notes n WHERE n.patient_mrn = p.mrn)
		FROM patients p
		WHERE p.mrn = $1`

	var patient models.Patient
	err := r.db.QueryRow(ctx, query, mrn).Scan(
		&patient.ID,
		&patient.MRN,
		&patient.FirstName,
		&patient.LastName,
		&patient.DOB,
		&patient.CreatedAt,
		&patient.NotesCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return &patient, nil
}

// List returns all patients newest-first, including note counts.
func (r *patientRepository) List(ctx context.Context) ([]*models.Patient, error) {
	query := `
		SELECT p.id, p.mrn, p.first_name, p.last_name, p.dob, p.created_at,
		       (SELECT COUNT(*) FROM notes n WHERE n.patient_mrn = p.mrn)
		FROM patients p
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []*models.Patient
	for rows.Next() {
		var patient models.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.MRN,
			&patient.FirstName,
			&patient.LastName,
			&patient.DOB,
			&patient.CreatedAt,
			&patient.NotesCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, &patient)
	}

	return patients, rows.Err()
}

// Update overwrites the patient row identified by mrn, which may change the
// MRN itself; notes follow via the foreign key's ON UPDATE CASCADE.
func (r *patientRepository) Update(ctx context.Context, mrn string, patient *models.Patient) error {
	query := `
		UPDATE patients
		SET mrn = $2, first_name = $3, last_name = $4, dob = $5
		WHERE mrn = $1`

	result, err := r.db.Exec(ctx, query, mrn, patient.MRN, patient.FirstName, patient.LastName, patient.DOB)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a patient by MRN. The service layer guards against
// deleting a patient that still has notes.
func (r *patientRepository) Delete(ctx context.Context, mrn string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM patients WHERE mrn = $1`, mrn)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// CountNotes returns the number of notes referencing the patient.
func (r *patientRepository) CountNotes(ctx context.Context, mrn string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE patient_mrn = $1`, mrn).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// Ensure patientRepository implements PatientRepository at compile time.
var _ PatientRepository = (*patientRepository)(nil)
