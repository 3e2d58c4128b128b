package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a clinical visit note created from an uploaded audio recording.
// Transcript, summary and assessment are nullable: a note is persisted even
// when processing fails so the uploaded audio's association is never lost.
type Note struct {
	ID          uuid.UUID        `json:"id"`
	PatientMRN  string           `json:"patientMRN"`
	PatientName string           `json:"patientName,omitempty"`
	AudioPath   string           `json:"audioPath"`
	Transcript  *string          `json:"transcription"`
	Summary     *string          `json:"summary"`
	OasisG      *OasisAssessment `json:"oasisData"`
	CreatedAt   time.Time        `json:"createdAt"`
}
