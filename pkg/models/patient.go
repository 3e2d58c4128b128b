package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a home-health patient identified externally by MRN
// (Medical Record Number). The MRN is unique across all patients and is
// the key used on the HTTP surface; the UUID is the storage surrogate.
type Patient struct {
	ID        uuid.UUID `json:"id"`
	MRN       string    `json:"mrn"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"createdAt"`

	// NotesCount is populated on read projections only.
	NotesCount int `json:"notesCount"`
}

// DisplayName returns the patient's full name for note projections.
func (p *Patient) DisplayName() string {
	return p.FirstName + " " + p.LastName
}
