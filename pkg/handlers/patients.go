package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/services"
)

// CreatePatientRequest is the request body for creating a patient.
type CreatePatientRequest struct {
	MRN       string `json:"mrn"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"` // ISO date, e.g. "1952-11-08"
}

// UpdatePatientRequest is the request body for partially updating a patient.
type UpdatePatientRequest struct {
	MRN       *string `json:"mrn"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	DOB       *string `json:"dob"`
}

// PatientsHandler handles patient-related HTTP requests.
type PatientsHandler struct {
	patientService services.PatientService
	noteService    services.NoteService
	logger         *zap.Logger
}

// NewPatientsHandler creates a new patients handler.
func NewPatientsHandler(patientService services.PatientService, noteService services.NoteService, logger *zap.Logger) *PatientsHandler {
	return &PatientsHandler{
		patientService: patientService,
		noteService:    noteService,
		logger:         logger,
	}
}

// RegisterRoutes registers the patients handler's routes on the given mux.
func (h *PatientsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /patients", h.Create)
	mux.HandleFunc("GET /patients", h.List)
	mux.HandleFunc("GET /patients/{mrn}", h.Get)
	mux.HandleFunc("GET /patients/{mrn}/notes", h.GetNotes)
	mux.HandleFunc("PATCH /patients/{mrn}", h.Update)
	mux.HandleFunc("DELETE /patients/{mrn}", h.Delete)
}

// parseDOB parses an ISO date-of-birth, tolerating a full RFC 3339 timestamp.
func parseDOB(value string) (time.Time, error) {
	if dob, err := time.Parse("2006-01-02", value); err == nil {
		return dob, nil
	}
	dob, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid dob %q, expected YYYY-MM-DD: %w", value, apperrors.ErrValidation)
	}
	return dob, nil
}

// Create handles POST /patients.
func (h *PatientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondServiceError(w, h.logger, fmt.Errorf("invalid request body: %w", apperrors.ErrValidation))
		return
	}

	if req.MRN == "" || req.FirstName == "" || req.LastName == "" || req.DOB == "" {
		respondServiceError(w, h.logger, fmt.Errorf("mrn, firstName, lastName and dob are required: %w", apperrors.ErrValidation))
		return
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	patient, err := h.patientService.Create(r.Context(), &models.Patient{
		MRN:       req.MRN,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       dob,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, patient); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /patients.
func (h *PatientsHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	if patients == nil {
		patients = []*models.Patient{}
	}

	if err := WriteJSON(w, http.StatusOK, patients); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /patients/{mrn}.
func (h *PatientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientService.Get(r.Context(), r.PathValue("mrn"))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, patient); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetNotes handles GET /patients/{mrn}/notes.
// Returns the patient together with their notes, newest first.
func (h *PatientsHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	mrn := r.PathValue("mrn")

	patient, err := h.patientService.Get(r.Context(), mrn)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	notes, err := h.noteService.ListByPatient(r.Context(), mrn)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	response := struct {
		*models.Patient
		Notes []*models.Note `json:"notes"`
	}{patient, notes}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /patients/{mrn}.
func (h *PatientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondServiceError(w, h.logger, fmt.Errorf("invalid request body: %w", apperrors.ErrValidation))
		return
	}

	update := &services.PatientUpdate{
		MRN:       req.MRN,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.DOB != nil {
		dob, err := parseDOB(*req.DOB)
		if err != nil {
			respondServiceError(w, h.logger, err)
			return
		}
		update.DOB = &dob
	}

	patient, err := h.patientService.Update(r.Context(), r.PathValue("mrn"), update)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, patient); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /patients/{mrn}.
// Refused with 409 while the patient still has notes.
func (h *PatientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.patientService.Delete(r.Context(), r.PathValue("mrn")); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
