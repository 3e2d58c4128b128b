package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/services"
	"github.com/homescribe/homescribe-engine/pkg/storage"
)

// allowedAudioTypes lists the accepted upload MIME types.
var allowedAudioTypes = map[string]bool{
	"audio/mpeg":  true, // mp3
	"audio/wav":   true, // wav
	"audio/wave":  true, // wav
	"audio/x-wav": true, // wav
	"audio/mp4":   true, // m4a
	"audio/x-m4a": true, // m4a
	"audio/webm":  true, // webm
	"audio/ogg":   true, // ogg
	"audio/flac":  true, // flac
}

// NotesHandler handles note-related HTTP requests, including audio upload.
type NotesHandler struct {
	noteService services.NoteService
	audioStore  *storage.AudioStore
	maxUpload   int64
	logger      *zap.Logger
}

// NewNotesHandler creates a new notes handler.
// maxUpload is the authoritative upload limit in bytes, enforced server-side
// and reported in rejection messages.
func NewNotesHandler(noteService services.NoteService, audioStore *storage.AudioStore, maxUpload int64, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		noteService: noteService,
		audioStore:  audioStore,
		maxUpload:   maxUpload,
		logger:      logger,
	}
}

// RegisterRoutes registers the notes handler's routes on the given mux.
func (h *NotesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /notes", h.Create)
	mux.HandleFunc("GET /notes", h.List)
	mux.HandleFunc("GET /notes/health", h.Health)
	mux.HandleFunc("GET /notes/{id}/find", h.Get)
	mux.HandleFunc("GET /notes/patient/{mrn}", h.ListByPatient)
	mux.HandleFunc("POST /notes/{id}/reprocess", h.Reprocess)
	mux.HandleFunc("DELETE /notes/{id}/remove", h.Remove)
	mux.HandleFunc("DELETE /notes/remove-all", h.RemoveAll)
}

// Create handles POST /notes.
// Expects a multipart body with a patientMRN field and an audio file field.
// The audio is stored before processing so a pipeline failure never loses
// the recording.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondServiceError(w, h.logger, fmt.Errorf("audio file exceeds the %d byte upload limit: %w",
				h.maxUpload, apperrors.ErrValidation))
			return
		}
		respondServiceError(w, h.logger, fmt.Errorf("invalid multipart body: %w", apperrors.ErrValidation))
		return
	}

	patientMRN := r.FormValue("patientMRN")
	if patientMRN == "" {
		respondServiceError(w, h.logger, fmt.Errorf("patientMRN is required: %w", apperrors.ErrValidation))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondServiceError(w, h.logger, fmt.Errorf("audio file is required: %w", apperrors.ErrValidation))
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if !allowedAudioTypes[contentType] {
		respondServiceError(w, h.logger, fmt.Errorf("file type %s not allowed, use mp3, wav, m4a, webm, ogg or flac: %w",
			contentType, apperrors.ErrValidation))
		return
	}

	audioPath, err := h.audioStore.Save(file, header.Filename)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Audio uploaded",
		zap.String("patient_mrn", patientMRN),
		zap.String("audio_path", audioPath),
		zap.Int64("size", header.Size))

	note, err := h.noteService.Create(r.Context(), patientMRN, audioPath)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, note); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /notes.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	if err := WriteJSON(w, http.StatusOK, notes); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /notes/{id}/find.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, h.logger, fmt.Errorf("invalid note id: %w", apperrors.ErrValidation))
		return
	}

	note, err := h.noteService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, note); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByPatient handles GET /notes/patient/{mrn}.
func (h *NotesHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListByPatient(r.Context(), r.PathValue("mrn"))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	if err := WriteJSON(w, http.StatusOK, notes); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Reprocess handles POST /notes/{id}/reprocess.
// Re-runs the processing pipeline over the note's stored audio.
func (h *NotesHandler) Reprocess(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, h.logger, fmt.Errorf("invalid note id: %w", apperrors.ErrValidation))
		return
	}

	note, err := h.noteService.Reprocess(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, note); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Remove handles DELETE /notes/{id}/remove.
func (h *NotesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, h.logger, fmt.Errorf("invalid note id: %w", apperrors.ErrValidation))
		return
	}

	if err := h.noteService.Remove(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveAll handles DELETE /notes/remove-all.
func (h *NotesHandler) RemoveAll(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.RemoveAll(r.Context()); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /notes/health.
// Reports upstream transcription/completion service reachability and the
// available model list.
func (h *NotesHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.noteService.Health(r.Context())

	if err := WriteJSON(w, http.StatusOK, health); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
