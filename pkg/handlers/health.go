package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/config"
	"github.com/homescribe/homescribe-engine/pkg/services"
)

// PingResponse reports service identity and upstream AI reachability.
type PingResponse struct {
	Status      string             `json:"status"`
	Service     string             `json:"service"`
	Version     string             `json:"version"`
	Environment string             `json:"environment"`
	AI          *services.AIHealth `json:"ai"`
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	cfg         *config.Config
	noteService services.NoteService
	logger      *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config, noteService services.NoteService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, noteService: noteService, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ping", h.Ping)
}

// Health handles GET /health.
// Bare liveness probe: answers without touching any upstream.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ping handles GET /ping.
// Readiness view: service identity plus whisper/LLM reachability. The
// pipeline cannot produce complete notes while either upstream is down, so
// the status degrades without failing the request.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ai := h.noteService.Health(r.Context())

	status := "ok"
	if !ai.Whisper || !ai.LLM {
		status = "degraded"
	}

	response := PingResponse{
		Status:      status,
		Service:     "homescribe-engine",
		Version:     h.cfg.Version,
		Environment: h.cfg.Env,
		AI:          ai,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
