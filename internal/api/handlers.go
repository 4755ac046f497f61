package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/holawaleh/dreamspacefrontend/internal/store"
	"github.com/holawaleh/dreamspacefrontend/internal/types"
	"github.com/holawaleh/dreamspacefrontend/internal/validation"
)

// Handler implements the API handlers
type Handler struct {
	store   store.Store
	backend store.Backend
	version string
}

// NewHandler creates a new Handler with store.Store interface
func NewHandler(s store.Store, backend store.Backend, version string) *Handler {
	return &Handler{
		store:   s,
		backend: backend,
		version: version,
	}
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		LoggerFromContext(r.Context()).Error("health check failed", "backend", h.backend, "error", err)
		WriteProblem(w, r, http.StatusServiceUnavailable, "Storage backend unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, types.HealthResponse{
		Status:  "healthy",
		Backend: string(h.backend),
		Version: h.version,
	})
}

// GetAdminNote handles GET /api/admin/note
func (h *Handler) GetAdminNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.GetAdminNote(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, r, http.StatusOK, map[string]string{"content": ""})
		return
	}
	if err != nil {
		MapStoreError(w, r, err, "get admin note", "Note not found", "Failed to fetch note")
		return
	}
	writeJSON(w, r, http.StatusOK, note)
}

// SaveAdminNote handles POST /api/admin/note
func (h *Handler) SaveAdminNote(w http.ResponseWriter, r *http.Request) {
	var req types.NewAdminNote
	if !decodeJSON(w, r, &req, "Invalid note data") {
		return
	}
	if errs := validation.ValidateNewAdminNote(req); len(errs) > 0 {
		rejectInvalid(w, r, "Invalid note data", errs)
		return
	}

	note, err := h.store.SaveAdminNote(r.Context(), *req.Content)
	if err != nil {
		MapStoreError(w, r, err, "save admin note", "Note not found", "Failed to save note")
		return
	}
	writeJSON(w, r, http.StatusOK, note)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		LoggerFromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

// decodeJSON decodes the request body into dst. On failure it writes a
// problem response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, invalid string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteProblem(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		LoggerFromContext(r.Context()).Debug("malformed request body", "error", err)
		WriteProblem(w, r, http.StatusBadRequest, invalid)
		return false
	}
	return true
}

// rejectInvalid answers a payload that failed validation. Field details
// are logged only; the client receives the generic message.
func rejectInvalid(w http.ResponseWriter, r *http.Request, detail string, errs []validation.ValidationError) {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.String()
	}
	LoggerFromContext(r.Context()).Debug("validation failed", "errors", strings.Join(fields, "; "))
	WriteProblem(w, r, http.StatusBadRequest, detail)
}
