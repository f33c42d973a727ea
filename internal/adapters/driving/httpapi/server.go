// Package httpapi exposes the adaptation service over HTTP. Routes:
//
//	POST   /api/adapt          run the pipeline for a request body
//	GET    /api/variants       list stored variant IDs
//	GET    /api/variants/{id}  fetch one stored variant
//	DELETE /api/variants/{id}  delete one stored variant
//	POST   /api/audit          re-audit a stored variant
//	GET    /health             liveness and configuration summary
//
// Every response carries an X-Correlation-ID header; callers may pass
// their own to correlate logs across systems.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driving"
	"github.com/culturebridge-labs/culturebridge/internal/logger"
)

// Server serves the adaptation HTTP API.
type Server struct {
	service   driving.AdaptationService
	modelName string
}

// NewServer creates a server over the adaptation service. modelName is
// reported by /health; pass "" when no gateway is configured.
func NewServer(service driving.AdaptationService, modelName string) *Server {
	return &Server{service: service, modelName: modelName}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/adapt", s.handleAdapt)
	mux.HandleFunc("GET /api/variants", s.handleListVariants)
	mux.HandleFunc("GET /api/variants/{id}", s.handleGetVariant)
	mux.HandleFunc("DELETE /api/variants/{id}", s.handleDeleteVariant)
	mux.HandleFunc("POST /api/audit", s.handleAudit)
	mux.HandleFunc("GET /health", s.handleHealth)
	return withCorrelationID(mux)
}

func (s *Server) handleAdapt(w http.ResponseWriter, r *http.Request) {
	var req domain.AdaptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed request body")
		return
	}

	spec, err := s.service.Adapt(r.Context(), req, correlationID(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, spec)
}

func (s *Server) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	spec, err := s.service.Variant(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	ids, err := s.service.VariantIDs(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"variants": ids,
		"count":    len(ids),
	})
}

func (s *Server) handleDeleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteVariant(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type auditRequest struct {
	VariantID string `json:"variant_id"`
	Strict    bool   `json:"strict"`
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.VariantID == "" {
		writeError(w, r, http.StatusBadRequest, "variant_id is required")
		return
	}

	result, err := s.service.Audit(r.Context(), req.VariantID, req.Strict)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	model := s.modelName
	if model == "" {
		model = "none"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  model,
	})
}

// writeDomainError maps domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownRegion):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidOverride):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPipelineFailed):
		logger.Warn("pipeline failure served as 502: %v", err)
		writeError(w, r, http.StatusBadGateway, err.Error())
	default:
		logger.Warn("unclassified error served as 500: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

type errorEnvelope struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id"`
	Timestamp     string `json:"timestamp"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorEnvelope{
		Error:         message,
		CorrelationID: correlationID(r.Context()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}
