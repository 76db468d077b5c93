package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	documentationservice "eventmesh/contexts/mesh-core/documentation-service"
	"eventmesh/contexts/mesh-core/documentation-service/application/queries"
	domainerrors "eventmesh/contexts/mesh-core/documentation-service/domain/errors"
	meshhttp "eventmesh/contexts/mesh-core/documentation-service/transport/http"
	_ "eventmesh/internal/platform/httpserver/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	mesh   documentationservice.Module
}

func New(mesh documentationservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		mesh:   mesh,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the routing table for tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/mesh/v1/events", s.handlePublishEvent)
	s.mux.HandleFunc("GET /api/mesh/v1/events/history", s.handleEventHistory)
	s.mux.HandleFunc("GET /api/mesh/v1/events/{event_id}", s.handleGetEvent)
	s.mux.HandleFunc("POST /api/mesh/v1/events/{event_id}/outcome", s.handleUpdateOutcome)
	s.mux.HandleFunc("PUT /api/mesh/v1/events/{event_id}/narrative", s.handleSaveNarrative)
	s.mux.HandleFunc("GET /api/mesh/v1/events/{event_id}/narrative", s.handleGetNarrative)
}

func (s *Server) handlePublishEvent(w http.ResponseWriter, r *http.Request) {
	var req meshhttp.PublishEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeshError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.mesh.Handler.PublishEventHandler(r.Context(), req)
	if err != nil {
		writeMeshDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEventHistory(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := queries.EventHistoryQuery{
		EventName: params.Get("event_name"),
		Source:    params.Get("source"),
		UserID:    params.Get("user_id"),
		SessionID: params.Get("session_id"),
		EventID:   params.Get("event_id"),
	}

	if raw := params.Get("start_time"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeMeshError(w, http.StatusBadRequest, "invalid_start_time", "start_time must be epoch milliseconds")
			return
		}
		query.StartTime = &value
	}
	if raw := params.Get("end_time"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeMeshError(w, http.StatusBadRequest, "invalid_end_time", "end_time must be epoch milliseconds")
			return
		}
		query.EndTime = &value
	}
	if raw := params.Get("max_depth"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			writeMeshError(w, http.StatusBadRequest, "invalid_max_depth", "max_depth must be a positive integer")
			return
		}
		query.MaxDepth = value
	}
	if raw := params.Get("include_related"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			writeMeshError(w, http.StatusBadRequest, "invalid_include_related", "include_related must be a boolean")
			return
		}
		query.IncludeRelated = value
	}

	resp, err := s.mesh.Handler.EventHistoryHandler(r.Context(), query)
	if err != nil {
		writeMeshDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mesh.Handler.GetEventHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeMeshDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateOutcome(w http.ResponseWriter, r *http.Request) {
	var req meshhttp.UpdateOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeshError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.mesh.Handler.UpdateOutcomeHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writeMeshDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveNarrative(w http.ResponseWriter, r *http.Request) {
	var req meshhttp.SaveNarrativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeshError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.mesh.Handler.SaveNarrativeHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writeMeshDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetNarrative(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mesh.Handler.GetNarrativeHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeMeshDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeMeshDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrEventNotFound):
		writeMeshError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrNarrativeNotFound):
		writeMeshError(w, http.StatusNotFound, "narrative_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrDuplicateEventID):
		writeMeshError(w, http.StatusConflict, "duplicate_event_id", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidEventInput),
		errors.Is(err, domainerrors.ErrInvalidNarrativeInput):
		writeMeshError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeMeshError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeMeshError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, meshhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
