package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"naturalrights/internal/domain"
	"naturalrights/internal/engine"
)

// RequestIDHeader carries the id attached to every request's log entry.
const RequestIDHeader = "X-Request-Id"

// maxBodyBytes bounds a single signed batch.
const maxBodyBytes = 4 << 20

// Server exposes a RightsService over HTTP.
type Server struct {
	rights domain.RightsService
	log    logrus.FieldLogger
}

// New returns a Server. A nil logger is replaced by logrus.New().
func New(rights domain.RightsService, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{rights: rights, log: log}
}

// Router returns the HTTP routes:
//
//	POST /         signed envelope in, {"results": [...]} out
//	GET  /healthz  liveness
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID, corsMiddleware)

	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/", s.handleRequest).Methods(http.MethodPost)
	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := s.log.WithFields(logrus.Fields{
		"request_id": w.Header().Get(RequestIDHeader),
		"remote":     r.RemoteAddr,
	})

	var req domain.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		log.WithError(err).Info("rejected envelope")
		http.Error(w, "malformed envelope", http.StatusBadRequest)
		return
	}

	resp, err := s.rights.Request(r.Context(), req)
	switch {
	case errors.Is(err, engine.ErrMalformedRequest):
		log.WithError(err).Info("rejected body")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.WithError(err).Error("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Warn("write response")
	}
	log.WithFields(logrus.Fields{
		"actions":  len(resp.Results),
		"duration": time.Since(start).String(),
	}).Info("request")
}

// requestID echoes the caller's X-Request-Id or assigns a fresh one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		next.ServeHTTP(w, r)
	})
}
