// Package api exposes the prediction pipeline over HTTP. Handlers are
// thin: request parsing and response encoding only, with all policy in the
// core packages.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/pipeline"
	"github.com/causewaylab/crossing/core/record"
	"github.com/causewaylab/crossing/infra/traffic"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler bundles the API dependencies.
type Handler struct {
	engine *pipeline.Engine
	store  record.Store
	lta    *traffic.LTAClient
	log    logger.Logger
}

// NewHandler builds the API handler set. store and lta may be nil; the
// corresponding endpoints then degrade gracefully.
func NewHandler(engine *pipeline.Engine, store record.Store, lta *traffic.LTAClient, log logger.Logger) *Handler {
	return &Handler{engine: engine, store: store, lta: lta, log: log}
}

// NewRouter wires all routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.root).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/predict", h.predict).Methods(http.MethodPost)
	v1.HandleFunc("/simulate", h.simulate).Methods(http.MethodPost)
	v1.HandleFunc("/historical", h.historical).Methods(http.MethodGet)
	v1.HandleFunc("/historical/chart", h.historicalChart).Methods(http.MethodGet)
	v1.HandleFunc("/crossings", h.submitCrossing).Methods(http.MethodPost)
	v1.HandleFunc("/crossings", h.recentCrossings).Methods(http.MethodGet)
	v1.HandleFunc("/cameras", h.cameras).Methods(http.MethodGet)
	v1.HandleFunc("/health", h.health).Methods(http.MethodGet)
	return r
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Singapore-JB crossing time prediction API",
		"version": Version,
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"model_loaded": h.engine.ModelLoaded(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
