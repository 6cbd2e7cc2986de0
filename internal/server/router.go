package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the receiver's HTTP route table. /v1/health bypasses
// authentication unconditionally; every other route requires it.
func NewRouter(s *Server) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/v1/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/v1/upload", s.requireAuth(s.handleUpload)).Methods(http.MethodPost)
	router.HandleFunc("/v1/transfer/{id}/status", s.requireAuth(s.handleStatus)).Methods(http.MethodGet)

	return router
}
