package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odii/audio-guide/internal/model"
)

// ServiceName is reported by the status endpoint
const ServiceName = "odii"

// Server serves the read-only listings API
type Server struct {
	router  *mux.Router
	store   *ListingStore
	version string
	logger  *log.Logger
}

// NewServer wires the routes for store
func NewServer(store *ListingStore, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router:  mux.NewRouter(),
		store:   store,
		version: version,
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/api/exhibitions", s.handleExhibitions).Methods("GET")
	s.router.HandleFunc("/api/exhibitions/{id}", s.handleExhibition).Methods("GET")
	s.router.Use(s.logRequests)
}

// Handler returns the root handler with CORS applied ahead of routing so
// preflight requests never reach the method matcher
func (s *Server) Handler() http.Handler {
	return cors(s.router)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, model.ServiceStatus{
		Service: ServiceName,
		Version: s.version,
		Status:  "ok",
	})
}

func (s *Server) handleExhibitions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Listings())
}

func (s *Server) handleExhibition(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	listing, ok := s.store.ByID(id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "exhibition not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, listing)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
