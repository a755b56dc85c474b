// Package internal serves the administrative inspection surface: an
// authenticated, read-only view over live lookahead queues, seated
// tables and the outcome audit trail.
package internal

import (
	"encoding/json"
	"log/slog"
	"net/http"
	gort "runtime"
	"strings"
	"time"

	"roulette-lab/auth"
	"roulette-lab/domain"
	"roulette-lab/repositories"
	"roulette-lab/runtime"

	"github.com/samber/lo"
)

type AdminServer struct {
	log           *slog.Logger
	directory     *runtime.Directory
	repository    repositories.IOutcomeRepository
	authenticator *auth.Authenticator
	secretHash    string
}

func NewAdminServer(log *slog.Logger, directory *runtime.Directory,
	repository repositories.IOutcomeRepository, authenticator *auth.Authenticator,
	secretHash string) *AdminServer {
	return &AdminServer{
		log:           log,
		directory:     directory,
		repository:    repository,
		authenticator: authenticator,
		secretHash:    secretHash,
	}
}

func (s *AdminServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", s.handleAuth)
	mux.HandleFunc("GET /inspect", s.requireToken(s.handleInspect))
	mux.HandleFunc("GET /tables", s.requireToken(s.handleTables))
	mux.HandleFunc("GET /history", s.requireToken(s.handleHistory))
	mux.HandleFunc("GET /stats", s.requireToken(s.handleStats))
	return mux
}

type authRequest struct {
	Secret string `json:"secret"`
}

// handleAuth exchanges the shared admin secret for a bearer token.
func (s *AdminServer) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	ok, err := auth.CompareSecret(req.Secret, s.secretHash)
	if err != nil {
		s.log.Error("secret comparison failed", "error", err)
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		httpError(w, http.StatusUnauthorized, "invalid secret")
		return
	}

	token, err := s.authenticator.GenerateToken("admin")
	if err != nil {
		s.log.Error("token generation failed", "error", err)
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleInspect returns the committed future outcomes of a solo session.
func (s *AdminServer) handleInspect(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		httpError(w, http.StatusBadRequest, "missing session parameter")
		return
	}

	upcoming, ok := s.directory.SoloUpcoming(sessionID)
	if !ok {
		httpError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":  sessionID,
		"upcoming": upcoming,
	})
}

type tableView struct {
	ID      string                  `json:"id"`
	Started bool                    `json:"started"`
	Players []domain.PlayerSnapshot `json:"players"`
}

func (s *AdminServer) handleTables(w http.ResponseWriter, _ *http.Request) {
	views := lo.Map(s.directory.Tables(), func(t *domain.Table, _ int) tableView {
		return tableView{ID: t.ID, Started: t.Started(), Players: t.Snapshots()}
	})
	writeJSON(w, http.StatusOK, map[string]any{"tables": views})
}

func (s *AdminServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		httpError(w, http.StatusBadRequest, "missing session parameter")
		return
	}

	records, err := s.repository.History(sessionID)
	if err != nil {
		s.log.Error("history scan failed", "session_id", sessionID, "error", err)
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session": sessionID,
		"spins":   records,
	})
}

func (s *AdminServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	var mem gort.MemStats
	gort.ReadMemStats(&mem)
	writeJSON(w, http.StatusOK, map[string]any{
		"tables":       len(s.directory.Tables()),
		"alloc_mem_mb": mem.Alloc / 1024 / 1024,
		"num_gc":       mem.NumGC,
		"goroutines":   gort.NumGoroutine(),
		"time":         time.Now().UTC().Format(time.RFC3339),
	})
}

// requireToken rejects requests without a valid bearer token.
func (s *AdminServer) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httpError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := s.authenticator.ValidateToken(token); err != nil {
			httpError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
