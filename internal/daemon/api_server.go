package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"cadenza/internal/api"
	"cadenza/internal/config"
	"cadenza/internal/enrichment"
	"cadenza/internal/logging"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon
	libSvc *api.LibraryService

	listener net.Listener
	server   *http.Server
}

type syncResponse struct {
	Result *enrichment.SyncResult `json:"result"`
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	mux := http.NewServeMux()
	srv := &apiServer{
		bind:   bind,
		logger: logger,
		daemon: d,
		libSvc: d.libraryService(),
	}

	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/sync", srv.handleSync)
	mux.HandleFunc("/api/scrobbles", srv.handleScrobbles)
	mux.HandleFunc("/api/artists/pending", srv.handlePendingArtists)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Sync runs call external services and can be slow.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status, err := s.libSvc.Status(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if status == nil {
		status = &api.LibraryStatus{}
	}
	s.writeJSON(w, http.StatusOK, api.StatusResponse{Status: *status})
}

func (s *apiServer) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.daemon.syncer == nil {
		s.writeError(w, http.StatusServiceUnavailable, "sync is not configured")
		return
	}

	query := r.URL.Query()
	user := strings.TrimSpace(query.Get("user"))
	if user == "" && s.daemon.cfg != nil {
		user = s.daemon.cfg.LastFM.User
	}
	if user == "" {
		s.writeError(w, http.StatusBadRequest, "user is required")
		return
	}

	trackLimit := s.queryInt(query.Get("tracks"), s.defaultTrackLimit())
	aiLimit := s.queryInt(query.Get("ai"), s.defaultAILimit())

	result, err := s.daemon.syncer.SyncUser(r.Context(), user, trackLimit, aiLimit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, syncResponse{Result: result})
}

func (s *apiServer) handleScrobbles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	user := strings.TrimSpace(query.Get("user"))
	if user == "" && s.daemon.cfg != nil {
		user = s.daemon.cfg.LastFM.User
	}
	if user == "" {
		s.writeError(w, http.StatusBadRequest, "user is required")
		return
	}
	limit := s.queryInt(query.Get("limit"), 50)
	offset := s.queryInt(query.Get("offset"), 0)

	scrobbles, err := s.libSvc.Scrobbles(r.Context(), user, limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.ScrobbleListResponse{Scrobbles: scrobbles})
}

func (s *apiServer) handlePendingArtists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit := s.queryInt(r.URL.Query().Get("limit"), 50)

	artists, err := s.libSvc.PendingArtists(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.ArtistListResponse{Artists: artists})
}

func (s *apiServer) queryInt(raw string, fallback int) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func (s *apiServer) defaultTrackLimit() int {
	if s.daemon.cfg != nil && s.daemon.cfg.Enrichment.TrackLimit > 0 {
		return s.daemon.cfg.Enrichment.TrackLimit
	}
	return 50
}

func (s *apiServer) defaultAILimit() int {
	if s.daemon.cfg != nil {
		return s.daemon.cfg.Enrichment.AICallLimit
	}
	return 0
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
