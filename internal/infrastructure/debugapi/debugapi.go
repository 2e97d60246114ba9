// Package debugapi serves the latest simulation frame over HTTP for tooling.
package debugapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/younwookim/duel/internal/application/replay"
	"github.com/younwookim/duel/internal/application/session"
	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/domain/entity"
)

// PlayerSummary is one combatant as reported by /state
type PlayerSummary struct {
	State  string  `json:"state"`
	Side   string  `json:"side"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health int32   `json:"health"`
}

// StateSummary is the body of /state
type StateSummary struct {
	Frame      uint32                            `json:"frame"`
	Round      int32                             `json:"round"`
	Phase      string                            `json:"phase"`
	FramesLeft int32                             `json:"framesLeft"`
	Wins       [entity.PlayerCount]int32         `json:"wins"`
	Players    [entity.PlayerCount]PlayerSummary `json:"players"`
	Checksum   string                            `json:"checksum"`
}

// Summarize reduces a snapshot to what /state reports
func Summarize(s *sim.State) StateSummary {
	out := StateSummary{
		Frame:      s.Frame,
		Round:      s.Round.Number,
		Phase:      s.Round.Phase.String(),
		FramesLeft: s.Round.FramesLeft,
		Wins:       s.Round.Wins,
		Checksum:   replay.HashString(sim.Checksum(s)),
	}
	for i := range out.Players {
		p := &s.Players[i]
		out.Players[i] = PlayerSummary{
			State:  p.State.String(),
			Side:   p.Side.String(),
			X:      entity.ToPixels(s.Bodies[i].X),
			Y:      entity.ToPixels(s.Bodies[i].Y),
			Health: s.Health[i].Current,
		}
	}
	return out
}

// Server holds the last published frame. Publish is called from the game
// loop, handlers run on the HTTP goroutines.
type Server struct {
	mu        sync.RWMutex
	summary   *StateSummary
	checksums []session.FrameChecksum

	logger *zap.Logger
}

// NewServer creates an empty server
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{logger: logger}
}

// Publish replaces the reported frame
func (s *Server) Publish(st *sim.State, checksums []session.FrameChecksum) {
	summary := Summarize(st)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
	s.checksums = checksums
}

// Routes returns the HTTP handler
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", Healthz)
	r.Get("/state", s.handleState)
	r.Get("/checksums", s.handleChecksums)
	return r
}

// ListenAndServe serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("debug api listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Healthz reports that the viewer process is up
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	summary := s.summary
	s.mu.RUnlock()

	if summary == nil {
		http.Error(w, "no frame published yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, summary)
}

func (s *Server) handleChecksums(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	sums := s.checksums
	s.mu.RUnlock()

	if sums == nil {
		sums = []session.FrameChecksum{}
	}
	writeJSON(w, sums)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
