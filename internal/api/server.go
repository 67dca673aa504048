package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"questboss/internal/engine"
	"questboss/internal/storage"
)

// History lists recent completions. *storage.Journal implements it.
type History interface {
	Recent(ctx context.Context, limit int) ([]storage.Completion, error)
}

// Server exposes the service over JSON. Every handler holds mu for the whole
// call, so the service still sees one caller at a time.
type Server struct {
	mu      sync.Mutex
	svc     *engine.Service
	history History
	metrics *Metrics
	unsub   func()
}

func NewServer(svc *engine.Service, history History, metrics *Metrics) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	s := &Server{svc: svc, history: history, metrics: metrics}
	metrics.Observe(svc.Snapshot())
	s.unsub = svc.Subscribe(metrics.Observe)
	return s
}

// Close detaches the metrics subscriber.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/tasks", s.handleAddTask)
		r.Post("/commands", s.handleCommand)
		r.Get("/history", s.handleHistory)
	})
	return r
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.svc.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

type addTaskRequest struct {
	Name       string `json:"name"`
	XPReward   *int   `json:"xp_reward"`
	BossDamage *int   `json:"boss_damage"`
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	xp := engine.DefaultTaskXP
	if req.XPReward != nil {
		xp = *req.XPReward
	}
	dmg := engine.DefaultTaskDamage
	if req.BossDamage != nil {
		dmg = *req.BossDamage
	}

	s.mu.Lock()
	t, err := s.svc.AddTask(r.Context(), req.Name, xp, dmg)
	s.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, engine.Quest{
		ID:         t.ID,
		Name:       t.Name,
		XPReward:   t.XPReward,
		BossDamage: t.BossDamage,
		Kind:       engine.QuestKindCustom,
	})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
		TaskID string `json:"task_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	action, err := engine.ParseAction(req.Action)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.mu.Lock()
	res, err := s.svc.Dispatch(r.Context(), engine.Command{Action: action, TaskID: req.TaskID})
	if err == nil && res.Completed != nil {
		s.metrics.completed(res.Completed)
	}
	s.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	s.mu.Lock()
	list, err := s.history.Recent(r.Context(), limit)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []storage.Completion{}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeEngineError(w http.ResponseWriter, err error) {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrAmbiguousTaskID), errors.Is(err, engine.ErrQuestDoneToday):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
