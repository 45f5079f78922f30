package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lingua-network/lingua/internal/domain"
)

// ─── Progress API ───────────────────────────────────────────────────────────
// REST endpoints for the chat UI and onboarding flows.
//
// GET  /api/progress/state        — player state snapshot
// GET  /api/progress/level        — tier, progress-to-next-tier
// GET  /api/progress/achievements — catalog with unlock status
// GET  /api/progress/today        — today's ledger record
// GET  /api/progress/window       — last N days of ledger records
// GET  /api/progress/totals       — lifetime ledger totals
// GET  /api/progress/summary      — full rollup (streaks, weekly/monthly)
// GET  /api/progress/events       — recent audit-log entries
// POST /api/progress/events       — record a raw activity event
// POST /api/progress/reset        — wipe all progress state

// dateParam returns the caller-supplied date key, defaulting to the
// server's local calendar date.
func dateParam(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return domain.DayKey(time.Now())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State(r.Context()))
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	state := s.engine.State(r.Context())
	ladder := s.engine.Ladder()
	tier := ladder.Classify(state.TotalXP)
	prog := ladder.Progress(state.TotalXP)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":      tier.Level,
		"name":       tier.Name,
		"total_xp":   state.TotalXP,
		"current":    prog.Current,
		"max":        prog.Max,
		"percentage": prog.Percentage,
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	state := s.engine.State(r.Context())

	type achievementResponse struct {
		domain.Achievement
		Unlocked bool `json:"unlocked"`
	}

	var all []achievementResponse
	unlocked := 0
	for _, a := range s.engine.Catalog() {
		has := state.HasAchievement(a.ID)
		if has {
			unlocked++
		}
		all = append(all, achievementResponse{Achievement: a, Unlocked: has})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements":   all,
		"unlocked_count": unlocked,
		"total_count":    len(all),
	})
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	rec, err := s.engine.DayProgress(r.Context(), dateParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = n
	}

	window, err := s.engine.Window(r.Context(), days, dateParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":    days,
		"records": window,
	})
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Totals(r.Context()))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Summarize(r.Context(), dateParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleListEvents returns the newest audit-log entries.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}

	events, err := s.recorder.RecentEvents(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

// handleRecordEvent records one raw activity event and returns
// everything it changed.
func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind   string `json:"kind"`
		Date   string `json:"date"`
		Amount int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date == "" {
		req.Date = domain.DayKey(time.Now())
	}

	outcome, err := s.recorder.Record(r.Context(), domain.EventKind(req.Kind), req.Date, req.Amount)
	switch {
	case errors.Is(err, domain.ErrUnknownEventKind), errors.Is(err, domain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ─── Challenges & Notifications ─────────────────────────────────────────────

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	active, err := s.challenges.Active()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"challenges": active,
	})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	pending, err := s.notifications.Pending(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := s.notifications.MarkShown(id); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
