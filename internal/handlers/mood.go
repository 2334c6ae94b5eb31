package handlers

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

type MoodRequest struct {
	Mood  string `json:"mood"`
	Notes string `json:"notes"`
}

func (req MoodRequest) mood() models.Mood {
	return models.Mood(strings.ToLower(strings.TrimSpace(req.Mood)))
}

// ListMoods returns the mood history, oldest first.
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	entries := ws.Moods.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries, "total": len(entries)})
}

// LogMood records today's mood, replacing an earlier entry for today.
func (h *Handler) LogMood(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req MoodRequest
	if !decode(w, r, &req) {
		return
	}
	entry, err := ws.Moods.AddOrUpdateToday(r.Context(), req.mood(), req.Notes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Mood saved", "entry": entry})
}

// TodayMood returns today's entry; entry is null when nothing was logged.
func (h *Handler) TodayMood(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	body := map[string]interface{}{"entry": nil}
	if e, found := ws.Moods.TodayEntry(); found {
		body["entry"] = e
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) UpdateMood(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	var req MoodRequest
	if !decode(w, r, &req) {
		return
	}
	if !slices.ContainsFunc(ws.Moods.List(), func(e models.MoodEntry) bool { return e.ID == id }) {
		writeMessage(w, http.StatusNotFound, "Mood entry not found")
		return
	}
	if err := ws.Moods.UpdateByID(r.Context(), id, req.mood(), req.Notes); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Mood updated")
}

// DeleteMood is idempotent: unknown ids succeed.
func (h *Handler) DeleteMood(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.Moods.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Mood deleted")
}

// MoodInsights reports statistics once there are enough entries. Streak
// and heatmap are always included.
func (h *Handler) MoodInsights(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	entries := ws.Moods.List()
	body := map[string]interface{}{
		"sufficient": services.HasEnoughEntries(entries),
		"minimum":    services.MinEntriesForInsights,
		"streak":     services.CalculateStreak(entries),
		"heatmap":    services.Heatmap(entries),
	}
	if insights, ok := services.CalculateInsights(entries); ok && services.HasEnoughEntries(entries) {
		body["insights"] = insights
	}
	writeJSON(w, http.StatusOK, body)
}

// MoodCalendar renders ?month=YYYY-MM, defaulting to the current month.
func (h *Handler) MoodCalendar(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	month := h.now()
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "month must be formatted as YYYY-MM")
			return
		}
		month = parsed
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"month": month.Format("2006-01"),
		"days":  services.MonthCalendar(ws.Moods.List(), month.Year(), month.Month()),
	})
}
