package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

type JournalRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ListJournals returns entries matching ?q= and every repeated ?tag=.
func (h *Handler) ListJournals(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	entries := ws.Journal.Filter(q.Get("q"), q["tag"])
	writeJSON(w, http.StatusOK, map[string]interface{}{"journals": entries, "total": len(entries)})
}

// CreateJournal adds an entry dated today.
func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req JournalRequest
	if !decode(w, r, &req) {
		return
	}
	entry, err := ws.Journal.Add(r.Context(), req.Title, req.Content, req.Tags)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Journal entry created", "journal": entry})
}

func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	entry, found := ws.Journal.GetByID(chi.URLParam(r, "id"))
	if !found {
		writeMessage(w, http.StatusNotFound, "Journal entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"journal": entry})
}

func (h *Handler) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	var req JournalRequest
	if !decode(w, r, &req) {
		return
	}
	if _, found := ws.Journal.GetByID(id); !found {
		writeMessage(w, http.StatusNotFound, "Journal entry not found")
		return
	}
	if err := ws.Journal.UpdateByID(r.Context(), id, req.Title, req.Content, req.Tags); err != nil {
		h.fail(w, r, err)
		return
	}
	entry, _ := ws.Journal.GetByID(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Journal entry updated", "journal": entry})
}

func (h *Handler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.Journal.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Journal entry deleted")
}

func (h *Handler) JournalTags(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": ws.Journal.Tags()})
}

// JournalTemplates lists the entry templates, titled with today's date.
func (h *Handler) JournalTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": services.JournalTemplates(h.now())})
}
