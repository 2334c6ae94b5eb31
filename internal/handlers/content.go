package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

// RandomAffirmation draws from ?category= (general by default).
func (h *Handler) RandomAffirmation(w http.ResponseWriter, r *http.Request) {
	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if category == "" {
		category = services.DefaultAffirmationCategory
	}
	text, err := h.picker.Random(category)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"affirmation": text, "category": category})
}

func (h *Handler) AffirmationCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": services.AffirmationCategories()})
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"favorites": ws.Favorites.List()})
}

type FavoriteRequest struct {
	Text string `json:"text"`
}

// ToggleFavorite adds or removes one affirmation.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req FavoriteRequest
	if !decode(w, r, &req) {
		return
	}
	favorite, err := ws.Favorites.Toggle(r.Context(), req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"favorite":  favorite,
		"favorites": ws.Favorites.List(),
	})
}

func (h *Handler) ListMeditations(w http.ResponseWriter, r *http.Request) {
	items := services.Meditations(r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, map[string]interface{}{"meditations": items, "total": len(items)})
}

func (h *Handler) GetMeditation(w http.ResponseWriter, r *http.Request) {
	m, ok := services.MeditationByID(chi.URLParam(r, "id"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "Meditation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"meditation": m, "clock": services.FormatClock(m.Duration)})
}

// ListResources searches by ?q=, ?type= and repeated ?tag=.
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := services.SearchResources(q.Get("q"), q.Get("type"), q["tag"])
	writeJSON(w, http.StatusOK, map[string]interface{}{"resources": items, "total": len(items)})
}

func (h *Handler) ResourceTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": services.ResourceTags()})
}

func (h *Handler) ListHelplines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"helplines": services.Helplines(r.URL.Query().Get("type"))})
}
