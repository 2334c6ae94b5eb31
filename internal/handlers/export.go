package handlers

import "net/http"

// Export uploads a backup of the caller's data and returns its URL.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if h.exporter == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Export is not available")
		return
	}
	url, err := h.exporter.Export(r.Context(), ws)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Backup exported", "url": url})
}
