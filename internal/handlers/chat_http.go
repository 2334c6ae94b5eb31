package handlers

import (
	"net/http"

	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

type ChatRequest struct {
	Message string `json:"message"`
}

// Chat answers one message with the scripted chatbot. No history is kept;
// the websocket endpoint holds a conversation.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decode(w, r, &req) {
		return
	}
	in, out, err := services.NewConversation(h.bot, h.now).Send(req.Message)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_message": in,
		"reply":        out,
	})
}
