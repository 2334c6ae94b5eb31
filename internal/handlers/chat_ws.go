package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

// newChatUpgrader accepts requests without an Origin header (non-browser
// clients) and browser origins from the allow list. CORS does not cover the
// upgrade handshake, so the list is checked here.
func newChatUpgrader(allowed []string) websocket.Upgrader {
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		origins[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	_, wildcard := origins["*"]
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(origins) == 0 || wildcard {
				return true
			}
			_, ok := origins[strings.ToLower(origin)]
			return ok
		},
	}
}

const (
	chatReadLimit  = 64 * 1024
	chatPongWait   = 90 * time.Second
	chatPingPeriod = 60 * time.Second
	chatWriteWait  = 10 * time.Second
)

// Event types sent to the client.
const (
	EventTypeMessage = "message"
	EventTypeAck     = "ack"
	EventTypeTyping  = "typing"
	EventTypeError   = "error"
	EventTypePong    = "pong"
)

// ChatClientMessage is a frame from the browser: "message", "reset" or "ping".
type ChatClientMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type ChatEvent struct {
	Type    string              `json:"type"`
	Message *models.ChatMessage `json:"message,omitempty"`
	Typing  bool                `json:"typing,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// chatSocket serializes writes; the ping loop and the reader both write.
type chatSocket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *chatSocket) send(evt ChatEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
	return s.conn.WriteJSON(evt)
}

func (s *chatSocket) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(chatWriteWait))
}

func (s *chatSocket) sendMessage(m models.ChatMessage) error {
	return s.send(ChatEvent{Type: EventTypeMessage, Message: &m})
}

// ChatWebSocket runs one chatbot conversation per connection. The bot
// greets first, and every reply is preceded by a typing indicator.
func (h *Handler) ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sock := &chatSocket{conn: conn}
	conv := services.NewConversation(h.bot, h.now)
	if err := sock.sendMessage(conv.Messages()[0]); err != nil {
		return
	}

	go func() {
		ticker := time.NewTicker(chatPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := sock.ping(); err != nil {
					return
				}
			}
		}
	}()

	conn.SetReadLimit(chatReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(chatPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("chat socket closed", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(chatPongWait))

		var msg ChatClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = sock.send(ChatEvent{Type: EventTypeError, Error: "invalid message"})
			continue
		}

		switch msg.Type {
		case "message":
			if err := h.reply(ctx, sock, conv, msg.Text); err != nil {
				return
			}
		case "reset":
			if err := sock.sendMessage(conv.Reset()); err != nil {
				return
			}
		case "ping":
			if err := sock.send(ChatEvent{Type: EventTypePong}); err != nil {
				return
			}
		default:
			// Ignore unknown types
		}
	}
}

// reply acknowledges text, shows the typing indicator for the configured
// delay and then sends the bot's answer. A non-nil error ends the connection.
func (h *Handler) reply(ctx context.Context, sock *chatSocket, conv *services.Conversation, text string) error {
	in, out, err := conv.Send(text)
	if err != nil {
		return sock.send(ChatEvent{Type: EventTypeError, Error: err.Error()})
	}
	if err := sock.send(ChatEvent{Type: EventTypeAck, Message: &in}); err != nil {
		return err
	}
	if err := sock.send(ChatEvent{Type: EventTypeTyping, Typing: true}); err != nil {
		return err
	}

	if h.typingDelay > 0 {
		t := time.NewTimer(h.typingDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return sock.sendMessage(out)
}
