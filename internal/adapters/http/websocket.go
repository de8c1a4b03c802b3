package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/maplink/internal/adapters/nats"
	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/core/usecases"
	"github.com/samirrijal/maplink/internal/pkg/metrics"
)

const (
	wsPingInterval   = 30 * time.Second
	wsAnalyzeTimeout = 5 * time.Second
)

// wsMessage is sent by clients.
type wsMessage struct {
	Action string `json:"action"` // "analyze" | "subscribe" | "unsubscribe"
	Text   string `json:"text"`   // analyze only
}

// wsReply wraps every server-to-client message except relayed events,
// which are forwarded as the raw event JSON.
type wsReply struct {
	Type     string      `json:"type"`
	Analysis interface{} `json:"analysis,omitempty"`
	Status   string      `json:"status,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// liveAnalyzer runs the analyses of one connection. Clients resend the whole
// text on every keystroke, so an extraction event is published only when the
// coordinate list differs from the last one published on this connection.
type liveAnalyzer struct {
	links     *usecases.LinkService
	published []domain.Coordinate
}

func (l *liveAnalyzer) analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	a, err := l.links.Evaluate(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(a.Coordinates) > 0 && !slices.Equal(a.Coordinates, l.published) {
		l.links.Publish(ctx, "ws", a)
		l.published = a.Coordinates
	}
	return a, nil
}

// analysisReply encodes the reply for a. A result encoding/json cannot
// carry is reported to the client as an error reply.
func analysisReply(a *domain.Analysis) []byte {
	data, err := json.Marshal(wsReply{Type: "analysis", Analysis: a})
	if err != nil {
		data, _ = json.Marshal(wsReply{Type: "error", Error: "result contains a number outside the JSON range"})
	}
	return data
}

// WebSocketHandler returns a handler for the live extraction channel.
// Clients send {"action":"analyze","text":"..."} as they type and receive the
// analysis of the current text. {"action":"subscribe"} relays every
// extraction event published on the broker until {"action":"unsubscribe"}.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		logger := slog.With("remote_addr", c.RemoteAddr().String())
		logger.Info("ws client connected")

		var mu sync.Mutex
		var sub *nats.Subscription

		write := func(data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			return write(data)
		}

		live := &liveAnalyzer{links: deps.Links}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(wsReply{Type: "error", Error: "invalid JSON"})
				continue
			}

			switch m.Action {
			case "analyze":
				ctx, cancel := context.WithTimeout(context.Background(), wsAnalyzeTimeout)
				analysis, err := live.analyze(ctx, m.Text)
				cancel()
				if err != nil {
					reason := "analysis failed"
					if errors.Is(err, usecases.ErrTextTooLarge) {
						reason = err.Error()
					} else {
						logger.Error("ws analyze failed", "error", err)
					}
					_ = writeJSON(wsReply{Type: "error", Error: reason})
					continue
				}
				_ = write(analysisReply(analysis))

			case "subscribe":
				if deps.NATS == nil {
					_ = writeJSON(wsReply{Type: "error", Error: "event stream unavailable"})
					continue
				}
				if sub != nil {
					_ = writeJSON(wsReply{Type: "status", Status: "already subscribed"})
					continue
				}
				s, err := deps.NATS.Subscribe(natsadapter.SubjectAll, func(msg *nats.Msg) {
					_ = writeJSON(json.RawMessage(msg.Data))
				})
				if err != nil {
					_ = writeJSON(wsReply{Type: "error", Error: "subscribe failed: " + err.Error()})
					continue
				}
				sub = s
				_ = writeJSON(wsReply{Type: "status", Status: "subscribed"})

			case "unsubscribe":
				if sub == nil {
					_ = writeJSON(wsReply{Type: "error", Error: "not subscribed"})
					continue
				}
				_ = sub.Unsubscribe()
				sub = nil
				_ = writeJSON(wsReply{Type: "status", Status: "unsubscribed"})

			default:
				_ = writeJSON(wsReply{Type: "error", Error: "unknown action: " + m.Action})
			}
		}

		// Cleanup
		close(done)
		if sub != nil {
			_ = sub.Unsubscribe()
		}
		logger.Info("ws client disconnected")
	}
}
