package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/chathaven/chathaven/internal/app"
	"github.com/chathaven/chathaven/internal/domain"
)

const writeDeadline = 5 * time.Second

func (ctl *ChatWSController) writePump(ctx context.Context, id domain.UserID, c *Conn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "ws").Str("id", string(id)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump set deadline")
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump drives the session. The read error is the disconnect signal;
// the deferred teardown makes disconnect idempotent downstream.
func (ctl *ChatWSController) readPump(ctx context.Context, sess *app.Session, c *Conn) {
	id := sess.ID()
	defer func() {
		log.Info().Str("module", "ws").Str("id", string(id)).Msg("readPump closing")
		sess.HandleDisconnect()
		ctl.Hub.Unbind(id)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "ws").Str("id", string(id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.ws.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "ws").Str("id", string(id)).Msg("readPump read error")
				return
			}
			ctl.handleFrame(sess, c, data)
		}
	}
}

func (ctl *ChatWSController) handleFrame(sess *app.Session, c *Conn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad json")
		return
	}

	switch env.Type {
	case "joinRoom":
		ctl.handleJoin(sess, data)
	case "chatMessage":
		ctl.handleChatMessage(sess, data)
	case "typing":
		sess.HandleTyping()
	case "stopTyping":
		sess.HandleStopTyping()
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "ws").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *ChatWSController) handlePing(c *Conn) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.TrySend(b)
}
