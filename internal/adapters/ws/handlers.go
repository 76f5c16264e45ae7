package ws

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/chathaven/chathaven/internal/app"
)

func (ctl *ChatWSController) handleJoin(sess *app.Session, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		Username string `json:"username"`
		Room     string `json:"room"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad join payload")
		return
	}
	if p.Room == "" {
		log.Warn().Str("module", "ws").Str("id", string(sess.ID())).Msg("join without room")
		return
	}

	log.Info().Str("module", "ws").Str("id", string(sess.ID())).Str("username", p.Username).Str("room", p.Room).Msg("join")
	sess.HandleJoin(p.Username, p.Room)
}

func (ctl *ChatWSController) handleChatMessage(sess *app.Session, data []byte) {
	type messagePayload struct {
		Type  string `json:"type"`
		Msg   string `json:"msg"`
		Image string `json:"image,omitempty"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad message payload")
		return
	}

	sess.HandleMessage(p.Msg, p.Image)
}
