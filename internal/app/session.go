package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chathaven/chathaven/internal/domain"
)

const welcomeText = "Welcome to ChatHaven!"

type sessionState int

const (
	stateConnecting sessionState = iota
	stateJoined
	stateDone
)

// Session is the per-connection lifecycle. All handlers run on the
// connection's read loop, so state needs no lock; duplicate or
// out-of-order signals from the transport are dropped, never an error.
type Session struct {
	id     domain.UserID
	engine *Engine
	state  sessionState
}

func (e *Engine) NewSession(id domain.UserID) *Session {
	return &Session{id: id, engine: e}
}

func (s *Session) ID() domain.UserID { return s.id }

// HandleJoin registers the identity and runs the join fan-out: welcome to
// the joiner, announcement to the rest of the room, roster to everyone.
func (s *Session) HandleJoin(username, room string) {
	if s.state != stateConnecting {
		log.Debug().Str("module", "app.session").Str("id", string(s.id)).Msg("join dropped, wrong state")
		return
	}
	e := s.engine

	name := domain.SanitizeUsername(username)
	roomName := domain.SanitizeRoomName(room)

	user := e.Directory.Join(s.id, name, roomName)
	s.state = stateJoined

	s.writeThrough("insert user", func(ctx context.Context) error {
		return e.Sink.InsertUser(ctx, user)
	})

	e.Broadcast.ToUser(s.id, NewMessageEvent(
		domain.FormatMessage(e.BotName, welcomeText, "", e.now())))
	e.Broadcast.ToRoomExcept(s.id, roomName, NewMessageEvent(
		domain.FormatMessage(e.BotName, fmt.Sprintf("%s has joined the chat", name), "", e.now())))
	e.Broadcast.ToRoom(roomName, NewRoomUsersEvent(roomName, e.Directory.MembersOf(roomName)))
}

// HandleMessage relays a chat message to the sender's room and, in the
// responder room, dispatches the bridge without blocking the relay.
func (s *Session) HandleMessage(text, imageURL string) {
	if s.state != stateJoined {
		log.Debug().Str("module", "app.session").Str("id", string(s.id)).Msg("message dropped, wrong state")
		return
	}
	e := s.engine

	user, ok := e.Directory.Lookup(s.id)
	if !ok {
		log.Debug().Str("module", "app.session").Str("id", string(s.id)).Msg("message dropped, unknown handle")
		return
	}
	if e.Limiter != nil && !e.Limiter.Allow(s.id) {
		log.Warn().Str("module", "app.session").Str("id", string(s.id)).Str("username", user.Username).Msg("message dropped, rate limited")
		return
	}

	msg := domain.FormatMessage(user.Username, text, imageURL, e.now())

	s.writeThrough("insert message", func(ctx context.Context) error {
		return e.Sink.InsertMessage(ctx, msg)
	})

	e.Broadcast.ToRoom(user.Room, NewMessageEvent(msg))

	if user.Room == e.ResponderRoom {
		s.dispatchResponder(user.Room, msg)
	}
}

// HandleTyping relays a typing signal to the room minus the sender.
func (s *Session) HandleTyping() {
	s.relayTyping(EventTyping)
}

// HandleStopTyping relays a stopTyping signal to the room minus the sender.
func (s *Session) HandleStopTyping() {
	s.relayTyping(EventStopTyping)
}

func (s *Session) relayTyping(event string) {
	if s.state != stateJoined {
		return
	}
	e := s.engine

	user, ok := e.Directory.Lookup(s.id)
	if !ok {
		return
	}
	if event == EventTyping {
		e.Typing.Start(user.Room, user.Username)
	} else {
		e.Typing.Stop(user.Room, user.Username)
	}
	e.Broadcast.ToRoomExcept(s.id, user.Room, TypingEvent{Type: event, Username: user.Username})
}

// HandleDisconnect releases the identity and announces the departure.
// Idempotent; valid from any state.
func (s *Session) HandleDisconnect() {
	if s.state == stateDone {
		return
	}
	s.state = stateDone
	e := s.engine

	user, ok := e.Directory.Leave(s.id)
	if !ok {
		return
	}
	e.Typing.Stop(user.Room, user.Username)
	if e.Limiter != nil {
		e.Limiter.Forget(s.id)
	}

	s.writeThrough("delete user", func(ctx context.Context) error {
		return e.Sink.DeleteUser(ctx, user.ID)
	})

	e.Broadcast.ToRoom(user.Room, NewMessageEvent(
		domain.FormatMessage(e.BotName, fmt.Sprintf("%s has left the chat", user.Username), "", e.now())))
	e.Broadcast.ToRoom(user.Room, NewRoomUsersEvent(user.Room, e.Directory.MembersOf(user.Room)))
}

// dispatchResponder runs the external completion off the relay path. The
// room and message are captured by value; the sender disconnecting does
// not cancel the call, and the eventual reply goes to the room, not the
// individual.
func (s *Session) dispatchResponder(room domain.RoomName, msg domain.Message) {
	e := s.engine
	if e.Responder == nil {
		return
	}
	e.async(func() {
		reply, err := e.Responder.Complete(context.Background(), msg.Text)
		if err != nil {
			log.Error().Err(err).Str("module", "app.session").Str("room", string(room)).Msg("responder call failed")
			return
		}
		botMsg := domain.FormatMessage(e.BotName, reply, "", e.now())
		s.writeThrough("insert message with response", func(ctx context.Context) error {
			return e.Sink.InsertMessageWithResponse(ctx, msg, reply)
		})
		e.Broadcast.ToRoom(room, NewMessageEvent(botMsg))
	})
}

// writeThrough fires a best-effort persistence call. Failures are logged;
// the in-memory path is authoritative for live behavior.
func (s *Session) writeThrough(op string, fn func(ctx context.Context) error) {
	e := s.engine
	if e.Sink == nil {
		return
	}
	e.async(func() {
		if err := fn(context.Background()); err != nil {
			log.Error().Err(err).Str("module", "app.session").Str("id", string(s.id)).Str("op", op).Msg("persistence write failed")
		}
	})
}
