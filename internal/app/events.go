package app

import "github.com/chathaven/chathaven/internal/domain"

// Outbound event types on the wire envelope.
const (
	EventMessage    = "message"
	EventRoomUsers  = "roomUsers"
	EventTyping     = "typing"
	EventStopTyping = "stopTyping"
)

// MessageEvent carries a formatted chat record.
type MessageEvent struct {
	Type string `json:"type"`
	domain.Message
}

func NewMessageEvent(msg domain.Message) MessageEvent {
	return MessageEvent{Type: EventMessage, Message: msg}
}

// RoomUser is the roster view of a member, no transport fields.
type RoomUser struct {
	Username string `json:"username"`
}

// RoomUsersEvent carries the roster of a room in join order.
type RoomUsersEvent struct {
	Type  string          `json:"type"`
	Room  domain.RoomName `json:"room"`
	Users []RoomUser      `json:"users"`
}

func NewRoomUsersEvent(room domain.RoomName, members []domain.User) RoomUsersEvent {
	users := make([]RoomUser, 0, len(members))
	for _, m := range members {
		users = append(users, RoomUser{Username: m.Username})
	}
	return RoomUsersEvent{Type: EventRoomUsers, Room: room, Users: users}
}

// TypingEvent relays a typing or stopTyping signal with the speaker's name.
type TypingEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}
