// Package domain contains entity without logic, just meta-data
package domain

const (
	MaxUsernameLen = 36
	MaxRoomNameLen = 36

	// GuestUsername is used when a client joins without a display name.
	GuestUsername = "guest"
)

type (
	UserID   string
	RoomName string
)

// User binds a live connection handle to a display name and a room.
// The room never changes after join; a new room means a new connection.
type User struct {
	ID       UserID   `json:"id"`
	Username string   `json:"username"`
	Room     RoomName `json:"room"`
}

// SanitizeUsername trims a display name to the allowed length. Names are
// not unique and not otherwise validated.
func SanitizeUsername(raw string) string {
	if raw == "" {
		return GuestUsername
	}
	if len(raw) > MaxUsernameLen {
		return raw[:MaxUsernameLen]
	}
	return raw
}

// SanitizeRoomName caps a room name.
func SanitizeRoomName(raw string) RoomName {
	if len(raw) > MaxRoomNameLen {
		raw = raw[:MaxRoomNameLen]
	}
	return RoomName(raw)
}
