package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/chathaven/chathaven/internal/app"
	"github.com/chathaven/chathaven/internal/domain"
)

// Hub maps live handles to their connections and implements the broadcast
// router. Room membership is the directory's call; the hub only addresses.
type Hub struct {
	mu        sync.RWMutex
	conns     map[domain.UserID]*Conn
	directory *app.Directory
}

func NewHub(directory *app.Directory) *Hub {
	return &Hub{
		conns:     make(map[domain.UserID]*Conn),
		directory: directory,
	}
}

func (h *Hub) Bind(id domain.UserID, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = c
}

func (h *Hub) Unbind(id domain.UserID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

func (h *Hub) conn(id domain.UserID) (*Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[id]
	return c, ok
}

// ToUser delivers to a single connection.
func (h *Hub) ToUser(id domain.UserID, v any) {
	if c, ok := h.conn(id); ok {
		h.sendJSON(id, c, v)
	}
}

// ToRoom delivers to every current member of the room, sender included.
func (h *Hub) ToRoom(room domain.RoomName, v any) {
	for _, member := range h.directory.MembersOf(room) {
		if c, ok := h.conn(member.ID); ok {
			h.sendJSON(member.ID, c, v)
		}
	}
}

// ToRoomExcept delivers to the room minus the given sender.
func (h *Hub) ToRoomExcept(id domain.UserID, room domain.RoomName, v any) {
	for _, member := range h.directory.MembersOf(room) {
		if member.ID == id {
			continue
		}
		if c, ok := h.conn(member.ID); ok {
			h.sendJSON(member.ID, c, v)
		}
	}
}

func (h *Hub) sendJSON(id domain.UserID, c *Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "ws.hub").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "ws.hub").Str("id", string(id)).Msg("frame dropped")
	}
}
