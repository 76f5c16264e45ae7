package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/chathaven/chathaven/internal/domain"
)

// Directory is the in-memory registry of live connections. Rooms are not
// stored; a room is whatever subset of users carries its name.
type Directory struct {
	mu    sync.RWMutex
	users map[domain.UserID]*domain.User
	order []domain.UserID // join order, drives roster ordering
}

func NewDirectory() *Directory {
	return &Directory{users: make(map[domain.UserID]*domain.User)}
}

// Join registers (or overwrites) the identity for id. Handle uniqueness is
// the transport's problem; a re-join keeps the original roster position.
func (d *Directory) Join(id domain.UserID, username string, room domain.RoomName) domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[id]; !ok {
		d.order = append(d.order, id)
	}
	u := &domain.User{ID: id, Username: username, Room: room}
	d.users[id] = u
	log.Info().Str("module", "app.directory").Str("id", string(id)).Str("username", username).Str("room", string(room)).Msg("joined")
	return *u
}

// Lookup returns a snapshot of the identity for id.
func (d *Directory) Lookup(id domain.UserID) (domain.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

// Leave removes and returns the identity for id. Removing an unknown or
// already-removed handle reports false, never an error.
func (d *Directory) Leave(id domain.UserID) (domain.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return domain.User{}, false
	}
	delete(d.users, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "app.directory").Str("id", string(id)).Msg("left")
	return *u, true
}

// MembersOf snapshots the room's users in join order.
func (d *Directory) MembersOf(room domain.RoomName) []domain.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.User, 0, len(d.order))
	for _, id := range d.order {
		if u, ok := d.users[id]; ok && u.Room == room {
			out = append(out, *u)
		}
	}
	return out
}
