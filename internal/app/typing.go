package app

import (
	"sort"
	"sync"

	"github.com/chathaven/chathaven/internal/domain"
)

// TypingSet tracks which display names are currently flagged as typing,
// per room. Expiry is client-driven; the set only mirrors the explicit
// start/stop signals it receives.
type TypingSet struct {
	mu    sync.Mutex
	rooms map[domain.RoomName]map[string]struct{}
}

func NewTypingSet() *TypingSet {
	return &TypingSet{rooms: make(map[domain.RoomName]map[string]struct{})}
}

// Start flags username as typing in room. Idempotent.
func (t *TypingSet) Start(room domain.RoomName, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	names, ok := t.rooms[room]
	if !ok {
		names = make(map[string]struct{})
		t.rooms[room] = names
	}
	names[username] = struct{}{}
}

// Stop clears the typing flag. A stop for an absent name is a no-op.
func (t *TypingSet) Stop(room domain.RoomName, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	names, ok := t.rooms[room]
	if !ok {
		return
	}
	delete(names, username)
	if len(names) == 0 {
		delete(t.rooms, room)
	}
}

// Snapshot returns the room's typing names, sorted.
func (t *TypingSet) Snapshot(room domain.RoomName) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := t.rooms[room]
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
