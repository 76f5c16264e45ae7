package app

import (
	"testing"

	"github.com/chathaven/chathaven/internal/domain"
)

func TestDirectoryJoinOrder(t *testing.T) {
	d := NewDirectory()
	d.Join("h1", "Alice", "Lobby")
	d.Join("h2", "Bob", "Lobby")
	d.Join("h3", "Carol", "Den")

	members := d.MembersOf("Lobby")
	if len(members) != 2 {
		t.Fatalf("MembersOf(Lobby) = %d members, want 2", len(members))
	}
	if members[0].Username != "Alice" || members[1].Username != "Bob" {
		t.Errorf("roster order = [%s, %s], want [Alice, Bob]", members[0].Username, members[1].Username)
	}

	den := d.MembersOf("Den")
	if len(den) != 1 || den[0].Username != "Carol" {
		t.Errorf("MembersOf(Den) = %v, want just Carol", den)
	}
}

func TestDirectoryRejoinKeepsPosition(t *testing.T) {
	d := NewDirectory()
	d.Join("h1", "Alice", "Lobby")
	d.Join("h2", "Bob", "Lobby")
	d.Join("h1", "Alicia", "Lobby")

	members := d.MembersOf("Lobby")
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[0].Username != "Alicia" {
		t.Errorf("first member = %q, want overwritten Alicia", members[0].Username)
	}
}

func TestDirectoryLeaveIdempotent(t *testing.T) {
	d := NewDirectory()
	d.Join("h1", "Alice", "Lobby")

	u, ok := d.Leave("h1")
	if !ok {
		t.Fatal("first Leave reported not found")
	}
	if u.Username != "Alice" {
		t.Errorf("Leave returned %q, want Alice", u.Username)
	}

	if _, ok := d.Leave("h1"); ok {
		t.Error("second Leave should report not found")
	}

	if members := d.MembersOf("Lobby"); len(members) != 0 {
		t.Errorf("roster still has %d members after leave", len(members))
	}
}

func TestDirectoryLookup(t *testing.T) {
	d := NewDirectory()
	d.Join("h1", "Alice", "Lobby")

	u, ok := d.Lookup("h1")
	if !ok || u.Room != "Lobby" {
		t.Errorf("Lookup(h1) = %v %v, want Alice in Lobby", u, ok)
	}
	if _, ok := d.Lookup("nope"); ok {
		t.Error("Lookup of unknown handle should report not found")
	}
}

func TestDirectoryEmptyRoomDisappears(t *testing.T) {
	d := NewDirectory()
	d.Join("h1", "Alice", "Lobby")
	d.Leave("h1")

	if members := d.MembersOf("Lobby"); len(members) != 0 {
		t.Errorf("empty room enumerated %d members", len(members))
	}
	if _, ok := d.Lookup("h1"); ok {
		t.Error("disconnected handle still resolvable")
	}
}

func TestDirectorySnapshotIsCopy(t *testing.T) {
	d := NewDirectory()
	d.Join("h1", "Alice", "Lobby")

	members := d.MembersOf("Lobby")
	members[0].Username = "Mallory"

	u, _ := d.Lookup(domain.UserID("h1"))
	if u.Username != "Alice" {
		t.Errorf("mutating the snapshot leaked into the directory: %q", u.Username)
	}
}
