package domain

import (
	"testing"
	"time"
)

func TestFormatMessage(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		name     string
		username string
		text     string
		imageURL string
		wantTime string
	}{
		{
			name:     "plain message",
			username: "Alice",
			text:     "hi",
			wantTime: "3:04 pm",
		},
		{
			name:     "message with attachment",
			username: "Bob",
			text:     "look",
			imageURL: "https://example.com/cat.png",
			wantTime: "3:04 pm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FormatMessage(tt.username, tt.text, tt.imageURL, at)

			if msg.Username != tt.username {
				t.Errorf("Username = %q, want %q", msg.Username, tt.username)
			}
			if msg.Text != tt.text {
				t.Errorf("Text = %q, want %q", msg.Text, tt.text)
			}
			if msg.ImageURL != tt.imageURL {
				t.Errorf("ImageURL = %q, want %q", msg.ImageURL, tt.imageURL)
			}
			if msg.Time != tt.wantTime {
				t.Errorf("Time = %q, want %q", msg.Time, tt.wantTime)
			}
		})
	}
}

func TestFormatMessageMorningClock(t *testing.T) {
	at := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	msg := FormatMessage("Alice", "hi", "", at)
	if msg.Time != "9:30 am" {
		t.Errorf("Time = %q, want %q", msg.Time, "9:30 am")
	}
}

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty becomes guest", raw: "", want: GuestUsername},
		{name: "ordinary name kept", raw: "Alice", want: "Alice"},
		{name: "overlong name capped", raw: string(make([]byte, 100)), want: string(make([]byte, MaxUsernameLen))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeUsername(tt.raw); got != tt.want {
				t.Errorf("SanitizeUsername(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
