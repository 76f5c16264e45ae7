package domain

import "time"

// timeLayout renders the localized hour:minute with am/pm marker.
const timeLayout = "3:04 pm"

// Message is a displayable chat record. Immutable once built; the relay
// keeps no copy after broadcast.
type Message struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
	Time     string `json:"time"`
}

// FormatMessage builds a Message stamped at the given wall-clock time.
func FormatMessage(username, text, imageURL string, at time.Time) Message {
	return Message{
		Username: username,
		Text:     text,
		ImageURL: imageURL,
		Time:     at.Format(timeLayout),
	}
}
