package domain

import "time"

type Author string

const (
	User   Author = "user"
	System Author = "system"
)

type Prompt struct {
	Prompt string
	Author Author
}

// Message is an inbound chat message as seen by the dispatcher.
type Message struct {
	ID               int
	ChatID           int64
	UserID           int64
	Username         string
	FromBot          bool
	ReplyToMessageID *int
	Text             string
	Date             time.Time
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "sending_photo"
)

type ModelResponse struct {
	Response string
	Metadata ResponseMetadata
}

type ResponseMetadata struct {
	Model            string
	CompletionTokens int
	TotalTokens      int
}

// Route is the classification the dispatcher gives a single inbound message.
type Route string

const (
	RouteIgnored           Route = "ignored"
	RouteStopRequested     Route = "stop_requested"
	RouteOneShot           Route = "one_shot_command"
	RouteConversationTurn  Route = "conversation_turn"
	RouteRegisteredCommand Route = "registered_command"
)

// HistoryEntry is one line of recent chat history used as conversation context.
type HistoryEntry struct {
	MessageID int
	Username  string
	Text      string
	FromBot   bool
	At        time.Time
}

// MuteRecord tracks the mute state of a single user. MutedSince is zero while unmuted.
type MuteRecord struct {
	UserID     int64
	Username   string
	MutedSince time.Time
	TotalToday time.Duration
}

func (r MuteRecord) Muted() bool {
	return !r.MutedSince.IsZero()
}

type Reminder struct {
	ID              string
	ChatID          int64
	At              time.Time
	Text            string
	MentionEveryone bool
}

// Session is a standing conversation between one user and the bot. It has no expiry.
type Session struct {
	UserID int64
	Active bool
	Since  time.Time
}
