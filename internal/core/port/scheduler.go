package port

import (
	"time"

	"cortex/internal/core/domain"
)

type ReminderScheduler interface {
	// Schedule registers a one-off reminder for a chat. Times in the past are rejected.
	Schedule(chatID int64, at time.Time, text string, mentionEveryone bool) (domain.Reminder, error)
	// Pending lists reminders that have not fired yet.
	Pending() []domain.Reminder
}

type MuteLookup interface {
	// Lookup finds the mute record of a user by username.
	Lookup(username string) (domain.MuteRecord, bool)
	// CurrentMute returns how long the record has been muted so far, zero when unmuted.
	CurrentMute(rec domain.MuteRecord) time.Duration
}
