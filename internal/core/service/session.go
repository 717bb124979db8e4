package service

import (
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog/log"
)

// SessionTracker records which users have a standing conversation with the bot.
// Sessions are only cleared by Deactivate; there is no timeout.
type SessionTracker struct {
	store port.Store[int64, domain.Session]
	now   func() time.Time
}

func NewSessionTracker(store port.Store[int64, domain.Session]) *SessionTracker {
	return &SessionTracker{store: store, now: time.Now}
}

func (s *SessionTracker) IsActive(userID int64) bool {
	session, ok := s.store.Get(userID)
	return ok && session.Active
}

// Activate starts a session for the user. It reports whether the state changed.
func (s *SessionTracker) Activate(userID int64) bool {
	var changed bool

	s.store.Update(userID, func(current domain.Session, exists bool) (domain.Session, bool) {
		if exists && current.Active {
			return current, true
		}

		changed = true
		return domain.Session{UserID: userID, Active: true, Since: s.now()}, true
	})

	if changed {
		log.Debug().Int64("userId", userID).Msg("session activated")
	}

	return changed
}

// Deactivate ends the user's session. It reports whether the state changed.
func (s *SessionTracker) Deactivate(userID int64) bool {
	var changed bool

	s.store.Update(userID, func(current domain.Session, exists bool) (domain.Session, bool) {
		changed = exists && current.Active
		return domain.Session{}, false
	})

	if changed {
		log.Debug().Int64("userId", userID).Msg("session deactivated")
	}

	return changed
}

// ActiveCount returns the number of users with an active session.
func (s *SessionTracker) ActiveCount() int {
	count := 0
	for _, session := range s.store.Values() {
		if session.Active {
			count++
		}
	}

	return count
}
