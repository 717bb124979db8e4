package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type MuteTrackerParams struct {
	Store  port.Store[int64, domain.MuteRecord]
	Sender port.TextSender
	// LogChatID receives mute and unmute notices. Zero disables them.
	LogChatID int64
}

// MuteTracker follows mute transitions per user and accumulates muted time.
type MuteTracker struct {
	store     port.Store[int64, domain.MuteRecord]
	sender    port.TextSender
	logChatID int64
	now       func() time.Time
	l         *zerolog.Logger
}

func NewMuteTracker(p MuteTrackerParams) *MuteTracker {
	logger := log.With().Str("component", "mute").Logger()

	return &MuteTracker{
		store:     p.Store,
		sender:    p.Sender,
		logChatID: p.LogChatID,
		now:       time.Now,
		l:         &logger,
	}
}

// Remember records the username of a user so commands can look them up later.
func (t *MuteTracker) Remember(userID int64, username string) {
	if username == "" {
		return
	}

	t.store.Update(userID, func(current domain.MuteRecord, _ bool) (domain.MuteRecord, bool) {
		current.UserID = userID
		current.Username = username
		return current, true
	})
}

// Begin marks the user muted. A user who is already muted keeps the original start time.
func (t *MuteTracker) Begin(ctx context.Context, userID int64, username string) {
	var rec domain.MuteRecord
	var changed bool

	t.store.Update(userID, func(current domain.MuteRecord, _ bool) (domain.MuteRecord, bool) {
		current.UserID = userID
		if username != "" {
			current.Username = username
		}
		if !current.Muted() {
			current.MutedSince = t.now()
			changed = true
		}
		rec = current
		return current, true
	})

	if !changed {
		return
	}

	t.l.Info().Int64("userId", userID).Str("username", rec.Username).Msg("user muted")
	t.sendLog(ctx, fmt.Sprintf("🔴 User muted\n%s (%d)\nCumulative Mute Time Today: %s",
		rec.Username, userID, domain.FormatClock(rec.TotalToday)))
}

// End marks the user unmuted and returns the length of the finished mute.
func (t *MuteTracker) End(ctx context.Context, userID int64, username string) (time.Duration, bool) {
	var rec domain.MuteRecord
	var muted time.Duration
	var changed bool

	t.store.Update(userID, func(current domain.MuteRecord, exists bool) (domain.MuteRecord, bool) {
		if !exists || !current.Muted() {
			return current, exists
		}
		if username != "" {
			current.Username = username
		}

		muted = t.now().Sub(current.MutedSince)
		current.TotalToday += muted
		current.MutedSince = time.Time{}
		changed = true
		rec = current
		return current, true
	})

	if !changed {
		return 0, false
	}

	t.l.Info().Int64("userId", userID).
		Str("username", rec.Username).
		Dur("muted", muted).
		Dur("total", rec.TotalToday).
		Msg("user unmuted")
	t.sendLog(ctx, fmt.Sprintf("🟢 User unmuted\n%s (%d)\nCurrent Mute Duration: %s\nCumulative Mute Time Today: %s",
		rec.Username, userID, domain.FormatClock(muted), domain.FormatClock(rec.TotalToday)))

	return muted, true
}

// Lookup finds a user by username, ignoring case and a leading @.
func (t *MuteTracker) Lookup(username string) (domain.MuteRecord, bool) {
	want := normalizeUsername(username)
	if want == "" {
		return domain.MuteRecord{}, false
	}

	for _, rec := range t.store.Values() {
		if normalizeUsername(rec.Username) == want {
			return rec, true
		}
	}

	return domain.MuteRecord{}, false
}

// CurrentMute returns how long a record has been muted so far.
func (t *MuteTracker) CurrentMute(rec domain.MuteRecord) time.Duration {
	if !rec.Muted() {
		return 0
	}

	return t.now().Sub(rec.MutedSince)
}

// ResetDaily clears cumulative counters at every local midnight until ctx is done.
// It is only started when mute.daily_reset is enabled.
func (t *MuteTracker) ResetDaily(ctx context.Context) {
	reset := getNextResetTime(t.now())

	for {
		t.l.Debug().Time("reset", reset).Msg("running reset timer")
		select {
		case <-time.After(reset.Sub(t.now())):
			t.resetTotals()
			reset = getNextResetTime(t.now().Add(time.Second))
		case <-ctx.Done():
			t.l.Debug().Msg("stopping daily mute reset")
			return
		}
	}
}

func (t *MuteTracker) resetTotals() {
	t.l.Debug().Msg("resetting daily mute totals")

	for _, rec := range t.store.Values() {
		t.store.Update(rec.UserID, func(current domain.MuteRecord, exists bool) (domain.MuteRecord, bool) {
			current.TotalToday = 0
			return current, exists
		})
	}
}

func (t *MuteTracker) sendLog(ctx context.Context, text string) {
	if t.logChatID == 0 || t.sender == nil {
		return
	}

	if _, err := t.sender.SendMessage(ctx, t.logChatID, text); err != nil {
		t.l.Warn().Err(err).Int64("chatId", t.logChatID).Msg("failed to send mute log")
	}
}

func getNextResetTime(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

func normalizeUsername(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "@"))
}
