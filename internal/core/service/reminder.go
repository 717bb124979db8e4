package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Reminders fires one-off reminders into the chat they were set in.
// Pending reminders live in memory and are dropped on restart.
type Reminders struct {
	sender port.TextSender
	now    func() time.Time
	l      *zerolog.Logger

	mu      sync.Mutex
	pending map[string]pendingReminder
}

type pendingReminder struct {
	reminder domain.Reminder
	timer    *time.Timer
}

func NewReminders(sender port.TextSender) *Reminders {
	logger := log.With().Str("component", "reminders").Logger()

	return &Reminders{
		sender:  sender,
		now:     time.Now,
		l:       &logger,
		pending: make(map[string]pendingReminder),
	}
}

// Schedule registers a reminder and returns it with its assigned ID.
func (r *Reminders) Schedule(chatID int64, at time.Time, text string, mentionEveryone bool) (domain.Reminder, error) {
	delay := at.Sub(r.now())
	if delay <= 0 {
		return domain.Reminder{}, domain.ErrReminderInPast
	}

	id, err := uuid.NewV4()
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("error generating reminder id: %w", err)
	}

	reminder := domain.Reminder{
		ID:              id.String(),
		ChatID:          chatID,
		At:              at,
		Text:            text,
		MentionEveryone: mentionEveryone,
	}

	r.mu.Lock()
	r.pending[reminder.ID] = pendingReminder{
		reminder: reminder,
		timer:    time.AfterFunc(delay, func() { r.fire(reminder.ID) }),
	}
	r.mu.Unlock()

	r.l.Info().Str("id", reminder.ID).
		Int64("chatId", chatID).
		Time("at", at).
		Msg("reminder scheduled")

	return reminder, nil
}

func (r *Reminders) fire(id string) {
	r.mu.Lock()
	p, ok := r.pending[id]
	delete(r.pending, id)
	r.mu.Unlock()

	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := r.sender.SendMessage(ctx, p.reminder.ChatID, FormatReminder(p.reminder)); err != nil {
		r.l.Error().Err(err).Str("id", id).Msg("failed to deliver reminder")
		return
	}

	r.l.Info().Str("id", id).Int64("chatId", p.reminder.ChatID).Msg("reminder delivered")
}

// Pending lists scheduled reminders ordered by due time.
func (r *Reminders) Pending() []domain.Reminder {
	r.mu.Lock()
	list := make([]domain.Reminder, 0, len(r.pending))
	for _, p := range r.pending {
		list = append(list, p.reminder)
	}
	r.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].At.Before(list[j].At) })

	return list
}

func (r *Reminders) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}

// StopAll cancels every pending reminder.
func (r *Reminders) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.pending {
		p.timer.Stop()
		delete(r.pending, id)
	}
}

func FormatReminder(reminder domain.Reminder) string {
	if reminder.MentionEveryone {
		return "@everyone ⏰ Reminder: " + reminder.Text
	}

	return "⏰ Reminder: " + reminder.Text
}
