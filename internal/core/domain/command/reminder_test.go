package command

import (
	"errors"
	"testing"
	"time"

	"cortex/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduler struct {
	err       error
	scheduled []domain.Reminder
}

func (f *fakeScheduler) Schedule(chatID int64, at time.Time, text string, mention bool) (domain.Reminder, error) {
	if f.err != nil {
		return domain.Reminder{}, f.err
	}

	r := domain.Reminder{ID: "id", ChatID: chatID, At: at, Text: text, MentionEveryone: mention}
	f.scheduled = append(f.scheduled, r)
	return r, nil
}

func (f *fakeScheduler) Pending() []domain.Reminder { return f.scheduled }

func TestParseReminder(t *testing.T) {
	testCases := []struct {
		input   string
		when    string
		text    string
		mention bool
		ok      bool
	}{
		{input: "2025-04-18 14:30 - Attend the meeting", when: "2025-04-18 14:30", text: "Attend the meeting", ok: true},
		{input: "2025-04-18 14:30 - Attend the meeting -e", when: "2025-04-18 14:30", text: "Attend the meeting",
			mention: true, ok: true},
		{input: "2025-04-18 14:30 - Attend the meeting - -e", when: "2025-04-18 14:30", text: "Attend the meeting",
			mention: true, ok: true},
		{input: "2025-04-18 - pick up re-entry forms", when: "2025-04-18", text: "pick up re-entry forms", ok: true},
		{input: "tomorrow call mom"},
		{input: "2025-04-18 14:30 - "},
		{input: " - message"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			when, text, mention, ok := ParseReminder(tc.input)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.when, when)
			assert.Equal(t, tc.text, text)
			assert.Equal(t, tc.mention, mention)
		})
	}
}

func TestSetReminder(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)

	testCases := []struct {
		description string
		args        []string
		schedErr    error
		wantErr     bool
		reply       string
		wantAt      time.Time
	}{
		{
			description: "schedules in the configured zone",
			args:        []string{"2099-04-18", "14:30", "-", "Attend", "the", "meeting"},
			reply:       `Reminder set for 2099-04-18 14:30 EST: "Attend the meeting"`,
			wantAt:      time.Date(2099, 4, 18, 14, 30, 0, 0, loc),
		},
		{
			description: "mention everyone",
			args:        []string{"2099-04-18", "14:30", "-", "Standup", "-e"},
			reply:       `Reminder set for 2099-04-18 14:30 EST: "Standup" (🚨)`,
			wantAt:      time.Date(2099, 4, 18, 14, 30, 0, 0, loc),
		},
		{
			description: "usage",
			reply:       reminderUsage,
		},
		{
			description: "missing separator",
			args:        []string{"tomorrow", "call", "mom"},
			reply:       reminderBadFormat,
		},
		{
			description: "bad date",
			args:        []string{"someday", "-", "call", "mom"},
			reply:       reminderBadDate,
		},
		{
			description: "past date",
			args:        []string{"2001-01-01", "10:00", "-", "too", "late"},
			schedErr:    domain.ErrReminderInPast,
			reply:       reminderInPast,
		},
		{
			description: "scheduler failure",
			args:        []string{"2099-01-01", "-", "x"},
			schedErr:    errors.New("entropy"),
			wantErr:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			scheduler := &fakeScheduler{err: tc.schedErr}
			ms := &MockTextSender{}

			handler := NewSetReminder(scheduler, ms, loc, "!set_reminder")
			err := handler.Respond(t.Context(), &domain.Message{ID: 1, ChatID: 42}, tc.args)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.reply, ms.Last())

			if !tc.wantAt.IsZero() {
				require.Len(t, scheduler.scheduled, 1)
				assert.True(t, tc.wantAt.Equal(scheduler.scheduled[0].At))
				assert.Equal(t, int64(42), scheduler.scheduled[0].ChatID)
			}
		})
	}
}
