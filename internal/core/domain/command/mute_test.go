package command

import (
	"testing"
	"time"

	"cortex/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMutes struct {
	records map[string]domain.MuteRecord
	current time.Duration
}

func (f *fakeMutes) Lookup(username string) (domain.MuteRecord, bool) {
	rec, ok := f.records[username]
	return rec, ok
}

func (f *fakeMutes) CurrentMute(rec domain.MuteRecord) time.Duration {
	if !rec.Muted() {
		return 0
	}
	return f.current
}

func newFakeMutes() *fakeMutes {
	return &fakeMutes{
		records: map[string]domain.MuteRecord{
			"alice": {UserID: 1, Username: "alice", MutedSince: time.Now(), TotalToday: time.Hour},
			"bob":   {UserID: 2, Username: "bob", TotalToday: 90 * time.Second},
		},
		current: 65 * time.Second,
	}
}

func TestCheckMuted(t *testing.T) {
	testCases := []struct {
		args  []string
		reply string
	}{
		{args: []string{"alice"}, reply: "alice has been muted for 00:01:05."},
		{args: []string{"bob"}, reply: "bob is not currently muted."},
		{args: []string{"carol"}, reply: "User carol not found."},
		{reply: checkMutedUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.reply, func(t *testing.T) {
			ms := &MockTextSender{}

			err := NewCheckMuted(newFakeMutes(), ms, "!check_muted").Respond(t.Context(), &domain.Message{ID: 1}, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.reply, ms.Last())
		})
	}
}

func TestCheckMuteTime(t *testing.T) {
	testCases := []struct {
		args  []string
		reply string
	}{
		{args: []string{"alice"}, reply: "alice has been muted for a total of 01:01:05 today."},
		{args: []string{"bob"}, reply: "bob has been muted for a total of 00:01:30 today."},
		{args: []string{"carol"}, reply: "User carol not found."},
		{reply: checkMuteTimeUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.reply, func(t *testing.T) {
			ms := &MockTextSender{}

			err := NewCheckMuteTime(newFakeMutes(), ms, "!check_mute_time").Respond(t.Context(), &domain.Message{ID: 1},
				tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.reply, ms.Last())
		})
	}
}
