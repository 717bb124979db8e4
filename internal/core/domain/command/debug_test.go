package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"cortex/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	args := m.Called(ctx, chatID, text)
	return args.Int(0), args.Error(1)
}

func (m *MockSender) SendChatAction(context.Context, int64, domain.Action) error {
	return nil
}

func (m *MockSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	args := m.Called(ctx, message, text)
	return args.Int(0), args.Error(1)
}

type staticSessions int

func (s staticSessions) ActiveCount() int { return int(s) }

func TestDebug_Respond_SendsDebugInfo(t *testing.T) {
	mockSender := new(MockSender)
	scheduler := &fakeScheduler{scheduled: []domain.Reminder{{ID: "a"}, {ID: "b"}}}
	debugCmd := NewDebug(DebugParams{
		TextSender: mockSender,
		Sessions:   staticSessions(3),
		Reminders:  scheduler,
		Started:    time.Now().Add(-time.Hour),
		Command:    "!debug",
	})

	msg := &domain.Message{ID: 123, ChatID: 456}

	mockSender.
		On(
			"SendMessageReply",
			mock.Anything,
			msg,
			mock.MatchedBy(func(text string) bool {
				return strings.Contains(text, "allocated mem:") &&
					strings.Contains(text, "threads running:") &&
					strings.Contains(text, "heap:") &&
					strings.Contains(text, "stack:") &&
					strings.Contains(text, "uptime: 1h0m") &&
					strings.Contains(text, "active sessions: 3") &&
					strings.Contains(text, "pending reminders: 2") &&
					strings.Contains(text, "compiled with")
			}),
		).
		Return(1, nil)

	err := debugCmd.Respond(t.Context(), msg, nil)
	require.NoError(t, err)
	mockSender.AssertExpectations(t)
}

func TestDebug_Respond_WithoutCounters(t *testing.T) {
	mockSender := new(MockSender)
	debugCmd := NewDebug(DebugParams{TextSender: mockSender, Command: "!debug"})

	msg := &domain.Message{ID: 1}
	mockSender.On("SendMessageReply", mock.Anything, msg, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "active sessions: 0")
	})).Return(1, nil)

	require.NoError(t, debugCmd.Respond(t.Context(), msg, nil))
	mockSender.AssertExpectations(t)
}
