package handler

import (
	"context"
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Submitter interface {
	Submit(ctx context.Context, message *domain.Message)
}

type MuteObserver interface {
	Remember(userID int64, username string)
	Begin(ctx context.Context, userID int64, username string)
	End(ctx context.Context, userID int64, username string) (time.Duration, bool)
}

type UpdateParams struct {
	Dispatcher Submitter
	History    port.HistoryRecorder
	// Mutes is optional. Without it chat member updates are dropped.
	Mutes MuteObserver
}

// Update converts Telegram updates into domain messages and mute transitions.
type Update struct {
	dispatcher Submitter
	history    port.HistoryRecorder
	mutes      MuteObserver
	l          *zerolog.Logger
}

func NewUpdate(p UpdateParams) *Update {
	logger := log.With().Str("component", "updates").Logger()

	return &Update{
		dispatcher: p.Dispatcher,
		history:    p.History,
		mutes:      p.Mutes,
		l:          &logger,
	}
}

// Handle is registered as the default handler of the bot.
func (u *Update) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	switch {
	case update.Message != nil:
		u.handleMessage(ctx, update.Message)
	case update.ChatMember != nil:
		u.handleChatMember(ctx, update.ChatMember)
	default:
		u.l.Trace().Int64("updateId", update.ID).Msg("ignoring update")
	}
}

func (u *Update) handleMessage(ctx context.Context, m *models.Message) {
	message := toDomainMessage(m)
	if message.Text == "" {
		return
	}

	u.l.Debug().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Int64("userId", message.UserID).
		Msg("received message")

	if u.history != nil {
		u.history.Record(message.ChatID, domain.HistoryEntry{
			MessageID: message.ID,
			Username:  message.Username,
			Text:      message.Text,
			FromBot:   message.FromBot,
			At:        message.Date,
		})
	}

	if u.mutes != nil && m.From != nil {
		u.mutes.Remember(m.From.ID, m.From.Username)
	}

	u.dispatcher.Submit(ctx, message)
}

func (u *Update) handleChatMember(ctx context.Context, change *models.ChatMemberUpdated) {
	if u.mutes == nil {
		return
	}

	user := memberUser(change.NewChatMember)
	if user == nil {
		user = memberUser(change.OldChatMember)
	}
	if user == nil {
		return
	}

	wasMuted := isMuted(change.OldChatMember)
	nowMuted := isMuted(change.NewChatMember)

	l := u.l.With().Int64("chatId", change.Chat.ID).Int64("userId", user.ID).Logger()

	switch {
	case !wasMuted && nowMuted:
		l.Debug().Msg("member muted")
		u.mutes.Begin(ctx, user.ID, user.Username)
	case wasMuted && !nowMuted:
		l.Debug().Msg("member unmuted")
		u.mutes.End(ctx, user.ID, user.Username)
	default:
		u.mutes.Remember(user.ID, user.Username)
	}
}

func toDomainMessage(m *models.Message) *domain.Message {
	message := &domain.Message{
		ID:     m.ID,
		ChatID: m.Chat.ID,
		Text:   m.Text,
		Date:   time.Unix(int64(m.Date), 0),
	}

	if message.Text == "" {
		message.Text = m.Caption
	}

	if m.From != nil {
		message.UserID = m.From.ID
		message.Username = getUserNameOrFirstName(m.From)
		message.FromBot = m.From.IsBot
	}

	if m.ReplyToMessage != nil {
		id := m.ReplyToMessage.ID
		message.ReplyToMessageID = &id
	}

	return message
}

// isMuted reports whether a member is restricted from sending messages.
func isMuted(member models.ChatMember) bool {
	return member.Type == models.ChatMemberTypeRestricted &&
		member.Restricted != nil &&
		!member.Restricted.CanSendMessages
}

// memberUser returns the user of the member states a mute transition can involve.
func memberUser(member models.ChatMember) *models.User {
	switch {
	case member.Type == models.ChatMemberTypeRestricted && member.Restricted != nil:
		return member.Restricted.User
	case member.Type == models.ChatMemberTypeMember && member.Member != nil:
		return member.Member.User
	}

	return nil
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
