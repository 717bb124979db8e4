package sender

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TelegramMessageLimit is the maximum size of a single Telegram message.
const TelegramMessageLimit = 4096

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot     TelegramBot
	history port.HistoryRecorder
	botName string
	l       *zerolog.Logger
}

type Option func(*Telegram)

// WithHistory records every message the bot sends so conversations see the bot's own replies.
func WithHistory(recorder port.HistoryRecorder, botName string) Option {
	return func(t *Telegram) {
		t.history = recorder
		t.botName = botName
	}
}

func NewTelegram(b TelegramBot, opts ...Option) *Telegram {
	logger := log.With().Str("component", "sender").Logger()

	t := &Telegram{bot: b, l: &logger}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (s *Telegram) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	return s.send(ctx, chatID, nil, text)
}

func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	return s.send(ctx, message.ChatID, &models.ReplyParameters{
		MessageID:                message.ID,
		ChatID:                   message.ChatID,
		AllowSendingWithoutReply: true,
	}, text)
}

func (s *Telegram) send(ctx context.Context, chatID int64, reply *models.ReplyParameters, text string) (int, error) {
	chunks := SplitMessage(text, TelegramMessageLimit)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: empty message", domain.ErrSendingReplyFailed)
	}

	var lastID int
	for i, chunk := range chunks {
		msg, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			Text:            chunk,
			ReplyParameters: reply,
		})
		if err != nil {
			s.l.Warn().Err(err).
				Int64("chatId", chatID).
				Int("chunk", i+1).
				Int("chunks", len(chunks)).
				Msg("failed to send message")
			return lastID, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		if msg != nil {
			lastID = msg.ID
		}
		s.record(chatID, lastID, chunk)
	}

	return lastID, nil
}

func (s *Telegram) record(chatID int64, messageID int, text string) {
	if s.history == nil {
		return
	}

	s.history.Record(chatID, domain.HistoryEntry{
		MessageID: messageID,
		Username:  s.botName,
		Text:      text,
		FromBot:   true,
		At:        time.Now(),
	})
}

func (s *Telegram) SendImageURLReply(ctx context.Context, message *domain.Message, url string) error {
	params := &bot.SendPhotoParams{
		ChatID: message.ChatID,
		ReplyParameters: &models.ReplyParameters{
			MessageID:                message.ID,
			ChatID:                   message.ChatID,
			AllowSendingWithoutReply: true,
		},
		Photo: &models.InputFileString{Data: url},
	}

	if _, err := s.bot.SendPhoto(ctx, params); err != nil {
		s.l.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send photo response")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// SendChatAction emits a single chat action. Telegram shows it for about five seconds.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) error {
	var chatAction models.ChatAction
	switch action {
	case domain.SendingPhoto:
		chatAction = models.ChatActionUploadPhoto
	default:
		chatAction = models.ChatActionTyping
	}

	s.l.Trace().Int64("chatId", chatID).Msg("transmitting action")

	if _, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: chatAction,
	}); err != nil {
		return fmt.Errorf("error sending chat action: %w", err)
	}

	return nil
}

// SplitMessage breaks text into chunks of at most limit bytes, preferring word boundaries.
// Words longer than limit are split on rune boundaries.
func SplitMessage(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndexAny(text[:limit+1], " \n\t")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			// no rune start in range, the text is not valid UTF-8
			if cut == 0 {
				cut = limit
			}
		}

		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}

	if text != "" {
		chunks = append(chunks, text)
	}

	return chunks
}
