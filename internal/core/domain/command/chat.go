package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	imageReply    = "Sure! Here you go!"
	imageNotFound = "Sorry I can't find what you are looking for."
)

var imageTriggers = []string{"generate image", "show picture", "show image", "generate picture", "show me"}

var errEmptyResponse = errors.New("model returned an empty response")

// Chat answers conversation turns using the recent history of the chat as context.
type Chat struct {
	textGenerator port.TextGenerator
	textSender    port.TextSender
	imageSender   port.ImageSender
	imageFinder   port.ImageFinder
	history       port.HistoryReader
	historySize   int
	command       string
	debugReplies  bool

	l *zerolog.Logger
}

type ChatParams struct {
	TextGenerator port.TextGenerator
	TextSender    port.TextSender
	// ImageSender and ImageFinder are optional. Without a finder image requests are answered as text.
	ImageSender  port.ImageSender
	ImageFinder  port.ImageFinder
	History      port.HistoryReader
	HistorySize  int
	Command      string
	DebugReplies bool
}

func NewChat(p ChatParams) (*Chat, error) {
	switch {
	case p.TextGenerator == nil:
		return nil, fmt.Errorf("%w: text generator", domain.ErrMissingConfig)
	case p.TextSender == nil:
		return nil, fmt.Errorf("%w: text sender", domain.ErrMissingConfig)
	case p.History == nil:
		return nil, fmt.Errorf("%w: history", domain.ErrMissingConfig)
	}

	if p.HistorySize <= 0 {
		p.HistorySize = 5
	}

	logger := log.With().
		Str("command", p.Command).
		Str("handler", "chat").
		Logger()

	return &Chat{
		textGenerator: p.TextGenerator,
		textSender:    p.TextSender,
		imageSender:   p.ImageSender,
		imageFinder:   p.ImageFinder,
		history:       p.History,
		historySize:   p.HistorySize,
		command:       p.Command,
		debugReplies:  p.DebugReplies,
		l:             &logger,
	}, nil
}

func (c *Chat) GetCommand() string {
	return c.command
}

func (c *Chat) GetDescription() string {
	return "Chat with the bot by saying its name."
}

func (c *Chat) Respond(ctx context.Context, message *domain.Message, _ []string) error {
	l := c.l.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("func", "Respond").
		Logger()

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return domain.ErrEmptyPrompt
	}

	l.Debug().Str("prompt", text).Str("username", message.Username).Msg("handling request")

	if c.imageFinder != nil && domain.ContainsAny(text, imageTriggers) {
		return c.respondWithImage(ctx, &l, message)
	}

	prompts := c.buildPrompts(message)

	response, err := c.textGenerator.GenerateFromPrompt(ctx, prompts)
	if err != nil {
		return fmt.Errorf("failed to generate response: %w", err)
	}

	if strings.TrimSpace(response.Response) == "" {
		return errEmptyResponse
	}

	if _, err := c.textSender.SendMessageReply(ctx, message, response.Response); err != nil {
		return err
	}

	if c.debugReplies {
		c.sendDebugInfo(ctx, &l, message, response.Metadata, len(prompts))
	}

	return nil
}

func (c *Chat) respondWithImage(ctx context.Context, l *zerolog.Logger, message *domain.Message) error {
	query := RemoveStopwords(message.Text)
	if query == "" {
		_, err := c.textSender.SendMessageReply(ctx, message, imageNotFound)
		return err
	}

	l.Debug().Str("query", query).Msg("searching image")

	url, err := c.imageFinder.FindImage(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to find image: %w", err)
	}

	if _, err := c.textSender.SendMessageReply(ctx, message, imageReply); err != nil {
		return err
	}

	if c.imageSender == nil {
		_, err = c.textSender.SendMessageReply(ctx, message, url)
		return err
	}

	if err := c.imageSender.SendImageURLReply(ctx, message, url); err != nil {
		return err
	}

	return nil
}

// buildPrompts turns recent chat history into prompts, oldest first.
// The triggering message is always the final prompt.
func (c *Chat) buildPrompts(message *domain.Message) []domain.Prompt {
	entries := c.history.Recent(message.ChatID, c.historySize)

	recorded := slices.ContainsFunc(entries, func(e domain.HistoryEntry) bool {
		return !e.FromBot && e.MessageID == message.ID
	})

	if !recorded {
		entries = append(entries, domain.HistoryEntry{
			MessageID: message.ID,
			Username:  message.Username,
			Text:      message.Text,
			At:        message.Date,
		})
		if len(entries) > c.historySize {
			entries = entries[len(entries)-c.historySize:]
		}
	}

	prompts := make([]domain.Prompt, 0, len(entries))
	for _, entry := range entries {
		if entry.FromBot {
			prompts = append(prompts, domain.Prompt{Author: domain.System, Prompt: entry.Text})
			continue
		}

		prompts = append(prompts, domain.Prompt{
			Author: domain.User,
			Prompt: displayName(entry.Username) + ": " + entry.Text,
		})
	}

	return prompts
}

func (c *Chat) sendDebugInfo(ctx context.Context, l *zerolog.Logger, message *domain.Message,
	metadata domain.ResponseMetadata, length int) {
	debug := fmt.Sprintf(`debug:
model: %s
c tokens: %d | total tokens: %d
convo size: %d`,
		metadata.Model,
		metadata.CompletionTokens,
		metadata.TotalTokens,
		length)

	if _, err := c.textSender.SendMessageReply(ctx, message, debug); err != nil {
		l.Warn().Err(err).Msg("failed to send debug info")
	}
}

func displayName(username string) string {
	name := strings.Join(strings.Fields(username), "_")
	if name == "" {
		return "user"
	}

	return name
}
