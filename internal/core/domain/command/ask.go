package command

import (
	"context"
	"fmt"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const askUsage = "Please ask a question. Usage: `!ask <question>`"

// Ask answers a single question without chat history and without opening a conversation.
type Ask struct {
	textGenerator port.TextGenerator
	textSender    port.TextSender
	command       string
	l             *zerolog.Logger
}

func NewAsk(generator port.TextGenerator, sender port.TextSender, command string) *Ask {
	logger := log.With().Str("command", command).Str("handler", "ask").Logger()

	return &Ask{
		textGenerator: generator,
		textSender:    sender,
		command:       command,
		l:             &logger,
	}
}

func (a *Ask) GetCommand() string {
	return a.command
}

func (a *Ask) GetDescription() string {
	return "Ask a one-off question without starting a conversation."
}

func (a *Ask) Respond(ctx context.Context, message *domain.Message, args []string) error {
	question := strings.Join(args, " ")
	if question == "" {
		_, err := a.textSender.SendMessageReply(ctx, message, askUsage)
		return err
	}

	a.l.Debug().Int("messageId", message.ID).Str("question", question).Msg("handling request")

	response, err := a.textGenerator.GenerateFromPrompt(ctx, []domain.Prompt{{
		Author: domain.User,
		Prompt: displayName(message.Username) + ": " + question,
	}})
	if err != nil {
		return fmt.Errorf("failed to generate answer: %w", err)
	}

	if strings.TrimSpace(response.Response) == "" {
		return errEmptyResponse
	}

	_, err = a.textSender.SendMessageReply(ctx, message, response.Response)
	return err
}
