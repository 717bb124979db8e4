package port

import (
	"context"

	"cortex/internal/core/domain"
)

type TextSender interface {
	// SendMessage sends text to a chat and returns the ID of the last sent message.
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)
	// SendMessageReply sends a reply to a specified message with the given text and returns the sent message ID.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error)
	// SendChatAction emits a single chat action (e.g. typing) in a given chat.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action) error
}

type ImageSender interface {
	// SendImageURLReply sends an image to the chat as a reply using a URL in response to the provided message.
	SendImageURLReply(ctx context.Context, message *domain.Message, url string) error
}
