package port

import (
	"context"

	"cortex/internal/core/domain"
)

type Command interface {
	// Respond processes a message with its parsed arguments and replies to the originating chat.
	Respond(ctx context.Context, message *domain.Message, args []string) error
	// GetCommand retrieves the command token associated with a specific command handler.
	GetCommand() string
	// GetDescription returns a one-line human-readable description for help listings.
	GetDescription() string
}

type CommandRegistry interface {
	// Register adds a new command handler to the registry, failing on a duplicate token.
	Register(handler Command) error
	// Get retrieves a registered Command based on its token or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns all registered command tokens in sorted order.
	ListCommands() []string
}
