package command

import (
	"context"
	"fmt"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

type Help struct {
	textSender port.TextSender
	registry   port.CommandRegistry
	catalog    port.HelpCatalog
	command    string
}

func NewHelp(sender port.TextSender, registry port.CommandRegistry, catalog port.HelpCatalog, command string) *Help {
	return &Help{textSender: sender, registry: registry, catalog: catalog, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) GetDescription() string {
	return "Lists all available commands or detailed information about a specific command."
}

func (h *Help) Respond(ctx context.Context, message *domain.Message, args []string) error {
	if len(args) > 0 {
		_, err := h.textSender.SendMessageReply(ctx, message, h.detail(strings.ToLower(args[0])))
		return err
	}

	_, err := h.textSender.SendMessageReply(ctx, message, h.list())
	return err
}

func (h *Help) detail(name string) string {
	if !strings.HasPrefix(name, "!") {
		name = "!" + name
	}

	if h.catalog != nil {
		if usage, ok := h.catalog.Usage(name); ok {
			return usage
		}
	}

	if cmd, err := h.registry.Get(name); err == nil {
		return fmt.Sprintf("%s\n- %s", cmd.GetCommand(), cmd.GetDescription())
	}

	return fmt.Sprintf("Command **%s** not found. Use `!help` to see the list of available commands.", name)
}

func (h *Help) list() string {
	var b strings.Builder
	b.WriteString("📖 Available commands:\n")

	for _, token := range h.registry.ListCommands() {
		cmd, err := h.registry.Get(token)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s - %s\n", token, cmd.GetDescription())
	}

	b.WriteString("\nMention my name to start a conversation. Use `!help <command>` for details.")

	return b.String()
}
