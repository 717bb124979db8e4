package command

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog/log"
)

// DuplicateCommandError is returned when two handlers claim the same token.
type DuplicateCommandError struct {
	Token string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Token)
}

type Registry struct {
	mu       sync.RWMutex
	commands map[string]port.Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]port.Command)}
}

func (r *Registry) Register(handler port.Command) error {
	token := strings.ToLower(strings.TrimSpace(handler.GetCommand()))
	if token == "" {
		return fmt.Errorf("%w: command token", domain.ErrMissingConfig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	if _, exists := r.commands[token]; exists {
		return &DuplicateCommandError{Token: token}
	}

	log.Info().Str("handler", token).Msg("adding command handler to registry")
	r.commands[token] = handler

	return nil
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Trace().Str("command", command).Msg("fetching command handler from registry")

	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.commands[strings.ToLower(command)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, command)
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Strings(keys)

	return keys
}
