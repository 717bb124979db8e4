package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const noticeTimeout = 15 * time.Second

type DispatcherConfig struct {
	BotID           int64
	WakePhrases     []string
	StopPhrases     []string
	OneShotMarker   string
	Acknowledgement string
	Apology         string
	// HandlerTimeout bounds a single handler invocation. Zero disables the bound.
	HandlerTimeout time.Duration
}

type DispatcherParams struct {
	Config       DispatcherConfig
	Registry     port.CommandRegistry
	Sessions     *SessionTracker
	Conversation port.Command
	// OneShot is bound to Config.OneShotMarker. It may be nil.
	OneShot    port.Command
	Sender     port.TextSender
	Heartbeat  Heartbeater
	Authorizer Authorizer
}

// Dispatcher routes every inbound message to at most one handler.
type Dispatcher struct {
	cfg          DispatcherConfig
	registry     port.CommandRegistry
	sessions     *SessionTracker
	conversation port.Command
	oneShot      port.Command
	sender       port.TextSender
	heartbeat    Heartbeater
	auth         Authorizer
	queue        *SerialQueue
	l            *zerolog.Logger
}

func NewDispatcher(p DispatcherParams) (*Dispatcher, error) {
	switch {
	case p.Registry == nil:
		return nil, fmt.Errorf("%w: command registry", domain.ErrMissingConfig)
	case p.Sessions == nil:
		return nil, fmt.Errorf("%w: session tracker", domain.ErrMissingConfig)
	case p.Conversation == nil:
		return nil, fmt.Errorf("%w: conversation handler", domain.ErrMissingConfig)
	case p.Sender == nil:
		return nil, fmt.Errorf("%w: text sender", domain.ErrMissingConfig)
	case p.Heartbeat == nil:
		return nil, fmt.Errorf("%w: heartbeat", domain.ErrMissingConfig)
	case len(p.Config.WakePhrases) == 0:
		return nil, fmt.Errorf("%w: wake phrase", domain.ErrMissingConfig)
	}

	logger := log.With().Str("component", "dispatcher").Logger()

	return &Dispatcher{
		cfg:          p.Config,
		registry:     p.Registry,
		sessions:     p.Sessions,
		conversation: p.Conversation,
		oneShot:      p.OneShot,
		sender:       p.Sender,
		heartbeat:    p.Heartbeat,
		auth:         p.Authorizer,
		queue:        NewSerialQueue(),
		l:            &logger,
	}, nil
}

// Submit queues the message behind earlier messages from the same user and returns immediately.
func (d *Dispatcher) Submit(ctx context.Context, message *domain.Message) {
	d.queue.Enqueue(message.UserID, func() {
		d.Dispatch(ctx, message)
	})
}

// Wait blocks until all submitted messages have been dispatched.
func (d *Dispatcher) Wait() {
	d.queue.Wait()
}

// Classify decides the route of a message without changing any state.
// Rules are evaluated in a fixed order and the first match wins.
func (d *Dispatcher) Classify(message *domain.Message) (domain.Route, port.Command, []string) {
	if message.FromBot || message.UserID == d.cfg.BotID {
		return domain.RouteIgnored, nil, nil
	}

	if d.auth != nil && !d.auth.IsAuthorized(message.ChatID) {
		return domain.RouteIgnored, nil, nil
	}

	if domain.ContainsAny(message.Text, d.cfg.StopPhrases) && d.sessions.IsActive(message.UserID) {
		return domain.RouteStopRequested, nil, nil
	}

	token := domain.ParseCommand(message.Text)

	if d.oneShot != nil && d.cfg.OneShotMarker != "" && token == d.cfg.OneShotMarker {
		return domain.RouteOneShot, d.oneShot, domain.ParseCommandArgs(message.Text)
	}

	if domain.ContainsAny(message.Text, d.cfg.WakePhrases) || d.sessions.IsActive(message.UserID) {
		return domain.RouteConversationTurn, d.conversation, nil
	}

	if token != "" {
		if cmd, err := d.registry.Get(token); err == nil {
			return domain.RouteRegisteredCommand, cmd, domain.ParseCommandArgs(message.Text)
		}
	}

	return domain.RouteIgnored, nil, nil
}

// Dispatch classifies a message, applies its session transition and runs the chosen handler.
// Handler failures never escape; the route taken is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, message *domain.Message) domain.Route {
	route, cmd, args := d.Classify(message)

	l := d.l.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Int64("userId", message.UserID).
		Str("route", string(route)).
		Logger()

	switch route {
	case domain.RouteIgnored:
		l.Trace().Msg("ignoring message")
		return route
	case domain.RouteStopRequested:
		d.sessions.Deactivate(message.UserID)
		l.Info().Msg("conversation stopped")
		d.notify(ctx, &l, message, d.cfg.Acknowledgement)
		return route
	case domain.RouteConversationTurn:
		d.sessions.Activate(message.UserID)
	}

	l = l.With().Str("command", cmd.GetCommand()).Logger()
	l.Debug().Msg("invoking handler")

	d.invoke(ctx, &l, cmd, message, args)

	return route
}

func (d *Dispatcher) invoke(ctx context.Context, l *zerolog.Logger, cmd port.Command, message *domain.Message,
	args []string) {
	stop := d.heartbeat.Start(ctx, message.ChatID)
	defer stop()

	err := d.run(ctx, cmd, message, args)
	if err == nil {
		return
	}

	if ctx.Err() != nil {
		l.Info().Err(err).Msg("handler interrupted by shutdown")
		return
	}

	if errors.Is(err, domain.ErrSendingReplyFailed) {
		l.Warn().Err(err).Msg("failed to deliver handler reply")
		return
	}

	l.Error().Err(err).Msg("handler failed")

	stop()
	d.notify(ctx, l, message, d.cfg.Apology)
}

func (d *Dispatcher) run(parent context.Context, cmd port.Command, message *domain.Message, args []string) error {
	ctx := parent
	if d.cfg.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, d.cfg.HandlerTimeout)
		defer cancel()
	}

	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("handler panicked: %v", r)
			}
		}()

		done <- cmd.Respond(ctx, message, args)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if err := parent.Err(); err != nil {
			return fmt.Errorf("handler cancelled: %w", err)
		}
		return fmt.Errorf("%w: %w", domain.ErrHandlerTimeout, ctx.Err())
	}
}

// notify sends a dispatcher-originated message. It survives cancellation of the message context.
func (d *Dispatcher) notify(ctx context.Context, l *zerolog.Logger, message *domain.Message, text string) {
	if text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), noticeTimeout)
	defer cancel()

	if _, err := d.sender.SendMessageReply(ctx, message, text); err != nil {
		l.Warn().Err(err).Msg("failed to send notice")
	}
}
