package service

import (
	"context"
	"sync"
	"time"

	"cortex/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const DefaultHeartbeatInterval = 5 * time.Second

type ChatActionSender interface {
	SendChatAction(ctx context.Context, chatID int64, action domain.Action) error
}

// Heartbeater keeps a liveness signal visible in a chat until stop is called.
type Heartbeater interface {
	Start(ctx context.Context, chatID int64) (stop func())
}

type Heartbeat struct {
	sender   ChatActionSender
	interval time.Duration
	action   domain.Action
}

func NewHeartbeat(sender ChatActionSender, interval time.Duration) *Heartbeat {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}

	return &Heartbeat{sender: sender, interval: interval, action: domain.Typing}
}

// Start emits one signal right away and then one per interval. The returned stop
// func is idempotent and returns only after the repeating goroutine has exited.
func (h *Heartbeat) Start(ctx context.Context, chatID int64) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	h.pulse(ctx, chatID)

	go func() {
		defer close(done)

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Trace().Int64("chatId", chatID).Msg("heartbeat stopped")
				return
			case <-ticker.C:
				h.pulse(ctx, chatID)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (h *Heartbeat) pulse(ctx context.Context, chatID int64) {
	if err := h.sender.SendChatAction(ctx, chatID, h.action); err != nil && ctx.Err() == nil {
		log.Debug().Err(err).Int64("chatId", chatID).Msg("failed to send chat action")
	}
}
