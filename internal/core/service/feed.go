package service

import (
	"context"
	"fmt"
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultFeedInterval = 5 * time.Minute
	feedSeenSize        = 1024
)

type FeedConfig struct {
	Name     string
	ChatID   int64
	Interval time.Duration
}

// FeedWatcher polls one feed and posts items it has not posted before.
type FeedWatcher struct {
	cfg    FeedConfig
	source port.FeedSource
	sender port.TextSender
	seen   *lru.Cache[string, struct{}]
	l      *zerolog.Logger
}

func NewFeedWatcher(cfg FeedConfig, source port.FeedSource, sender port.TextSender) (*FeedWatcher, error) {
	if source == nil || sender == nil {
		return nil, fmt.Errorf("%w: feed %q source or sender", domain.ErrMissingConfig, cfg.Name)
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("%w: feed %q chat id", domain.ErrMissingConfig, cfg.Name)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultFeedInterval
	}

	seen, err := lru.New[string, struct{}](feedSeenSize)
	if err != nil {
		return nil, err
	}

	logger := log.With().Str("component", "feed").Str("feed", cfg.Name).Logger()

	return &FeedWatcher{
		cfg:    cfg,
		source: source,
		sender: sender,
		seen:   seen,
		l:      &logger,
	}, nil
}

// Run polls right away and then every interval until ctx is done.
func (w *FeedWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.l.Info().Dur("interval", w.cfg.Interval).Int64("chatId", w.cfg.ChatID).Msg("watching feed")

	for {
		if _, err := w.Poll(ctx); err != nil {
			w.l.Error().Err(err).Msg("error polling feed")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			w.l.Debug().Msg("stopping feed watcher")
			return nil
		}
	}
}

// Poll fetches the feed once and returns how many new items were posted.
func (w *FeedWatcher) Poll(ctx context.Context) (int, error) {
	items, err := w.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("error fetching feed: %w", err)
	}

	posted := 0

	// items arrive newest first, post in chronological order
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if item.Link == "" || w.seen.Contains(item.Link) {
			continue
		}

		if _, err := w.sender.SendMessage(ctx, w.cfg.ChatID, FormatFeedItem(item)); err != nil {
			return posted, fmt.Errorf("error posting feed item: %w", err)
		}

		w.seen.Add(item.Link, struct{}{})
		posted++
		w.l.Debug().Str("link", item.Link).Msg("posted feed item")
	}

	if posted == 0 {
		w.l.Trace().Msg("no new feed items")
	}

	return posted, nil
}

func FormatFeedItem(item port.FeedItem) string {
	if item.Title == "" {
		return "New post: " + item.Link
	}

	text := item.Title + "\n" + item.Link
	if item.ImageURL != "" {
		text += "\n" + item.ImageURL
	}

	return text
}
