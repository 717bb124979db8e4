package main

import (
	"context"
	"fmt"
	"time"

	"cortex/internal/adapters/catalog"
	"cortex/internal/adapters/fetcher"
	"cortex/internal/adapters/generator"
	"cortex/internal/adapters/handler"
	"cortex/internal/adapters/scraper"
	"cortex/internal/adapters/sender"
	"cortex/internal/adapters/sentiment"
	"cortex/internal/adapters/status"
	"cortex/internal/adapters/store"
	"cortex/internal/adapters/web"
	"cortex/internal/core/domain"
	"cortex/internal/core/domain/command"
	"cortex/internal/core/port"
	"cortex/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func serve(ctx context.Context) error {
	started := time.Now()
	log.Info().Str("version", version).Msg("starting cortex...")

	token := viper.GetString("telegram.bot_token")
	if token == "" {
		return fmt.Errorf("%w: telegram.bot_token", domain.ErrMissingConfig)
	}

	heartbeatInterval, err := durationKey("bot.heartbeat_interval")
	if err != nil {
		return err
	}
	handlerTimeout, err := durationKey("handler.timeout")
	if err != nil {
		return err
	}
	httpTimeout, err := durationKey("http.timeout")
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(viper.GetString("bot.timezone"))
	if err != nil {
		return fmt.Errorf("invalid bot.timezone in config: %w", err)
	}

	feeds, err := feedsConfig()
	if err != nil {
		return err
	}

	history, err := service.NewHistory(viper.GetInt("chat.history_chats"))
	if err != nil {
		return fmt.Errorf("failed initializing history: %w", err)
	}

	var updates *handler.Update

	b, err := bot.New(token,
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			updates.Handle(ctx, b, update)
		}),
		bot.WithAllowedUpdates(bot.AllowedUpdates{"message", "chat_member"}),
	)
	if err != nil {
		return fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed fetching bot identity: %w", err)
	}
	log.Info().Str("username", me.Username).Int64("id", me.ID).Msg("connected to telegram")

	s := sender.NewTelegram(b, sender.WithHistory(history, me.Username))

	textGenerator, err := newTextGenerator()
	if err != nil {
		return err
	}

	client := web.NewClient(web.Config{
		RateLimit: viper.GetFloat64("http.rate_limit"),
		Burst:     viper.GetInt("http.burst"),
		Timeout:   httpTimeout,
		UserAgent: viper.GetString("http.user_agent"),
	})

	sessions := service.NewSessionTracker(store.NewMemory[int64, domain.Session]())
	reminders := service.NewReminders(s)
	defer reminders.StopAll()

	mutes := service.NewMuteTracker(service.MuteTrackerParams{
		Store:     store.NewMemory[int64, domain.MuteRecord](),
		Sender:    s,
		LogChatID: viper.GetInt64("mute.log_chat_id"),
	})

	help, err := catalog.Default()
	if err != nil {
		return err
	}

	registry := command.NewRegistry()

	chat, err := command.NewChat(command.ChatParams{
		TextGenerator: textGenerator,
		TextSender:    s,
		ImageSender:   s,
		ImageFinder:   scraper.NewImageSearch(client, viper.GetString("images.search_url"), viper.GetString("images.fallback_url")),
		History:       history,
		HistorySize:   viper.GetInt("chat.history_size"),
		Command:       "chat",
		DebugReplies:  viper.GetBool("bot.debug_replies"),
	})
	if err != nil {
		return fmt.Errorf("failed initializing chat handler: %w", err)
	}

	oneShotMarker := viper.GetString("bot.one_shot_marker")
	ask := command.NewAsk(textGenerator, s, oneShotMarker)

	handlers := []port.Command{
		ask,
		command.NewHelp(s, registry, help, "!help"),
		command.NewSetReminder(reminders, s, loc, "!set_reminder"),
		command.NewCheckMuted(mutes, s, "!check_muted"),
		command.NewCheckMuteTime(mutes, s, "!check_mute_time"),
		command.NewDebug(command.DebugParams{
			TextSender: s,
			Sessions:   sessions,
			Reminders:  reminders,
			Started:    started,
			Command:    "!debug",
		}),
	}

	var news port.NewsFetcher
	if key := viper.GetString("news.api_key"); key != "" {
		news = fetcher.NewNewsAPI(client, "", key)
	}

	var weather *command.Weather
	if key := viper.GetString("weather.api_key"); key != "" {
		weather = command.NewWeather(fetcher.NewWeatherstack(client, "", key), s, "!weather")
		handlers = append(handlers, weather)
	} else {
		log.Warn().Msg("weather.api_key not set, !weather disabled")
	}

	if news != nil {
		handlers = append(handlers, command.NewNews(news, weather, s, "!news"))
	} else {
		log.Warn().Msg("news.api_key not set, !news disabled")
	}

	handlers = append(handlers,
		command.NewStock(command.StockParams{
			Quotes:     fetcher.NewYahoo(client, ""),
			News:       news,
			Scorer:     sentiment.NewLexicon(),
			TextSender: s,
			Command:    "!stock",
		}),
		command.NewPokemonCard(command.PokemonCardParams{
			Cards:      fetcher.NewPokemonTCG(client, "", viper.GetString("pokemontcg.api_key")),
			Rates:      fetcher.NewExchangeRate(client, ""),
			TextSender: s,
			Command:    "!pokemon_card",
		}),
	)

	for _, h := range handlers {
		if err := registry.Register(h); err != nil {
			return fmt.Errorf("failed registering command: %w", err)
		}
	}

	authorizer, err := service.NewAuthorizer()
	if err != nil {
		return err
	}

	dispatcher, err := service.NewDispatcher(service.DispatcherParams{
		Config: service.DispatcherConfig{
			BotID:           me.ID,
			WakePhrases:     viper.GetStringSlice("bot.wake_phrases"),
			StopPhrases:     viper.GetStringSlice("bot.stop_phrases"),
			OneShotMarker:   oneShotMarker,
			Acknowledgement: viper.GetString("bot.acknowledgement"),
			Apology:         viper.GetString("bot.apology"),
			HandlerTimeout:  handlerTimeout,
		},
		Registry:     registry,
		Sessions:     sessions,
		Conversation: chat,
		OneShot:      ask,
		Sender:       s,
		Heartbeat:    service.NewHeartbeat(s, heartbeatInterval),
		Authorizer:   authorizer,
	})
	if err != nil {
		return fmt.Errorf("failed initializing dispatcher: %w", err)
	}
	defer dispatcher.Wait()

	updates = handler.NewUpdate(handler.UpdateParams{
		Dispatcher: dispatcher,
		History:    history,
		Mutes:      mutes,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Strs("commands", registry.ListCommands()).Msg("bot listening")
		b.Start(gctx)
		return nil
	})

	if addr := viper.GetString("status.listen"); addr != "" {
		srv := status.NewServer(status.Params{
			Version:   version,
			Started:   started,
			Sessions:  sessions,
			Reminders: reminders,
			Commands:  registry,
		})
		g.Go(func() error {
			return srv.Run(gctx, addr)
		})
	}

	for _, f := range feeds {
		watcher, err := newFeedWatcher(f, client, s)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	if viper.GetBool("mute.daily_reset") {
		g.Go(func() error {
			mutes.ResetDaily(gctx)
			return nil
		})
	}

	err = g.Wait()
	log.Info().Msg("shutting down")

	return err
}

func newTextGenerator() (port.TextGenerator, error) {
	model := viper.GetString("chat.model")
	systemPrompt := viper.GetString("chat.system_prompt")

	switch provider := viper.GetString("chat.provider"); provider {
	case "openrouter", "":
		key := viper.GetString("openrouter.api_key")
		if key == "" {
			return nil, fmt.Errorf("%w: openrouter.api_key", domain.ErrMissingConfig)
		}
		return generator.NewOpenRouter(key, model, systemPrompt), nil
	case "anthropic":
		key := viper.GetString("anthropic.api_key")
		if key == "" {
			return nil, fmt.Errorf("%w: anthropic.api_key", domain.ErrMissingConfig)
		}
		return generator.NewAnthropic(key, model, systemPrompt), nil
	default:
		return nil, fmt.Errorf("%w: unknown chat.provider %q", domain.ErrMissingConfig, provider)
	}
}

func newFeedWatcher(f feedConfig, client *web.Client, s port.TextSender) (*service.FeedWatcher, error) {
	var source port.FeedSource

	switch f.Kind {
	case "rss":
		source = scraper.NewRSS(client, f.URL)
	case "page":
		page, err := scraper.NewPage(client, f.URL, f.LinkPrefix)
		if err != nil {
			return nil, err
		}
		source = page
	default:
		return nil, fmt.Errorf("%w: unknown kind %q of feed %s", domain.ErrMissingConfig, f.Kind, f.Name)
	}

	return service.NewFeedWatcher(service.FeedConfig{
		Name:     f.Name,
		ChatID:   f.ChatID,
		Interval: f.Interval,
	}, source, s)
}
