package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"cortex/internal/core/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "CORTEX"

type feedConfig struct {
	Name       string        `mapstructure:"name"`
	Kind       string        `mapstructure:"kind"`
	URL        string        `mapstructure:"url"`
	LinkPrefix string        `mapstructure:"link_prefix"`
	ChatID     int64         `mapstructure:"chat_id"`
	Interval   time.Duration `mapstructure:"interval"`
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.log_format", "json")
	viper.SetDefault("bot.wake_phrases", []string{"cortex"})
	viper.SetDefault("bot.stop_phrases", []string{"thanks cortex", "bye cortex", "stop cortex"})
	viper.SetDefault("bot.one_shot_marker", "!ask")
	viper.SetDefault("bot.acknowledgement", "Anytime! Say my name if you need me again.")
	viper.SetDefault("bot.apology", "I'm taking a nap, the noggin's foggy... Ask again later...")
	viper.SetDefault("bot.heartbeat_interval", "5s")
	viper.SetDefault("bot.timezone", "Local")
	viper.SetDefault("bot.debug_replies", false)

	viper.SetDefault("handler.timeout", "2m")

	viper.SetDefault("telegram.allowed_chat_ids", []int64{})

	viper.SetDefault("chat.provider", "openrouter")
	viper.SetDefault("chat.system_prompt", "Chat GPT is a friendly chatbot named Cortex")
	viper.SetDefault("chat.history_size", 5)
	viper.SetDefault("chat.history_chats", 256)

	viper.SetDefault("http.rate_limit", 5.0)
	viper.SetDefault("http.burst", 5)
	viper.SetDefault("http.timeout", "20s")
	viper.SetDefault("http.user_agent", "cortex-bot/1.0")

	viper.SetDefault("mute.log_chat_id", 0)
	viper.SetDefault("mute.daily_reset", false)

	viper.SetDefault("status.listen", "")
}

// initConfig loads .env, the config file and the environment, then sets up logging.
func initConfig(cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	if err := configureLogging(); err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Info().Str("file", used).Msg("config loaded")
	}

	return nil
}

func configureLogging() error {
	var logLevel zerolog.Level

	switch strings.ToLower(viper.GetString("bot.log_level")) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info", "":
		logLevel = zerolog.InfoLevel
	case "warn", "warning":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	case "trace":
		logLevel = zerolog.TraceLevel
	default:
		return fmt.Errorf("%w: unknown bot.log_level %q", domain.ErrMissingConfig, viper.GetString("bot.log_level"))
	}

	zerolog.SetGlobalLevel(logLevel)

	switch strings.ToLower(viper.GetString("bot.log_format")) {
	case "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	case "json", "":
	default:
		return fmt.Errorf("%w: unknown bot.log_format %q", domain.ErrMissingConfig, viper.GetString("bot.log_format"))
	}

	return nil
}

func durationKey(key string) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s in config: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration for %s in config", key)
	}

	return d, nil
}

func feedsConfig() ([]feedConfig, error) {
	var feeds []feedConfig
	if err := viper.UnmarshalKey("feeds", &feeds); err != nil {
		return nil, fmt.Errorf("error decoding feeds: %w", err)
	}

	for i := range feeds {
		f := &feeds[i]
		f.Kind = strings.ToLower(f.Kind)
		if f.Kind == "" {
			f.Kind = "rss"
		}
		if f.Name == "" {
			f.Name = f.URL
		}
		if f.URL == "" {
			return nil, fmt.Errorf("%w: url of feed %d", domain.ErrMissingConfig, i)
		}
	}

	return feeds, nil
}
