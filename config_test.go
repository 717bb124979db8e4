package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cortex/internal/core/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[bot]
wake_phrases = ["cortex", "hey bot"]

[handler]
timeout = "30s"

[[feeds]]
name = "drops"
kind = "page"
url = "https://www.threads.net/@shop"
link_prefix = "/@shop/post/"
chat_id = -100123
interval = "10m"

[[feeds]]
url = "https://news.example/index.rss"
chat_id = -100456
`), 0o600))

	t.Setenv("CORTEX_TELEGRAM_BOT_TOKEN", "from-env")

	require.NoError(t, initConfig(cfg))

	assert.Equal(t, "from-env", viper.GetString("telegram.bot_token"))
	assert.Equal(t, []string{"cortex", "hey bot"}, viper.GetStringSlice("bot.wake_phrases"))
	assert.Equal(t, "!ask", viper.GetString("bot.one_shot_marker"))
	assert.Equal(t, 5, viper.GetInt("chat.history_size"))

	timeout, err := durationKey("handler.timeout")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	heartbeat, err := durationKey("bot.heartbeat_interval")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, heartbeat)

	feeds, err := feedsConfig()
	require.NoError(t, err)
	assert.Equal(t, []feedConfig{
		{
			Name:       "drops",
			Kind:       "page",
			URL:        "https://www.threads.net/@shop",
			LinkPrefix: "/@shop/post/",
			ChatID:     -100123,
			Interval:   10 * time.Minute,
		},
		{
			Name:   "https://news.example/index.rss",
			Kind:   "rss",
			URL:    "https://news.example/index.rss",
			ChatID: -100456,
		},
	}, feeds)
}

func TestInitConfig_MissingFileIsFine(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	require.NoError(t, initConfig(""))
	assert.Equal(t, "openrouter", viper.GetString("chat.provider"))
}

func TestInitConfig_ExplicitMissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	assert.Error(t, initConfig(filepath.Join(t.TempDir(), "nope.toml")))
}

func TestDurationKey_Invalid(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("handler.timeout", "soon")
	_, err := durationKey("handler.timeout")
	assert.Error(t, err)

	viper.Set("handler.timeout", "-1s")
	_, err = durationKey("handler.timeout")
	assert.Error(t, err)
}

func TestConfigureLogging(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("bot.log_level", "debug")
	viper.Set("bot.log_format", "console")
	assert.NoError(t, configureLogging())

	viper.Set("bot.log_level", "loud")
	assert.ErrorIs(t, configureLogging(), domain.ErrMissingConfig)
}

func TestNewTextGenerator(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("chat.provider", "anthropic")
	_, err := newTextGenerator()
	assert.ErrorIs(t, err, domain.ErrMissingConfig)

	viper.Set("anthropic.api_key", "key")
	gen, err := newTextGenerator()
	require.NoError(t, err)
	assert.NotNil(t, gen)

	viper.Set("chat.provider", "parrot")
	_, err = newTextGenerator()
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
}
