package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog/log"
)

// SessionCounter reports how many standing conversations are open.
type SessionCounter interface {
	ActiveCount() int
}

type DebugParams struct {
	TextSender port.TextSender
	Sessions   SessionCounter
	Reminders  port.ReminderScheduler
	Started    time.Time
	Command    string
}

type Debug struct {
	textSender port.TextSender
	sessions   SessionCounter
	reminders  port.ReminderScheduler
	started    time.Time
	command    string
}

func NewDebug(p DebugParams) *Debug {
	if p.Started.IsZero() {
		p.Started = time.Now()
	}

	return &Debug{
		textSender: p.TextSender,
		sessions:   p.Sessions,
		reminders:  p.Reminders,
		started:    p.Started,
		command:    p.Command,
	}
}

func (d *Debug) GetCommand() string {
	return d.command
}

func (d *Debug) GetDescription() string {
	return "Shows runtime statistics of the bot."
}

const kb = 1024
const debugTemplate = `allocated mem: %d KB
threads running: %d
heap: %d KB
stack: %d KB
uptime: %s
active sessions: %d
pending reminders: %d
compiled with %s for %s-%s
`
const metricCount = 3

func (d *Debug) Respond(ctx context.Context, message *domain.Message, _ []string) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", d.GetCommand()).
		Logger()

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	for _, sample := range data {
		l.Debug().Str("name", sample.Name).Msgf("%d", sample.Value.Uint64())
	}

	l.Info().Msg("handling request")

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	var sessions, reminders int
	if d.sessions != nil {
		sessions = d.sessions.ActiveCount()
	}
	if d.reminders != nil {
		reminders = len(d.reminders.Pending())
	}

	_, err := d.textSender.SendMessageReply(ctx, message,
		fmt.Sprintf(
			debugTemplate,
			data[2].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			data[1].Value.Uint64()/kb,
			time.Since(d.started).Truncate(time.Second),
			sessions,
			reminders,
			runtime.Version(), goos, goarch,
		))
	if err != nil {
		return err
	}

	return nil
}
