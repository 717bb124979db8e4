// Package status exposes health and runtime counters of the bot over HTTP.
package status

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type SessionCounter interface {
	ActiveCount() int
}

type ReminderCounter interface {
	Count() int
}

type CommandLister interface {
	ListCommands() []string
}

type Params struct {
	Version   string
	Started   time.Time
	Sessions  SessionCounter
	Reminders ReminderCounter
	Commands  CommandLister
}

type Server struct {
	app *fiber.App
	p   Params
	l   *zerolog.Logger
}

func NewServer(p Params) *Server {
	if p.Started.IsZero() {
		p.Started = time.Now()
	}

	logger := log.With().Str("component", "status").Logger()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())

	s := &Server{app: app, p: p, l: &logger}

	app.Get("/healthz", s.health)
	app.Get("/status", s.status)

	return s
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) status(c *fiber.Ctx) error {
	resp := fiber.Map{
		"version":       s.p.Version,
		"started":       s.p.Started.UTC().Format(time.RFC3339),
		"uptimeSeconds": int64(time.Since(s.p.Started).Seconds()),
	}

	if s.p.Sessions != nil {
		resp["activeSessions"] = s.p.Sessions.ActiveCount()
	}
	if s.p.Reminders != nil {
		resp["pendingReminders"] = s.p.Reminders.Count()
	}
	if s.p.Commands != nil {
		resp["commands"] = s.p.Commands.ListCommands()
	}

	return c.JSON(resp)
}

// Run listens on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)

	go func() {
		s.l.Info().Str("addr", addr).Msg("status server listening")
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.l.Debug().Msg("shutting down status server")
		return s.app.ShutdownWithTimeout(5 * time.Second)
	}
}

func (s *Server) App() *fiber.App {
	return s.app
}
