package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

const (
	reminderUsage       = "Please specify the date, time, and reminder message. Usage: `!set_reminder <date/time> - <message> [-e]`"
	reminderBadFormat   = "Invalid format. Use: `!set_reminder <date/time> - <message> [-e]`"
	reminderBadDate     = "Invalid date/time format. Please try again."
	reminderInPast      = "That time has already passed. Please pick a time in the future."
	reminderTimeDisplay = "2006-01-02 15:04 MST"
	mentionFlag         = "-e"
)

var reminderLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02 15:04",
	"2006-01-02 3:04PM",
	"2006-01-02 3:04 PM",
	"January 2, 2006 15:04",
	"January 2 2006 15:04",
	"Jan 2, 2006 15:04",
	"Jan 2 2006 15:04",
	"2006-01-02",
}

type SetReminder struct {
	scheduler  port.ReminderScheduler
	textSender port.TextSender
	location   *time.Location
	command    string
}

// NewSetReminder creates the reminder handler. Dates without a zone are read in loc.
func NewSetReminder(scheduler port.ReminderScheduler, sender port.TextSender, loc *time.Location,
	command string) *SetReminder {
	if loc == nil {
		loc = time.Local
	}

	return &SetReminder{scheduler: scheduler, textSender: sender, location: loc, command: command}
}

func (r *SetReminder) GetCommand() string {
	return r.command
}

func (r *SetReminder) GetDescription() string {
	return "Sets a reminder for a specific date and time."
}

func (r *SetReminder) Respond(ctx context.Context, message *domain.Message, args []string) error {
	reply, err := r.schedule(message.ChatID, strings.Join(args, " "))
	if err != nil {
		return err
	}

	_, err = r.textSender.SendMessageReply(ctx, message, reply)
	return err
}

func (r *SetReminder) schedule(chatID int64, input string) (string, error) {
	if input == "" {
		return reminderUsage, nil
	}

	when, text, mention, ok := ParseReminder(input)
	if !ok {
		return reminderBadFormat, nil
	}

	at, err := r.parseTime(when)
	if err != nil {
		return reminderBadDate, nil
	}

	reminder, err := r.scheduler.Schedule(chatID, at, text, mention)
	if errors.Is(err, domain.ErrReminderInPast) {
		return reminderInPast, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to schedule reminder: %w", err)
	}

	reply := fmt.Sprintf("Reminder set for %s: %q", reminder.At.In(r.location).Format(reminderTimeDisplay), text)
	if mention {
		reply += " (🚨)"
	}

	return reply, nil
}

func (r *SetReminder) parseTime(value string) (time.Time, error) {
	for _, layout := range reminderLayouts {
		if at, err := time.ParseInLocation(layout, value, r.location); err == nil {
			return at, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date/time %q", value)
}

// ParseReminder splits "<date/time> - <message> [-e]" into its parts.
// The mention flag may be written as "... -e" or "... - -e".
func ParseReminder(input string) (when, text string, mention, ok bool) {
	input = strings.TrimSpace(input)

	if strings.HasSuffix(input, " "+mentionFlag) {
		mention = true
		input = strings.TrimSpace(strings.TrimSuffix(input, mentionFlag))
		input = strings.TrimSpace(strings.TrimSuffix(input, " -"))
	}

	when, text, found := strings.Cut(input, " - ")
	when = strings.TrimSpace(when)
	text = strings.TrimSpace(text)

	if !found || when == "" || text == "" {
		return "", "", false, false
	}

	return when, text, mention, true
}
