package command

import (
	"context"
	"fmt"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

const (
	checkMutedUsage    = "Please specify a username. Usage: `!check_muted <username>`"
	checkMuteTimeUsage = "Please specify a username. Usage: `!check_mute_time <username>`"
)

// CheckMuted reports whether a user is muted right now and for how long.
type CheckMuted struct {
	mutes      port.MuteLookup
	textSender port.TextSender
	command    string
}

func NewCheckMuted(mutes port.MuteLookup, sender port.TextSender, command string) *CheckMuted {
	return &CheckMuted{mutes: mutes, textSender: sender, command: command}
}

func (c *CheckMuted) GetCommand() string {
	return c.command
}

func (c *CheckMuted) GetDescription() string {
	return "Checks if a user is currently muted and for how long."
}

func (c *CheckMuted) Respond(ctx context.Context, message *domain.Message, args []string) error {
	var reply string

	switch rec, ok := lookupUser(c.mutes, args); {
	case len(args) == 0:
		reply = checkMutedUsage
	case !ok:
		reply = fmt.Sprintf("User %s not found.", args[0])
	case rec.Muted():
		reply = fmt.Sprintf("%s has been muted for %s.", args[0], domain.FormatClock(c.mutes.CurrentMute(rec)))
	default:
		reply = fmt.Sprintf("%s is not currently muted.", args[0])
	}

	_, err := c.textSender.SendMessageReply(ctx, message, reply)
	return err
}

// CheckMuteTime reports the cumulative muted time of a user.
type CheckMuteTime struct {
	mutes      port.MuteLookup
	textSender port.TextSender
	command    string
}

func NewCheckMuteTime(mutes port.MuteLookup, sender port.TextSender, command string) *CheckMuteTime {
	return &CheckMuteTime{mutes: mutes, textSender: sender, command: command}
}

func (c *CheckMuteTime) GetCommand() string {
	return c.command
}

func (c *CheckMuteTime) GetDescription() string {
	return "Checks the total mute time for a user for the current day."
}

func (c *CheckMuteTime) Respond(ctx context.Context, message *domain.Message, args []string) error {
	var reply string

	switch rec, ok := lookupUser(c.mutes, args); {
	case len(args) == 0:
		reply = checkMuteTimeUsage
	case !ok:
		reply = fmt.Sprintf("User %s not found.", args[0])
	default:
		total := rec.TotalToday + c.mutes.CurrentMute(rec)
		reply = fmt.Sprintf("%s has been muted for a total of %s today.", args[0], domain.FormatClock(total))
	}

	_, err := c.textSender.SendMessageReply(ctx, message, reply)
	return err
}

func lookupUser(mutes port.MuteLookup, args []string) (domain.MuteRecord, bool) {
	if len(args) == 0 {
		return domain.MuteRecord{}, false
	}

	return mutes.Lookup(args[0])
}
