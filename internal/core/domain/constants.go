package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrCommandNotFound    = errors.New("command not found")
	ErrHandlerTimeout     = errors.New("handler timed out")
	ErrMissingConfig      = errors.New("missing required configuration")
	ErrNotFound           = errors.New("not found")
	ErrReminderInPast     = errors.New("reminder time is in the past")
)
