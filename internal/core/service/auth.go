package service

import (
	"errors"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Authorizer interface {
	IsAuthorized(chatID int64) bool
}

// ChatAuthorizer allows chats on an allowlist. An empty allowlist allows every chat.
type ChatAuthorizer struct {
	allowlist []int64
}

func NewAuthorizer() (*ChatAuthorizer, error) {
	var list []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &list)
	if err != nil {
		return nil, errors.New("failed to load allowed chat IDs")
	}

	return &ChatAuthorizer{allowlist: list}, nil
}

func (a *ChatAuthorizer) IsAuthorized(chatID int64) bool {
	if len(a.allowlist) == 0 || slices.Contains(a.allowlist, chatID) {
		return true
	}

	log.Debug().Int64("chatId", chatID).Msg("chat not in allowlist")
	return false
}
