package service

import (
	"sync"

	"cortex/internal/core/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultHistorySize  = 5
	DefaultHistoryChats = 256
	maxHistoryPerChat   = 50
)

// History keeps the latest messages of recently active chats in memory.
// The least recently used chat is evicted once the chat limit is reached.
type History struct {
	mu    sync.Mutex
	chats *lru.Cache[int64, []domain.HistoryEntry]
}

func NewHistory(chats int) (*History, error) {
	if chats <= 0 {
		chats = DefaultHistoryChats
	}

	cache, err := lru.New[int64, []domain.HistoryEntry](chats)
	if err != nil {
		return nil, err
	}

	return &History{chats: cache}, nil
}

func (h *History) Record(chatID int64, entry domain.HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, _ := h.chats.Get(chatID)
	entries = append(entries, entry)
	if len(entries) > maxHistoryPerChat {
		entries = append([]domain.HistoryEntry(nil), entries[len(entries)-maxHistoryPerChat:]...)
	}

	h.chats.Add(chatID, entries)
}

// Recent returns up to limit of the latest entries, oldest first.
func (h *History) Recent(chatID int64, limit int) []domain.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, ok := h.chats.Get(chatID)
	if !ok || limit <= 0 {
		return nil
	}

	if limit > len(entries) {
		limit = len(entries)
	}

	return append([]domain.HistoryEntry(nil), entries[len(entries)-limit:]...)
}
