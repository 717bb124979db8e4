package port

import "cortex/internal/core/domain"

type HistoryRecorder interface {
	Record(chatID int64, entry domain.HistoryEntry)
}

type HistoryReader interface {
	// Recent returns up to limit entries for a chat, oldest first.
	Recent(chatID int64, limit int) []domain.HistoryEntry
}
