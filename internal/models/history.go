package models

import (
	"encoding/json"
	"time"
)

// HistoryEntry is one appended item in a user's conversation log.
// Entries are never mutated after creation.
type HistoryEntry struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// HistoryResponse is the reply for a history read.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Success bool           `json:"success"`
}

// HistoryAppendResponse is the reply for a history append.
type HistoryAppendResponse struct {
	Success      bool `json:"success"`
	MessageCount int  `json:"messageCount"`
}
