package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

// HistoryRepo is the per-user capped conversation log. Append stamps the
// entry with the current time and drops the oldest entries past the cap.
type HistoryRepo interface {
	Get(ctx context.Context, userID string) ([]models.HistoryEntry, error)
	Append(ctx context.Context, userID string, payload json.RawMessage) (int, error)
}

// MemoryHistoryRepo keeps the log in process memory. Appends for all users
// serialize on one mutex, which preserves the FIFO cap under concurrent
// writers.
type MemoryHistoryRepo struct {
	mu      sync.RWMutex
	entries map[string][]models.HistoryEntry
	limit   int
	now     func() time.Time
}

func NewMemoryHistoryRepo(limit int) *MemoryHistoryRepo {
	return &MemoryHistoryRepo{
		entries: make(map[string][]models.HistoryEntry),
		limit:   limit,
		now:     time.Now,
	}
}

func (r *MemoryHistoryRepo) Get(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[userID]
	out := make([]models.HistoryEntry, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *MemoryHistoryRepo) Append(ctx context.Context, userID string, payload json.RawMessage) (int, error) {
	entry := models.HistoryEntry{
		ID:        uuid.NewString(),
		Payload:   payload,
		Timestamp: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append(r.entries[userID], entry)
	if len(entries) > r.limit {
		entries = entries[len(entries)-r.limit:]
	}
	r.entries[userID] = entries
	return len(entries), nil
}
