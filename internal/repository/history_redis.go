package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

// RedisHistoryRepo stores each user's log as a Redis list. RPUSH + LTRIM in
// one MULTI pipeline keeps the cap atomic under concurrent appenders.
type RedisHistoryRepo struct {
	client *redis.Client
	limit  int
}

func NewRedisHistoryRepo(client *redis.Client, limit int) *RedisHistoryRepo {
	return &RedisHistoryRepo{client: client, limit: limit}
}

func historyKey(userID string) string {
	return "history:" + userID
}

func (r *RedisHistoryRepo) Get(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	raw, err := r.client.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history get: %w", err)
	}

	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("history get: corrupt entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *RedisHistoryRepo) Append(ctx context.Context, userID string, payload json.RawMessage) (int, error) {
	entry := models.HistoryEntry{
		ID:        uuid.NewString(),
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return 0, fmt.Errorf("history append: %w", err)
	}

	key := historyKey(userID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-r.limit), -1)
	llen := pipe.LLen(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("history append: %w", err)
	}

	return int(llen.Val()), nil
}
