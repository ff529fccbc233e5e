// internal/history/redis.go
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storebot/internal/models"
)

const keyPrefix = "chat:history:"

// RedisLog persists conversation turns as a Redis list per user, trimmed
// to a retention limit. Appends are best-effort from the caller's
// perspective; the caller decides what a failure means.
type RedisLog struct {
	client *redis.Client
	limit  int64
}

func NewRedisLog(client *redis.Client, limit int) *RedisLog {
	if limit <= 0 {
		limit = 200
	}
	return &RedisLog{client: client, limit: int64(limit)}
}

func key(userID string) string {
	return keyPrefix + userID
}

// Append records one turn at the tail of the user's history list.
func (l *RedisLog) Append(ctx context.Context, userID string, role models.TurnRole, message string) error {
	turn := models.ConversationTurn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, key(userID), string(data))
	pipe.LTrim(ctx, key(userID), -l.limit, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

// Replay returns the retained turns for a user, oldest first.
func (l *RedisLog) Replay(ctx context.Context, userID string) ([]models.ConversationTurn, error) {
	raw, err := l.client.LRange(ctx, key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	turns := make([]models.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var turn models.ConversationTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// Skip entries that don't decode rather than failing replay.
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
