package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	chatKeyPrefix = "history:chat:" // List of chat records per user: history:chat:{user_id}
	execKeyPrefix = "history:exec:" // List of execution records per user: history:exec:{user_id}
	maxEntries    = 100             // Per-user list cap
	entryTTL      = 7 * 24 * time.Hour
)

// Repo stores per-user chat and execution history in Redis lists, newest
// first. A nil client disables it: every method becomes a no-op, since
// history is best-effort and must never fail a request.
type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

// Enabled reports whether a Redis client is attached.
func (r *Repo) Enabled() bool {
	return r != nil && r.client != nil
}

// ChatRecord is one stored chat interaction.
type ChatRecord struct {
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Response  any       `json:"response"`
	Language  string    `json:"language"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// ExecutionRecord is one stored code execution.
type ExecutionRecord struct {
	UserID    string    `json:"user_id"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	Result    any       `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordChat prepends a chat record to the user's history.
func (r *Repo) RecordChat(ctx context.Context, rec ChatRecord) error {
	if !r.Enabled() {
		return nil
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return r.push(ctx, chatKeyPrefix+rec.UserID, rec)
}

// RecordExecution prepends an execution record to the user's history.
func (r *Repo) RecordExecution(ctx context.Context, rec ExecutionRecord) error {
	if !r.Enabled() {
		return nil
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return r.push(ctx, execKeyPrefix+rec.UserID, rec)
}

// RecentChats returns up to n most recent chat records for the user.
func (r *Repo) RecentChats(ctx context.Context, userID string, n int64) ([]ChatRecord, error) {
	if !r.Enabled() {
		return []ChatRecord{}, nil
	}

	raw, err := r.client.LRange(ctx, chatKeyPrefix+userID, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	out := make([]ChatRecord, 0, len(raw))
	for _, item := range raw {
		var rec ChatRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// RecentExecutions returns up to n most recent execution records.
func (r *Repo) RecentExecutions(ctx context.Context, userID string, n int64) ([]ExecutionRecord, error) {
	if !r.Enabled() {
		return []ExecutionRecord{}, nil
	}

	raw, err := r.client.LRange(ctx, execKeyPrefix+userID, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read execution history: %w", err)
	}

	out := make([]ExecutionRecord, 0, len(raw))
	for _, item := range raw {
		var rec ExecutionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Repo) push(ctx context.Context, key string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}

	// Pipeline keeps push, trim and expire in one round trip.
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxEntries-1)
	pipe.Expire(ctx, key, entryTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store history record: %w", err)
	}
	return nil
}
