package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/talentpipe/ops-api/internal/model"
)

// ErrCorrupt signals that the persisted log exists but does not parse. The
// store recovers by resetting to an empty log instead of failing startup.
var ErrCorrupt = errors.New("persisted notification log is corrupt")

// Log persists the notification feed. The whole log is the unit of
// persistence: Save rewrites it in full, so a reader of the persisted form
// never observes a partial mutation.
type Log interface {
	Load(ctx context.Context) ([]model.Notification, error)
	Save(ctx context.Context, items []model.Notification) error
}

// RedisLog keeps the serialized log under one fixed key.
type RedisLog struct {
	client *redis.Client
	key    string
}

// DefaultKey is the process-wide storage key for the feed.
const DefaultKey = "ops:notifications"

func NewRedisLog(client *redis.Client, key string) *RedisLog {
	if key == "" {
		key = DefaultKey
	}
	return &RedisLog{client: client, key: key}
}

func (l *RedisLog) Load(ctx context.Context) ([]model.Notification, error) {
	raw, err := l.client.Get(ctx, l.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notification log: %w", err)
	}
	return decode(raw)
}

func (l *RedisLog) Save(ctx context.Context, items []model.Notification) error {
	raw, err := encode(items)
	if err != nil {
		return err
	}
	if err := l.client.Set(ctx, l.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save notification log: %w", err)
	}
	return nil
}

// FileLog persists the log as one JSON file, for single-node runs without
// Redis. Writes go through a temp file and rename so a concurrent reader
// never sees a torn write.
type FileLog struct {
	path string
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

func (l *FileLog) Load(_ context.Context) ([]model.Notification, error) {
	raw, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notification log: %w", err)
	}
	return decode(raw)
}

func (l *FileLog) Save(_ context.Context, items []model.Notification) error {
	raw, err := encode(items)
	if err != nil {
		return err
	}
	tmp := l.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write notification log: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("failed to replace notification log: %w", err)
	}
	return nil
}

func encode(items []model.Notification) ([]byte, error) {
	if items == nil {
		items = []model.Notification{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification log: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) ([]model.Notification, error) {
	var items []model.Notification
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return items, nil
}
