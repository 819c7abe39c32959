package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/border_alert_system/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	DefaultJournalKey    = "border_alert_events"
	DefaultJournalMaxLen = 1000
)

type EventType string

const (
	AlertCreated    EventType = "alert.created"
	IncidentUpdated EventType = "incident.updated"
)

// Event - запись журнала событий
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	UserID    string                 `json:"user_id,omitempty"`
	Alert     *models.Alert          `json:"alert,omitempty"`
	Incident  *models.Incident       `json:"incident,omitempty"`
	Update    *models.IncidentUpdate `json:"update,omitempty"`
}

// Publisher - интерфейс для записи событий в журнал
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher используется, когда журнал не настроен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// RedisPublisher - реализация Publisher, хранящая последние события в списке Redis
type RedisPublisher struct {
	redisClient *redis.Client
	key         string
	maxLen      int64
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client, key string, maxLen int64) *RedisPublisher {
	if key == "" {
		key = DefaultJournalKey
	}
	if maxLen <= 0 {
		maxLen = DefaultJournalMaxLen
	}
	return &RedisPublisher{
		redisClient: client,
		key:         key,
		maxLen:      maxLen,
	}
}

// Publish добавляет событие в начало списка и обрезает журнал до maxLen записей
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := p.redisClient.TxPipeline()
	pipe.LPush(ctx, p.key, payload)
	pipe.LTrim(ctx, p.key, 0, p.maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write event to Redis journal: %w", err)
	}
	return nil
}

// Recent возвращает до n последних событий, новые первыми
func (p *RedisPublisher) Recent(ctx context.Context, n int64) ([]Event, error) {
	if n <= 0 {
		return []Event{}, nil
	}
	raw, err := p.redisClient.LRange(ctx, p.key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read Redis journal: %w", err)
	}

	out := make([]Event, 0, len(raw))
	for _, item := range raw {
		var event Event
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal event: %w", err)
		}
		out = append(out, event)
	}
	return out, nil
}
