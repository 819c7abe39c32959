package events

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopPublisher(t *testing.T) {
	err := NoopPublisher{}.Publish(context.Background(), Event{Type: AlertCreated})
	assert.NoError(t, err)
}

func TestNewRedisPublisher_Defaults(t *testing.T) {
	p := NewRedisPublisher(nil, "", 0)
	assert.Equal(t, DefaultJournalKey, p.key)
	assert.EqualValues(t, DefaultJournalMaxLen, p.maxLen)
}

func TestRedisPublisher_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	p := NewRedisPublisher(client, "test_events", 10)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := p.Publish(ctx, Event{
		Type:      AlertCreated,
		Timestamp: time.Now(),
		Alert:     &models.Alert{ID: "a1"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to write event to Redis journal")

	_, err = p.Recent(ctx, 5)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read Redis journal")
}

func TestRedisPublisher_RecentZero(t *testing.T) {
	p := NewRedisPublisher(nil, "k", 10)
	events, err := p.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}
