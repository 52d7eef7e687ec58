package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/blog-moderation/backend/internal/models"
)

func TestRedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	rdb, err := NewRedisClient(ctx, mr.Addr(), "")
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	sub := rdb.Subscribe(ctx, "moderation.events")
	defer func() { _ = sub.Close() }()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	pub := NewRedisPublisher(rdb, "moderation.events")
	require.NoError(t, pub.Publish(ctx, models.Event{Type: models.EventDraftPublished, ID: "b_1", At: at}))

	select {
	case msg := <-sub.Channel():
		var got models.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, models.EventDraftPublished, got.Type)
		assert.Equal(t, "b_1", got.ID)
		assert.True(t, at.Equal(got.At))
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestNewRedisClientPingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), addr, "")
	assert.Nil(t, rdb)
	assert.ErrorContains(t, err, "redis ping")
}

func TestRedisPublisherRequiresPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	_, err := NewRedisClient(context.Background(), mr.Addr(), "wrong")
	assert.Error(t, err)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "secret")
	require.NoError(t, err)
	_ = rdb.Close()
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard{}.Publish(context.Background(), models.Event{Type: models.EventUserApproved}))
}
