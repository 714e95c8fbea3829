package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, ttl time.Duration) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return session.NewRedisStore(client, ttl), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, mr := newStore(t, time.Hour)
	ctx := context.Background()

	sess := &models.Session{
		ID:        "abc",
		UserID:    1,
		Email:     "admin@example.org",
		Name:      "Admin",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Create(ctx, sess))
	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Role, got.Role)
	assert.True(t, sess.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, store.Delete(ctx, "abc"))
	got, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Session{ID: "short", UserID: 2}))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_UnknownAndEmptyID(t *testing.T) {
	store, _ := newStore(t, time.Minute)
	ctx := context.Background()

	got, err := store.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, store.Create(ctx, &models.Session{}))
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := session.NewRedisStore(client, time.Minute)
	mr.Close()

	_, err = store.Get(context.Background(), "abc")
	assert.Error(t, err)
}
