package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{UserID: 7, Name: "Jane", Email: "jane@x.com", Role: "Buyer"}

func TestMemoryStoreCreateResolve(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := s.Create(ctx, testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testIdentity, got)
}

func TestMemoryStoreResolveUnknown(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	_, ok, err := s.Resolve(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreDestroy(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := s.Create(ctx, testIdentity)
	require.NoError(t, err)

	require.NoError(t, s.Destroy(ctx, token))
	_, ok, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok, "resolve after destroy must be absent")

	// Idempotent: destroying again is not an error.
	require.NoError(t, s.Destroy(ctx, token))
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Now()
	clock = func() time.Time { return now }
	defer func() { clock = time.Now }()

	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	token, err := s.Create(ctx, testIdentity)
	require.NoError(t, err)

	now = now.Add(61 * time.Second)
	_, ok, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok, "expired session must resolve absent")
}

func TestMemoryStoreSlidingTTL(t *testing.T) {
	now := time.Now()
	clock = func() time.Time { return now }
	defer func() { clock = time.Now }()

	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	token, err := s.Create(ctx, testIdentity)
	require.NoError(t, err)

	// Keep touching the session every 40s; the sliding TTL must keep it
	// alive well past the original deadline.
	for i := 0; i < 5; i++ {
		now = now.Add(40 * time.Second)
		_, ok, err := s.Resolve(ctx, token)
		require.NoError(t, err)
		require.True(t, ok, "touched session must stay alive (touch %d)", i)
	}
}

func TestMemoryStoreConcurrentDestroy(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := s.Create(ctx, testIdentity)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, _ = s.Resolve(ctx, token)
		}()
		go func() {
			defer wg.Done()
			_ = s.Destroy(ctx, token)
		}()
	}
	wg.Wait()

	// Once all destroys have completed, the token must be gone.
	_, ok, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}
