package session

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/clients"
	"storefront/internal/events"
	"storefront/internal/usecase"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := clients.NewMarketplaceHTTPClient("http://127.0.0.1:0", time.Second, logger)
	build := NewBuilder(client, events.NopPublisher{}, usecase.ListingFormConfig{RedirectDelay: time.Second, RedirectPath: "/all-items"}, logger)
	store := NewStore(ttl, build, logger)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	return store, &clock
}

func TestAcquireReusesLiveSession(t *testing.T) {
	store, _ := newTestStore(time.Minute)

	first, created := store.Acquire("")
	require.True(t, created)
	require.NotEmpty(t, first.ID)

	again, created := store.Acquire(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)
	assert.Equal(t, 1, store.Len())
}

func TestUnknownIDGetsFreshSession(t *testing.T) {
	store, _ := newTestStore(time.Minute)

	sess, created := store.Acquire("forged-id")
	assert.True(t, created)
	assert.NotEqual(t, "forged-id", sess.ID)
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	store, clock := newTestStore(time.Minute)
	idle, _ := store.Acquire("")
	*clock = clock.Add(30 * time.Second)
	busy, _ := store.Acquire("")

	*clock = clock.Add(45 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	_, created := store.Acquire(busy.ID)
	assert.False(t, created)
	fresh, created := store.Acquire(idle.ID)
	assert.True(t, created)
	assert.NotEqual(t, idle.ID, fresh.ID)
}
