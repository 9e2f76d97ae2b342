package notify

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(limit int) *Feed {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFeed(limit, logrus.NewEntry(logger))
}

func TestLoadingToastIsReplacedInPlace(t *testing.T) {
	f := newTestFeed(0)
	id := f.Loading("Listing item...")
	require.NotEmpty(t, id)

	assert.Equal(t, id, f.Success(id, "Product successfully listed!"))

	snap := f.Drain()
	require.Len(t, snap.Toasts, 1)
	assert.Equal(t, KindSuccess, snap.Toasts[0].Kind)
	assert.Equal(t, "Product successfully listed!", snap.Toasts[0].Message)
	assert.Empty(t, f.Drain().Toasts)
}

func TestDrainKeepsOpenLoadingToasts(t *testing.T) {
	f := newTestFeed(0)
	loading := f.Loading("Listing item...")
	f.Error("", "Failed to Cancel Order")
	f.Navigate("/all-items")

	snap := f.Drain()
	assert.Len(t, snap.Toasts, 2)
	assert.Equal(t, "/all-items", snap.NavigateTo)

	snap = f.Drain()
	require.Len(t, snap.Toasts, 1)
	assert.Equal(t, loading, snap.Toasts[0].ID)
	assert.Empty(t, snap.NavigateTo)
}

func TestFeedIsBounded(t *testing.T) {
	f := newTestFeed(2)
	f.Error("", "one")
	f.Error("", "two")
	f.Error("", "three")

	snap := f.Drain()
	require.Len(t, snap.Toasts, 2)
	assert.Equal(t, "two", snap.Toasts[0].Message)
	assert.Equal(t, "three", snap.Toasts[1].Message)
}
