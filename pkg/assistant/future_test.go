package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_Value(t *testing.T) {
	f := Go(func() (int, error) { return 42, nil })

	<-f.Done()
	assert.True(t, f.Ready())

	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFuture_Error(t *testing.T) {
	f := Go(func() (string, error) { return "", errors.New("boom") })

	_, err := f.Wait(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestFuture_WaitGivesUpOnContext(t *testing.T) {
	release := make(chan struct{})
	f := Go(func() (string, error) {
		<-release
		return "late", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.Ready())

	close(release)

	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", v)
}
