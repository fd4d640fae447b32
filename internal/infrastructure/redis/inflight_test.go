package redis

import (
	"context"
	"testing"

	"github.com/livinglux/coliving-site/internal/public/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ application.SubmissionGuard = (*Guard)(nil)
var _ application.SubmissionGuard = (*LocalGuard)(nil)

func TestLocalGuard(t *testing.T) {
	g := NewLocalGuard()
	ctx := context.Background()

	release, err := g.Acquire(ctx, "owner-1")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "owner-1")
	assert.ErrorIs(t, err, application.ErrSubmissionInFlight)

	other, err := g.Acquire(ctx, "owner-2")
	require.NoError(t, err)
	other()

	release()
	release()
	again, err := g.Acquire(ctx, "owner-1")
	require.NoError(t, err)
	again()
}
