package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	ctx := context.Background()

	_, ok := UserID(ctx)
	assert.False(t, ok)
	assert.Nil(t, UserIDPtr(ctx))

	ctx = WithUser(ctx, 12)
	id, ok := UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint64(12), id)
	assert.Equal(t, uint64(12), *UserIDPtr(ctx))

	// zero is treated as no actor
	_, ok = UserID(WithUser(context.Background(), 0))
	assert.False(t, ok)
}
