package metadata_test

import (
	"context"
	"testing"

	"github.com/vidora/vidora-services-platform/internal/metadata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectAndFromContext(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		meta := metadata.HandlerMetadata{
			UserID:         uuid.New().String(),
			ChannelID:      uuid.New().String(),
			IdempotencyKey: "key-1",
		}

		ctx := metadata.Inject(context.Background(), meta)

		got, ok := metadata.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, meta, got)
	})

	t.Run("zero metadata not injected", func(t *testing.T) {
		ctx := metadata.Inject(context.Background(), metadata.HandlerMetadata{})

		_, ok := metadata.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, ok := metadata.FromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestUserUUID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := uuid.New()
		meta := metadata.HandlerMetadata{UserID: id.String()}

		got, ok := meta.UserUUID()
		require.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := metadata.HandlerMetadata{}.UserUUID()
		assert.False(t, ok)
	})

	t.Run("malformed", func(t *testing.T) {
		_, ok := metadata.HandlerMetadata{UserID: "nope"}.UserUUID()
		assert.False(t, ok)
	})
}

func TestChannelUUID(t *testing.T) {
	id := uuid.New()

	got, ok := metadata.HandlerMetadata{ChannelID: id.String()}.ChannelUUID()
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = metadata.HandlerMetadata{ChannelID: "   "}.ChannelUUID()
	assert.False(t, ok)
}
