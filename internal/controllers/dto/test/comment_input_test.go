package dto_test

import (
	"strings"
	"testing"

	"github.com/vidora/vidora-services-platform/internal/controllers/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCreateCommentInput(t *testing.T) {
	videoID := uuid.New()

	t.Run("top level comment", func(t *testing.T) {
		req := &dto.CreateCommentRequest{Body: "  great video  "}

		input, err := req.ToCreateCommentInput(videoID)

		require.NoError(t, err)
		assert.Equal(t, videoID, input.VideoID)
		assert.Equal(t, "great video", input.Body)
		assert.Nil(t, input.ParentCommentID)
	})

	t.Run("reply carries parent id", func(t *testing.T) {
		parentID := uuid.New()
		raw := parentID.String()
		req := &dto.CreateCommentRequest{Body: "agreed", ParentCommentID: &raw}

		input, err := req.ToCreateCommentInput(videoID)

		require.NoError(t, err)
		require.NotNil(t, input.ParentCommentID)
		assert.Equal(t, parentID, *input.ParentCommentID)
	})

	t.Run("malformed parent id rejected", func(t *testing.T) {
		raw := "not-a-uuid"
		req := &dto.CreateCommentRequest{Body: "hi", ParentCommentID: &raw}

		_, err := req.ToCreateCommentInput(videoID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid parent_comment_id")
	})

	t.Run("empty body rejected", func(t *testing.T) {
		req := &dto.CreateCommentRequest{Body: "   "}

		_, err := req.ToCreateCommentInput(videoID)

		assert.Error(t, err)
	})

	t.Run("body over 10000 characters rejected", func(t *testing.T) {
		req := &dto.CreateCommentRequest{Body: strings.Repeat("x", 10001)}

		_, err := req.ToCreateCommentInput(videoID)

		assert.Error(t, err)
	})
}

func TestUpdateCommentValidatedBody(t *testing.T) {
	t.Run("trimmed body returned", func(t *testing.T) {
		req := &dto.UpdateCommentRequest{Body: "  edited  "}

		body, err := req.ValidatedBody()

		require.NoError(t, err)
		assert.Equal(t, "edited", body)
	})

	t.Run("blank body rejected", func(t *testing.T) {
		req := &dto.UpdateCommentRequest{Body: " "}

		_, err := req.ValidatedBody()

		assert.Error(t, err)
	})
}
