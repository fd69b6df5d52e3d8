package dto_test

import (
	"strings"
	"testing"

	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCreateChannelInput(t *testing.T) {
	t.Run("valid request with all fields", func(t *testing.T) {
		description := "All about cats"

		req := &dto.CreateChannelRequest{
			Name:        "  Cat Videos  ",
			Handle:      "cat-videos",
			Description: &description,
		}

		input, err := req.ToCreateChannelInput()

		require.NoError(t, err)
		assert.Equal(t, "Cat Videos", input.Name)
		assert.Equal(t, "cat-videos", input.Handle)
		require.NotNil(t, input.Description)
		assert.Equal(t, description, *input.Description)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		req := &dto.CreateChannelRequest{Name: "   ", Handle: "handle"}

		input, err := req.ToCreateChannelInput()

		assert.Error(t, err)
		assert.Equal(t, services.CreateChannelInput{}, input)
	})

	t.Run("name over 120 characters rejected", func(t *testing.T) {
		req := &dto.CreateChannelRequest{Name: strings.Repeat("a", 121), Handle: "handle"}

		_, err := req.ToCreateChannelInput()

		assert.Error(t, err)
	})

	t.Run("handle with illegal characters rejected", func(t *testing.T) {
		for _, handle := range []string{"has space", "emoji🙂", "slash/name", ""} {
			req := &dto.CreateChannelRequest{Name: "name", Handle: handle}
			_, err := req.ToCreateChannelInput()
			assert.Error(t, err, "handle %q", handle)
		}
	})

	t.Run("handle allows dots underscores dashes", func(t *testing.T) {
		req := &dto.CreateChannelRequest{Name: "name", Handle: "a.b_c-D9"}

		input, err := req.ToCreateChannelInput()

		require.NoError(t, err)
		assert.Equal(t, "a.b_c-D9", input.Handle)
	})

	t.Run("description over 5000 characters rejected", func(t *testing.T) {
		description := strings.Repeat("x", 5001)
		req := &dto.CreateChannelRequest{Name: "name", Handle: "handle", Description: &description}

		_, err := req.ToCreateChannelInput()

		assert.Error(t, err)
	})
}

func TestToUpdateChannelInput(t *testing.T) {
	t.Run("all fields optional", func(t *testing.T) {
		req := &dto.UpdateChannelRequest{}

		input, err := req.ToUpdateChannelInput()

		require.NoError(t, err)
		assert.Nil(t, input.Name)
		assert.Nil(t, input.Description)
		assert.Nil(t, input.AvatarURL)
	})

	t.Run("name trimmed", func(t *testing.T) {
		name := "  New Name  "
		req := &dto.UpdateChannelRequest{Name: &name}

		input, err := req.ToUpdateChannelInput()

		require.NoError(t, err)
		require.NotNil(t, input.Name)
		assert.Equal(t, "New Name", *input.Name)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		name := "   "
		req := &dto.UpdateChannelRequest{Name: &name}

		_, err := req.ToUpdateChannelInput()

		assert.Error(t, err)
	})
}
