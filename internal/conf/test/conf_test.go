package conf_test

import (
	"testing"
	"time"

	"github.com/vidora/vidora-services-platform/internal/conf"

	"github.com/stretchr/testify/assert"
)

func TestHTTPServerTimeout(t *testing.T) {
	var nilServer *conf.HTTPServer
	assert.Equal(t, 30*time.Second, nilServer.Timeout())
	assert.Equal(t, 30*time.Second, (&conf.HTTPServer{}).Timeout())
	assert.Equal(t, 30*time.Second, (&conf.HTTPServer{TimeoutSeconds: -1}).Timeout())
	assert.Equal(t, 10*time.Second, (&conf.HTTPServer{TimeoutSeconds: 10}).Timeout())
}

func TestMediaUploadTTL(t *testing.T) {
	var nilMedia *conf.Media
	assert.Equal(t, 15*time.Minute, nilMedia.UploadTTL())
	assert.Equal(t, 15*time.Minute, (&conf.Media{}).UploadTTL())
	assert.Equal(t, 900*time.Second, (&conf.Media{UploadTTLSeconds: 900}).UploadTTL())
}

func TestTrendingNormalize(t *testing.T) {
	fallback := conf.Trending{LikeWeight: 3, ViewWeight: 1, CommentWeight: 2}

	t.Run("nil falls back", func(t *testing.T) {
		var nilTrending *conf.Trending
		assert.Equal(t, fallback, nilTrending.Normalize())
	})

	t.Run("all zero falls back", func(t *testing.T) {
		assert.Equal(t, fallback, (&conf.Trending{}).Normalize())
	})

	t.Run("negative weight falls back", func(t *testing.T) {
		in := &conf.Trending{LikeWeight: 5, ViewWeight: -1, CommentWeight: 2}
		assert.Equal(t, fallback, in.Normalize())
	})

	t.Run("valid weights pass through", func(t *testing.T) {
		in := &conf.Trending{LikeWeight: 4, ViewWeight: 0.5, CommentWeight: 1}
		assert.Equal(t, *in, in.Normalize())
	})

	t.Run("partial zeros allowed", func(t *testing.T) {
		in := &conf.Trending{LikeWeight: 0, ViewWeight: 1, CommentWeight: 0}
		assert.Equal(t, *in, in.Normalize())
	})
}
