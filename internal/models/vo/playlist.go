package vo

import (
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/google/uuid"
)

// PlaylistDetail 封装播放列表视图，视频按 position 升序排列。
type PlaylistDetail struct {
	PlaylistID       uuid.UUID        `json:"playlist_id"`
	ChannelID        uuid.UUID        `json:"channel_id"`
	Title            string           `json:"title"`
	Description      *string          `json:"description"`
	Visibility       string           `json:"visibility"`
	ThumbnailVideoID *uuid.UUID       `json:"thumbnail_video_id,omitempty"`
	Videos           []*PlaylistEntry `json:"videos"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// PlaylistEntry 封装播放列表中单个视频条目。
type PlaylistEntry struct {
	VideoID  uuid.UUID `json:"video_id"`
	Position int32     `json:"position"`
	AddedAt  time.Time `json:"added_at"`
}

// NewPlaylistDetail 从实体与条目构造播放列表 VO。
func NewPlaylistDetail(playlist *po.Playlist, entries []po.PlaylistVideo) *PlaylistDetail {
	if playlist == nil {
		return nil
	}
	videos := make([]*PlaylistEntry, 0, len(entries))
	for i := range entries {
		videos = append(videos, &PlaylistEntry{
			VideoID:  entries[i].VideoID,
			Position: entries[i].Position,
			AddedAt:  entries[i].AddedAt,
		})
	}
	return &PlaylistDetail{
		PlaylistID:       playlist.PlaylistID,
		ChannelID:        playlist.ChannelID,
		Title:            playlist.Title,
		Description:      playlist.Description,
		Visibility:       string(playlist.Visibility),
		ThumbnailVideoID: playlist.ThumbnailVideoID,
		Videos:           videos,
		CreatedAt:        playlist.CreatedAt,
		UpdatedAt:        playlist.UpdatedAt,
	}
}
