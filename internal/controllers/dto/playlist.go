package dto

import (
	"fmt"
	"strings"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/services"

	"github.com/google/uuid"
)

// CreatePlaylistRequest 是创建播放列表的请求体。
type CreatePlaylistRequest struct {
	ChannelID   string  `json:"channel_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Visibility  string  `json:"visibility"`
}

// ToCreatePlaylistInput 校验请求并映射为服务层输入。
func (r *CreatePlaylistRequest) ToCreatePlaylistInput() (services.CreatePlaylistInput, error) {
	channelID, err := uuid.Parse(strings.TrimSpace(r.ChannelID))
	if err != nil {
		return services.CreatePlaylistInput{}, fmt.Errorf("invalid channel_id: %w", err)
	}
	title := strings.TrimSpace(r.Title)
	if title == "" || len(title) > maxTitleLength {
		return services.CreatePlaylistInput{}, fmt.Errorf("title must be 1-%d characters", maxTitleLength)
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return services.CreatePlaylistInput{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	visibility, err := parseVisibility(r.Visibility, po.VisibilityPublic)
	if err != nil {
		return services.CreatePlaylistInput{}, err
	}
	return services.CreatePlaylistInput{
		ChannelID:   channelID,
		Title:       title,
		Description: r.Description,
		Visibility:  visibility,
	}, nil
}

// UpdatePlaylistRequest 是更新播放列表的请求体，字段均可选。
type UpdatePlaylistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

// ToUpdatePlaylistInput 校验请求并映射为服务层输入。
func (r *UpdatePlaylistRequest) ToUpdatePlaylistInput(playlistID uuid.UUID) (services.UpdatePlaylistInput, error) {
	input := services.UpdatePlaylistInput{PlaylistID: playlistID, Description: r.Description}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" || len(title) > maxTitleLength {
			return services.UpdatePlaylistInput{}, fmt.Errorf("title must be 1-%d characters", maxTitleLength)
		}
		input.Title = &title
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return services.UpdatePlaylistInput{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	if r.Visibility != nil {
		visibility, err := parseVisibility(*r.Visibility, "")
		if err != nil {
			return services.UpdatePlaylistInput{}, err
		}
		input.Visibility = &visibility
	}
	return input, nil
}

// AddPlaylistVideoRequest 是向播放列表追加视频的请求体。
type AddPlaylistVideoRequest struct {
	VideoID string `json:"video_id"`
}

// ParsedVideoID 解析 video_id 字段。
func (r *AddPlaylistVideoRequest) ParsedVideoID() (uuid.UUID, error) {
	videoID, err := uuid.Parse(strings.TrimSpace(r.VideoID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid video_id: %w", err)
	}
	return videoID, nil
}

// PinThumbnailRequest 是固定播放列表封面的请求体。
type PinThumbnailRequest struct {
	VideoID string `json:"video_id"`
}

// ParsedVideoID 解析 video_id 字段。
func (r *PinThumbnailRequest) ParsedVideoID() (uuid.UUID, error) {
	videoID, err := uuid.Parse(strings.TrimSpace(r.VideoID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid video_id: %w", err)
	}
	return videoID, nil
}
