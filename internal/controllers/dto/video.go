package dto

import (
	"fmt"
	"strings"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/services"
)

const (
	maxTitleLength = 200
)

// CreateVideoRequest 是创建视频的请求体。
type CreateVideoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Visibility  string  `json:"visibility"`
	ContentType string  `json:"content_type"`
}

// ToCreateVideoInput 校验请求并映射为服务层输入。
func (r *CreateVideoRequest) ToCreateVideoInput() (services.CreateVideoInput, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" || len(title) > maxTitleLength {
		return services.CreateVideoInput{}, fmt.Errorf("title must be 1-%d characters", maxTitleLength)
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return services.CreateVideoInput{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	visibility, err := parseVisibility(r.Visibility, po.VisibilityPublic)
	if err != nil {
		return services.CreateVideoInput{}, err
	}
	contentType := strings.TrimSpace(r.ContentType)
	if contentType == "" {
		contentType = "video/mp4"
	}
	return services.CreateVideoInput{
		Title:       title,
		Description: r.Description,
		Visibility:  visibility,
		ContentType: contentType,
	}, nil
}

// UpdateVideoRequest 是更新视频的请求体，字段均可选。
type UpdateVideoRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	ThumbnailURL   *string `json:"thumbnail_url"`
	Status         *string `json:"status"`
	Visibility     *string `json:"visibility"`
	DurationMicros *int64  `json:"duration_micros"`
}

// ToUpdateVideoInput 校验请求并映射为服务层输入。
func (r *UpdateVideoRequest) ToUpdateVideoInput() (services.UpdateVideoInput, error) {
	input := services.UpdateVideoInput{
		Description:  r.Description,
		ThumbnailURL: r.ThumbnailURL,
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" || len(title) > maxTitleLength {
			return services.UpdateVideoInput{}, fmt.Errorf("title must be 1-%d characters", maxTitleLength)
		}
		input.Title = &title
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return services.UpdateVideoInput{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	if r.Status != nil {
		status := po.VideoStatus(strings.ToLower(strings.TrimSpace(*r.Status)))
		switch status {
		case po.VideoStatusPendingUpload, po.VideoStatusReady, po.VideoStatusFailed:
			input.Status = &status
		default:
			return services.UpdateVideoInput{}, fmt.Errorf("status must be one of pending_upload, ready, failed")
		}
	}
	if r.Visibility != nil {
		visibility, err := parseVisibility(*r.Visibility, "")
		if err != nil {
			return services.UpdateVideoInput{}, err
		}
		input.Visibility = &visibility
	}
	if r.DurationMicros != nil {
		if *r.DurationMicros <= 0 {
			return services.UpdateVideoInput{}, fmt.Errorf("duration_micros must be positive")
		}
		input.DurationMicros = r.DurationMicros
	}
	return input, nil
}

func parseVisibility(raw string, fallback po.Visibility) (po.Visibility, error) {
	value := po.Visibility(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" && fallback != "" {
		return fallback, nil
	}
	switch value {
	case po.VisibilityPublic, po.VisibilityUnlisted, po.VisibilityPrivate:
		return value, nil
	default:
		return "", fmt.Errorf("visibility must be one of public, unlisted, private")
	}
}
