package dto

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vidora/vidora-services-platform/internal/services"

	"github.com/google/uuid"
)

const (
	maxLinkTitleLength = 100
	maxLinkURLLength   = 2000
)

// CreateLinkRequest 是追加频道链接的请求体。
type CreateLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ToCreateLinkInput 校验请求并映射为服务层输入，channelID 来自路径参数。
func (r *CreateLinkRequest) ToCreateLinkInput(channelID uuid.UUID) (services.CreateLinkInput, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" || len(title) > maxLinkTitleLength {
		return services.CreateLinkInput{}, fmt.Errorf("title must be 1-%d characters", maxLinkTitleLength)
	}
	rawURL, err := validateLinkURL(r.URL)
	if err != nil {
		return services.CreateLinkInput{}, err
	}
	return services.CreateLinkInput{ChannelID: channelID, Title: title, URL: rawURL}, nil
}

// UpdateLinkRequest 是更新链接的请求体，字段均可选。
type UpdateLinkRequest struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
}

// ToUpdateLinkInput 校验请求并映射为服务层输入。
func (r *UpdateLinkRequest) ToUpdateLinkInput(linkID uuid.UUID) (services.UpdateLinkInput, error) {
	input := services.UpdateLinkInput{LinkID: linkID}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" || len(title) > maxLinkTitleLength {
			return services.UpdateLinkInput{}, fmt.Errorf("title must be 1-%d characters", maxLinkTitleLength)
		}
		input.Title = &title
	}
	if r.URL != nil {
		rawURL, err := validateLinkURL(*r.URL)
		if err != nil {
			return services.UpdateLinkInput{}, err
		}
		input.URL = &rawURL
	}
	return input, nil
}

// RepositionRequest 是重定位有序集合条目的请求体。
type RepositionRequest struct {
	Position int32 `json:"position"`
}

func validateLinkURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > maxLinkURLLength {
		return "", fmt.Errorf("url must be 1-%d characters", maxLinkURLLength)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("url must be an absolute http(s) URL")
	}
	return trimmed, nil
}
