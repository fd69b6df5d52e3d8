package dto

import (
	"fmt"
	"strings"

	"github.com/vidora/vidora-services-platform/internal/services"

	"github.com/google/uuid"
)

const maxCommentLength = 10000

// CreateCommentRequest 是发表评论或回复的请求体。
type CreateCommentRequest struct {
	Body            string  `json:"body"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// ToCreateCommentInput 校验请求并映射为服务层输入，videoID 来自路径参数。
func (r *CreateCommentRequest) ToCreateCommentInput(videoID uuid.UUID) (services.CreateCommentInput, error) {
	body := strings.TrimSpace(r.Body)
	if body == "" || len(body) > maxCommentLength {
		return services.CreateCommentInput{}, fmt.Errorf("body must be 1-%d characters", maxCommentLength)
	}
	input := services.CreateCommentInput{VideoID: videoID, Body: body}
	if r.ParentCommentID != nil {
		parentID, err := uuid.Parse(strings.TrimSpace(*r.ParentCommentID))
		if err != nil {
			return services.CreateCommentInput{}, fmt.Errorf("invalid parent_comment_id: %w", err)
		}
		input.ParentCommentID = &parentID
	}
	return input, nil
}

// UpdateCommentRequest 是修改评论正文的请求体。
type UpdateCommentRequest struct {
	Body string `json:"body"`
}

// ValidatedBody 校验并返回正文。
func (r *UpdateCommentRequest) ValidatedBody() (string, error) {
	body := strings.TrimSpace(r.Body)
	if body == "" || len(body) > maxCommentLength {
		return "", fmt.Errorf("body must be 1-%d characters", maxCommentLength)
	}
	return body, nil
}
