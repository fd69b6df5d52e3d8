package vo

import (
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/google/uuid"
)

// CommentView 封装评论列表行视图。
type CommentView struct {
	CommentID       uuid.UUID  `json:"comment_id"`
	VideoID         uuid.UUID  `json:"video_id"`
	AuthorChannelID uuid.UUID  `json:"author_channel_id"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty"`
	Body            string     `json:"body"`
	LikeCount       int64      `json:"like_count"`
	ReplyCount      int64      `json:"reply_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewCommentView 从聚合行构造评论 VO。
func NewCommentView(row *po.CommentWithStats) *CommentView {
	if row == nil {
		return nil
	}
	return &CommentView{
		CommentID:       row.CommentID,
		VideoID:         row.VideoID,
		AuthorChannelID: row.AuthorChannelID,
		ParentCommentID: row.ParentCommentID,
		Body:            row.Body,
		LikeCount:       row.LikeCount,
		ReplyCount:      row.ReplyCount,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

// NewCommentViews 批量转换评论聚合行。
func NewCommentViews(rows []po.CommentWithStats) []*CommentView {
	out := make([]*CommentView, 0, len(rows))
	for i := range rows {
		out = append(out, NewCommentView(&rows[i]))
	}
	return out
}
