package po

import (
	"time"

	"github.com/google/uuid"
)

// Comment 表示 platform.comments 表的数据库实体。
// ParentCommentID 非空时为回复；回复只允许挂在顶层评论下（单层嵌套）。
type Comment struct {
	CommentID       uuid.UUID  `db:"comment_id"`
	VideoID         uuid.UUID  `db:"video_id"`
	AuthorChannelID uuid.UUID  `db:"author_channel_id"` // 以频道身份发表
	ParentCommentID *uuid.UUID `db:"parent_comment_id"`
	Body            string     `db:"body"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// CommentWithStats 表示评论列表行，附带排序所需的聚合键。
// LikeCount 只统计正向反应，点踩不参与排序。
type CommentWithStats struct {
	Comment
	LikeCount  int64
	ReplyCount int64
}
