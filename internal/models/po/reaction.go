package po

import (
	"time"

	"github.com/google/uuid"
)

// ReactionTarget 表示反应指向的实体类别。
type ReactionTarget string

// 反应目标常量定义
const (
	ReactionTargetVideo   ReactionTarget = "video"
	ReactionTargetComment ReactionTarget = "comment"
)

// Reaction 表示 platform.reactions 表的数据库实体。
// 三态关系：Liked=true 点赞，Liked=false 点踩，无行表示无反应；
// 每个 (user, target) 对至多一行。
type Reaction struct {
	UserID     uuid.UUID      `db:"user_id"`
	TargetKind ReactionTarget `db:"target_kind"`
	TargetID   uuid.UUID      `db:"target_id"`
	Liked      bool           `db:"liked"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
