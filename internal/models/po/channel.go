// Package po 定义面向持久化的数据对象（Persistent Objects），由 Repository 层使用。
// PO 对象映射数据库表结构，不直接暴露给上层业务逻辑。
package po

import (
	"time"

	"github.com/google/uuid"
)

// Channel 表示 platform.channels 表的数据库实体。
// 一个用户可以拥有多个频道，频道是链接、视频、播放列表的归属范围。
type Channel struct {
	ChannelID   uuid.UUID `db:"channel_id"`   // 主键（UUID v4）
	OwnerUserID uuid.UUID `db:"owner_user_id"` // 拥有者用户 ID（外键 auth.users）
	Name        string    `db:"name"`          // 频道名称（必填）
	Handle      string    `db:"handle"`        // 唯一句柄（@handle）
	Description *string   `db:"description"`   // 频道简介（可选）
	AvatarURL   *string   `db:"avatar_url"`    // 头像 URL（可选）
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ChannelStats 表示频道的聚合统计，由查询侧 JOIN 产出。
type ChannelStats struct {
	ChannelID       uuid.UUID
	SubscriberCount int64
	VideoCount      int64
}
