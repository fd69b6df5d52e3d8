package po

import (
	"time"

	"github.com/google/uuid"
)

// ChannelLink 表示 platform.channel_links 表的数据库实体。
// 同一频道内 position 构成从 0 开始的稠密递增序列，无空洞无重复。
type ChannelLink struct {
	LinkID    uuid.UUID `db:"link_id"`
	ChannelID uuid.UUID `db:"channel_id"` // 排序作用域
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	Position  int32     `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
