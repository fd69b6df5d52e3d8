package po

import (
	"time"

	"github.com/google/uuid"
)

// Subscription 表示 platform.subscriptions 表的数据库实体。
// (user, channel) 对至多一行，订阅/退订为 toggle 语义。
type Subscription struct {
	UserID    uuid.UUID `db:"user_id"`
	ChannelID uuid.UUID `db:"channel_id"`
	CreatedAt time.Time `db:"created_at"`
}
