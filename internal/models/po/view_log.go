package po

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousViewer 是匿名观看者在 view log 中占用的固定槽位。
// 所有未登录观看共享这一条累加记录。
var AnonymousViewer = uuid.Nil

// ViewLogEntry 表示 platform.video_views 表的数据库实体。
// 每个 (video, viewer) 对至多一行，count 单调累加；
// 视频总观看数 = 该视频所有行 count 之和。
type ViewLogEntry struct {
	VideoID       uuid.UUID `db:"video_id"`
	ViewerID      uuid.UUID `db:"viewer_id"` // AnonymousViewer 表示匿名
	Count         int64     `db:"count"`
	FirstViewedAt time.Time `db:"first_viewed_at"`
	LastViewedAt  time.Time `db:"last_viewed_at"`
}
