package po

import (
	"time"

	"github.com/google/uuid"
)

// Playlist 表示 platform.playlists 表的数据库实体。
// ThumbnailVideoID 是"精选项"回指：通常跟随 position 0 的视频，
// ThumbnailPinned=true 表示拥有者显式指定过缩略图，此后不再自动刷新。
type Playlist struct {
	PlaylistID       uuid.UUID  `db:"playlist_id"`
	ChannelID        uuid.UUID  `db:"channel_id"`
	Title            string     `db:"title"`
	Description      *string    `db:"description"`
	Visibility       Visibility `db:"visibility"`
	ThumbnailVideoID *uuid.UUID `db:"thumbnail_video_id"`
	ThumbnailPinned  bool       `db:"thumbnail_pinned"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// PlaylistVideo 表示 platform.playlist_videos 表的数据库实体。
// 同一播放列表内 position 构成从 0 开始的稠密递增序列。
type PlaylistVideo struct {
	PlaylistID uuid.UUID `db:"playlist_id"` // 排序作用域
	VideoID    uuid.UUID `db:"video_id"`
	Position   int32     `db:"position"`
	AddedAt    time.Time `db:"added_at"`
}
