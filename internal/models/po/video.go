package po

import (
	"time"

	"github.com/google/uuid"
)

// VideoStatus 表示视频的生命周期状态
type VideoStatus string

// 视频状态常量定义
const (
	VideoStatusPendingUpload VideoStatus = "pending_upload" // 记录已创建但上传未完成
	VideoStatusReady         VideoStatus = "ready"          // 媒体已就绪，可按可见性展示
	VideoStatusFailed        VideoStatus = "failed"         // 上传或处理失败
)

// Visibility 表示内容的可见范围
type Visibility string

// 可见性常量定义
const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
)

// Video 表示 platform.videos 表的数据库实体。
type Video struct {
	VideoID          uuid.UUID   `db:"video_id"`           // 主键（UUID v4）
	ChannelID        uuid.UUID   `db:"channel_id"`         // 所属频道
	Title            string      `db:"title"`              // 视频标题（必填）
	Description      *string     `db:"description"`        // 视频描述（可选）
	RawFileReference string      `db:"raw_file_reference"` // 原始文件对象路径（GCS）
	ThumbnailURL     *string     `db:"thumbnail_url"`      // 缩略图 URL（可选）
	Status           VideoStatus `db:"status"`             // 生命周期状态
	Visibility       Visibility  `db:"visibility"`         // 可见范围
	DurationMicros   *int64      `db:"duration_micros"`    // 视频时长（微秒）
	PublishedAt      *time.Time  `db:"published_at"`       // 发布时间（未发布为空）
	CreatedAt        time.Time   `db:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at"`
}

// VideoStats 表示单个视频的聚合统计。
// ViewCount 为该视频全部 View Log Entry 的 count 之和。
type VideoStats struct {
	VideoID      uuid.UUID
	ViewCount    int64
	LikeCount    int64
	DislikeCount int64
	CommentCount int64
}

// RankedVideo 表示带排序键的视频行，由搜索/趋势查询产出。
type RankedVideo struct {
	Video
	Stats      VideoStats
	TrendScore float64
}
