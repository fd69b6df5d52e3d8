// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 对象由 Service 层返回，经 Views 层转换为 API 响应，隔离内部数据结构。
package vo

import (
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/google/uuid"
)

// VideoDetail 封装视频详情视图，含播放页需要的聚合统计。
type VideoDetail struct {
	VideoID        uuid.UUID  `json:"video_id"`
	ChannelID      uuid.UUID  `json:"channel_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	ThumbnailURL   *string    `json:"thumbnail_url"`
	Status         string     `json:"status"`
	Visibility     string     `json:"visibility"`
	DurationMicros *int64     `json:"duration_micros"`
	PublishedAt    *time.Time `json:"published_at"`

	// 聚合统计
	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
	CommentCount int64 `json:"comment_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVideoDetail 从实体与统计构造详情 VO。
func NewVideoDetail(video *po.Video, stats *po.VideoStats) *VideoDetail {
	if video == nil {
		return nil
	}
	detail := &VideoDetail{
		VideoID:        video.VideoID,
		ChannelID:      video.ChannelID,
		Title:          video.Title,
		Description:    video.Description,
		ThumbnailURL:   video.ThumbnailURL,
		Status:         string(video.Status),
		Visibility:     string(video.Visibility),
		DurationMicros: video.DurationMicros,
		PublishedAt:    video.PublishedAt,
		CreatedAt:      video.CreatedAt,
		UpdatedAt:      video.UpdatedAt,
	}
	if stats != nil {
		detail.ViewCount = stats.ViewCount
		detail.LikeCount = stats.LikeCount
		detail.DislikeCount = stats.DislikeCount
		detail.CommentCount = stats.CommentCount
	}
	return detail
}

// VideoSummary 封装列表行视图（搜索、趋势、频道页共用）。
type VideoSummary struct {
	VideoID      uuid.UUID  `json:"video_id"`
	ChannelID    uuid.UUID  `json:"channel_id"`
	Title        string     `json:"title"`
	ThumbnailURL *string    `json:"thumbnail_url"`
	ViewCount    int64      `json:"view_count"`
	LikeCount    int64      `json:"like_count"`
	PublishedAt  *time.Time `json:"published_at"`
	TrendScore   *float64   `json:"trend_score,omitempty"`
}

// NewVideoSummary 从排序查询行构造列表 VO。
func NewVideoSummary(row *po.RankedVideo, withScore bool) *VideoSummary {
	if row == nil {
		return nil
	}
	summary := &VideoSummary{
		VideoID:      row.VideoID,
		ChannelID:    row.ChannelID,
		Title:        row.Title,
		ThumbnailURL: row.ThumbnailURL,
		ViewCount:    row.Stats.ViewCount,
		LikeCount:    row.Stats.LikeCount,
		PublishedAt:  row.PublishedAt,
	}
	if withScore {
		score := row.TrendScore
		summary.TrendScore = &score
	}
	return summary
}

// NewVideoSummaries 批量转换排序查询结果。
func NewVideoSummaries(rows []po.RankedVideo, withScore bool) []*VideoSummary {
	out := make([]*VideoSummary, 0, len(rows))
	for i := range rows {
		out = append(out, NewVideoSummary(&rows[i], withScore))
	}
	return out
}

// ViewRecorded 封装观看上报的结果：本槽位的累计次数与视频总观看数。
// TotalViews 是全部 (video, viewer) 槽位 count 之和。
type ViewRecorded struct {
	VideoID      uuid.UUID `json:"video_id"`
	ViewerID     uuid.UUID `json:"viewer_id"`
	Count        int64     `json:"count"`
	TotalViews   int64     `json:"total_views"`
	LastViewedAt time.Time `json:"last_viewed_at"`
}

// VideoCreated 封装创建视频的结果：新记录加上传所需的 Signed URL。
type VideoCreated struct {
	VideoID         uuid.UUID `json:"video_id"`
	Status          string    `json:"status"`
	UploadURL       string    `json:"upload_url"`
	ThumbnailURL    string    `json:"thumbnail_upload_url"`
	UploadExpiresAt time.Time `json:"upload_expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}
