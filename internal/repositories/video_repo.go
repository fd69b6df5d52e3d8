package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateVideoInput 表示创建视频的持久化输入。
type CreateVideoInput struct {
	VideoID          uuid.UUID
	ChannelID        uuid.UUID
	Title            string
	Description      *string
	RawFileReference string
	Visibility       po.Visibility
}

// UpdateVideoInput 表示更新视频时的可选字段。
type UpdateVideoInput struct {
	VideoID        uuid.UUID
	Title          *string
	Description    *string
	ThumbnailURL   *string
	Status         *po.VideoStatus
	Visibility     *po.Visibility
	DurationMicros *int64
}

// VideoRepository 基于 pgx 实现视频数据访问。
type VideoRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewVideoRepository 构造 VideoRepository。
func NewVideoRepository(pool *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{pool: pool, log: log.NewHelper(logger)}
}

const videoColumns = `video_id, channel_id, title, description, raw_file_reference,
		thumbnail_url, status, visibility, duration_micros, published_at, created_at, updated_at`

func scanVideo(row pgx.Row) (*po.Video, error) {
	var v po.Video
	err := row.Scan(
		&v.VideoID, &v.ChannelID, &v.Title, &v.Description, &v.RawFileReference,
		&v.ThumbnailURL, &v.Status, &v.Visibility, &v.DurationMicros,
		&v.PublishedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create 创建新视频记录，状态从 pending_upload 开始。
func (r *VideoRepository) Create(ctx context.Context, sess txmanager.Session, input CreateVideoInput) (*po.Video, error) {
	query := `
		INSERT INTO platform.videos (
			video_id, channel_id, title, description, raw_file_reference, status, visibility
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + videoColumns

	video, err := scanVideo(runner(r.pool, sess).QueryRow(ctx, query,
		input.VideoID, input.ChannelID, input.Title, input.Description,
		input.RawFileReference, po.VideoStatusPendingUpload, input.Visibility,
	))
	if err != nil {
		r.log.WithContext(ctx).Errorf("create video failed: %v", err)
		return nil, fmt.Errorf("insert video: %w", err)
	}
	r.log.WithContext(ctx).Infof("created video: video_id=%s channel_id=%s", video.VideoID, video.ChannelID)
	return video, nil
}

// Update 部分更新视频元数据。状态切换为 ready 时补写 published_at。
func (r *VideoRepository) Update(ctx context.Context, sess txmanager.Session, input UpdateVideoInput) (*po.Video, error) {
	query := `
		UPDATE platform.videos
		SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			thumbnail_url = COALESCE($4, thumbnail_url),
			status = COALESCE($5, status),
			visibility = COALESCE($6, visibility),
			duration_micros = COALESCE($7, duration_micros),
			published_at = CASE
				WHEN published_at IS NULL AND COALESCE($5, status) = 'ready' THEN now()
				ELSE published_at
			END,
			updated_at = now()
		WHERE video_id = $1
		RETURNING ` + videoColumns

	video, err := scanVideo(runner(r.pool, sess).QueryRow(ctx, query,
		input.VideoID, input.Title, input.Description, input.ThumbnailURL,
		input.Status, input.Visibility, input.DurationMicros,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("update video: %w", err)
	}
	return video, nil
}

// Delete 删除视频并返回被删实体。评论、反应、观看记录随外键级联清理。
func (r *VideoRepository) Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	query := `DELETE FROM platform.videos WHERE video_id = $1 RETURNING ` + videoColumns

	video, err := scanVideo(runner(r.pool, sess).QueryRow(ctx, query, videoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("delete video: %w", err)
	}
	r.log.WithContext(ctx).Infof("deleted video: video_id=%s", videoID)
	return video, nil
}

// FindByID 根据 video_id 查询视频。
func (r *VideoRepository) FindByID(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM platform.videos WHERE video_id = $1`

	video, err := scanVideo(runner(r.pool, sess).QueryRow(ctx, query, videoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return video, nil
}

// Stats 返回视频的聚合统计。
// 观看数为 view log 所有行 count 之和（含匿名槽位）；
// 点赞/点踩分别统计正负反应；评论数含回复。
func (r *VideoRepository) Stats(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.VideoStats, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(vv.count) FROM platform.video_views vv WHERE vv.video_id = $1), 0),
			COALESCE((SELECT COUNT(*) FROM platform.reactions r
				WHERE r.target_kind = 'video' AND r.target_id = $1 AND r.liked), 0),
			COALESCE((SELECT COUNT(*) FROM platform.reactions r
				WHERE r.target_kind = 'video' AND r.target_id = $1 AND NOT r.liked), 0),
			COALESCE((SELECT COUNT(*) FROM platform.comments c WHERE c.video_id = $1), 0)
	`

	stats := po.VideoStats{VideoID: videoID}
	err := runner(r.pool, sess).QueryRow(ctx, query, videoID).Scan(
		&stats.ViewCount, &stats.LikeCount, &stats.DislikeCount, &stats.CommentCount,
	)
	if err != nil {
		return nil, fmt.Errorf("video stats: %w", err)
	}
	return &stats, nil
}

// ListByChannel 返回频道的视频列表，最新发布优先。
func (r *VideoRepository) ListByChannel(ctx context.Context, sess txmanager.Session, channelID uuid.UUID, publicOnly bool) ([]po.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM platform.videos
		WHERE channel_id = $1 AND (NOT $2 OR (visibility = 'public' AND status = 'ready'))
		ORDER BY published_at DESC NULLS LAST, created_at DESC
	`

	rows, err := runner(r.pool, sess).Query(ctx, query, channelID, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}
	defer rows.Close()

	var videos []po.Video
	for rows.Next() {
		var v po.Video
		if err := rows.Scan(
			&v.VideoID, &v.ChannelID, &v.Title, &v.Description, &v.RawFileReference,
			&v.ThumbnailURL, &v.Status, &v.Visibility, &v.DurationMicros,
			&v.PublishedAt, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
