package repositories

import (
	"context"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ViewLogRepository 维护 platform.video_views 累加计数。
type ViewLogRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewViewLogRepository 构造 ViewLogRepository。
func NewViewLogRepository(pool *pgxpool.Pool, logger log.Logger) *ViewLogRepository {
	return &ViewLogRepository{pool: pool, log: log.NewHelper(logger)}
}

// Record 为 (video, viewer) 槽位累加一次观看。
// 匿名观看传入 po.AnonymousViewer，共享同一条记录。
func (r *ViewLogRepository) Record(ctx context.Context, sess txmanager.Session, videoID, viewerID uuid.UUID) (*po.ViewLogEntry, error) {
	query := `
		INSERT INTO platform.video_views (video_id, viewer_id, count, first_viewed_at, last_viewed_at)
		VALUES ($1, $2, 1, now(), now())
		ON CONFLICT (video_id, viewer_id)
		DO UPDATE SET count = video_views.count + 1, last_viewed_at = now()
		RETURNING video_id, viewer_id, count, first_viewed_at, last_viewed_at
	`

	var entry po.ViewLogEntry
	err := runner(r.pool, sess).QueryRow(ctx, query, videoID, viewerID).Scan(
		&entry.VideoID, &entry.ViewerID, &entry.Count, &entry.FirstViewedAt, &entry.LastViewedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record view: %w", err)
	}
	return &entry, nil
}

// TotalViews 返回视频全部 View Log Entry 的 count 之和。
func (r *ViewLogRepository) TotalViews(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(count), 0) FROM platform.video_views WHERE video_id = $1`

	var total int64
	if err := runner(r.pool, sess).QueryRow(ctx, query, videoID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total views: %w", err)
	}
	return total, nil
}
