package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchSort 表示搜索结果的排序模式。
type SearchSort string

// 搜索排序常量定义
const (
	SearchSortNone       SearchSort = ""            // 自然顺序
	SearchSortUploadDate SearchSort = "UPLOAD_DATE" // 发布时间升序（最旧优先）
	SearchSortViewCount  SearchSort = "VIEW_COUNT"  // 总观看数降序
	SearchSortRating     SearchSort = "RATING"      // 正向反应数降序（忽略点踩）
)

// SearchQuery 表示排序/聚合查询的输入。
type SearchQuery struct {
	Query          string
	PublishedAfter *time.Time
	Sort           SearchSort
	Limit          int32
}

// TrendingWeights 表示趋势分权重，对 likes/views/comments 均单调递增。
type TrendingWeights struct {
	Like    float64
	View    float64
	Comment float64
}

// RankingRepository 实现搜索与趋势的只读聚合查询。
// 排序键全部在数据库侧产出，不做任何写入。
type RankingRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewRankingRepository 构造 RankingRepository。
func NewRankingRepository(pool *pgxpool.Pool, logger log.Logger) *RankingRepository {
	return &RankingRepository{pool: pool, log: log.NewHelper(logger)}
}

// rankedBase 聚合每个公开视频的观看/反应/评论统计。
// view_count = SUM(video_views.count)，like_count 只统计 liked 行。
const rankedBase = `
	SELECT
		v.video_id, v.channel_id, v.title, v.description, v.raw_file_reference,
		v.thumbnail_url, v.status, v.visibility, v.duration_micros, v.published_at,
		v.created_at, v.updated_at,
		COALESCE(vc.view_count, 0) AS view_count,
		COALESCE(rc.like_count, 0) AS like_count,
		COALESCE(rc.dislike_count, 0) AS dislike_count,
		COALESCE(cc.comment_count, 0) AS comment_count
	FROM platform.videos v
	LEFT JOIN (
		SELECT video_id, SUM(count) AS view_count
		FROM platform.video_views GROUP BY video_id
	) vc ON vc.video_id = v.video_id
	LEFT JOIN (
		SELECT target_id,
			COUNT(*) FILTER (WHERE liked) AS like_count,
			COUNT(*) FILTER (WHERE NOT liked) AS dislike_count
		FROM platform.reactions WHERE target_kind = 'video' GROUP BY target_id
	) rc ON rc.target_id = v.video_id
	LEFT JOIN (
		SELECT video_id, COUNT(*) AS comment_count
		FROM platform.comments GROUP BY video_id
	) cc ON cc.video_id = v.video_id
	WHERE v.status = 'ready' AND v.visibility = 'public'
`

// Search 按标题模糊匹配（大小写不敏感）并按请求的模式排序。
// 未识别的排序模式回退到自然顺序，不报错。
func (r *RankingRepository) Search(ctx context.Context, sess txmanager.Session, q SearchQuery) ([]po.RankedVideo, error) {
	query := rankedBase + `
		AND v.title ILIKE '%' || $1 || '%'
		AND ($2::timestamptz IS NULL OR v.published_at >= $2)
	` + orderClause(q.Sort) + `
		LIMIT $3`

	rows, err := runner(r.pool, sess).Query(ctx, query,
		q.Query, toPgTimestamptz(q.PublishedAfter), limitOrDefault(q.Limit))
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	defer rows.Close()
	return collectRanked(rows, nil)
}

// Trending 返回趋势榜：trend_score 最高优先。
// 分数在 SQL 中按配置权重计算，保证排序键与返回值一致。
func (r *RankingRepository) Trending(ctx context.Context, sess txmanager.Session, w TrendingWeights, limit int32) ([]po.RankedVideo, error) {
	query := `
		SELECT ranked.*,
			($1 * ranked.like_count + $2 * ranked.view_count + $3 * ranked.comment_count)::float8 AS trend_score
		FROM (` + rankedBase + `) ranked
		ORDER BY trend_score DESC, ranked.published_at DESC NULLS LAST
		LIMIT $4`

	rows, err := runner(r.pool, sess).Query(ctx, query, w.Like, w.View, w.Comment, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("trending videos: %w", err)
	}
	defer rows.Close()

	score := true
	return collectRanked(rows, &score)
}

// orderClause 将排序模式映射为固定的 ORDER BY 片段。
// 模式来自受控枚举，从不拼接用户输入。
func orderClause(sort SearchSort) string {
	switch sort {
	case SearchSortUploadDate:
		return ` ORDER BY v.published_at ASC NULLS LAST, v.video_id`
	case SearchSortViewCount:
		return ` ORDER BY view_count DESC, v.video_id`
	case SearchSortRating:
		return ` ORDER BY like_count DESC, v.video_id`
	default:
		return ` ORDER BY v.video_id`
	}
}

func limitOrDefault(limit int32) int32 {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

func collectRanked(rows pgx.Rows, withScore *bool) ([]po.RankedVideo, error) {
	var out []po.RankedVideo
	for rows.Next() {
		var rv po.RankedVideo
		dest := []any{
			&rv.VideoID, &rv.ChannelID, &rv.Title, &rv.Description, &rv.RawFileReference,
			&rv.ThumbnailURL, &rv.Status, &rv.Visibility, &rv.DurationMicros,
			&rv.PublishedAt, &rv.CreatedAt, &rv.UpdatedAt,
			&rv.Stats.ViewCount, &rv.Stats.LikeCount, &rv.Stats.DislikeCount, &rv.Stats.CommentCount,
		}
		if withScore != nil && *withScore {
			dest = append(dest, &rv.TrendScore)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan ranked video: %w", err)
		}
		rv.Stats.VideoID = rv.VideoID
		out = append(out, rv)
	}
	return out, rows.Err()
}
