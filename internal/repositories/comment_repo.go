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

// CommentSort 表示评论列表的排序模式。
type CommentSort string

// 评论排序常量定义
const (
	CommentSortNewest CommentSort = "NEWEST_FIRST" // 创建时间降序（默认）
	CommentSortTop    CommentSort = "TOP_COMMENTS" // 正向反应数降序，点踩忽略
)

// CreateCommentInput 表示创建评论的持久化输入。
type CreateCommentInput struct {
	VideoID         uuid.UUID
	AuthorChannelID uuid.UUID
	ParentCommentID *uuid.UUID
	Body            string
}

// CommentRepository 基于 pgx 实现评论数据访问。
type CommentRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewCommentRepository 构造 CommentRepository。
func NewCommentRepository(pool *pgxpool.Pool, logger log.Logger) *CommentRepository {
	return &CommentRepository{pool: pool, log: log.NewHelper(logger)}
}

const commentColumns = `comment_id, video_id, author_channel_id, parent_comment_id, body, created_at, updated_at`

func scanComment(row pgx.Row) (*po.Comment, error) {
	var c po.Comment
	err := row.Scan(
		&c.CommentID, &c.VideoID, &c.AuthorChannelID,
		&c.ParentCommentID, &c.Body, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create 创建评论或回复。
func (r *CommentRepository) Create(ctx context.Context, sess txmanager.Session, input CreateCommentInput) (*po.Comment, error) {
	query := `
		INSERT INTO platform.comments (comment_id, video_id, author_channel_id, parent_comment_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + commentColumns

	comment, err := scanComment(runner(r.pool, sess).QueryRow(ctx, query,
		uuid.New(), input.VideoID, input.AuthorChannelID, input.ParentCommentID, input.Body,
	))
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return comment, nil
}

// Update 更新评论正文。
func (r *CommentRepository) Update(ctx context.Context, sess txmanager.Session, commentID uuid.UUID, body string) (*po.Comment, error) {
	query := `
		UPDATE platform.comments SET body = $2, updated_at = now()
		WHERE comment_id = $1
		RETURNING ` + commentColumns

	comment, err := scanComment(runner(r.pool, sess).QueryRow(ctx, query, commentID, body))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete 删除评论，回复随外键级联删除。
func (r *CommentRepository) Delete(ctx context.Context, sess txmanager.Session, commentID uuid.UUID) error {
	query := `DELETE FROM platform.comments WHERE comment_id = $1`

	tag, err := runner(r.pool, sess).Exec(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// FindByID 根据 comment_id 查询评论。
func (r *CommentRepository) FindByID(ctx context.Context, sess txmanager.Session, commentID uuid.UUID) (*po.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM platform.comments WHERE comment_id = $1`

	comment, err := scanComment(runner(r.pool, sess).QueryRow(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

// commentListBase 为顶层评论附加排序所需的聚合键。
// like_count 只统计正向反应；平手时按创建时间升序保证稳定顺序。
const commentListBase = `
	SELECT
		c.comment_id, c.video_id, c.author_channel_id, c.parent_comment_id,
		c.body, c.created_at, c.updated_at,
		COALESCE(lc.like_count, 0) AS like_count,
		COALESCE(rp.reply_count, 0) AS reply_count
	FROM platform.comments c
	LEFT JOIN (
		SELECT target_id, COUNT(*) FILTER (WHERE liked) AS like_count
		FROM platform.reactions WHERE target_kind = 'comment' GROUP BY target_id
	) lc ON lc.target_id = c.comment_id
	LEFT JOIN (
		SELECT parent_comment_id, COUNT(*) AS reply_count
		FROM platform.comments WHERE parent_comment_id IS NOT NULL
		GROUP BY parent_comment_id
	) rp ON rp.parent_comment_id = c.comment_id
	WHERE c.video_id = $1 AND c.parent_comment_id IS NULL
`

// ListByVideo 返回视频的顶层评论，按请求的模式排序。
func (r *CommentRepository) ListByVideo(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, sort CommentSort, limit int32) ([]po.CommentWithStats, error) {
	order := ` ORDER BY c.created_at DESC, c.comment_id`
	if sort == CommentSortTop {
		order = ` ORDER BY like_count DESC, c.created_at ASC, c.comment_id`
	}
	query := commentListBase + order + ` LIMIT $2`

	rows, err := runner(r.pool, sess).Query(ctx, query, videoID, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	return collectCommentStats(rows)
}

// ListReplies 返回某条顶层评论下的回复，按时间升序。
func (r *CommentRepository) ListReplies(ctx context.Context, sess txmanager.Session, parentID uuid.UUID, limit int32) ([]po.CommentWithStats, error) {
	query := `
		SELECT
			c.comment_id, c.video_id, c.author_channel_id, c.parent_comment_id,
			c.body, c.created_at, c.updated_at,
			COALESCE(lc.like_count, 0) AS like_count,
			0::bigint AS reply_count
		FROM platform.comments c
		LEFT JOIN (
			SELECT target_id, COUNT(*) FILTER (WHERE liked) AS like_count
			FROM platform.reactions WHERE target_kind = 'comment' GROUP BY target_id
		) lc ON lc.target_id = c.comment_id
		WHERE c.parent_comment_id = $1
		ORDER BY c.created_at ASC, c.comment_id
		LIMIT $2
	`

	rows, err := runner(r.pool, sess).Query(ctx, query, parentID, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()
	return collectCommentStats(rows)
}

func collectCommentStats(rows pgx.Rows) ([]po.CommentWithStats, error) {
	var out []po.CommentWithStats
	for rows.Next() {
		var c po.CommentWithStats
		if err := rows.Scan(
			&c.CommentID, &c.VideoID, &c.AuthorChannelID, &c.ParentCommentID,
			&c.Body, &c.CreatedAt, &c.UpdatedAt, &c.LikeCount, &c.ReplyCount,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
