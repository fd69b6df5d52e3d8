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

// CreateLinkInput 表示追加频道链接的持久化输入。
type CreateLinkInput struct {
	ChannelID uuid.UUID
	Title     string
	URL       string
}

// UpdateLinkInput 表示更新链接时的可选字段。
type UpdateLinkInput struct {
	LinkID uuid.UUID
	Title  *string
	URL    *string
}

// LinkRepository 维护频道链接及其稠密 position 序列。
// 区间平移（ShiftRange）与定位写入（SetPosition）由 Service 层
// 在同一事务内编排，保证任意时刻位置集合恰为 {0..n-1}。
type LinkRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewLinkRepository 构造 LinkRepository。
func NewLinkRepository(pool *pgxpool.Pool, logger log.Logger) *LinkRepository {
	return &LinkRepository{pool: pool, log: log.NewHelper(logger)}
}

const linkColumns = `link_id, channel_id, title, url, position, created_at, updated_at`

func scanLink(row pgx.Row) (*po.ChannelLink, error) {
	var l po.ChannelLink
	err := row.Scan(&l.LinkID, &l.ChannelID, &l.Title, &l.URL, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Append 在作用域尾部追加链接：position = max+1，空作用域为 0。
func (r *LinkRepository) Append(ctx context.Context, sess txmanager.Session, input CreateLinkInput) (*po.ChannelLink, error) {
	query := `
		INSERT INTO platform.channel_links (link_id, channel_id, title, url, position)
		VALUES ($1, $2, $3, $4, (
			SELECT COALESCE(MAX(position) + 1, 0)
			FROM platform.channel_links WHERE channel_id = $2
		))
		RETURNING ` + linkColumns

	link, err := scanLink(runner(r.pool, sess).QueryRow(ctx, query,
		uuid.New(), input.ChannelID, input.Title, input.URL,
	))
	if err != nil {
		return nil, fmt.Errorf("insert link: %w", err)
	}
	return link, nil
}

// Update 更新链接标题或地址，不触碰 position。
func (r *LinkRepository) Update(ctx context.Context, sess txmanager.Session, input UpdateLinkInput) (*po.ChannelLink, error) {
	query := `
		UPDATE platform.channel_links
		SET title = COALESCE($2, title), url = COALESCE($3, url), updated_at = now()
		WHERE link_id = $1
		RETURNING ` + linkColumns

	link, err := scanLink(runner(r.pool, sess).QueryRow(ctx, query, input.LinkID, input.Title, input.URL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("update link: %w", err)
	}
	return link, nil
}

// FindByID 根据 link_id 查询链接。
func (r *LinkRepository) FindByID(ctx context.Context, sess txmanager.Session, linkID uuid.UUID) (*po.ChannelLink, error) {
	query := `SELECT ` + linkColumns + ` FROM platform.channel_links WHERE link_id = $1`

	link, err := scanLink(runner(r.pool, sess).QueryRow(ctx, query, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link: %w", err)
	}
	return link, nil
}

// ListByChannel 返回频道链接，按 position 升序。
func (r *LinkRepository) ListByChannel(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) ([]po.ChannelLink, error) {
	query := `SELECT ` + linkColumns + ` FROM platform.channel_links WHERE channel_id = $1 ORDER BY position`

	rows, err := runner(r.pool, sess).Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var links []po.ChannelLink
	for rows.Next() {
		var l po.ChannelLink
		if err := rows.Scan(&l.LinkID, &l.ChannelID, &l.Title, &l.URL, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Delete 删除链接并返回被删行，供调用方对尾部做 -1 平移。
func (r *LinkRepository) Delete(ctx context.Context, sess txmanager.Session, linkID uuid.UUID) (*po.ChannelLink, error) {
	query := `DELETE FROM platform.channel_links WHERE link_id = $1 RETURNING ` + linkColumns

	link, err := scanLink(runner(r.pool, sess).QueryRow(ctx, query, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("delete link: %w", err)
	}
	return link, nil
}

// ShiftRange 将 [lo, hi] 区间内的 position 统一平移 delta。
func (r *LinkRepository) ShiftRange(ctx context.Context, sess txmanager.Session, channelID uuid.UUID, lo, hi, delta int32) error {
	query := `
		UPDATE platform.channel_links
		SET position = position + $4, updated_at = now()
		WHERE channel_id = $1 AND position >= $2 AND position <= $3
	`

	if _, err := runner(r.pool, sess).Exec(ctx, query, channelID, lo, hi, delta); err != nil {
		return fmt.Errorf("shift links: %w", err)
	}
	return nil
}

// SetPosition 将单个链接写入目标槽位。
func (r *LinkRepository) SetPosition(ctx context.Context, sess txmanager.Session, linkID uuid.UUID, position int32) error {
	query := `UPDATE platform.channel_links SET position = $2, updated_at = now() WHERE link_id = $1`

	tag, err := runner(r.pool, sess).Exec(ctx, query, linkID, position)
	if err != nil {
		return fmt.Errorf("set link position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// Count 返回作用域内链接数量。
func (r *LinkRepository) Count(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) (int32, error) {
	query := `SELECT COUNT(*) FROM platform.channel_links WHERE channel_id = $1`

	var count int32
	if err := runner(r.pool, sess).QueryRow(ctx, query, channelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return count, nil
}
