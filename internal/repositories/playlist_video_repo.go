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

// PlaylistVideoRepository 维护播放列表条目及其稠密 position 序列。
// 与 LinkRepository 采用同一套区间平移原语，由 Service 层在事务内编排。
type PlaylistVideoRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewPlaylistVideoRepository 构造 PlaylistVideoRepository。
func NewPlaylistVideoRepository(pool *pgxpool.Pool, logger log.Logger) *PlaylistVideoRepository {
	return &PlaylistVideoRepository{pool: pool, log: log.NewHelper(logger)}
}

const playlistVideoColumns = `playlist_id, video_id, position, added_at`

func scanPlaylistVideo(row pgx.Row) (*po.PlaylistVideo, error) {
	var pv po.PlaylistVideo
	if err := row.Scan(&pv.PlaylistID, &pv.VideoID, &pv.Position, &pv.AddedAt); err != nil {
		return nil, err
	}
	return &pv, nil
}

// Append 在播放列表尾部追加视频：position = max+1，空列表为 0。
func (r *PlaylistVideoRepository) Append(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error) {
	query := `
		INSERT INTO platform.playlist_videos (playlist_id, video_id, position)
		VALUES ($1, $2, (
			SELECT COALESCE(MAX(position) + 1, 0)
			FROM platform.playlist_videos WHERE playlist_id = $1
		))
		RETURNING ` + playlistVideoColumns

	entry, err := scanPlaylistVideo(runner(r.pool, sess).QueryRow(ctx, query, playlistID, videoID))
	if err != nil {
		return nil, fmt.Errorf("insert playlist video: %w", err)
	}
	return entry, nil
}

// Find 查询播放列表中的指定条目。
func (r *PlaylistVideoRepository) Find(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error) {
	query := `SELECT ` + playlistVideoColumns + `
		FROM platform.playlist_videos WHERE playlist_id = $1 AND video_id = $2`

	entry, err := scanPlaylistVideo(runner(r.pool, sess).QueryRow(ctx, query, playlistID, videoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistVideoNotFound
		}
		return nil, fmt.Errorf("find playlist video: %w", err)
	}
	return entry, nil
}

// List 返回播放列表条目，按 position 升序。
func (r *PlaylistVideoRepository) List(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) ([]po.PlaylistVideo, error) {
	query := `SELECT ` + playlistVideoColumns + `
		FROM platform.playlist_videos WHERE playlist_id = $1 ORDER BY position`

	rows, err := runner(r.pool, sess).Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	defer rows.Close()

	var entries []po.PlaylistVideo
	for rows.Next() {
		var pv po.PlaylistVideo
		if err := rows.Scan(&pv.PlaylistID, &pv.VideoID, &pv.Position, &pv.AddedAt); err != nil {
			return nil, fmt.Errorf("scan playlist video: %w", err)
		}
		entries = append(entries, pv)
	}
	return entries, rows.Err()
}

// Delete 删除条目并返回被删行，供调用方对尾部做 -1 平移。
func (r *PlaylistVideoRepository) Delete(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error) {
	query := `DELETE FROM platform.playlist_videos
		WHERE playlist_id = $1 AND video_id = $2
		RETURNING ` + playlistVideoColumns

	entry, err := scanPlaylistVideo(runner(r.pool, sess).QueryRow(ctx, query, playlistID, videoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistVideoNotFound
		}
		return nil, fmt.Errorf("delete playlist video: %w", err)
	}
	return entry, nil
}

// ShiftRange 将 [lo, hi] 区间内的 position 统一平移 delta。
func (r *PlaylistVideoRepository) ShiftRange(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, lo, hi, delta int32) error {
	query := `
		UPDATE platform.playlist_videos
		SET position = position + $4
		WHERE playlist_id = $1 AND position >= $2 AND position <= $3
	`

	if _, err := runner(r.pool, sess).Exec(ctx, query, playlistID, lo, hi, delta); err != nil {
		return fmt.Errorf("shift playlist videos: %w", err)
	}
	return nil
}

// SetPosition 将单个条目写入目标槽位。
func (r *PlaylistVideoRepository) SetPosition(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID, position int32) error {
	query := `UPDATE platform.playlist_videos SET position = $3
		WHERE playlist_id = $1 AND video_id = $2`

	tag, err := runner(r.pool, sess).Exec(ctx, query, playlistID, videoID, position)
	if err != nil {
		return fmt.Errorf("set playlist video position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistVideoNotFound
	}
	return nil
}

// Count 返回播放列表条目数量。
func (r *PlaylistVideoRepository) Count(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (int32, error) {
	query := `SELECT COUNT(*) FROM platform.playlist_videos WHERE playlist_id = $1`

	var count int32
	if err := runner(r.pool, sess).QueryRow(ctx, query, playlistID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count playlist videos: %w", err)
	}
	return count, nil
}

// VideoAt 返回占据指定槽位的视频 ID，空槽位返回 ErrPlaylistVideoNotFound。
func (r *PlaylistVideoRepository) VideoAt(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, position int32) (uuid.UUID, error) {
	query := `SELECT video_id FROM platform.playlist_videos
		WHERE playlist_id = $1 AND position = $2`

	var videoID uuid.UUID
	err := runner(r.pool, sess).QueryRow(ctx, query, playlistID, position).Scan(&videoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrPlaylistVideoNotFound
		}
		return uuid.Nil, fmt.Errorf("playlist video at position: %w", err)
	}
	return videoID, nil
}
