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

// ReactionRepository 维护 (actor, target) 三态反应行。
type ReactionRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewReactionRepository 构造 ReactionRepository。
func NewReactionRepository(pool *pgxpool.Pool, logger log.Logger) *ReactionRepository {
	return &ReactionRepository{pool: pool, log: log.NewHelper(logger)}
}

// Upsert 写入或翻转反应，每个 (user, target) 对至多一行。
func (r *ReactionRepository) Upsert(ctx context.Context, sess txmanager.Session, userID uuid.UUID, kind po.ReactionTarget, targetID uuid.UUID, liked bool) (*po.Reaction, error) {
	query := `
		INSERT INTO platform.reactions (user_id, target_kind, target_id, liked)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, target_kind, target_id)
		DO UPDATE SET liked = EXCLUDED.liked, updated_at = now()
		RETURNING user_id, target_kind, target_id, liked, created_at, updated_at
	`

	var reaction po.Reaction
	err := runner(r.pool, sess).QueryRow(ctx, query, userID, kind, targetID, liked).Scan(
		&reaction.UserID, &reaction.TargetKind, &reaction.TargetID,
		&reaction.Liked, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert reaction: %w", err)
	}
	return &reaction, nil
}

// Delete 撤销反应（rating=none）。不存在时静默成功，toggle 语义幂等。
func (r *ReactionRepository) Delete(ctx context.Context, sess txmanager.Session, userID uuid.UUID, kind po.ReactionTarget, targetID uuid.UUID) error {
	query := `DELETE FROM platform.reactions WHERE user_id = $1 AND target_kind = $2 AND target_id = $3`

	if _, err := runner(r.pool, sess).Exec(ctx, query, userID, kind, targetID); err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}

// Find 查询操作者对目标的当前反应，无行时返回 ErrReactionNotFound。
func (r *ReactionRepository) Find(ctx context.Context, sess txmanager.Session, userID uuid.UUID, kind po.ReactionTarget, targetID uuid.UUID) (*po.Reaction, error) {
	query := `
		SELECT user_id, target_kind, target_id, liked, created_at, updated_at
		FROM platform.reactions
		WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
	`

	var reaction po.Reaction
	err := runner(r.pool, sess).QueryRow(ctx, query, userID, kind, targetID).Scan(
		&reaction.UserID, &reaction.TargetKind, &reaction.TargetID,
		&reaction.Liked, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReactionNotFound
		}
		return nil, fmt.Errorf("find reaction: %w", err)
	}
	return &reaction, nil
}
