package services

import (
	"context"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// ReactionRepo 定义三态反应所需的持久化行为。
type ReactionRepo interface {
	Upsert(ctx context.Context, sess txmanager.Session, userID uuid.UUID, kind po.ReactionTarget, targetID uuid.UUID, liked bool) (*po.Reaction, error)
	Delete(ctx context.Context, sess txmanager.Session, userID uuid.UUID, kind po.ReactionTarget, targetID uuid.UUID) error
	Find(ctx context.Context, sess txmanager.Session, userID uuid.UUID, kind po.ReactionTarget, targetID uuid.UUID) (*po.Reaction, error)
}

// Rating 表示用户对目标的意向档位。
type Rating string

// 档位常量：like、dislike、none（撤销）。
const (
	RatingLike    Rating = "like"
	RatingDislike Rating = "dislike"
	RatingNone    Rating = "none"
)

// ParseRating 解析请求中的档位字符串。
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingLike, RatingDislike, RatingNone:
		return Rating(s), nil
	default:
		return "", errors.BadRequest("RATING_INVALID", "rating must be one of like, dislike, none")
	}
}

// ReactionService 封装视频与评论的反应用例。
// 每个 (user, target) 至多保留一个状态，重复设置同档位保持不变。
type ReactionService struct {
	repo      ReactionRepo
	videos    VideoRepo
	comments  CommentRepo
	txManager txmanager.Manager
	log       *log.Helper
}

// NewReactionService 构造反应服务。
func NewReactionService(repo ReactionRepo, videos VideoRepo, comments CommentRepo, tx txmanager.Manager, logger log.Logger) *ReactionService {
	return &ReactionService{repo: repo, videos: videos, comments: comments, txManager: tx, log: log.NewHelper(logger)}
}

// RateVideo 设置当前用户对视频的反应档位。
func (s *ReactionService) RateVideo(ctx context.Context, videoID uuid.UUID, rating Rating) error {
	return s.rate(ctx, po.ReactionTargetVideo, videoID, rating)
}

// RateComment 设置当前用户对评论的反应档位。
func (s *ReactionService) RateComment(ctx context.Context, commentID uuid.UUID, rating Rating) error {
	return s.rate(ctx, po.ReactionTargetComment, commentID, rating)
}

func (s *ReactionService) rate(ctx context.Context, kind po.ReactionTarget, targetID uuid.UUID, rating Rating) error {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if repoErr := s.ensureTarget(txCtx, sess, kind, targetID); repoErr != nil {
			return repoErr
		}
		if rating == RatingNone {
			return s.repo.Delete(txCtx, sess, userID, kind, targetID)
		}
		_, repoErr := s.repo.Upsert(txCtx, sess, userID, kind, targetID, rating == RatingLike)
		return repoErr
	})
	if err != nil {
		return s.mapErr(ctx, err, "rate target")
	}
	return nil
}

// GetRating 返回当前用户对目标的档位，无记录视为 none。
func (s *ReactionService) GetRating(ctx context.Context, kind po.ReactionTarget, targetID uuid.UUID) (Rating, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return "", err
	}

	rating := RatingNone
	err = s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		reaction, repoErr := s.repo.Find(txCtx, sess, userID, kind, targetID)
		if repoErr != nil {
			if errors.Is(repoErr, repositories.ErrReactionNotFound) {
				return nil
			}
			return repoErr
		}
		if reaction.Liked {
			rating = RatingLike
		} else {
			rating = RatingDislike
		}
		return nil
	})
	if err != nil {
		return "", s.mapErr(ctx, err, "get rating")
	}
	return rating, nil
}

func (s *ReactionService) ensureTarget(ctx context.Context, sess txmanager.Session, kind po.ReactionTarget, targetID uuid.UUID) error {
	if kind == po.ReactionTargetComment {
		_, err := s.comments.FindByID(ctx, sess, targetID)
		return err
	}
	_, err := s.videos.FindByID(ctx, sess, targetID)
	return err
}

func (s *ReactionService) mapErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrVideoNotFound):
		return ErrVideoNotFound
	case errors.Is(err, repositories.ErrCommentNotFound):
		return ErrCommentNotFound
	default:
		s.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return errors.InternalServer("REACTION_WRITE_FAILED", "failed to record reaction").WithCause(fmt.Errorf("%s: %w", op, err))
	}
}
