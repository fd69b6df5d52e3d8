package services

import (
	"context"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/models/vo"
	"github.com/vidora/vidora-services-platform/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// CommentRepo 定义评论用例所需的持久化行为。
type CommentRepo interface {
	Create(ctx context.Context, sess txmanager.Session, input repositories.CreateCommentInput) (*po.Comment, error)
	Update(ctx context.Context, sess txmanager.Session, commentID uuid.UUID, body string) (*po.Comment, error)
	Delete(ctx context.Context, sess txmanager.Session, commentID uuid.UUID) error
	FindByID(ctx context.Context, sess txmanager.Session, commentID uuid.UUID) (*po.Comment, error)
	ListByVideo(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, sort repositories.CommentSort, limit int32) ([]po.CommentWithStats, error)
	ListReplies(ctx context.Context, sess txmanager.Session, parentID uuid.UUID, limit int32) ([]po.CommentWithStats, error)
}

// CreateCommentInput 表示发表评论的用例输入。
// ParentCommentID 非空时为回复，回复只允许挂在顶层评论下（单层）。
type CreateCommentInput struct {
	VideoID         uuid.UUID
	ParentCommentID *uuid.UUID
	Body            string
}

// CommentService 封装评论与回复用例。
type CommentService struct {
	repo      CommentRepo
	videos    VideoRepo
	channels  ChannelRepo
	txManager txmanager.Manager
	log       *log.Helper
}

// NewCommentService 构造评论服务。
func NewCommentService(repo CommentRepo, videos VideoRepo, channels ChannelRepo, tx txmanager.Manager, logger log.Logger) *CommentService {
	return &CommentService{repo: repo, videos: videos, channels: channels, txManager: tx, log: log.NewHelper(logger)}
}

// CreateComment 以当前选中频道的身份发表评论或回复。
func (s *CommentService) CreateComment(ctx context.Context, input CreateCommentInput) (*vo.CommentView, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	channelID, err := activeChannelFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var created *po.Comment
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := requireOwnedChannel(txCtx, sess, s.channels, channelID, userID); repoErr != nil {
			return repoErr
		}
		if _, repoErr := s.videos.FindByID(txCtx, sess, input.VideoID); repoErr != nil {
			return repoErr
		}
		if input.ParentCommentID != nil {
			parent, repoErr := s.repo.FindByID(txCtx, sess, *input.ParentCommentID)
			if repoErr != nil {
				return repoErr
			}
			if parent.ParentCommentID != nil {
				return ErrReplyDepth
			}
			if parent.VideoID != input.VideoID {
				return ErrReplyWrongVideo
			}
		}
		var repoErr error
		created, repoErr = s.repo.Create(txCtx, sess, repositories.CreateCommentInput{
			VideoID:         input.VideoID,
			AuthorChannelID: channelID,
			ParentCommentID: input.ParentCommentID,
			Body:            input.Body,
		})
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "create comment")
	}
	return vo.NewCommentView(&po.CommentWithStats{Comment: *created}), nil
}

// UpdateComment 修改评论正文，仅作者频道的拥有者可操作。
func (s *CommentService) UpdateComment(ctx context.Context, commentID uuid.UUID, body string) (*vo.CommentView, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var updated *po.Comment
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		comment, repoErr := s.repo.FindByID(txCtx, sess, commentID)
		if repoErr != nil {
			return repoErr
		}
		if _, repoErr = requireOwnedChannel(txCtx, sess, s.channels, comment.AuthorChannelID, userID); repoErr != nil {
			return repoErr
		}
		updated, repoErr = s.repo.Update(txCtx, sess, commentID, body)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "update comment")
	}
	return vo.NewCommentView(&po.CommentWithStats{Comment: *updated}), nil
}

// DeleteComment 删除评论，其下回复随之删除。
// 评论作者或视频所属频道的拥有者均可删除。
func (s *CommentService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		comment, repoErr := s.repo.FindByID(txCtx, sess, commentID)
		if repoErr != nil {
			return repoErr
		}
		if _, authorErr := requireOwnedChannel(txCtx, sess, s.channels, comment.AuthorChannelID, userID); authorErr != nil {
			if !errors.Is(authorErr, ErrChannelForbidden) {
				return authorErr
			}
			video, videoErr := s.videos.FindByID(txCtx, sess, comment.VideoID)
			if videoErr != nil {
				return videoErr
			}
			if _, ownerErr := requireOwnedChannel(txCtx, sess, s.channels, video.ChannelID, userID); ownerErr != nil {
				return ownerErr
			}
		}
		return s.repo.Delete(txCtx, sess, commentID)
	})
	if err != nil {
		return s.mapErr(ctx, err, "delete comment")
	}
	return nil
}

// ListComments 返回视频的顶层评论。
// sort 为空时默认 NEWEST_FIRST；TOP_COMMENTS 按正向反应数降序，点踩不参与。
func (s *CommentService) ListComments(ctx context.Context, videoID uuid.UUID, sort repositories.CommentSort, limit int32) ([]*vo.CommentView, error) {
	if sort == "" {
		sort = repositories.CommentSortNewest
	}

	var rows []po.CommentWithStats
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.videos.FindByID(txCtx, sess, videoID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		rows, repoErr = s.repo.ListByVideo(txCtx, sess, videoID, sort, limit)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "list comments")
	}
	return vo.NewCommentViews(rows), nil
}

// ListReplies 返回顶层评论下的回复，按时间升序。
func (s *CommentService) ListReplies(ctx context.Context, parentID uuid.UUID, limit int32) ([]*vo.CommentView, error) {
	var rows []po.CommentWithStats
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.repo.FindByID(txCtx, sess, parentID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		rows, repoErr = s.repo.ListReplies(txCtx, sess, parentID, limit)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "list replies")
	}
	return vo.NewCommentViews(rows), nil
}

func (s *CommentService) mapErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrCommentNotFound):
		return ErrCommentNotFound
	case errors.Is(err, repositories.ErrVideoNotFound):
		return ErrVideoNotFound
	case errors.Is(err, repositories.ErrChannelNotFound):
		return ErrChannelNotFound
	case errors.Is(err, ErrChannelForbidden), errors.Is(err, ErrReplyDepth), errors.Is(err, ErrReplyWrongVideo):
		return err
	default:
		s.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return errors.InternalServer("COMMENT_QUERY_FAILED", "failed to access comment").WithCause(fmt.Errorf("%s: %w", op, err))
	}
}
