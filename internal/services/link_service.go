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

// LinkRepo 定义频道链接及其位置维护所需的持久化行为。
type LinkRepo interface {
	Append(ctx context.Context, sess txmanager.Session, input repositories.CreateLinkInput) (*po.ChannelLink, error)
	Update(ctx context.Context, sess txmanager.Session, input repositories.UpdateLinkInput) (*po.ChannelLink, error)
	FindByID(ctx context.Context, sess txmanager.Session, linkID uuid.UUID) (*po.ChannelLink, error)
	ListByChannel(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) ([]po.ChannelLink, error)
	Delete(ctx context.Context, sess txmanager.Session, linkID uuid.UUID) (*po.ChannelLink, error)
	ShiftRange(ctx context.Context, sess txmanager.Session, channelID uuid.UUID, lo, hi, delta int32) error
	SetPosition(ctx context.Context, sess txmanager.Session, linkID uuid.UUID, position int32) error
	Count(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) (int32, error)
}

// CreateLinkInput 表示追加频道链接的用例输入。
type CreateLinkInput struct {
	ChannelID uuid.UUID
	Title     string
	URL       string
}

// UpdateLinkInput 表示更新链接的用例输入。
type UpdateLinkInput struct {
	LinkID uuid.UUID
	Title  *string
	URL    *string
}

// LinkService 封装频道链接用例。
// 删除与重定位产生的区间平移在单个事务内完成，
// 任一语句失败则整体回滚，对外不暴露中间状态。
type LinkService struct {
	repo      LinkRepo
	channels  ChannelRepo
	txManager txmanager.Manager
	log       *log.Helper
}

// NewLinkService 构造链接服务。
func NewLinkService(repo LinkRepo, channels ChannelRepo, tx txmanager.Manager, logger log.Logger) *LinkService {
	return &LinkService{repo: repo, channels: channels, txManager: tx, log: log.NewHelper(logger)}
}

// AppendLink 在频道链接尾部追加一条，position 取当前最大值加一。
func (s *LinkService) AppendLink(ctx context.Context, input CreateLinkInput) (*vo.LinkView, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var created *po.ChannelLink
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := requireOwnedChannel(txCtx, sess, s.channels, input.ChannelID, userID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		created, repoErr = s.repo.Append(txCtx, sess, repositories.CreateLinkInput{
			ChannelID: input.ChannelID,
			Title:     input.Title,
			URL:       input.URL,
		})
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "append link")
	}
	return vo.NewLinkView(created), nil
}

// UpdateLink 更新链接标题或地址，position 保持不变。
func (s *LinkService) UpdateLink(ctx context.Context, input UpdateLinkInput) (*vo.LinkView, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var updated *po.ChannelLink
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		link, repoErr := s.repo.FindByID(txCtx, sess, input.LinkID)
		if repoErr != nil {
			return repoErr
		}
		if _, repoErr = requireOwnedChannel(txCtx, sess, s.channels, link.ChannelID, userID); repoErr != nil {
			return repoErr
		}
		updated, repoErr = s.repo.Update(txCtx, sess, repositories.UpdateLinkInput{
			LinkID: input.LinkID,
			Title:  input.Title,
			URL:    input.URL,
		})
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "update link")
	}
	return vo.NewLinkView(updated), nil
}

// RemoveLink 删除链接并把其后的所有链接前移一位，序列保持稠密。
func (s *LinkService) RemoveLink(ctx context.Context, linkID uuid.UUID) error {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		link, repoErr := s.repo.FindByID(txCtx, sess, linkID)
		if repoErr != nil {
			return repoErr
		}
		if _, repoErr = requireOwnedChannel(txCtx, sess, s.channels, link.ChannelID, userID); repoErr != nil {
			return repoErr
		}
		removed, repoErr := s.repo.Delete(txCtx, sess, linkID)
		if repoErr != nil {
			return repoErr
		}
		count, repoErr := s.repo.Count(txCtx, sess, link.ChannelID)
		if repoErr != nil {
			return repoErr
		}
		plan := PlanRemoval(removed.Position, count+1)
		if plan.Lo > plan.Hi {
			return nil
		}
		return s.repo.ShiftRange(txCtx, sess, link.ChannelID, plan.Lo, plan.Hi, plan.Delta)
	})
	if err != nil {
		return s.mapErr(ctx, err, "remove link")
	}
	return nil
}

// RepositionLink 把链接移到目标位置，途经的链接整体平移一位。
// 目标越界返回 404 POSITION_NOT_FOUND，与当前位置相同返回 400 POSITION_UNCHANGED。
func (s *LinkService) RepositionLink(ctx context.Context, linkID uuid.UUID, newPos int32) ([]*vo.LinkView, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var links []po.ChannelLink
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		link, repoErr := s.repo.FindByID(txCtx, sess, linkID)
		if repoErr != nil {
			return repoErr
		}
		if _, repoErr = requireOwnedChannel(txCtx, sess, s.channels, link.ChannelID, userID); repoErr != nil {
			return repoErr
		}
		count, repoErr := s.repo.Count(txCtx, sess, link.ChannelID)
		if repoErr != nil {
			return repoErr
		}
		if repoErr = ValidateTarget(link.Position, newPos, count); repoErr != nil {
			return repoErr
		}
		plan, ok := PlanReposition(link.Position, newPos)
		if !ok {
			return ErrSamePosition
		}
		if repoErr = s.repo.ShiftRange(txCtx, sess, link.ChannelID, plan.Lo, plan.Hi, plan.Delta); repoErr != nil {
			return repoErr
		}
		if repoErr = s.repo.SetPosition(txCtx, sess, linkID, newPos); repoErr != nil {
			return repoErr
		}
		links, repoErr = s.repo.ListByChannel(txCtx, sess, link.ChannelID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "reposition link")
	}
	return vo.NewLinkViews(links), nil
}

// ListLinks 返回频道链接，按 position 升序。
func (s *LinkService) ListLinks(ctx context.Context, channelID uuid.UUID) ([]*vo.LinkView, error) {
	var links []po.ChannelLink
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.channels.FindByID(txCtx, sess, channelID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		links, repoErr = s.repo.ListByChannel(txCtx, sess, channelID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "list links")
	}
	return vo.NewLinkViews(links), nil
}

func (s *LinkService) mapErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrLinkNotFound):
		return ErrLinkNotFound
	case errors.Is(err, repositories.ErrChannelNotFound):
		return ErrChannelNotFound
	case errors.Is(err, ErrChannelForbidden), errors.Is(err, ErrSamePosition), errors.Is(err, ErrPositionNotFound):
		return err
	default:
		s.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return errors.InternalServer("LINK_WRITE_FAILED", "failed to update channel links").WithCause(fmt.Errorf("%s: %w", op, err))
	}
}
