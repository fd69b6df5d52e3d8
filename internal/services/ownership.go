package services

import (
	"context"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// requireOwnedChannel 校验频道存在且归指定用户所有。
// 频道不存在时透传仓储哨兵错误，归属不符返回 ErrChannelForbidden。
func requireOwnedChannel(ctx context.Context, sess txmanager.Session, channels ChannelRepo, channelID, userID uuid.UUID) (*po.Channel, error) {
	channel, err := channels.FindByID(ctx, sess, channelID)
	if err != nil {
		return nil, err
	}
	if channel.OwnerUserID != userID {
		return nil, ErrChannelForbidden
	}
	return channel, nil
}
