package services

import (
	"context"

	"github.com/vidora/vidora-services-platform/internal/metadata"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"
)

// actorFromContext 返回已认证用户 ID；缺失返回 401，格式非法返回 400。
func actorFromContext(ctx context.Context) (uuid.UUID, error) {
	meta, ok := metadata.FromContext(ctx)
	if !ok || meta.UserID == "" {
		return uuid.Nil, ErrUnauthenticated
	}
	userID, valid := meta.UserUUID()
	if !valid {
		return uuid.Nil, errors.BadRequest("USER_ID_INVALID", "user id must be a valid UUID")
	}
	return userID, nil
}

// activeChannelFromContext 返回操作者当前选中的频道 ID。
// 当前频道由客户端显式携带（x-md-channel-id），不依赖服务端会话状态。
func activeChannelFromContext(ctx context.Context) (uuid.UUID, error) {
	meta, ok := metadata.FromContext(ctx)
	if !ok || meta.ChannelID == "" {
		return uuid.Nil, ErrChannelRequired
	}
	channelID, valid := meta.ChannelUUID()
	if !valid {
		return uuid.Nil, errors.BadRequest("CHANNEL_ID_INVALID", "channel id must be a valid UUID")
	}
	return channelID, nil
}
