// Package metadata 提供 HandlerMetadata 在 Context 中的存取工具，供控制器与服务层共享。
package metadata

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HandlerMetadata 描述从请求头解析出的上下文信息。
// ChannelID 表示操作者当前选中的频道，由客户端显式携带，
// 服务端不保存任何隐式"当前频道"状态。
type HandlerMetadata struct {
	UserID         string
	ChannelID      string
	IdempotencyKey string
}

// IsZero 判断 Metadata 是否为空。
func (m HandlerMetadata) IsZero() bool {
	return m.UserID == "" && m.ChannelID == "" && m.IdempotencyKey == ""
}

// UserUUID 尝试解析 user_id 为 UUID。
func (m HandlerMetadata) UserUUID() (uuid.UUID, bool) {
	return parse(m.UserID)
}

// ChannelUUID 尝试解析当前频道 ID 为 UUID。
func (m HandlerMetadata) ChannelUUID() (uuid.UUID, bool) {
	return parse(m.ChannelID)
}

func parse(raw string) (uuid.UUID, bool) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, false
	}
	value, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return value, true
}

type ctxKey struct{}

// Inject 将 HandlerMetadata 注入 Context。
func Inject(ctx context.Context, meta HandlerMetadata) context.Context {
	if meta.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, meta)
}

// FromContext 读取上游注入的 HandlerMetadata。
func FromContext(ctx context.Context) (HandlerMetadata, bool) {
	if ctx == nil {
		return HandlerMetadata{}, false
	}
	meta, ok := ctx.Value(ctxKey{}).(HandlerMetadata)
	return meta, ok
}
