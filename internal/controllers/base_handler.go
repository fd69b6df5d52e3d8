// Package controllers 实现 HTTP 传输层：解析请求、注入元数据、调用用例并渲染响应。
package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/vidora/vidora-services-platform/internal/metadata"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

// HandlerType 表示 Handler 的语义类别，用于选择超时策略。
type HandlerType int

const (
	// HandlerTypeDefault 表示未显式区分的 Handler。
	HandlerTypeDefault HandlerType = iota
	// HandlerTypeCommand 表示写模型命令 Handler。
	HandlerTypeCommand
	// HandlerTypeQuery 表示读模型查询 Handler。
	HandlerTypeQuery
)

// HandlerTimeouts 聚合不同类型 Handler 的超时策略。
type HandlerTimeouts struct {
	Default time.Duration
	Command time.Duration
	Query   time.Duration
}

const (
	fallbackDefaultTimeout = 5 * time.Second
	fallbackQueryTimeout   = 3 * time.Second
	headerUserID           = "x-md-global-user-id"
	headerChannelID        = "x-md-channel-id"
	headerIdempotencyKey   = "x-md-idempotency-key"
)

// BaseHandler 提供公共的超时与请求头解析能力，供具体 Handler 内嵌复用。
type BaseHandler struct {
	timeouts HandlerTimeouts
}

// NewBaseHandler 构造基础 Handler，并为缺省值填充合理的回退策略。
func NewBaseHandler(timeouts HandlerTimeouts) *BaseHandler {
	if timeouts.Default <= 0 {
		if timeouts.Command > 0 {
			timeouts.Default = timeouts.Command
		} else if timeouts.Query > 0 {
			timeouts.Default = timeouts.Query
		} else {
			timeouts.Default = fallbackDefaultTimeout
		}
	}
	if timeouts.Command <= 0 {
		timeouts.Command = timeouts.Default
	}
	if timeouts.Query <= 0 {
		if timeouts.Default > 0 {
			timeouts.Query = timeouts.Default
		} else {
			timeouts.Query = fallbackQueryTimeout
		}
	}
	return &BaseHandler{timeouts: timeouts}
}

// WithTimeout 根据 Handler 类型包装上下文，返回绑定超时的新 Context 与取消函数。
func (h *BaseHandler) WithTimeout(ctx context.Context, kind HandlerType) (context.Context, context.CancelFunc) {
	if h == nil {
		return context.WithTimeout(ctx, fallbackDefaultTimeout)
	}
	var timeout time.Duration
	switch kind {
	case HandlerTypeCommand:
		timeout = h.timeouts.Command
	case HandlerTypeQuery:
		timeout = h.timeouts.Query
	default:
		timeout = h.timeouts.Default
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// RequestContext 解析身份与幂等请求头并注入到 Context，同时绑定超时。
// 身份由上游网关完成认证后以 x-md-global-user-id 透传；
// 操作者当前选中的频道以 x-md-channel-id 显式携带。
func (h *BaseHandler) RequestContext(ctx khttp.Context, kind HandlerType) (context.Context, context.CancelFunc) {
	header := ctx.Header()
	meta := metadata.HandlerMetadata{
		UserID:         strings.TrimSpace(header.Get(headerUserID)),
		ChannelID:      strings.TrimSpace(header.Get(headerChannelID)),
		IdempotencyKey: strings.TrimSpace(header.Get(headerIdempotencyKey)),
	}
	reqCtx := metadata.Inject(ctx, meta)
	return h.WithTimeout(reqCtx, kind)
}

// pathUUID 解析路径参数中的 UUID，解析失败返回 400。
func pathUUID(ctx khttp.Context, name string) (uuid.UUID, error) {
	raw := ctx.Vars().Get(name)
	value, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errors.BadRequest("PATH_PARAM_INVALID", name+" must be a valid UUID")
	}
	return value, nil
}
