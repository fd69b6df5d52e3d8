package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// SubscriptionHandler 处理订阅相关的 HTTP 请求。
type SubscriptionHandler struct {
	base *BaseHandler
	svc  *services.SubscriptionService
}

// NewSubscriptionHandler 构造订阅 Handler。
func NewSubscriptionHandler(base *BaseHandler, svc *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{base: base, svc: svc}
}

// Register 挂载订阅路由。
func (h *SubscriptionHandler) Register(r *khttp.Router) {
	r.POST("/channels/{channel_id}/subscription", h.ToggleSubscription)
	r.GET("/me/subscriptions", h.ListSubscriptions)
}

// ToggleSubscription 处理 POST /channels/{channel_id}/subscription。
// 已订阅则取消，未订阅则建立，响应给出最终状态。
func (h *SubscriptionHandler) ToggleSubscription(ctx khttp.Context) error {
	channelID, err := pathUUID(ctx, "channel_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	result, err := h.svc.ToggleSubscription(reqCtx, channelID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(result))
}

// ListSubscriptions 处理 GET /me/subscriptions。
func (h *SubscriptionHandler) ListSubscriptions(ctx khttp.Context) error {
	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	channels, err := h.svc.ListSubscriptions(reqCtx)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(channels))
}
