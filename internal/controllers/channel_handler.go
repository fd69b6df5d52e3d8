package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// ChannelHandler 处理频道相关的 HTTP 请求。
type ChannelHandler struct {
	base *BaseHandler
	svc  *services.ChannelService
}

// NewChannelHandler 构造频道 Handler。
func NewChannelHandler(base *BaseHandler, svc *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{base: base, svc: svc}
}

// Register 挂载频道路由。
func (h *ChannelHandler) Register(r *khttp.Router) {
	r.POST("/channels", h.CreateChannel)
	r.PATCH("/channels/{channel_id}", h.UpdateChannel)
	r.GET("/channels/{channel_id}", h.GetChannel)
	r.GET("/me/channels", h.ListMyChannels)
}

// CreateChannel 处理 POST /channels。
func (h *ChannelHandler) CreateChannel(ctx khttp.Context) error {
	var req dto.CreateChannelRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToCreateChannelInput()
	if err != nil {
		return errors.BadRequest("CHANNEL_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	detail, err := h.svc.CreateChannel(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(201, views.OK(detail))
}

// UpdateChannel 处理 PATCH /channels/{channel_id}。
func (h *ChannelHandler) UpdateChannel(ctx khttp.Context) error {
	channelID, err := pathUUID(ctx, "channel_id")
	if err != nil {
		return err
	}
	var req dto.UpdateChannelRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToUpdateChannelInput()
	if err != nil {
		return errors.BadRequest("CHANNEL_INPUT_INVALID", err.Error())
	}
	input.ChannelID = channelID

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	detail, err := h.svc.UpdateChannel(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(detail))
}

// GetChannel 处理 GET /channels/{channel_id}。
func (h *ChannelHandler) GetChannel(ctx khttp.Context) error {
	channelID, err := pathUUID(ctx, "channel_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	detail, err := h.svc.GetChannel(reqCtx, channelID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(detail))
}

// ListMyChannels 处理 GET /me/channels。
func (h *ChannelHandler) ListMyChannels(ctx khttp.Context) error {
	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	channels, err := h.svc.ListMyChannels(reqCtx)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(channels))
}
