package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// LinkHandler 处理频道链接相关的 HTTP 请求。
type LinkHandler struct {
	base *BaseHandler
	svc  *services.LinkService
}

// NewLinkHandler 构造链接 Handler。
func NewLinkHandler(base *BaseHandler, svc *services.LinkService) *LinkHandler {
	return &LinkHandler{base: base, svc: svc}
}

// Register 挂载链接路由。
func (h *LinkHandler) Register(r *khttp.Router) {
	r.POST("/channels/{channel_id}/links", h.AppendLink)
	r.GET("/channels/{channel_id}/links", h.ListLinks)
	r.PATCH("/links/{link_id}", h.UpdateLink)
	r.DELETE("/links/{link_id}", h.RemoveLink)
	r.PUT("/links/{link_id}/position", h.RepositionLink)
}

// AppendLink 处理 POST /channels/{channel_id}/links：新链接追加到尾部。
func (h *LinkHandler) AppendLink(ctx khttp.Context) error {
	channelID, err := pathUUID(ctx, "channel_id")
	if err != nil {
		return err
	}
	var req dto.CreateLinkRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToCreateLinkInput(channelID)
	if err != nil {
		return errors.BadRequest("LINK_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	link, err := h.svc.AppendLink(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(201, views.OK(link))
}

// ListLinks 处理 GET /channels/{channel_id}/links。
func (h *LinkHandler) ListLinks(ctx khttp.Context) error {
	channelID, err := pathUUID(ctx, "channel_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	links, err := h.svc.ListLinks(reqCtx, channelID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(links))
}

// UpdateLink 处理 PATCH /links/{link_id}：改标题或地址，不动位置。
func (h *LinkHandler) UpdateLink(ctx khttp.Context) error {
	linkID, err := pathUUID(ctx, "link_id")
	if err != nil {
		return err
	}
	var req dto.UpdateLinkRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToUpdateLinkInput(linkID)
	if err != nil {
		return errors.BadRequest("LINK_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	link, err := h.svc.UpdateLink(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(link))
}

// RemoveLink 处理 DELETE /links/{link_id}：其后链接整体前移一位。
func (h *LinkHandler) RemoveLink(ctx khttp.Context) error {
	linkID, err := pathUUID(ctx, "link_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.svc.RemoveLink(reqCtx, linkID); err != nil {
		return err
	}
	return ctx.Result(200, views.Deleted())
}

// RepositionLink 处理 PUT /links/{link_id}/position，返回重排后的完整列表。
func (h *LinkHandler) RepositionLink(ctx khttp.Context) error {
	linkID, err := pathUUID(ctx, "link_id")
	if err != nil {
		return err
	}
	var req dto.RepositionRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	links, err := h.svc.RepositionLink(reqCtx, linkID, req.Position)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(links))
}
