package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// ReactionHandler 处理视频与评论的三态反应请求。
type ReactionHandler struct {
	base *BaseHandler
	svc  *services.ReactionService
}

// NewReactionHandler 构造反应 Handler。
func NewReactionHandler(base *BaseHandler, svc *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{base: base, svc: svc}
}

// Register 挂载反应路由。
func (h *ReactionHandler) Register(r *khttp.Router) {
	r.PUT("/videos/{video_id}/rating", h.RateVideo)
	r.GET("/videos/{video_id}/rating", h.GetVideoRating)
	r.PUT("/comments/{comment_id}/rating", h.RateComment)
	r.GET("/comments/{comment_id}/rating", h.GetCommentRating)
}

// RateVideo 处理 PUT /videos/{video_id}/rating。
func (h *ReactionHandler) RateVideo(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	rating, err := h.bindRating(ctx)
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.svc.RateVideo(reqCtx, videoID, rating); err != nil {
		return err
	}
	return ctx.Result(200, views.Accepted())
}

// GetVideoRating 处理 GET /videos/{video_id}/rating。
func (h *ReactionHandler) GetVideoRating(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	rating, err := h.svc.GetRating(reqCtx, po.ReactionTargetVideo, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(map[string]string{"rating": string(rating)}))
}

// RateComment 处理 PUT /comments/{comment_id}/rating。
func (h *ReactionHandler) RateComment(ctx khttp.Context) error {
	commentID, err := pathUUID(ctx, "comment_id")
	if err != nil {
		return err
	}
	rating, err := h.bindRating(ctx)
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.svc.RateComment(reqCtx, commentID, rating); err != nil {
		return err
	}
	return ctx.Result(200, views.Accepted())
}

// GetCommentRating 处理 GET /comments/{comment_id}/rating。
func (h *ReactionHandler) GetCommentRating(ctx khttp.Context) error {
	commentID, err := pathUUID(ctx, "comment_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	rating, err := h.svc.GetRating(reqCtx, po.ReactionTargetComment, commentID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(map[string]string{"rating": string(rating)}))
}

func (h *ReactionHandler) bindRating(ctx khttp.Context) (services.Rating, error) {
	var req dto.RateRequest
	if err := ctx.Bind(&req); err != nil {
		return "", errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	return req.ToRating()
}
