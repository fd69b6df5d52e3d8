package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// CommentHandler 处理评论与回复相关的 HTTP 请求。
type CommentHandler struct {
	base *BaseHandler
	svc  *services.CommentService
}

// NewCommentHandler 构造评论 Handler。
func NewCommentHandler(base *BaseHandler, svc *services.CommentService) *CommentHandler {
	return &CommentHandler{base: base, svc: svc}
}

// Register 挂载评论路由。
func (h *CommentHandler) Register(r *khttp.Router) {
	r.POST("/videos/{video_id}/comments", h.CreateComment)
	r.GET("/videos/{video_id}/comments", h.ListComments)
	r.PATCH("/comments/{comment_id}", h.UpdateComment)
	r.DELETE("/comments/{comment_id}", h.DeleteComment)
	r.GET("/comments/{comment_id}/replies", h.ListReplies)
}

// CreateComment 处理 POST /videos/{video_id}/comments。
func (h *CommentHandler) CreateComment(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToCreateCommentInput(videoID)
	if err != nil {
		return errors.BadRequest("COMMENT_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	comment, err := h.svc.CreateComment(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(201, views.OK(comment))
}

// ListComments 处理 GET /videos/{video_id}/comments，支持 sort_by 与 limit 参数。
func (h *CommentHandler) ListComments(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	limit, err := dto.ParseLimit(ctx.Query().Get("limit"))
	if err != nil {
		return errors.BadRequest("QUERY_PARAM_INVALID", err.Error())
	}
	sort := dto.ParseCommentSort(dto.SortParam(ctx.Query()))

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	comments, err := h.svc.ListComments(reqCtx, videoID, sort, limit)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(comments))
}

// UpdateComment 处理 PATCH /comments/{comment_id}。
func (h *CommentHandler) UpdateComment(ctx khttp.Context) error {
	commentID, err := pathUUID(ctx, "comment_id")
	if err != nil {
		return err
	}
	var req dto.UpdateCommentRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	body, err := req.ValidatedBody()
	if err != nil {
		return errors.BadRequest("COMMENT_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	comment, err := h.svc.UpdateComment(reqCtx, commentID, body)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(comment))
}

// DeleteComment 处理 DELETE /comments/{comment_id}。
func (h *CommentHandler) DeleteComment(ctx khttp.Context) error {
	commentID, err := pathUUID(ctx, "comment_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.svc.DeleteComment(reqCtx, commentID); err != nil {
		return err
	}
	return ctx.Result(200, views.Deleted())
}

// ListReplies 处理 GET /comments/{comment_id}/replies。
func (h *CommentHandler) ListReplies(ctx khttp.Context) error {
	commentID, err := pathUUID(ctx, "comment_id")
	if err != nil {
		return err
	}
	limit, err := dto.ParseLimit(ctx.Query().Get("limit"))
	if err != nil {
		return errors.BadRequest("QUERY_PARAM_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	replies, err := h.svc.ListReplies(reqCtx, commentID, limit)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(replies))
}
