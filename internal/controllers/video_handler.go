package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// VideoHandler 处理视频相关的 HTTP 请求。
type VideoHandler struct {
	base *BaseHandler
	svc  *services.VideoService
}

// NewVideoHandler 构造视频 Handler。
func NewVideoHandler(base *BaseHandler, svc *services.VideoService) *VideoHandler {
	return &VideoHandler{base: base, svc: svc}
}

// Register 挂载视频路由。
func (h *VideoHandler) Register(r *khttp.Router) {
	r.POST("/videos", h.CreateVideo)
	r.PATCH("/videos/{video_id}", h.UpdateVideo)
	r.DELETE("/videos/{video_id}", h.DeleteVideo)
	r.GET("/videos/{video_id}", h.GetVideoDetail)
	r.POST("/videos/{video_id}/views", h.RecordView)
	r.GET("/channels/{channel_id}/videos", h.ListChannelVideos)
}

// CreateVideo 处理 POST /videos：创建记录并返回上传用的 Signed URL。
func (h *VideoHandler) CreateVideo(ctx khttp.Context) error {
	var req dto.CreateVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToCreateVideoInput()
	if err != nil {
		return errors.BadRequest("VIDEO_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	created, err := h.svc.CreateVideo(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(201, views.OK(created))
}

// UpdateVideo 处理 PATCH /videos/{video_id}。
func (h *VideoHandler) UpdateVideo(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	var req dto.UpdateVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToUpdateVideoInput()
	if err != nil {
		return errors.BadRequest("VIDEO_INPUT_INVALID", err.Error())
	}
	input.VideoID = videoID

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	detail, err := h.svc.UpdateVideo(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(detail))
}

// DeleteVideo 处理 DELETE /videos/{video_id}。
func (h *VideoHandler) DeleteVideo(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.svc.DeleteVideo(reqCtx, videoID); err != nil {
		return err
	}
	return ctx.Result(200, views.Deleted())
}

// GetVideoDetail 处理 GET /videos/{video_id}。
func (h *VideoHandler) GetVideoDetail(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	detail, err := h.svc.GetVideoDetail(reqCtx, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(detail))
}

// RecordView 处理 POST /videos/{video_id}/views。匿名请求同样计数。
func (h *VideoHandler) RecordView(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	entry, err := h.svc.RecordView(reqCtx, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(entry))
}

// ListChannelVideos 处理 GET /channels/{channel_id}/videos。
func (h *VideoHandler) ListChannelVideos(ctx khttp.Context) error {
	channelID, err := pathUUID(ctx, "channel_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	items, err := h.svc.ListChannelVideos(reqCtx, channelID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(items))
}
