package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// DiscoveryHandler 处理搜索与趋势榜请求。
type DiscoveryHandler struct {
	base     *BaseHandler
	search   *services.SearchService
	trending *services.TrendingService
}

// NewDiscoveryHandler 构造发现页 Handler。
func NewDiscoveryHandler(base *BaseHandler, search *services.SearchService, trending *services.TrendingService) *DiscoveryHandler {
	return &DiscoveryHandler{base: base, search: search, trending: trending}
}

// Register 挂载搜索与趋势路由。
func (h *DiscoveryHandler) Register(r *khttp.Router) {
	r.GET("/search", h.Search)
	r.GET("/trending", h.Trending)
}

// Search 处理 GET /search?q=...&sort_by=...&upload_date=...&limit=...。
func (h *DiscoveryHandler) Search(ctx khttp.Context) error {
	query := ctx.Query()
	limit, err := dto.ParseLimit(query.Get("limit"))
	if err != nil {
		return errors.BadRequest("QUERY_PARAM_INVALID", err.Error())
	}
	input := services.SearchInput{
		Query:      query.Get("q"),
		Sort:       dto.ParseSearchSort(dto.SortParam(query)),
		UploadDate: dto.ParseDateBucket(query.Get("upload_date")),
		Limit:      limit,
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	results, err := h.search.Search(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(results))
}

// Trending 处理 GET /trending?limit=...。
func (h *DiscoveryHandler) Trending(ctx khttp.Context) error {
	limit, err := dto.ParseLimit(ctx.Query().Get("limit"))
	if err != nil {
		return errors.BadRequest("QUERY_PARAM_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	results, err := h.trending.Trending(reqCtx, limit)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(results))
}
