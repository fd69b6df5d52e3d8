package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vidora/vidora-services-platform/internal/repositories"
	"github.com/vidora/vidora-services-platform/internal/services"
)

// SortParam 读取排序查询参数。对外文档的键名是 sort_by，
// 同时接受简写 sort 作为别名；两者同时出现时 sort_by 优先。
func SortParam(query url.Values) string {
	if v := query.Get("sort_by"); strings.TrimSpace(v) != "" {
		return v
	}
	return query.Get("sort")
}

// ParseLimit 解析 limit 查询参数，空串回退为 0（由仓储取默认值）。
func ParseLimit(raw string) (int32, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer")
	}
	return int32(value), nil
}

// ParseSearchSort 解析搜索排序参数，未识别的值回退到自然顺序。
func ParseSearchSort(raw string) repositories.SearchSort {
	switch repositories.SearchSort(strings.ToUpper(strings.TrimSpace(raw))) {
	case repositories.SearchSortUploadDate:
		return repositories.SearchSortUploadDate
	case repositories.SearchSortViewCount:
		return repositories.SearchSortViewCount
	case repositories.SearchSortRating:
		return repositories.SearchSortRating
	default:
		return repositories.SearchSortNone
	}
}

// ParseCommentSort 解析评论排序参数，未识别的值回退到 NEWEST_FIRST。
func ParseCommentSort(raw string) repositories.CommentSort {
	if repositories.CommentSort(strings.ToUpper(strings.TrimSpace(raw))) == repositories.CommentSortTop {
		return repositories.CommentSortTop
	}
	return repositories.CommentSortNewest
}

// ParseDateBucket 解析发布时间档位参数，未识别的值不过滤。
func ParseDateBucket(raw string) services.DateBucket {
	switch services.DateBucket(strings.ToUpper(strings.TrimSpace(raw))) {
	case services.DateBucketLastHour:
		return services.DateBucketLastHour
	case services.DateBucketToday:
		return services.DateBucketToday
	case services.DateBucketThisWeek:
		return services.DateBucketThisWeek
	case services.DateBucketThisMonth:
		return services.DateBucketThisMonth
	case services.DateBucketThisYear:
		return services.DateBucketThisYear
	default:
		return services.DateBucketAny
	}
}
