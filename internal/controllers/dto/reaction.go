package dto

import "github.com/vidora/vidora-services-platform/internal/services"

// RateRequest 是设置反应档位的请求体。
type RateRequest struct {
	Rating string `json:"rating"`
}

// ToRating 解析档位，非法值返回 400。
func (r *RateRequest) ToRating() (services.Rating, error) {
	return services.ParseRating(r.Rating)
}
