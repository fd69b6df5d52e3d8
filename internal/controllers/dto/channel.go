// Package dto 提供控制器层的请求解析与校验工具。
// 单独的 dto 层可以隔离协议对象与业务用例之间的转换逻辑。
package dto

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vidora/vidora-services-platform/internal/services"
)

const (
	maxNameLength        = 120
	maxHandleLength      = 40
	maxDescriptionLength = 5000
)

var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// CreateChannelRequest 是创建频道的请求体。
type CreateChannelRequest struct {
	Name        string  `json:"name"`
	Handle      string  `json:"handle"`
	Description *string `json:"description"`
}

// ToCreateChannelInput 校验请求并映射为服务层输入。
func (r *CreateChannelRequest) ToCreateChannelInput() (services.CreateChannelInput, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" || len(name) > maxNameLength {
		return services.CreateChannelInput{}, fmt.Errorf("name must be 1-%d characters", maxNameLength)
	}
	handle := strings.TrimSpace(r.Handle)
	if handle == "" || len(handle) > maxHandleLength || !handlePattern.MatchString(handle) {
		return services.CreateChannelInput{}, fmt.Errorf("handle must be 1-%d characters of [a-zA-Z0-9._-]", maxHandleLength)
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return services.CreateChannelInput{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	return services.CreateChannelInput{Name: name, Handle: handle, Description: r.Description}, nil
}

// UpdateChannelRequest 是更新频道的请求体，字段均可选。
type UpdateChannelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

// ToUpdateChannelInput 校验请求并映射为服务层输入。
func (r *UpdateChannelRequest) ToUpdateChannelInput() (services.UpdateChannelInput, error) {
	input := services.UpdateChannelInput{
		Description: r.Description,
		AvatarURL:   r.AvatarURL,
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" || len(name) > maxNameLength {
			return services.UpdateChannelInput{}, fmt.Errorf("name must be 1-%d characters", maxNameLength)
		}
		input.Name = &name
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return services.UpdateChannelInput{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	return input, nil
}
