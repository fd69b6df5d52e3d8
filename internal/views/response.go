// Package views 负责将 Service 层返回的 VO 渲染为 API 响应。
// 该层作为传输层的序列化适配器，隔离业务逻辑与协议细节。
package views

// Envelope 是所有成功响应的统一外层结构。
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK 构造携带数据的成功响应。
func OK(data any) *Envelope {
	return &Envelope{Message: "ok", Data: data}
}

// Deleted 构造删除成功响应，不携带数据。
func Deleted() *Envelope {
	return &Envelope{Message: "deleted"}
}

// Accepted 构造已受理响应，用于无返回体的写操作。
func Accepted() *Envelope {
	return &Envelope{Message: "accepted"}
}
