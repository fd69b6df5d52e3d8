// Package conf 定义服务启动配置结构，由 kratos config 从 YAML 与环境变量装载。
package conf

import "time"

// Bootstrap 聚合全部启动配置。
type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Media    *Media    `json:"media"`
	Trending *Trending `json:"trending"`
}

// Server 包含对外传输层配置。
type Server struct {
	HTTP *HTTPServer `json:"http"`
}

// HTTPServer 包含 HTTP 监听配置。
type HTTPServer struct {
	Network        string `json:"network"`
	Addr           string `json:"addr"`
	TimeoutSeconds int64  `json:"timeout_seconds"`
}

// Timeout 返回请求超时时间，未配置时为 30s。
func (s *HTTPServer) Timeout() time.Duration {
	if s == nil || s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Data 包含数据层配置。
type Data struct {
	Postgres *Postgres `json:"postgres"`
}

// Postgres 包含连接池配置，字段语义与 pgxpool.Config 对齐。
type Postgres struct {
	DSN                      string `json:"dsn"`
	Schema                   string `json:"schema"`
	MaxOpenConns             int32  `json:"max_open_conns"`
	MinOpenConns             int32  `json:"min_open_conns"`
	MaxConnLifetimeSeconds   int64  `json:"max_conn_lifetime_seconds"`
	MaxConnIdleTimeSeconds   int64  `json:"max_conn_idle_time_seconds"`
	HealthCheckPeriodSeconds int64  `json:"health_check_period_seconds"`
	EnablePreparedStatements bool   `json:"enable_prepared_statements"`
}

// Media 包含媒体上传（GCS Signed URL）配置。
type Media struct {
	Bucket           string `json:"bucket"`
	GoogleAccessID   string `json:"google_access_id"`
	UploadTTLSeconds int64  `json:"upload_ttl_seconds"`
}

// UploadTTL 返回上传 URL 有效期，未配置时为 15 分钟。
func (m *Media) UploadTTL() time.Duration {
	if m == nil || m.UploadTTLSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(m.UploadTTLSeconds) * time.Second
}

// Trending 包含趋势分权重。三个权重均要求非负，对输入保持单调。
type Trending struct {
	LikeWeight    float64 `json:"like_weight"`
	ViewWeight    float64 `json:"view_weight"`
	CommentWeight float64 `json:"comment_weight"`
}

// Normalize 返回生效权重：未配置或非法（负数、全零）时回退默认 3/1/2。
func (t *Trending) Normalize() Trending {
	if t == nil {
		return Trending{LikeWeight: 3, ViewWeight: 1, CommentWeight: 2}
	}
	w := *t
	if w.LikeWeight < 0 || w.ViewWeight < 0 || w.CommentWeight < 0 {
		return Trending{LikeWeight: 3, ViewWeight: 1, CommentWeight: 2}
	}
	if w.LikeWeight == 0 && w.ViewWeight == 0 && w.CommentWeight == 0 {
		return Trending{LikeWeight: 3, ViewWeight: 1, CommentWeight: 2}
	}
	return w
}
