// Package gcs 提供与 Google Cloud Storage 交互的基础设施封装。
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vidora/vidora-services-platform/internal/conf"

	"cloud.google.com/go/storage"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/oauth2/google"
)

// UploadSigner 负责生成用于媒体直传的 V4 Signed URL（PUT）。
type UploadSigner struct {
	bucket         string
	googleAccessID string
	privateKey     []byte
	now            func() time.Time
	log            *log.Helper
}

// Option 定义可选配置。
type Option func(*UploadSigner)

// WithClock 覆盖时间获取函数，便于测试。
func WithClock(clock func() time.Time) Option {
	return func(s *UploadSigner) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithServiceAccountKey 允许直接注入访问 ID 与私钥（测试友好）。
func WithServiceAccountKey(accessID string, privateKey []byte) Option {
	return func(s *UploadSigner) {
		if accessID != "" {
			s.googleAccessID = accessID
		}
		if len(privateKey) > 0 {
			s.privateKey = append([]byte(nil), privateKey...)
		}
	}
}

// NewUploadSigner 创建 UploadSigner，要求默认凭据中包含 service account 私钥。
func NewUploadSigner(ctx context.Context, media *conf.Media, logger log.Logger, opts ...Option) (*UploadSigner, error) {
	if media == nil || media.Bucket == "" {
		return nil, errors.New("gcs signer: media bucket is required")
	}
	signer := &UploadSigner{
		bucket:         media.Bucket,
		googleAccessID: media.GoogleAccessID,
		now:            time.Now,
		log:            log.NewHelper(logger),
	}

	for _, opt := range opts {
		opt(signer)
	}

	if len(signer.privateKey) == 0 {
		privKey, detectedAccessID, err := loadServiceAccountKey(ctx)
		if err != nil {
			return nil, fmt.Errorf("init gcs signer: %w", err)
		}
		signer.privateKey = privKey
		if signer.googleAccessID == "" {
			signer.googleAccessID = detectedAccessID
		} else if detectedAccessID != "" && detectedAccessID != signer.googleAccessID {
			signer.log.WithContext(ctx).Warnf("gcs signer access id mismatch: config=%s credentials=%s", signer.googleAccessID, detectedAccessID)
		}
	}

	if signer.googleAccessID == "" {
		return nil, errors.New("gcs signer: google access id is required")
	}
	if len(signer.privateKey) == 0 {
		return nil, errors.New("gcs signer: private key is required")
	}

	return signer, nil
}

// SignUpload 生成对象直传所需的 Signed URL，方法为 PUT。
func (s *UploadSigner) SignUpload(ctx context.Context, objectName, contentType string, ttl time.Duration) (string, time.Time, error) {
	if objectName == "" {
		return "", time.Time{}, errors.New("object name is required")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("ttl must be positive")
	}

	expires := s.now().Add(ttl)
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodPut,
		Expires:        expires,
		ContentType:    contentType,
		GoogleAccessID: s.googleAccessID,
		PrivateKey:     s.privateKey,
	}

	url, signErr := storage.SignedURL(s.bucket, objectName, opts)
	if signErr != nil {
		s.log.WithContext(ctx).Errorf("generate upload signed url failed: bucket=%s object=%s err=%v", s.bucket, objectName, signErr)
		return "", time.Time{}, fmt.Errorf("signed url: %w", signErr)
	}
	return url, expires, nil
}

type serviceAccountKey struct {
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
}

func loadServiceAccountKey(ctx context.Context) ([]byte, string, error) {
	creds, err := google.FindDefaultCredentials(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("find default credentials: %w", err)
	}
	if len(creds.JSON) == 0 {
		return nil, "", errors.New("service account JSON not found in default credentials")
	}

	var key serviceAccountKey
	if err := json.Unmarshal(creds.JSON, &key); err != nil {
		return nil, "", fmt.Errorf("parse service account json: %w", err)
	}
	if key.PrivateKey == "" {
		return nil, "", errors.New("service account private key is empty; use a service account JSON credential")
	}
	return []byte(key.PrivateKey), key.ClientEmail, nil
}
