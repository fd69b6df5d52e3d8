package services_test

import (
	"context"
	"time"

	"github.com/vidora/vidora-services-platform/internal/metadata"
	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type noopTxManager struct{}

type noopSession struct{}

func (noopSession) Tx() pgx.Tx               { return nil }
func (noopSession) Context() context.Context { return context.Background() }

func (noopTxManager) WithinTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, noopSession{})
}

func (noopTxManager) WithinReadOnlyTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, noopSession{})
}

type ioDiscard struct{}

func (ioDiscard) Write(p []byte) (int, error) { return len(p), nil }

// actorCtx 构造携带用户身份的请求上下文。
func actorCtx(userID uuid.UUID) context.Context {
	return metadata.Inject(context.Background(), metadata.HandlerMetadata{UserID: userID.String()})
}

// actorChannelCtx 构造携带用户与当前频道的请求上下文。
func actorChannelCtx(userID, channelID uuid.UUID) context.Context {
	return metadata.Inject(context.Background(), metadata.HandlerMetadata{
		UserID:    userID.String(),
		ChannelID: channelID.String(),
	})
}

// stubChannelRepo 以内存 map 提供频道查询，写操作不支持。
type stubChannelRepo struct {
	channels map[uuid.UUID]*po.Channel
}

func newStubChannelRepo(channels ...*po.Channel) *stubChannelRepo {
	m := make(map[uuid.UUID]*po.Channel, len(channels))
	for _, c := range channels {
		m[c.ChannelID] = c
	}
	return &stubChannelRepo{channels: m}
}

func (s *stubChannelRepo) Create(_ context.Context, _ txmanager.Session, input repositories.CreateChannelInput) (*po.Channel, error) {
	channel := &po.Channel{
		ChannelID:   uuid.New(),
		OwnerUserID: input.OwnerUserID,
		Name:        input.Name,
		Handle:      input.Handle,
		Description: input.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.channels[channel.ChannelID] = channel
	return channel, nil
}

func (s *stubChannelRepo) Update(_ context.Context, _ txmanager.Session, input repositories.UpdateChannelInput) (*po.Channel, error) {
	channel, ok := s.channels[input.ChannelID]
	if !ok {
		return nil, repositories.ErrChannelNotFound
	}
	if input.Name != nil {
		channel.Name = *input.Name
	}
	if input.Description != nil {
		channel.Description = input.Description
	}
	if input.AvatarURL != nil {
		channel.AvatarURL = input.AvatarURL
	}
	return channel, nil
}

func (s *stubChannelRepo) FindByID(_ context.Context, _ txmanager.Session, channelID uuid.UUID) (*po.Channel, error) {
	channel, ok := s.channels[channelID]
	if !ok {
		return nil, repositories.ErrChannelNotFound
	}
	return channel, nil
}

func (s *stubChannelRepo) ListByOwner(_ context.Context, _ txmanager.Session, ownerUserID uuid.UUID) ([]po.Channel, error) {
	var out []po.Channel
	for _, c := range s.channels {
		if c.OwnerUserID == ownerUserID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubChannelRepo) Stats(_ context.Context, _ txmanager.Session, channelID uuid.UUID) (*po.ChannelStats, error) {
	return &po.ChannelStats{ChannelID: channelID}, nil
}

// stubVideoRepo 以内存 map 提供视频查询，列表与统计按需返回。
type stubVideoRepo struct {
	videos map[uuid.UUID]*po.Video
}

func newStubVideoRepo(videos ...*po.Video) *stubVideoRepo {
	m := make(map[uuid.UUID]*po.Video, len(videos))
	for _, v := range videos {
		m[v.VideoID] = v
	}
	return &stubVideoRepo{videos: m}
}

func (s *stubVideoRepo) Create(_ context.Context, _ txmanager.Session, input repositories.CreateVideoInput) (*po.Video, error) {
	video := &po.Video{
		VideoID:          input.VideoID,
		ChannelID:        input.ChannelID,
		Title:            input.Title,
		Description:      input.Description,
		RawFileReference: input.RawFileReference,
		Status:           po.VideoStatusPendingUpload,
		Visibility:       input.Visibility,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	s.videos[video.VideoID] = video
	return video, nil
}

func (s *stubVideoRepo) Update(_ context.Context, _ txmanager.Session, input repositories.UpdateVideoInput) (*po.Video, error) {
	video, ok := s.videos[input.VideoID]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	if input.Title != nil {
		video.Title = *input.Title
	}
	if input.Status != nil {
		video.Status = *input.Status
	}
	if input.Visibility != nil {
		video.Visibility = *input.Visibility
	}
	return video, nil
}

func (s *stubVideoRepo) Delete(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	video, ok := s.videos[videoID]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	delete(s.videos, videoID)
	return video, nil
}

func (s *stubVideoRepo) FindByID(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	video, ok := s.videos[videoID]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	return video, nil
}

func (s *stubVideoRepo) Stats(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*po.VideoStats, error) {
	return &po.VideoStats{VideoID: videoID}, nil
}

func (s *stubVideoRepo) ListByChannel(_ context.Context, _ txmanager.Session, channelID uuid.UUID, publicOnly bool) ([]po.Video, error) {
	var out []po.Video
	for _, v := range s.videos {
		if v.ChannelID != channelID {
			continue
		}
		if publicOnly && (v.Visibility != po.VisibilityPublic || v.Status != po.VideoStatusReady) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }
