package services_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/repositories"
	"github.com/vidora/vidora-services-platform/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// fakePlaylistRepo 在内存中模拟播放列表元数据，含封面回指字段。
type fakePlaylistRepo struct {
	playlists map[uuid.UUID]*po.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: make(map[uuid.UUID]*po.Playlist)}
}

func (f *fakePlaylistRepo) Create(_ context.Context, _ txmanager.Session, input repositories.CreatePlaylistInput) (*po.Playlist, error) {
	playlist := &po.Playlist{
		PlaylistID:  uuid.New(),
		ChannelID:   input.ChannelID,
		Title:       input.Title,
		Description: input.Description,
		Visibility:  input.Visibility,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.playlists[playlist.PlaylistID] = playlist
	return playlist, nil
}

func (f *fakePlaylistRepo) Update(_ context.Context, _ txmanager.Session, input repositories.UpdatePlaylistInput) (*po.Playlist, error) {
	playlist, ok := f.playlists[input.PlaylistID]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	if input.Title != nil {
		playlist.Title = *input.Title
	}
	if input.Description != nil {
		playlist.Description = input.Description
	}
	if input.Visibility != nil {
		playlist.Visibility = *input.Visibility
	}
	return playlist, nil
}

func (f *fakePlaylistRepo) Delete(_ context.Context, _ txmanager.Session, playlistID uuid.UUID) error {
	if _, ok := f.playlists[playlistID]; !ok {
		return repositories.ErrPlaylistNotFound
	}
	delete(f.playlists, playlistID)
	return nil
}

func (f *fakePlaylistRepo) FindByID(_ context.Context, _ txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error) {
	playlist, ok := f.playlists[playlistID]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	copied := *playlist
	return &copied, nil
}

func (f *fakePlaylistRepo) SetThumbnail(_ context.Context, _ txmanager.Session, playlistID uuid.UUID, videoID *uuid.UUID, pinned bool) error {
	playlist, ok := f.playlists[playlistID]
	if !ok {
		return repositories.ErrPlaylistNotFound
	}
	playlist.ThumbnailVideoID = videoID
	playlist.ThumbnailPinned = pinned
	return nil
}

func (f *fakePlaylistRepo) ListByChannel(_ context.Context, _ txmanager.Session, channelID uuid.UUID) ([]po.Playlist, error) {
	var out []po.Playlist
	for _, p := range f.playlists {
		if p.ChannelID == channelID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// fakePlaylistVideoRepo 在内存中模拟条目表，位置语义与 SQL 实现一致。
type fakePlaylistVideoRepo struct {
	entries map[uuid.UUID]map[uuid.UUID]*po.PlaylistVideo
}

func newFakePlaylistVideoRepo() *fakePlaylistVideoRepo {
	return &fakePlaylistVideoRepo{entries: make(map[uuid.UUID]map[uuid.UUID]*po.PlaylistVideo)}
}

func (f *fakePlaylistVideoRepo) scope(playlistID uuid.UUID) map[uuid.UUID]*po.PlaylistVideo {
	if f.entries[playlistID] == nil {
		f.entries[playlistID] = make(map[uuid.UUID]*po.PlaylistVideo)
	}
	return f.entries[playlistID]
}

func (f *fakePlaylistVideoRepo) Append(_ context.Context, _ txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error) {
	scope := f.scope(playlistID)
	entry := &po.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   int32(len(scope)),
		AddedAt:    time.Now(),
	}
	scope[videoID] = entry
	return entry, nil
}

func (f *fakePlaylistVideoRepo) Find(_ context.Context, _ txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error) {
	entry, ok := f.scope(playlistID)[videoID]
	if !ok {
		return nil, repositories.ErrPlaylistVideoNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakePlaylistVideoRepo) List(_ context.Context, _ txmanager.Session, playlistID uuid.UUID) ([]po.PlaylistVideo, error) {
	var out []po.PlaylistVideo
	for _, entry := range f.scope(playlistID) {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakePlaylistVideoRepo) Delete(_ context.Context, _ txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error) {
	scope := f.scope(playlistID)
	entry, ok := scope[videoID]
	if !ok {
		return nil, repositories.ErrPlaylistVideoNotFound
	}
	delete(scope, videoID)
	return entry, nil
}

func (f *fakePlaylistVideoRepo) ShiftRange(_ context.Context, _ txmanager.Session, playlistID uuid.UUID, lo, hi, delta int32) error {
	for _, entry := range f.scope(playlistID) {
		if entry.Position >= lo && entry.Position <= hi {
			entry.Position += delta
		}
	}
	return nil
}

func (f *fakePlaylistVideoRepo) SetPosition(_ context.Context, _ txmanager.Session, playlistID, videoID uuid.UUID, position int32) error {
	entry, ok := f.scope(playlistID)[videoID]
	if !ok {
		return repositories.ErrPlaylistVideoNotFound
	}
	entry.Position = position
	return nil
}

func (f *fakePlaylistVideoRepo) Count(_ context.Context, _ txmanager.Session, playlistID uuid.UUID) (int32, error) {
	return int32(len(f.scope(playlistID))), nil
}

func (f *fakePlaylistVideoRepo) VideoAt(_ context.Context, _ txmanager.Session, playlistID uuid.UUID, position int32) (uuid.UUID, error) {
	for _, entry := range f.scope(playlistID) {
		if entry.Position == position {
			return entry.VideoID, nil
		}
	}
	return uuid.Nil, repositories.ErrPlaylistVideoNotFound
}

type playlistFixture struct {
	svc      *services.PlaylistService
	owner    uuid.UUID
	playlist uuid.UUID
	videos   []uuid.UUID
}

func newPlaylistFixture(t *testing.T, videoCount int) *playlistFixture {
	t.Helper()
	owner := uuid.New()
	channel := &po.Channel{ChannelID: uuid.New(), OwnerUserID: owner, Name: "channel", Handle: "handle"}

	videoIDs := make([]uuid.UUID, 0, videoCount)
	videoRepo := newStubVideoRepo()
	for i := 0; i < videoCount; i++ {
		video := &po.Video{
			VideoID:    uuid.New(),
			ChannelID:  channel.ChannelID,
			Title:      "video",
			Status:     po.VideoStatusReady,
			Visibility: po.VisibilityPublic,
		}
		videoRepo.videos[video.VideoID] = video
		videoIDs = append(videoIDs, video.VideoID)
	}

	svc := services.NewPlaylistService(
		newFakePlaylistRepo(),
		newFakePlaylistVideoRepo(),
		videoRepo,
		newStubChannelRepo(channel),
		noopTxManager{},
		log.NewStdLogger(ioDiscard{}),
	)

	detail, err := svc.CreatePlaylist(actorCtx(owner), services.CreatePlaylistInput{
		ChannelID:  channel.ChannelID,
		Title:      "mix",
		Visibility: po.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	return &playlistFixture{svc: svc, owner: owner, playlist: detail.PlaylistID, videos: videoIDs}
}

func (fx *playlistFixture) addAll(t *testing.T) {
	t.Helper()
	for _, videoID := range fx.videos {
		if _, err := fx.svc.AddVideo(actorCtx(fx.owner), fx.playlist, videoID); err != nil {
			t.Fatalf("AddVideo(%s): %v", videoID, err)
		}
	}
}

func TestPlaylistThumbnailFollowsFirstVideo(t *testing.T) {
	fx := newPlaylistFixture(t, 2)
	fx.addAll(t)

	detail, err := fx.svc.GetPlaylist(context.Background(), fx.playlist)
	if err != nil {
		t.Fatalf("GetPlaylist: %v", err)
	}
	if detail.ThumbnailVideoID == nil || *detail.ThumbnailVideoID != fx.videos[0] {
		t.Fatalf("expected thumbnail to follow first video, got %v", detail.ThumbnailVideoID)
	}
}

func TestPlaylistAddDuplicateRejected(t *testing.T) {
	fx := newPlaylistFixture(t, 1)
	fx.addAll(t)

	_, err := fx.svc.AddVideo(actorCtx(fx.owner), fx.playlist, fx.videos[0])
	if !errors.Is(err, services.ErrVideoAlreadyInList) {
		t.Fatalf("expected ErrVideoAlreadyInList, got %v", err)
	}
}

func TestPlaylistRepositionRefreshesThumbnail(t *testing.T) {
	fx := newPlaylistFixture(t, 3)
	fx.addAll(t)

	detail, err := fx.svc.RepositionVideo(actorCtx(fx.owner), fx.playlist, fx.videos[2], 0)
	if err != nil {
		t.Fatalf("RepositionVideo: %v", err)
	}
	if detail.ThumbnailVideoID == nil || *detail.ThumbnailVideoID != fx.videos[2] {
		t.Fatalf("expected thumbnail to follow new head, got %v", detail.ThumbnailVideoID)
	}
	for i, entry := range detail.Videos {
		if entry.Position != int32(i) {
			t.Fatalf("positions not dense after reposition: %+v", detail.Videos)
		}
	}
}

func TestPlaylistPinnedThumbnailSurvivesReorder(t *testing.T) {
	fx := newPlaylistFixture(t, 3)
	fx.addAll(t)

	if _, err := fx.svc.PinThumbnail(actorCtx(fx.owner), fx.playlist, fx.videos[1]); err != nil {
		t.Fatalf("PinThumbnail: %v", err)
	}

	detail, err := fx.svc.RepositionVideo(actorCtx(fx.owner), fx.playlist, fx.videos[2], 0)
	if err != nil {
		t.Fatalf("RepositionVideo: %v", err)
	}
	if detail.ThumbnailVideoID == nil || *detail.ThumbnailVideoID != fx.videos[1] {
		t.Fatalf("expected pinned thumbnail to stay, got %v", detail.ThumbnailVideoID)
	}
}

func TestPlaylistRemovingPinnedVideoReassignsThumbnail(t *testing.T) {
	fx := newPlaylistFixture(t, 3)
	fx.addAll(t)

	if _, err := fx.svc.PinThumbnail(actorCtx(fx.owner), fx.playlist, fx.videos[1]); err != nil {
		t.Fatalf("PinThumbnail: %v", err)
	}

	detail, err := fx.svc.RemoveVideo(actorCtx(fx.owner), fx.playlist, fx.videos[1])
	if err != nil {
		t.Fatalf("RemoveVideo: %v", err)
	}
	if detail.ThumbnailVideoID == nil || *detail.ThumbnailVideoID != fx.videos[0] {
		t.Fatalf("expected thumbnail reassigned to head, got %v", detail.ThumbnailVideoID)
	}
}

func TestPlaylistRemovingLastVideoClearsThumbnail(t *testing.T) {
	fx := newPlaylistFixture(t, 1)
	fx.addAll(t)

	detail, err := fx.svc.RemoveVideo(actorCtx(fx.owner), fx.playlist, fx.videos[0])
	if err != nil {
		t.Fatalf("RemoveVideo: %v", err)
	}
	if detail.ThumbnailVideoID != nil {
		t.Fatalf("expected empty playlist to clear thumbnail, got %v", detail.ThumbnailVideoID)
	}
	if len(detail.Videos) != 0 {
		t.Fatalf("expected no entries, got %d", len(detail.Videos))
	}
}

func TestPlaylistUnpinFollowsCurrentHead(t *testing.T) {
	fx := newPlaylistFixture(t, 2)
	fx.addAll(t)

	if _, err := fx.svc.PinThumbnail(actorCtx(fx.owner), fx.playlist, fx.videos[1]); err != nil {
		t.Fatalf("PinThumbnail: %v", err)
	}
	detail, err := fx.svc.UnpinThumbnail(actorCtx(fx.owner), fx.playlist)
	if err != nil {
		t.Fatalf("UnpinThumbnail: %v", err)
	}
	if detail.ThumbnailVideoID == nil || *detail.ThumbnailVideoID != fx.videos[0] {
		t.Fatalf("expected thumbnail back on head after unpin, got %v", detail.ThumbnailVideoID)
	}
}

func TestPlaylistPinRequiresMembership(t *testing.T) {
	fx := newPlaylistFixture(t, 1)
	fx.addAll(t)

	_, err := fx.svc.PinThumbnail(actorCtx(fx.owner), fx.playlist, uuid.New())
	if !errors.Is(err, services.ErrPlaylistVideoNotFound) {
		t.Fatalf("expected ErrPlaylistVideoNotFound, got %v", err)
	}
}

func TestPlaylistRemoveVideoShiftsPositions(t *testing.T) {
	fx := newPlaylistFixture(t, 3)
	fx.addAll(t)

	detail, err := fx.svc.RemoveVideo(actorCtx(fx.owner), fx.playlist, fx.videos[0])
	if err != nil {
		t.Fatalf("RemoveVideo: %v", err)
	}
	if len(detail.Videos) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(detail.Videos))
	}
	if detail.Videos[0].VideoID != fx.videos[1] || detail.Videos[0].Position != 0 {
		t.Fatalf("expected second video promoted to head, got %+v", detail.Videos[0])
	}
	if detail.Videos[1].VideoID != fx.videos[2] || detail.Videos[1].Position != 1 {
		t.Fatalf("expected third video shifted, got %+v", detail.Videos[1])
	}
}

func TestPlaylistWriteRequiresOwnership(t *testing.T) {
	fx := newPlaylistFixture(t, 1)
	stranger := uuid.New()

	_, err := fx.svc.AddVideo(actorCtx(stranger), fx.playlist, fx.videos[0])
	if !errors.Is(err, services.ErrChannelForbidden) {
		t.Fatalf("expected ErrChannelForbidden, got %v", err)
	}
	if err := fx.svc.DeletePlaylist(actorCtx(stranger), fx.playlist); !errors.Is(err, services.ErrChannelForbidden) {
		t.Fatalf("expected ErrChannelForbidden on delete, got %v", err)
	}
}

func TestPlaylistAddUnknownVideo(t *testing.T) {
	fx := newPlaylistFixture(t, 0)

	_, err := fx.svc.AddVideo(actorCtx(fx.owner), fx.playlist, uuid.New())
	if !errors.Is(err, services.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}
