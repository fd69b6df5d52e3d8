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

// fakeCommentRepo 在内存中模拟评论表，回复随父评论删除。
// reactions 保存三态反应行（true 为点赞），TOP 排序只统计点赞。
type fakeCommentRepo struct {
	comments  map[uuid.UUID]*po.Comment
	order     []uuid.UUID // 创建顺序，保证列表迭代稳定
	reactions map[uuid.UUID][]bool
	listSort  repositories.CommentSort
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments:  make(map[uuid.UUID]*po.Comment),
		reactions: make(map[uuid.UUID][]bool),
	}
}

func (f *fakeCommentRepo) likeCount(commentID uuid.UUID) int64 {
	var likes int64
	for _, liked := range f.reactions[commentID] {
		if liked {
			likes++
		}
	}
	return likes
}

func (f *fakeCommentRepo) Create(_ context.Context, _ txmanager.Session, input repositories.CreateCommentInput) (*po.Comment, error) {
	comment := &po.Comment{
		CommentID:       uuid.New(),
		VideoID:         input.VideoID,
		AuthorChannelID: input.AuthorChannelID,
		ParentCommentID: input.ParentCommentID,
		Body:            input.Body,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.comments[comment.CommentID] = comment
	f.order = append(f.order, comment.CommentID)
	return comment, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, _ txmanager.Session, commentID uuid.UUID, body string) (*po.Comment, error) {
	comment, ok := f.comments[commentID]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	comment.Body = body
	return comment, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, _ txmanager.Session, commentID uuid.UUID) error {
	if _, ok := f.comments[commentID]; !ok {
		return repositories.ErrCommentNotFound
	}
	delete(f.comments, commentID)
	for id, c := range f.comments {
		if c.ParentCommentID != nil && *c.ParentCommentID == commentID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, _ txmanager.Session, commentID uuid.UUID) (*po.Comment, error) {
	comment, ok := f.comments[commentID]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepo) ListByVideo(_ context.Context, _ txmanager.Session, videoID uuid.UUID, listSort repositories.CommentSort, _ int32) ([]po.CommentWithStats, error) {
	f.listSort = listSort
	var out []po.CommentWithStats
	for _, id := range f.order {
		c, ok := f.comments[id]
		if !ok || c.VideoID != videoID || c.ParentCommentID != nil {
			continue
		}
		out = append(out, po.CommentWithStats{Comment: *c, LikeCount: f.likeCount(id)})
	}
	if listSort == repositories.CommentSortTop {
		sort.SliceStable(out, func(i, j int) bool { return out[i].LikeCount > out[j].LikeCount })
	} else {
		// NEWEST_FIRST：创建顺序的倒序
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) ListReplies(_ context.Context, _ txmanager.Session, parentID uuid.UUID, _ int32) ([]po.CommentWithStats, error) {
	var out []po.CommentWithStats
	for _, c := range f.comments {
		if c.ParentCommentID != nil && *c.ParentCommentID == parentID {
			out = append(out, po.CommentWithStats{Comment: *c})
		}
	}
	return out, nil
}

type commentFixture struct {
	svc          *services.CommentService
	repo         *fakeCommentRepo
	author       uuid.UUID
	authorCh     uuid.UUID
	videoOwner   uuid.UUID
	videoOwnerCh uuid.UUID
	videoID      uuid.UUID
	otherVideoID uuid.UUID
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	author := uuid.New()
	videoOwner := uuid.New()
	authorChannel := &po.Channel{ChannelID: uuid.New(), OwnerUserID: author, Name: "author", Handle: "author"}
	ownerChannel := &po.Channel{ChannelID: uuid.New(), OwnerUserID: videoOwner, Name: "owner", Handle: "owner"}

	video := &po.Video{VideoID: uuid.New(), ChannelID: ownerChannel.ChannelID, Status: po.VideoStatusReady, Visibility: po.VisibilityPublic}
	otherVideo := &po.Video{VideoID: uuid.New(), ChannelID: ownerChannel.ChannelID, Status: po.VideoStatusReady, Visibility: po.VisibilityPublic}

	repo := newFakeCommentRepo()
	svc := services.NewCommentService(
		repo,
		newStubVideoRepo(video, otherVideo),
		newStubChannelRepo(authorChannel, ownerChannel),
		noopTxManager{},
		log.NewStdLogger(ioDiscard{}),
	)
	return &commentFixture{
		svc:          svc,
		repo:         repo,
		author:       author,
		authorCh:     authorChannel.ChannelID,
		videoOwner:   videoOwner,
		videoOwnerCh: ownerChannel.ChannelID,
		videoID:      video.VideoID,
		otherVideoID: otherVideo.VideoID,
	}
}

func (fx *commentFixture) create(t *testing.T, parent *uuid.UUID) uuid.UUID {
	t.Helper()
	view, err := fx.svc.CreateComment(actorChannelCtx(fx.author, fx.authorCh), services.CreateCommentInput{
		VideoID:         fx.videoID,
		ParentCommentID: parent,
		Body:            "hello",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	return view.CommentID
}

func TestCommentCreateAndReply(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)
	reply := fx.create(t, &top)

	replies, err := fx.svc.ListReplies(context.Background(), top, 0)
	if err != nil {
		t.Fatalf("ListReplies: %v", err)
	}
	if len(replies) != 1 || replies[0].CommentID != reply {
		t.Fatalf("expected single reply %s, got %+v", reply, replies)
	}
}

func TestCommentReplyToReplyRejected(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)
	reply := fx.create(t, &top)

	_, err := fx.svc.CreateComment(actorChannelCtx(fx.author, fx.authorCh), services.CreateCommentInput{
		VideoID:         fx.videoID,
		ParentCommentID: &reply,
		Body:            "nested",
	})
	if !errors.Is(err, services.ErrReplyDepth) {
		t.Fatalf("expected ErrReplyDepth, got %v", err)
	}
}

func TestCommentReplyAcrossVideosRejected(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)

	_, err := fx.svc.CreateComment(actorChannelCtx(fx.author, fx.authorCh), services.CreateCommentInput{
		VideoID:         fx.otherVideoID,
		ParentCommentID: &top,
		Body:            "cross",
	})
	if !errors.Is(err, services.ErrReplyWrongVideo) {
		t.Fatalf("expected ErrReplyWrongVideo, got %v", err)
	}
}

func TestCommentCreateRequiresActiveChannel(t *testing.T) {
	fx := newCommentFixture(t)

	_, err := fx.svc.CreateComment(actorCtx(fx.author), services.CreateCommentInput{
		VideoID: fx.videoID,
		Body:    "no channel",
	})
	if !errors.Is(err, services.ErrChannelRequired) {
		t.Fatalf("expected ErrChannelRequired, got %v", err)
	}
}

func TestCommentCreateWithForeignChannelRejected(t *testing.T) {
	fx := newCommentFixture(t)

	_, err := fx.svc.CreateComment(actorChannelCtx(fx.author, fx.videoOwnerCh), services.CreateCommentInput{
		VideoID: fx.videoID,
		Body:    "spoofed",
	})
	if !errors.Is(err, services.ErrChannelForbidden) {
		t.Fatalf("expected ErrChannelForbidden, got %v", err)
	}
}

func TestCommentUpdateOnlyAuthor(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)

	if _, err := fx.svc.UpdateComment(actorCtx(fx.author), top, "edited"); err != nil {
		t.Fatalf("UpdateComment as author: %v", err)
	}
	if _, err := fx.svc.UpdateComment(actorCtx(fx.videoOwner), top, "hijack"); !errors.Is(err, services.ErrChannelForbidden) {
		t.Fatalf("expected ErrChannelForbidden for non-author, got %v", err)
	}
}

func TestCommentDeleteByAuthor(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)

	if err := fx.svc.DeleteComment(actorCtx(fx.author), top); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if _, ok := fx.repo.comments[top]; ok {
		t.Fatal("expected comment removed")
	}
}

func TestCommentDeleteByVideoOwner(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)

	if err := fx.svc.DeleteComment(actorCtx(fx.videoOwner), top); err != nil {
		t.Fatalf("DeleteComment as video owner: %v", err)
	}
}

func TestCommentDeleteByStrangerRejected(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)

	err := fx.svc.DeleteComment(actorCtx(uuid.New()), top)
	if !errors.Is(err, services.ErrChannelForbidden) {
		t.Fatalf("expected ErrChannelForbidden, got %v", err)
	}
}

func TestCommentDeleteCascadesReplies(t *testing.T) {
	fx := newCommentFixture(t)
	top := fx.create(t, nil)
	reply := fx.create(t, &top)

	if err := fx.svc.DeleteComment(actorCtx(fx.author), top); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if _, ok := fx.repo.comments[reply]; ok {
		t.Fatal("expected reply removed with parent")
	}
}

func TestCommentListDefaultsToNewestFirst(t *testing.T) {
	fx := newCommentFixture(t)
	fx.create(t, nil)

	if _, err := fx.svc.ListComments(context.Background(), fx.videoID, "", 0); err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if fx.repo.listSort != repositories.CommentSortNewest {
		t.Fatalf("expected default sort NEWEST_FIRST, got %q", fx.repo.listSort)
	}
}

func TestCommentListTopSortPassedThrough(t *testing.T) {
	fx := newCommentFixture(t)
	fx.create(t, nil)

	if _, err := fx.svc.ListComments(context.Background(), fx.videoID, repositories.CommentSortTop, 0); err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if fx.repo.listSort != repositories.CommentSortTop {
		t.Fatalf("expected TOP_COMMENTS passed through, got %q", fx.repo.listSort)
	}
}

func TestCommentTopSortIgnoresDislikes(t *testing.T) {
	fx := newCommentFixture(t)
	quiet := fx.create(t, nil)
	controversial := fx.create(t, nil)
	fx.repo.reactions[quiet] = []bool{true}
	fx.repo.reactions[controversial] = []bool{true, true, false, false, false, false, false}

	comments, err := fx.svc.ListComments(context.Background(), fx.videoID, repositories.CommentSortTop, 0)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	// 2 赞 5 踩排在 1 赞 0 踩之前：点踩不参与 TOP 排序
	if comments[0].CommentID != controversial {
		t.Fatalf("expected the 2-like comment first, got %s", comments[0].CommentID)
	}
	if comments[0].LikeCount != 2 || comments[1].LikeCount != 1 {
		t.Fatalf("unexpected like counts: %d, %d", comments[0].LikeCount, comments[1].LikeCount)
	}
}

func TestCommentTopSortStableOnTies(t *testing.T) {
	fx := newCommentFixture(t)
	first := fx.create(t, nil)
	second := fx.create(t, nil)

	comments, err := fx.svc.ListComments(context.Background(), fx.videoID, repositories.CommentSortTop, 0)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 || comments[0].CommentID != first || comments[1].CommentID != second {
		t.Fatalf("expected tie broken by creation order, got %+v", comments)
	}
}
