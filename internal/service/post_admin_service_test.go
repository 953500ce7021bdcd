package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryIndex is an in-process es.PostIndex.
type memoryIndex struct {
	mu        sync.Mutex
	docs      map[uint64]*es.PostDoc
	searchErr error
	searchIDs []uint64
}

func newMemoryIndex() *memoryIndex {
	return &memoryIndex{docs: make(map[uint64]*es.PostDoc)}
}

func (m *memoryIndex) EnsureIndex(context.Context) error { return nil }

func (m *memoryIndex) IndexPost(_ context.Context, doc *es.PostDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return nil
}

func (m *memoryIndex) BulkIndex(ctx context.Context, docs []*es.PostDoc) error {
	for _, doc := range docs {
		_ = m.IndexPost(ctx, doc)
	}
	return nil
}

func (m *memoryIndex) DeletePost(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *memoryIndex) DeleteIndexedBefore(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, doc := range m.docs {
		if doc.IndexedAt.Before(before) {
			delete(m.docs, id)
			removed++
		}
	}
	return removed, nil
}

func (m *memoryIndex) SearchPublished(_ context.Context, _ string, _, _ int) ([]uint64, int64, error) {
	if m.searchErr != nil {
		return nil, 0, m.searchErr
	}
	return m.searchIDs, int64(len(m.searchIDs)), nil
}

func (m *memoryIndex) ids() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint64, 0, len(m.docs))
	for id := range m.docs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type postAdminFixture struct {
	svc   PostAdminService
	db    *gorm.DB
	index *memoryIndex
	sink  *recordingSink
}

func newPostAdminFixture(t *testing.T) *postAdminFixture {
	t.Helper()
	db := newTestDB(t)
	setupRedis(t)
	index := newMemoryIndex()
	auditLogger, sink := newAuditLogger()
	svc := NewPostAdminService(repository.NewPostRepo(db), repository.NewCategoryRepo(db), auditLogger,
		util.NewSlugGenerator(false), index)
	return &postAdminFixture{svc: svc, db: db, index: index, sink: sink}
}

func seedCategory(t *testing.T, db *gorm.DB, name, kind string) *model.PostCategory {
	t.Helper()
	c := &model.PostCategory{Name: name, Type: kind}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestCreatePostDraftGetsSlugAndAudit(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()
	category := seedCategory(t, f.db, "News", model.CategoryTypeNews)

	post, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{
		TitleUz:    "  Yangi dastur  ",
		CategoryID: &category.ID,
		ContentUz:  `<p>Matn</p><script>alert(1)</script>`,
		Image:      new(string),
	})
	require.NoError(t, err)
	assert.Equal(t, "Yangi dastur", post.TitleUz)
	assert.Equal(t, "yangi-dastur", post.Slug)
	assert.Equal(t, model.PostStatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Nil(t, post.Image)
	assert.NotContains(t, post.ContentUz, "script")
	require.NotNil(t, post.Category)
	assert.Equal(t, "News", post.Category.Name)

	require.Len(t, f.sink.messages, 1)
	assert.Contains(t, f.sink.messages[0], "[CREATED] CREATED | Post")
	assert.Contains(t, f.sink.messages[0], "Info: "+postCreatedInfo)
	assert.Empty(t, f.index.ids())
}

func TestCreatePostSlugCollisions(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Hisobot"})
	require.NoError(t, err)
	second, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Hisobot"})
	require.NoError(t, err)
	assert.Equal(t, "hisobot", first.Slug)
	assert.Equal(t, "hisobot-1", second.Slug)

	_, err = f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Boshqa", Slug: "hisobot"})
	assert.ErrorIs(t, err, ErrSlugConflict)
}

// staleSlugRepo answers SlugExists from an outdated view, the way a
// concurrent writer can take a slug between the check and the insert.
type staleSlugRepo struct {
	repository.PostRepo
	mu    sync.Mutex
	stale int // lookups still answered "free"; negative means all of them
}

func (r *staleSlugRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stale != 0 {
		if r.stale > 0 {
			r.stale--
		}
		return false, nil
	}
	return r.PostRepo.SlugExists(ctx, slug)
}

func newStaleSlugService(t *testing.T, stale int) (PostAdminService, *gorm.DB, *recordingSink) {
	t.Helper()
	db := newTestDB(t)
	setupRedis(t)
	auditLogger, sink := newAuditLogger()
	repo := &staleSlugRepo{PostRepo: repository.NewPostRepo(db), stale: stale}
	svc := NewPostAdminService(repo, repository.NewCategoryRepo(db), auditLogger,
		util.NewSlugGenerator(false), newMemoryIndex())
	return svc, db, sink
}

func TestCreatePostRetriesOnceWhenGeneratedSlugIsTaken(t *testing.T) {
	svc, db, sink := newStaleSlugService(t, 1)
	seedPost(t, db, &model.Post{TitleUz: "Race", Slug: "race"})

	post, err := svc.CreatePost(context.Background(), editor, &dto.PostInput{TitleUz: "Race"})
	require.NoError(t, err)
	assert.Equal(t, "race-1", post.Slug)
	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "Slug: race-1")
}

func TestCreatePostSecondSlugCollisionFails(t *testing.T) {
	svc, db, sink := newStaleSlugService(t, -1)
	seedPost(t, db, &model.Post{TitleUz: "Race", Slug: "race"})

	_, err := svc.CreatePost(context.Background(), editor, &dto.PostInput{TitleUz: "Race"})
	assert.ErrorIs(t, err, ErrSlugConflict)
	assert.Empty(t, sink.messages)

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePostValidation(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()
	url, file := "https://video.example.com/1", "videos/1.mp4"
	missing := uint64(404)

	_, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Video", VideoURL: &url, VideoFile: &file})
	assert.ErrorIs(t, err, model.ErrVideoSourceConflict)

	_, err = f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Bad", Status: "archived"})
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Orphan", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "   "})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestPublishingStampsTimeIndexesAndAudits(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Tadbir", Slug: "tadbir"})
	require.NoError(t, err)

	updated, err := f.svc.UpdatePost(ctx, editor, post.ID, &dto.PostInput{
		TitleUz: "Tadbir", Slug: "tadbir", Status: model.PostStatusPublished,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished())
	assert.NotNil(t, updated.PublishedAt)
	assert.Equal(t, []uint64{post.ID}, f.index.ids())

	require.Len(t, f.sink.messages, 2)
	msg := f.sink.messages[1]
	assert.Contains(t, msg, "[UPDATED] UPDATED | Post")
	assert.Contains(t, msg, "  • status:")
	assert.Contains(t, msg, "      New: published")
	assert.Contains(t, msg, "Info: "+postPublishedInfo)

	// a blank status keeps the current one
	kept, err := f.svc.UpdatePost(ctx, editor, post.ID, &dto.PostInput{TitleUz: "Tadbir 2", Slug: "tadbir"})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, kept.Status)
	assert.NotContains(t, f.sink.messages[2], postPublishedInfo)

	// unpublishing removes it from the index
	_, err = f.svc.UpdatePost(ctx, editor, post.ID, &dto.PostInput{TitleUz: "Tadbir 2", Slug: "tadbir", Status: model.PostStatusDraft})
	require.NoError(t, err)
	assert.Empty(t, f.index.ids())
}

func TestUpdatePostRegeneratesBlankSlug(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Yangilik"})
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Boshqa yangilik", Slug: "boshqa"})
	require.NoError(t, err)

	// its own slug does not count as taken
	same, err := f.svc.UpdatePost(ctx, editor, post.ID, &dto.PostInput{TitleUz: "Yangilik"})
	require.NoError(t, err)
	assert.Equal(t, "yangilik", same.Slug)

	_, err = f.svc.UpdatePost(ctx, editor, post.ID, &dto.PostInput{TitleUz: "Yangilik", Slug: "boshqa"})
	assert.ErrorIs(t, err, ErrSlugConflict)

	_, err = f.svc.UpdatePost(ctx, editor, 9999, &dto.PostInput{TitleUz: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePostKeepsViewCount(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Mashhur", Status: model.PostStatusPublished})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&model.Post{}).Where("id = ?", post.ID).Update("views_count", 42).Error)

	updated, err := f.svc.UpdatePost(ctx, editor, post.ID, &dto.PostInput{TitleUz: "Mashhur!"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), updated.ViewsCount)
}

func TestDeletePosts(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()

	var ids []uint64
	for _, title := range []string{"Bir", "Ikki", "Uch"} {
		p, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: title, Status: model.PostStatusPublished})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.Len(t, f.index.ids(), 3)

	require.NoError(t, f.svc.DeletePost(ctx, editor, ids[0]))
	assert.Contains(t, f.sink.messages[len(f.sink.messages)-1], "Info: Deleted post: Bir")
	assert.ErrorIs(t, f.svc.DeletePost(ctx, editor, ids[0]), ErrPostNotFound)

	deleted, err := f.svc.BulkDeletePosts(ctx, editor, []uint64{ids[1], ids[2], 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Contains(t, f.sink.messages[len(f.sink.messages)-1], "BULK DELETE | Post")
	assert.Contains(t, f.sink.messages[len(f.sink.messages)-1], "Items Affected: 2")
	assert.Empty(t, f.index.ids())

	deleted, err = f.svc.BulkDeletePosts(ctx, editor, []uint64{9999})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	_, err = f.svc.BulkDeletePosts(ctx, editor, nil)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestAdminListPostsFilters(t *testing.T) {
	f := newPostAdminFixture(t)
	ctx := context.Background()
	news := seedCategory(t, f.db, "News", model.CategoryTypeNews)

	_, err := f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Draft one", CategoryID: &news.ID})
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, editor, &dto.PostInput{TitleUz: "Live one", Status: model.PostStatusPublished, TypeTag: "Events"})
	require.NoError(t, err)

	all, total, err := f.svc.ListPosts(ctx, nil, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	drafts, total, err := f.svc.ListPosts(ctx, &dto.PostFilter{Status: model.PostStatusDraft}, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Draft one", drafts[0].TitleUz)

	_, total, err = f.svc.ListPosts(ctx, &dto.PostFilter{CategoryID: &news.ID}, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	tagged, _, err := f.svc.ListPosts(ctx, &dto.PostFilter{TypeTag: "Events"}, repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Live one", tagged[0].TitleUz)

	bySlug, _, err := f.svc.ListPosts(ctx, &dto.PostFilter{Query: "live-one"}, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, bySlug, 1)
}

func TestIndexFailureDoesNotFailWrite(t *testing.T) {
	db := newTestDB(t)
	setupRedis(t)
	auditLogger, _ := newAuditLogger()
	svc := NewPostAdminService(repository.NewPostRepo(db), repository.NewCategoryRepo(db), auditLogger,
		util.NewSlugGenerator(false), failingIndex{newMemoryIndex()})

	post, err := svc.CreatePost(context.Background(), editor, &dto.PostInput{TitleUz: "Ok", Status: model.PostStatusPublished})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

type failingIndex struct{ *memoryIndex }

func (failingIndex) IndexPost(context.Context, *es.PostDoc) error { return errors.New("index down") }
