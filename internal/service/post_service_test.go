package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Newsroom/internal/model"
	"Newsroom/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, p *model.Post) *model.Post {
	t.Helper()
	if p.Status == "" {
		p.Status = model.PostStatusPublished
	}
	if p.Slug == "" {
		p.Slug = p.TitleUz
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestListPublishedHidesDraftsAndDeleted(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepo(db), nil)
	ctx := context.Background()
	news := seedCategory(t, db, "News", model.CategoryTypeNews)
	videos := seedCategory(t, db, "Videos", model.CategoryTypeMedia)

	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now().Add(-time.Hour)
	seedPost(t, db, &model.Post{TitleUz: "old", CategoryID: &news.ID, PublishedAt: &older})
	seedPost(t, db, &model.Post{TitleUz: "new", CategoryID: &news.ID, PublishedAt: &newer})
	seedPost(t, db, &model.Post{TitleUz: "clip", CategoryID: &videos.ID, PublishedAt: &older})
	seedPost(t, db, &model.Post{TitleUz: "draft", Status: model.PostStatusDraft})
	seedPost(t, db, &model.Post{TitleUz: "gone", IsDeleted: true, PublishedAt: &newer})

	posts, total, err := svc.ListPublished(ctx, "", repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].TitleUz)

	onlyNews, total, err := svc.ListPublished(ctx, model.CategoryTypeNews, repository.Page{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, onlyNews, 1)
	assert.Equal(t, "new", onlyNews[0].TitleUz)
	require.NotNil(t, onlyNews[0].Category)

	latest, err := svc.Latest(ctx, model.CategoryTypeMedia, 5)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "clip", latest[0].TitleUz)
}

func TestGetBySlugCountsViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepo(db), nil)
	ctx := context.Background()
	seedPost(t, db, &model.Post{TitleUz: "Hello", Slug: "hello", ViewsCount: 7})
	seedPost(t, db, &model.Post{TitleUz: "Hidden", Slug: "hidden", Status: model.PostStatusDraft})

	post, err := svc.GetBySlug(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(8), post.ViewsCount)

	post, err = svc.GetBySlug(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(9), post.ViewsCount)

	_, err = svc.GetBySlug(ctx, "hidden")
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestSearchOnDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepo(db), nil)
	ctx := context.Background()
	seedPost(t, db, &model.Post{TitleUz: "Ta'lim", Slug: "talim", ContentRu: "Новая программа обучения"})
	seedPost(t, db, &model.Post{TitleUz: "Sport", Slug: "sport", TitleEn: "Football final"})
	seedPost(t, db, &model.Post{TitleUz: "Draft football", Slug: "draft", Status: model.PostStatusDraft})

	_, _, err := svc.Search(ctx, "", repository.Page{Limit: 10})
	assert.ErrorIs(t, err, ErrSearchQueryRequired)

	// whitespace is a query like any other
	_, _, err = svc.Search(ctx, "   ", repository.Page{Limit: 10})
	assert.NoError(t, err)

	posts, total, err := svc.Search(ctx, "football", repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Sport", posts[0].TitleUz)

	posts, _, err = svc.Search(ctx, "программа", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "talim", posts[0].Slug)
}

func TestSearchUsesIndexAndFallsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedPost(t, db, &model.Post{TitleUz: "Alpha", Slug: "alpha"})
	b := seedPost(t, db, &model.Post{TitleUz: "Beta", Slug: "beta"})
	index := newMemoryIndex()
	index.searchIDs = []uint64{b.ID, a.ID}
	svc := NewPostService(repository.NewPostRepo(db), index)

	posts, total, err := svc.Search(ctx, "anything", repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	assert.Equal(t, "Beta", posts[0].TitleUz)

	index.searchErr = errors.New("cluster red")
	posts, total, err = svc.Search(ctx, "alpha", repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Alpha", posts[0].TitleUz)
}

func TestSearchIndexNeverExposesHiddenPosts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	live := seedPost(t, db, &model.Post{TitleUz: "Live", Slug: "live"})
	draft := seedPost(t, db, &model.Post{TitleUz: "Secret", Slug: "secret", Status: model.PostStatusDraft})
	gone := seedPost(t, db, &model.Post{TitleUz: "Gone", Slug: "gone", IsDeleted: true})
	index := newMemoryIndex()
	index.searchIDs = []uint64{draft.ID, gone.ID, live.ID}
	svc := NewPostService(repository.NewPostRepo(db), index)

	posts, _, err := svc.Search(ctx, "secret", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "live", posts[0].Slug)

	index.searchIDs = []uint64{draft.ID}
	posts, _, err = svc.Search(ctx, "secret", repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetBySlugParallelViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepo(db), nil)
	ctx := context.Background()
	post := seedPost(t, db, &model.Post{TitleUz: "Hot", Slug: "hot"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetBySlug(ctx, "hot")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var reloaded model.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, int64(50), reloaded.ViewsCount)
}
