package service

import (
	"context"
	"testing"

	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryListIsCachedAndInvalidatedByAdminWrites(t *testing.T) {
	db := newTestDB(t)
	setupRedis(t)
	ctx := context.Background()
	repo := repository.NewCategoryRepo(db)
	public := NewCategoryService(repo)
	auditLogger, _ := newAuditLogger()
	admin := NewCategoryAdminService(repo, auditLogger)
	seedCategory(t, db, "News", model.CategoryTypeNews)

	first, err := public.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	cached, err := redis.Exists(ctx, consts.CategoryListKey)
	require.NoError(t, err)
	assert.True(t, cached)

	// a write that bypasses the admin service stays invisible until the cache goes
	seedCategory(t, db, "Events", model.CategoryTypeAnnouncement)
	stale, err := public.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	_, err = admin.CreateCategory(ctx, editor, &dto.CategoryInput{Name: "Reports", Type: model.CategoryTypeReport})
	require.NoError(t, err)
	fresh, err := public.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 3)
	assert.Equal(t, "Events", fresh[0].Name)
}

func TestCategoryListSurvivesCorruptCache(t *testing.T) {
	db := newTestDB(t)
	setupRedis(t)
	ctx := context.Background()
	seedCategory(t, db, "News", model.CategoryTypeNews)
	require.NoError(t, redis.SetWithExpiration(ctx, consts.CategoryListKey, "{not json", categoryCacheTTL))

	categories, err := NewCategoryService(repository.NewCategoryRepo(db)).ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestPublicGetCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepo(db))
	news := seedCategory(t, db, "News", model.CategoryTypeNews)

	got, err := svc.GetCategory(context.Background(), news.ID)
	require.NoError(t, err)
	assert.Equal(t, "News", got.Name)

	_, err = svc.GetCategory(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryAdminLifecycle(t *testing.T) {
	db := newTestDB(t)
	setupRedis(t)
	ctx := context.Background()
	auditLogger, sink := newAuditLogger()
	admin := NewCategoryAdminService(repository.NewCategoryRepo(db), auditLogger)

	_, err := admin.CreateCategory(ctx, editor, &dto.CategoryInput{Name: "Bad", Type: "podcast"})
	assert.ErrorIs(t, err, model.ErrInvalidCategoryType)

	news, err := admin.CreateCategory(ctx, editor, &dto.CategoryInput{Name: " News ", Type: model.CategoryTypeNews})
	require.NoError(t, err)
	assert.Equal(t, "News", news.Name)
	assert.Contains(t, sink.messages[0], "Name: News")

	_, err = admin.CreateCategory(ctx, editor, &dto.CategoryInput{Name: "News", Type: model.CategoryTypeMedia})
	assert.ErrorIs(t, err, ErrCategoryNameExist)

	description := "Latest headlines"
	updated, err := admin.UpdateCategory(ctx, editor, news.ID, &dto.CategoryInput{Name: "Headlines", Type: model.CategoryTypeNews, Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Headlines", updated.Name)
	last := sink.messages[len(sink.messages)-1]
	assert.Contains(t, last, "[UPDATED] UPDATED | Category")
	assert.Contains(t, last, "      Old: News")

	_, err = admin.UpdateCategory(ctx, editor, 9999, &dto.CategoryInput{Name: "x", Type: model.CategoryTypeNews})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategoryDetachesPosts(t *testing.T) {
	db := newTestDB(t)
	setupRedis(t)
	ctx := context.Background()
	auditLogger, _ := newAuditLogger()
	admin := NewCategoryAdminService(repository.NewCategoryRepo(db), auditLogger)
	news := seedCategory(t, db, "News", model.CategoryTypeNews)
	post := &model.Post{TitleUz: "Bir", Slug: "bir", CategoryID: &news.ID, Status: model.PostStatusDraft}
	require.NoError(t, db.Create(post).Error)

	require.NoError(t, admin.DeleteCategory(ctx, editor, news.ID))
	assert.ErrorIs(t, admin.DeleteCategory(ctx, editor, news.ID), ErrCategoryNotFound)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Nil(t, stored.CategoryID)
}

func TestAdminListCategoriesCountsPublishedPosts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auditLogger, _ := newAuditLogger()
	admin := NewCategoryAdminService(repository.NewCategoryRepo(db), auditLogger)
	news := seedCategory(t, db, "News", model.CategoryTypeNews)
	seedCategory(t, db, "Videos", model.CategoryTypeMedia)
	require.NoError(t, db.Create(&model.Post{TitleUz: "A", Slug: "a", CategoryID: &news.ID, Status: model.PostStatusPublished}).Error)
	require.NoError(t, db.Create(&model.Post{TitleUz: "B", Slug: "b", CategoryID: &news.ID, Status: model.PostStatusDraft}).Error)

	rows, total, err := admin.ListCategories(ctx, &dto.CategoryFilter{Type: model.CategoryTypeNews}, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "News", rows[0].TypeLabel)
	assert.Equal(t, int64(1), rows[0].PostCount)
}
