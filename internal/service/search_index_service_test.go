package service

import (
	"context"
	"testing"
	"time"

	"Newsroom/internal/model"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReindexStreamsPublishedPostsAndDropsStale(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		seedPost(t, db, &model.Post{TitleUz: title})
	}
	seedPost(t, db, &model.Post{TitleUz: "draft", Status: model.PostStatusDraft})

	index := newMemoryIndex()
	// left behind by a post that no longer exists
	_ = index.IndexPost(ctx, &es.PostDoc{ID: 999, IndexedAt: time.Now().Add(-time.Hour)})

	svc := NewSearchIndexService(repository.NewPostRepo(db), index).(*SearchIndexServiceImpl)
	svc.batchSize = 2

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Len(t, index.ids(), 5)
	assert.NotContains(t, index.ids(), uint64(999))
}

func TestReindexEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	index := newMemoryIndex()
	n, err := NewSearchIndexService(repository.NewPostRepo(db), index).Reindex(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, index.ids())
}
