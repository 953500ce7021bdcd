package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const reindexBatchSize = 500

// SearchIndexService rebuilds the post search index from the database.
type SearchIndexService interface {
	Reindex(ctx context.Context) (int, error)
}

type SearchIndexServiceImpl struct {
	postRepo  repository.PostRepo
	postIndex es.PostIndex
	batchSize int
	now       func() time.Time
}

func NewSearchIndexService(postRepo repository.PostRepo, postIndex es.PostIndex) SearchIndexService {
	return &SearchIndexServiceImpl{postRepo: postRepo, postIndex: postIndex, batchSize: reindexBatchSize, now: time.Now}
}

// Reindex streams published posts into the index in id order, then drops
// every document the pass did not touch.
func (s *SearchIndexServiceImpl) Reindex(ctx context.Context) (int, error) {
	if err := s.postIndex.EnsureIndex(ctx); err != nil {
		return 0, err
	}
	started := s.now()

	batches := make(chan []*model.Post, 2)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		var afterID uint64
		for {
			posts, err := s.postRepo.ListPublishedAfter(gctx, afterID, s.batchSize)
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				return nil
			}
			select {
			case batches <- posts:
			case <-gctx.Done():
				return gctx.Err()
			}
			if len(posts) < s.batchSize {
				return nil
			}
			afterID = posts[len(posts)-1].ID
		}
	})

	indexed := 0
	g.Go(func() error {
		for posts := range batches {
			docs := make([]*es.PostDoc, len(posts))
			for i, p := range posts {
				docs[i] = es.NewPostDoc(p, started)
			}
			if err := s.postIndex.BulkIndex(gctx, docs); err != nil {
				return err
			}
			indexed += len(docs)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return indexed, err
	}

	stale, err := s.postIndex.DeleteIndexedBefore(ctx, started)
	if err != nil {
		return indexed, err
	}
	log.InfoContext(ctx, "Search index rebuilt", "indexed", indexed, "removed", stale)
	return indexed, nil
}
