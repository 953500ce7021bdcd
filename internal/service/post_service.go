package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
)

// PostService read side of the public API. Only published, non-deleted posts
// are visible.
type PostService interface {
	ListPublished(ctx context.Context, categoryType string, page repository.Page) ([]*model.Post, int64, error)
	Latest(ctx context.Context, categoryType string, limit int) ([]*model.Post, error)
	Search(ctx context.Context, q string, page repository.Page) ([]*model.Post, int64, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
}

type PostServiceImpl struct {
	postRepo  repository.PostRepo
	postIndex es.PostIndex
}

// NewPostService postIndex may be nil, search then runs on the database.
func NewPostService(postRepo repository.PostRepo, postIndex es.PostIndex) PostService {
	return &PostServiceImpl{postRepo: postRepo, postIndex: postIndex}
}

func (s *PostServiceImpl) ListPublished(ctx context.Context, categoryType string, page repository.Page) ([]*model.Post, int64, error) {
	return s.postRepo.ListPosts(ctx, repository.PostQuery{
		PublishedOnly: true,
		CategoryType:  categoryType,
		Page:          page,
	})
}

func (s *PostServiceImpl) Latest(ctx context.Context, categoryType string, limit int) ([]*model.Post, error) {
	posts, _, err := s.postRepo.ListPosts(ctx, repository.PostQuery{
		PublishedOnly: true,
		CategoryType:  categoryType,
		Page:          repository.Page{Limit: limit},
	})
	return posts, err
}

func (s *PostServiceImpl) Search(ctx context.Context, q string, page repository.Page) ([]*model.Post, int64, error) {
	if q == "" {
		return nil, 0, ErrSearchQueryRequired
	}

	if s.postIndex != nil {
		ids, total, err := s.postIndex.SearchPublished(ctx, q, page.Offset, page.Limit)
		if err == nil {
			posts, err := s.postRepo.GetPublishedByIDs(ctx, ids)
			if err != nil {
				return nil, 0, err
			}
			return posts, total, nil
		}
		log.WarnContext(ctx, "Search index unavailable, falling back to database", "err", err)
	}

	return s.postRepo.ListPosts(ctx, repository.PostQuery{
		PublishedOnly: true,
		Query:         q,
		Page:          page,
	})
}

// GetBySlug counts the view with an atomic increment and returns the fresh row.
func (s *PostServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.postRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err = s.postRepo.IncrementViews(ctx, post.ID); err != nil {
		return nil, err
	}

	fresh, err := s.postRepo.GetPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, ErrPostNotFound
	}
	return fresh, nil
}
