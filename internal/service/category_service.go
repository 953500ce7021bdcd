package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

const categoryCacheTTL = 10 * time.Minute

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*model.PostCategory, error)
	GetCategory(ctx context.Context, id uint64) (*model.PostCategory, error)
}

type CategoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &CategoryServiceImpl{categoryRepo: categoryRepo}
}

// ListCategories all categories by name, served from redis when cached.
// Cache failures degrade to a database read.
func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]*model.PostCategory, error) {
	cached, err := redis.GetValue(ctx, consts.CategoryListKey)
	if err != nil {
		log.WarnContext(ctx, "category cache read failed", "err", err)
	}
	if cached != "" {
		var categories []*model.PostCategory
		if err = json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
		log.WarnContext(ctx, "category cache corrupt", "err", err)
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		if err = redis.SetWithExpiration(ctx, consts.CategoryListKey, payload, categoryCacheTTL); err != nil {
			log.WarnContext(ctx, "category cache write failed", "err", err)
		}
	}
	return categories, nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id uint64) (*model.PostCategory, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// invalidateCategoryCache drops the cached public list after an admin write.
func invalidateCategoryCache(ctx context.Context) {
	if err := redis.DeleteKey(ctx, consts.CategoryListKey); err != nil {
		log.WarnContext(ctx, "category cache invalidation failed", "err", err)
	}
}
