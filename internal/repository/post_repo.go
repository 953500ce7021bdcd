package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// PostLocaleColumns the nine translated text columns searched by q.
var PostLocaleColumns = []string{
	"title_uz", "title_ru", "title_en",
	"short_description_uz", "short_description_ru", "short_description_en",
	"content_uz", "content_ru", "content_en",
}

const postOrder = "published_at DESC, created_at DESC, id DESC"

// PostQuery filters for post listings.
type PostQuery struct {
	PublishedOnly bool
	CategoryType  string
	CategoryID    *uint64
	Status        string
	TypeTag       string
	Query         string
	SearchSlug    bool
	Page          Page
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
	DeletePosts(ctx context.Context, ids []uint64) (int64, error)
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostsByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetPublishedByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPosts(ctx context.Context, q PostQuery) ([]*model.Post, int64, error)
	ListPublishedAfter(ctx context.Context, afterID uint64, limit int) ([]*model.Post, error)
	IncrementViews(ctx context.Context, id uint64) error
	FirstOrCreateByTitle(ctx context.Context, post *model.Post) (bool, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Omit("Category").Create(post).Error
}

// UpdatePost writes every column, including zero values.
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Omit("Category", "CreatedAt", "ViewsCount").Save(post).Error
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (s *PostRepoImpl) DeletePosts(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Post{})
	return result.RowsAffected, result.Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).Preload("Category").First(post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// GetPostsByIDs keeps the order of ids, missing ids are dropped.
func (s *PostRepoImpl) GetPostsByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	return s.byIDs(s.db.WithContext(ctx).Model(&model.Post{}), ids)
}

// GetPublishedByIDs is GetPostsByIDs restricted to publicly visible posts.
func (s *PostRepoImpl) GetPublishedByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	return s.byIDs(s.published(ctx), ids)
}

func (s *PostRepoImpl) byIDs(db *gorm.DB, ids []uint64) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var found []*model.Post
	if err := db.Preload("Category").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	posts := make([]*model.Post, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *PostRepoImpl) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post := &model.Post{}
	err := s.published(ctx).Preload("Category").Where("slug = ?", slug).First(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (s *PostRepoImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, q PostQuery) ([]*model.Post, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Post{})
	if q.PublishedOnly {
		db = s.published(ctx)
	}
	if q.CategoryType != "" {
		db = db.Where("category_id IN (?)",
			s.db.WithContext(ctx).Model(&model.PostCategory{}).Select("id").Where("type = ?", q.CategoryType))
	}
	if q.CategoryID != nil {
		db = db.Where("category_id = ?", *q.CategoryID)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.TypeTag != "" {
		db = db.Where("type_tag = ?", q.TypeTag)
	}
	if q.Query != "" {
		columns := PostLocaleColumns
		if q.SearchSlug {
			columns = append(append([]string{}, PostLocaleColumns...), "slug")
		}
		db = containsAny(db, q.Query, columns...)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*model.Post, 0)
	err := q.Page.apply(db.Preload("Category").Order(postOrder)).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPublishedAfter pages through published posts by id, used for reindexing.
func (s *PostRepoImpl) ListPublishedAfter(ctx context.Context, afterID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.published(ctx).Preload("Category").
		Where("id > ?", afterID).Order("id ASC").Limit(limit).Find(&posts).Error
	return posts, err
}

// IncrementViews adds one view in a single UPDATE so concurrent readers never lose counts.
func (s *PostRepoImpl) IncrementViews(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

// FirstOrCreateByTitle creates post unless one with the same primary title exists.
func (s *PostRepoImpl) FirstOrCreateByTitle(ctx context.Context, post *model.Post) (bool, error) {
	result := s.db.WithContext(ctx).Omit("Category").
		Where(model.Post{TitleUz: post.TitleUz}).
		FirstOrCreate(post)
	return result.RowsAffected > 0, result.Error
}

func (s *PostRepoImpl) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("status = ? AND is_deleted = ?", model.PostStatusPublished, false)
}
