package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// CategoryWithCount a category plus its published, non-deleted posts.
type CategoryWithCount struct {
	model.PostCategory
	PostCount int64 `gorm:"column:post_count"`
}

type CategoryQuery struct {
	Type  string
	Query string
	Page  Page
}

type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]*model.PostCategory, error)
	ListWithPostCount(ctx context.Context, q CategoryQuery) ([]*CategoryWithCount, int64, error)
	GetCategory(ctx context.Context, id uint64) (*model.PostCategory, error)
	CreateCategory(ctx context.Context, category *model.PostCategory) error
	UpdateCategory(ctx context.Context, category *model.PostCategory) error
	DeleteCategory(ctx context.Context, id uint64) error
	FirstOrCreateByName(ctx context.Context, category *model.PostCategory) (bool, error)
}

type CategoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &CategoryRepoImpl{db: db}
}

func (s *CategoryRepoImpl) ListCategories(ctx context.Context) ([]*model.PostCategory, error) {
	categories := make([]*model.PostCategory, 0)
	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryRepoImpl) ListWithPostCount(ctx context.Context, q CategoryQuery) ([]*CategoryWithCount, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.PostCategory{})
	if q.Type != "" {
		db = db.Where("type = ?", q.Type)
	}
	if q.Query != "" {
		db = containsAny(db, q.Query, "name", "description")
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	postCount := s.db.Model(&model.Post{}).
		Select("COUNT(*)").
		Where("Posts.category_id = PostCategories.id").
		Where("Posts.status = ? AND Posts.is_deleted = ?", model.PostStatusPublished, false)

	rows := make([]*CategoryWithCount, 0)
	err := q.Page.apply(db.Select("PostCategories.*, (?) AS post_count", postCount).Order("name ASC")).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *CategoryRepoImpl) GetCategory(ctx context.Context, id uint64) (*model.PostCategory, error) {
	category := &model.PostCategory{}
	if err := s.db.WithContext(ctx).First(category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryRepoImpl) CreateCategory(ctx context.Context, category *model.PostCategory) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CategoryRepoImpl) UpdateCategory(ctx context.Context, category *model.PostCategory) error {
	return s.db.WithContext(ctx).Omit("CreatedAt").Save(category).Error
}

// DeleteCategory detaches referencing posts before removing the category.
func (s *CategoryRepoImpl) DeleteCategory(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PostCategory{}, id).Error
	})
}

func (s *CategoryRepoImpl) FirstOrCreateByName(ctx context.Context, category *model.PostCategory) (bool, error) {
	result := s.db.WithContext(ctx).
		Where(model.PostCategory{Name: category.Name}).
		Attrs(model.PostCategory{Type: category.Type, Description: category.Description}).
		FirstOrCreate(category)
	return result.RowsAffected > 0, result.Error
}
