package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/audit"
	"Newsroom/internal/pkg/database"
	"Newsroom/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
)

const auditModelCategory = "Category"

type CategoryAdminService interface {
	ListCategories(ctx context.Context, filter *dto.CategoryFilter, page repository.Page) ([]*dto.AdminCategoryDTO, int64, error)
	GetCategory(ctx context.Context, id uint64) (*model.PostCategory, error)
	CreateCategory(ctx context.Context, actor audit.Actor, in *dto.CategoryInput) (*model.PostCategory, error)
	UpdateCategory(ctx context.Context, actor audit.Actor, id uint64, in *dto.CategoryInput) (*model.PostCategory, error)
	DeleteCategory(ctx context.Context, actor audit.Actor, id uint64) error
}

type CategoryAdminServiceImpl struct {
	categoryRepo repository.CategoryRepo
	auditLogger  *audit.Logger
}

func NewCategoryAdminService(categoryRepo repository.CategoryRepo, auditLogger *audit.Logger) CategoryAdminService {
	return &CategoryAdminServiceImpl{categoryRepo: categoryRepo, auditLogger: auditLogger}
}

func (s *CategoryAdminServiceImpl) ListCategories(ctx context.Context, filter *dto.CategoryFilter, page repository.Page) ([]*dto.AdminCategoryDTO, int64, error) {
	q := repository.CategoryQuery{Page: page}
	if filter != nil {
		q.Type = filter.Type
		q.Query = strings.TrimSpace(filter.Query)
	}
	rows, total, err := s.categoryRepo.ListWithPostCount(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.AdminCategoryDTO, 0, len(rows))
	for _, row := range rows {
		item := &dto.AdminCategoryDTO{}
		if err = copier.Copy(item, &row.PostCategory); err != nil {
			return nil, 0, err
		}
		item.TypeLabel = model.CategoryTypeLabels[row.Type]
		item.PostCount = row.PostCount
		out = append(out, item)
	}
	return out, total, nil
}

func (s *CategoryAdminServiceImpl) GetCategory(ctx context.Context, id uint64) (*model.PostCategory, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryAdminServiceImpl) CreateCategory(ctx context.Context, actor audit.Actor, in *dto.CategoryInput) (*model.PostCategory, error) {
	category := &model.PostCategory{}
	if err := copier.Copy(category, in); err != nil {
		return nil, err
	}
	category.Name = strings.TrimSpace(category.Name)
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrCategoryNameExist
		}
		return nil, err
	}
	invalidateCategoryCache(ctx)

	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionCreated, auditModelCategory, category, actor, nil, "")
	})
	return category, nil
}

func (s *CategoryAdminServiceImpl) UpdateCategory(ctx context.Context, actor audit.Actor, id uint64, in *dto.CategoryInput) (*model.PostCategory, error) {
	before, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	if err = copier.Copy(&after, in); err != nil {
		return nil, err
	}
	after.Name = strings.TrimSpace(after.Name)
	if err = after.Validate(); err != nil {
		return nil, err
	}

	changes := audit.Diff(before, &after, model.CategoryAuditFields)
	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionUpdated, auditModelCategory, &after, actor, changes, "")
	})

	if err = s.categoryRepo.UpdateCategory(ctx, &after); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrCategoryNameExist
		}
		return nil, err
	}
	invalidateCategoryCache(ctx)
	return &after, nil
}

// DeleteCategory detaches the category's posts, they are never removed with it.
func (s *CategoryAdminServiceImpl) DeleteCategory(ctx context.Context, actor audit.Actor, id uint64) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionDeleted, auditModelCategory, category, actor, nil, "")
	})

	if err = s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	invalidateCategoryCache(ctx)
	return nil
}
