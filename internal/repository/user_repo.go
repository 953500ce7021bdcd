package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserQuery struct {
	Query    string
	IsStaff  *bool
	IsActive *bool
	Page     Page
}

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	EmailTaken(ctx context.Context, email string, exceptID uint64) (bool, error)
	ListUsers(ctx context.Context, q UserQuery) ([]*model.User, int64, error)
	ListStaffNonSuperusers(ctx context.Context) ([]*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id uint64, at time.Time) error
	UpdatePassword(ctx context.Context, id uint64, hash string) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).Where(query, args...).First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *UserRepoImpl) EmailTaken(ctx context.Context, email string, exceptID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserRepoImpl) ListUsers(ctx context.Context, q UserQuery) ([]*model.User, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.User{})
	if q.Query != "" {
		db = containsAny(db, q.Query, "username", "email", "first_name", "last_name")
	}
	if q.IsStaff != nil {
		db = db.Where("is_staff = ?", *q.IsStaff)
	}
	if q.IsActive != nil {
		db = db.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := make([]*model.User, 0)
	if err := q.Page.apply(db.Order("username ASC")).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserRepoImpl) ListStaffNonSuperusers(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0)
	err := s.db.WithContext(ctx).
		Where("is_staff = ? AND is_superuser = ?", true, false).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// UpdateUser saves profile and flag columns, the password hash is left untouched.
func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Model(user).
		Select("Username", "Email", "FirstName", "LastName", "IsActive", "IsStaff", "EmailVerified").
		Updates(user).Error
}

func (s *UserRepoImpl) UpdateLastLogin(ctx context.Context, id uint64, at time.Time) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}

func (s *UserRepoImpl) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserPermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
