package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/audit"
	"Newsroom/internal/pkg/database"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/microcosm-cc/bluemonday"
)

const (
	auditModelPost = "Post"

	postCreatedInfo   = "New post created and ready for editing"
	postPublishedInfo = "✨ Post published successfully!"
)

type PostAdminService interface {
	ListPosts(ctx context.Context, filter *dto.PostFilter, page repository.Page) ([]*model.Post, int64, error)
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	CreatePost(ctx context.Context, actor audit.Actor, in *dto.PostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, actor audit.Actor, id uint64, in *dto.PostInput) (*model.Post, error)
	DeletePost(ctx context.Context, actor audit.Actor, id uint64) error
	BulkDeletePosts(ctx context.Context, actor audit.Actor, ids []uint64) (int64, error)
}

type PostAdminServiceImpl struct {
	postRepo     repository.PostRepo
	categoryRepo repository.CategoryRepo
	auditLogger  *audit.Logger
	slugs        *util.SlugGenerator
	sanitizer    *bluemonday.Policy
	postIndex    es.PostIndex
	now          func() time.Time
}

// NewPostAdminService postIndex may be nil when search runs on the database.
func NewPostAdminService(postRepo repository.PostRepo, categoryRepo repository.CategoryRepo, auditLogger *audit.Logger,
	slugs *util.SlugGenerator, postIndex es.PostIndex) PostAdminService {
	return &PostAdminServiceImpl{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		auditLogger:  auditLogger,
		slugs:        slugs,
		sanitizer:    bluemonday.UGCPolicy(),
		postIndex:    postIndex,
		now:          time.Now,
	}
}

func (s *PostAdminServiceImpl) ListPosts(ctx context.Context, filter *dto.PostFilter, page repository.Page) ([]*model.Post, int64, error) {
	q := repository.PostQuery{SearchSlug: true, Page: page}
	if filter != nil {
		q.Status = filter.Status
		q.CategoryID = filter.CategoryID
		q.TypeTag = filter.TypeTag
		q.Query = strings.TrimSpace(filter.Query)
	}
	return s.postRepo.ListPosts(ctx, q)
}

func (s *PostAdminServiceImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostAdminServiceImpl) CreatePost(ctx context.Context, actor audit.Actor, in *dto.PostInput) (*model.Post, error) {
	post := &model.Post{}
	if err := copier.Copy(post, in); err != nil {
		return nil, err
	}
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
	s.normalize(post)
	if err := s.validate(ctx, post); err != nil {
		return nil, err
	}

	generated := post.Slug == ""
	if generated {
		slug, err := s.slugs.Unique(ctx, post.TitleUz, s.postRepo.SlugExists)
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}

	err := s.postRepo.CreatePost(ctx, post)
	if database.IsUniqueViolation(err) {
		if !generated {
			return nil, ErrSlugConflict
		}
		// another writer took the generated slug between check and insert
		if post.Slug, err = s.slugs.Unique(ctx, post.TitleUz, s.postRepo.SlugExists); err != nil {
			return nil, err
		}
		post.ID = 0
		err = s.postRepo.CreatePost(ctx, post)
		if database.IsUniqueViolation(err) {
			return nil, ErrSlugConflict
		}
	}
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionCreated, auditModelPost, post, actor, nil, postCreatedInfo)
	})

	saved, err := s.GetPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	s.syncIndex(ctx, saved)
	return saved, nil
}

func (s *PostAdminServiceImpl) UpdatePost(ctx context.Context, actor audit.Actor, id uint64, in *dto.PostInput) (*model.Post, error) {
	before, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	after.Category = nil
	if err = copier.Copy(&after, in); err != nil {
		return nil, err
	}
	if after.Status == "" {
		after.Status = before.Status
	}
	s.normalize(&after)
	if err = s.validate(ctx, &after); err != nil {
		return nil, err
	}

	if after.Slug == "" {
		own := before.Slug
		after.Slug, err = s.slugs.Unique(ctx, after.TitleUz, func(ctx context.Context, slug string) (bool, error) {
			if slug == own {
				return false, nil
			}
			return s.postRepo.SlugExists(ctx, slug)
		})
		if err != nil {
			return nil, err
		}
	}

	changes := audit.Diff(before, &after, model.PostAuditFields)
	extra := ""
	if c, ok := changes.Get("status"); ok && c.New == model.PostStatusPublished {
		extra = postPublishedInfo
	}
	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionUpdated, auditModelPost, &after, actor, changes, extra)
	})

	if err = s.postRepo.UpdatePost(ctx, &after); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	saved, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	s.syncIndex(ctx, saved)
	return saved, nil
}

func (s *PostAdminServiceImpl) DeletePost(ctx context.Context, actor audit.Actor, id uint64) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}

	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionDeleted, auditModelPost, post, actor, nil,
			"Deleted post: "+post.TitleUz)
	})

	if err = s.postRepo.DeletePost(ctx, id); err != nil {
		return err
	}
	s.dropFromIndex(ctx, id)
	return nil
}

func (s *PostAdminServiceImpl) BulkDeletePosts(ctx context.Context, actor audit.Actor, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrParamInvalid
	}
	posts, err := s.postRepo.GetPostsByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		return 0, nil
	}

	found := make([]uint64, 0, len(posts))
	for _, p := range posts {
		found = append(found, p.ID)
	}
	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogBulkAction(ctx, "DELETE", auditModelPost, len(found), actor,
			fmt.Sprintf("Bulk deleted %d posts", len(found)))
	})

	deleted, err := s.postRepo.DeletePosts(ctx, found)
	if err != nil {
		return 0, err
	}
	for _, id := range found {
		s.dropFromIndex(ctx, id)
	}
	return deleted, nil
}

// normalize sanitises HTML bodies, turns blank media fields into NULL and
// stamps the publication time of posts published without one.
func (s *PostAdminServiceImpl) normalize(post *model.Post) {
	post.TitleUz = strings.TrimSpace(post.TitleUz)
	post.Slug = strings.TrimSpace(post.Slug)
	post.ContentUz = s.sanitizer.Sanitize(post.ContentUz)
	post.ContentRu = s.sanitizer.Sanitize(post.ContentRu)
	post.ContentEn = s.sanitizer.Sanitize(post.ContentEn)
	post.Image = util.NilIfBlank(post.Image)
	post.VideoURL = util.NilIfBlank(post.VideoURL)
	post.VideoFile = util.NilIfBlank(post.VideoFile)
	if post.IsPublished() && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
}

func (s *PostAdminServiceImpl) validate(ctx context.Context, post *model.Post) error {
	if post.TitleUz == "" {
		return ErrParamInvalid
	}
	if err := post.Validate(); err != nil {
		return err
	}
	if post.CategoryID != nil {
		category, err := s.categoryRepo.GetCategory(ctx, *post.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}

// syncIndex mirrors visibility into the search index; failures only log,
// the nightly reindex repairs drift.
func (s *PostAdminServiceImpl) syncIndex(ctx context.Context, post *model.Post) {
	if s.postIndex == nil {
		return
	}
	if !post.IsPublished() || post.IsDeleted {
		s.dropFromIndex(ctx, post.ID)
		return
	}
	if err := s.postIndex.IndexPost(ctx, es.NewPostDoc(post, s.now())); err != nil {
		log.WarnContext(ctx, "Failed to index post", "post_id", post.ID, "err", err)
	}
}

func (s *PostAdminServiceImpl) dropFromIndex(ctx context.Context, id uint64) {
	if s.postIndex == nil {
		return
	}
	if err := s.postIndex.DeletePost(ctx, id); err != nil {
		log.WarnContext(ctx, "Failed to remove post from index", "post_id", id, "err", err)
	}
}
