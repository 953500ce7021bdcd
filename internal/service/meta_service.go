package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"maps"
	"slices"
	"strings"
)

// Admin model keys accepted by Meta.
const (
	MetaPost     = "post"
	MetaCategory = "postcategory"
	MetaLogEntry = "logentry"
	MetaUser     = "user"
)

// MetaService describes admin forms and change lists.
type MetaService interface {
	Meta(modelName string, existing bool) (*dto.ModelAdminMeta, error)
	Models() []string
}

type MetaServiceImpl struct {
	registry map[string]func() *dto.ModelAdminMeta
}

func NewMetaService() MetaService {
	return &MetaServiceImpl{registry: map[string]func() *dto.ModelAdminMeta{
		MetaPost:     postMeta,
		MetaCategory: categoryMeta,
		MetaLogEntry: logEntryMeta,
		MetaUser:     userMeta,
	}}
}

// Meta the slug is prepopulated from the Uzbek title on new posts only.
func (s *MetaServiceImpl) Meta(modelName string, existing bool) (*dto.ModelAdminMeta, error) {
	build, ok := s.registry[strings.ToLower(modelName)]
	if !ok {
		return nil, ErrUnknownModel
	}
	meta := build()
	if existing {
		meta.Prepopulated = nil
	}
	return meta, nil
}

func (s *MetaServiceImpl) Models() []string {
	return slices.Sorted(maps.Keys(s.registry))
}

func postMeta() *dto.ModelAdminMeta {
	return &dto.ModelAdminMeta{
		Model:          MetaPost,
		VerboseName:    "Post",
		ListDisplay:    []string{"title_preview", "category_badge", "status_badge", "views_count", "published_at"},
		ListFilter:     []string{"status", "category", "type_tag", "published_at", "created_at", "views_count"},
		SearchFields:   []string{"title_uz", "title_ru", "title_en", "short_description_uz", "short_description_ru", "short_description_en", "content_uz", "content_ru", "content_en", "slug"},
		Ordering:       []string{"-published_at", "-created_at"},
		ReadonlyFields: []string{"views_count", "created_at", "updated_at"},
		Prepopulated:   map[string]string{"slug": "title_uz"},
		Fieldsets: []dto.Fieldset{
			{Title: "📝 Content - Uzbek (Main)", Fields: []string{"title_uz", "slug", "short_description_uz", "content_uz"}, Description: "Uzbek language content (primary)"},
			{Title: "🇷🇺 Content - Russian", Fields: []string{"title_ru", "short_description_ru", "content_ru"}, Description: "Russian language content (optional)", Collapsed: true},
			{Title: "🇬🇧 Content - English", Fields: []string{"title_en", "short_description_en", "content_en"}, Description: "English language content (optional)", Collapsed: true},
			{Title: "📌 Categorization", Fields: []string{"category", "type_tag"}, Description: "Category and tags"},
			{Title: "🖼️ Media", Fields: []string{"image", "video_url", "video_file"}, Description: "Images and video content (use either video URL or video file, not both)"},
			{Title: "📊 Publishing", Fields: []string{"status", "published_at"}, Description: "Visibility and publication settings"},
			{Title: "📈 Statistics", Fields: []string{"views_count", "created_at", "updated_at"}, Description: "Metadata and view tracking", Collapsed: true},
		},
		Choices: map[string]any{
			"status": map[string]string{model.PostStatusDraft: "Draft", model.PostStatusPublished: "Published"},
		},
		CanAdd:    true,
		CanDelete: true,
	}
}

func categoryMeta() *dto.ModelAdminMeta {
	return &dto.ModelAdminMeta{
		Model:          MetaCategory,
		VerboseName:    "Post Category",
		ListDisplay:    []string{"name", "type_badge", "post_count", "created_at"},
		ListFilter:     []string{"type", "created_at"},
		SearchFields:   []string{"name", "description"},
		Ordering:       []string{"name"},
		ReadonlyFields: []string{"created_at", "updated_at"},
		Fieldsets: []dto.Fieldset{
			{Title: "📌 Basic Information", Fields: []string{"name", "type"}, Description: "Core category details"},
			{Title: "📝 Description", Fields: []string{"description"}, Collapsed: true},
			{Title: "📊 Statistics", Fields: []string{"created_at", "updated_at"}, Description: "Metadata and timestamps", Collapsed: true},
		},
		Choices:   map[string]any{"type": maps.Clone(model.CategoryTypeLabels)},
		CanAdd:    true,
		CanDelete: true,
	}
}

// logEntryMeta log entries are produced by the application, never through the form.
func logEntryMeta() *dto.ModelAdminMeta {
	return &dto.ModelAdminMeta{
		Model:          MetaLogEntry,
		VerboseName:    "Log Entry",
		ListDisplay:    []string{"timestamp", "level_badge", "short_logger_name", "message_preview"},
		ListFilter:     []string{"level", "logger_name", "timestamp"},
		SearchFields:   []string{"message", "logger_name", "pathname"},
		Ordering:       []string{"-timestamp"},
		ReadonlyFields: []string{"timestamp", "level", "logger_name", "message", "pathname", "line_no", "exception"},
		Fieldsets: []dto.Fieldset{
			{Title: "⏰ Timing", Fields: []string{"timestamp"}},
			{Title: "📋 Log Details", Fields: []string{"level", "logger_name", "message"}},
			{Title: "🔍 Location", Fields: []string{"pathname", "line_no"}, Collapsed: true},
			{Title: "⚠️ Exception", Fields: []string{"exception"}, Collapsed: true},
		},
		CanAdd:    false,
		CanDelete: true,
	}
}

func userMeta() *dto.ModelAdminMeta {
	return &dto.ModelAdminMeta{
		Model:          MetaUser,
		VerboseName:    "User",
		ListDisplay:    []string{"username", "email", "first_name", "last_name", "is_staff", "is_active"},
		ListFilter:     []string{"is_staff", "is_active"},
		SearchFields:   []string{"username", "email", "first_name", "last_name"},
		Ordering:       []string{"username"},
		ReadonlyFields: []string{"is_superuser", "last_login", "date_joined"},
		Fieldsets: []dto.Fieldset{
			{Title: "Account", Fields: []string{"username", "password"}},
			{Title: "Personal info", Fields: []string{"first_name", "last_name", "email"}},
			{Title: "Permissions", Fields: []string{"is_active", "is_staff", "is_superuser"}},
			{Title: "Important dates", Fields: []string{"last_login", "date_joined"}, Collapsed: true},
		},
		CanAdd:    true,
		CanDelete: true,
	}
}
