package model

import (
	"Newsroom/internal/pkg/i18n"
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type Post struct {
	ID                 uint64        `gorm:"primaryKey" json:"id"`
	TitleUz            string        `gorm:"column:title_uz;type:varchar(255);not null" json:"title_uz"`
	TitleRu            string        `gorm:"column:title_ru;type:varchar(255)" json:"title_ru"`
	TitleEn            string        `gorm:"column:title_en;type:varchar(255)" json:"title_en"`
	Slug               string        `gorm:"type:varchar(300);uniqueIndex:idx_posts_slug;not null" json:"slug"`
	CategoryID         *uint64       `gorm:"index:idx_posts_category_status,priority:1" json:"category_id"`
	ShortDescriptionUz string        `gorm:"column:short_description_uz;type:text" json:"short_description_uz"`
	ShortDescriptionRu string        `gorm:"column:short_description_ru;type:text" json:"short_description_ru"`
	ShortDescriptionEn string        `gorm:"column:short_description_en;type:text" json:"short_description_en"`
	ContentUz          string        `gorm:"column:content_uz;type:text" json:"content_uz"`
	ContentRu          string        `gorm:"column:content_ru;type:text" json:"content_ru"`
	ContentEn          string        `gorm:"column:content_en;type:text" json:"content_en"`
	Image              *string       `gorm:"type:varchar(255)" json:"image"`
	VideoURL           *string       `gorm:"column:video_url;type:varchar(500)" json:"video_url"`
	VideoFile          *string       `gorm:"type:varchar(255)" json:"video_file"`
	Status             string        `gorm:"type:varchar(12);not null;default:'draft';index;index:idx_posts_status_published,priority:1;index:idx_posts_category_status,priority:2" json:"status"`
	PublishedAt        *time.Time    `gorm:"index;index:idx_posts_status_published,priority:2" json:"published_at"`
	TypeTag            string        `gorm:"type:varchar(50)" json:"type_tag"`
	ViewsCount         int64         `gorm:"not null;default:0" json:"views_count"`
	IsDeleted          bool          `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	Category           *PostCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

func (Post) TableName() string {
	return "Posts"
}

func (p *Post) Title() i18n.Localized {
	return i18n.Localized{Uz: p.TitleUz, Ru: p.TitleRu, En: p.TitleEn}
}

func (p *Post) ShortDescription() i18n.Localized {
	return i18n.Localized{Uz: p.ShortDescriptionUz, Ru: p.ShortDescriptionRu, En: p.ShortDescriptionEn}
}

func (p *Post) Content() i18n.Localized {
	return i18n.Localized{Uz: p.ContentUz, Ru: p.ContentRu, En: p.ContentEn}
}

// Validate checks invariants that must hold before persistence.
func (p *Post) Validate() error {
	if nonEmpty(p.VideoURL) && nonEmpty(p.VideoFile) {
		return ErrVideoSourceConflict
	}
	if p.Status != PostStatusDraft && p.Status != PostStatusPublished {
		return ErrInvalidStatus
	}
	return nil
}

func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

// audit accessors

func (p *Post) AuditID() any { return p.ID }

func (p *Post) AuditTitle() string { return p.TitleUz }

func (p *Post) AuditSlug() string { return p.Slug }

func (p *Post) AuditStatus() string { return p.Status }

func (p *Post) AuditPublishedAt() *time.Time { return p.PublishedAt }
