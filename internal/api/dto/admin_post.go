package dto

import (
	"Newsroom/internal/model"
	"time"
)

// PostInput body of admin post create and update.
type PostInput struct {
	TitleUz            string     `json:"title_uz" binding:"required" validate:"min=1,max=255"`
	TitleRu            string     `json:"title_ru" validate:"max=255"`
	TitleEn            string     `json:"title_en" validate:"max=255"`
	Slug               string     `json:"slug" validate:"max=300"`
	CategoryID         *uint64    `json:"category_id"`
	ShortDescriptionUz string     `json:"short_description_uz"`
	ShortDescriptionRu string     `json:"short_description_ru"`
	ShortDescriptionEn string     `json:"short_description_en"`
	ContentUz          string     `json:"content_uz"`
	ContentRu          string     `json:"content_ru"`
	ContentEn          string     `json:"content_en"`
	Image              *string    `json:"image" validate:"omitempty,max=255"`
	VideoURL           *string    `json:"video_url" validate:"omitempty,max=500"`
	VideoFile          *string    `json:"video_file" validate:"omitempty,max=255"`
	Status             string     `json:"status" validate:"omitempty,oneof=draft published"`
	PublishedAt        *time.Time `json:"published_at"`
	TypeTag            string     `json:"type_tag" validate:"max=50"`
}

// PostFilter query of the admin post list.
type PostFilter struct {
	Status     string  `form:"status" validate:"omitempty,oneof=draft published"`
	CategoryID *uint64 `form:"category"`
	TypeTag    string  `form:"type_tag"`
	Query      string  `form:"q"`
}

type BulkDeleteDTO struct {
	IDs []uint64 `json:"ids" binding:"required" validate:"min=1,max=500"`
}

type BulkDeleteResult struct {
	Deleted int64 `json:"deleted"`
}

// AdminPostDTO every stored field, media as public URLs.
type AdminPostDTO struct {
	ID                 uint64       `json:"id"`
	TitleUz            string       `json:"title_uz"`
	TitleRu            string       `json:"title_ru"`
	TitleEn            string       `json:"title_en"`
	Slug               string       `json:"slug"`
	CategoryID         *uint64      `json:"category_id"`
	Category           *CategoryDTO `json:"category"`
	ShortDescriptionUz string       `json:"short_description_uz"`
	ShortDescriptionRu string       `json:"short_description_ru"`
	ShortDescriptionEn string       `json:"short_description_en"`
	ContentUz          string       `json:"content_uz"`
	ContentRu          string       `json:"content_ru"`
	ContentEn          string       `json:"content_en"`
	Image              *string      `json:"image"`
	ImageURL           *string      `json:"image_url"`
	VideoURL           *string      `json:"video_url"`
	VideoFile          *string      `json:"video_file"`
	VideoFileURL       *string      `json:"video_file_url"`
	Status             string       `json:"status"`
	PublishedAt        *time.Time   `json:"published_at"`
	TypeTag            string       `json:"type_tag"`
	ViewsCount         int64        `json:"views_count"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func NewAdminPostDTO(p *model.Post, media MediaURL) *AdminPostDTO {
	return &AdminPostDTO{
		ID:                 p.ID,
		TitleUz:            p.TitleUz,
		TitleRu:            p.TitleRu,
		TitleEn:            p.TitleEn,
		Slug:               p.Slug,
		CategoryID:         p.CategoryID,
		Category:           NewCategoryDTO(p.Category),
		ShortDescriptionUz: p.ShortDescriptionUz,
		ShortDescriptionRu: p.ShortDescriptionRu,
		ShortDescriptionEn: p.ShortDescriptionEn,
		ContentUz:          p.ContentUz,
		ContentRu:          p.ContentRu,
		ContentEn:          p.ContentEn,
		Image:              p.Image,
		ImageURL:           media(p.Image),
		VideoURL:           p.VideoURL,
		VideoFile:          p.VideoFile,
		VideoFileURL:       media(p.VideoFile),
		Status:             p.Status,
		PublishedAt:        p.PublishedAt,
		TypeTag:            p.TypeTag,
		ViewsCount:         p.ViewsCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
