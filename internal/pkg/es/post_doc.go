package es

import (
	"Newsroom/internal/model"
	"time"
)

// PostDoc searchable projection of a post. Text fields are wildcard-mapped,
// hits only carry ids and are hydrated from the database.
type PostDoc struct {
	ID                 uint64     `json:"id"`
	Slug               string     `json:"slug"`
	Status             string     `json:"status"`
	CategoryID         *uint64    `json:"category_id,omitempty"`
	TitleUz            string     `json:"title_uz"`
	TitleRu            string     `json:"title_ru"`
	TitleEn            string     `json:"title_en"`
	ShortDescriptionUz string     `json:"short_description_uz"`
	ShortDescriptionRu string     `json:"short_description_ru"`
	ShortDescriptionEn string     `json:"short_description_en"`
	ContentUz          string     `json:"content_uz"`
	ContentRu          string     `json:"content_ru"`
	ContentEn          string     `json:"content_en"`
	PublishedAt        *time.Time `json:"published_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	IndexedAt          time.Time  `json:"indexed_at"`
}

func NewPostDoc(p *model.Post, indexedAt time.Time) *PostDoc {
	return &PostDoc{
		ID:                 p.ID,
		Slug:               p.Slug,
		Status:             p.Status,
		CategoryID:         p.CategoryID,
		TitleUz:            p.TitleUz,
		TitleRu:            p.TitleRu,
		TitleEn:            p.TitleEn,
		ShortDescriptionUz: p.ShortDescriptionUz,
		ShortDescriptionRu: p.ShortDescriptionRu,
		ShortDescriptionEn: p.ShortDescriptionEn,
		ContentUz:          p.ContentUz,
		ContentRu:          p.ContentRu,
		ContentEn:          p.ContentEn,
		PublishedAt:        p.PublishedAt,
		CreatedAt:          p.CreatedAt,
		IndexedAt:          indexedAt,
	}
}
