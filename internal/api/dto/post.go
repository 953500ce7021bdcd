package dto

import (
	"Newsroom/internal/model"
	"time"
)

// MediaURL turns a stored media key into a public absolute URL.
type MediaURL func(key *string) *string

type CategoryDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
}

type PostListDTO struct {
	ID               uint64       `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	Category         *CategoryDTO `json:"category"`
	ShortDescription string       `json:"short_description"`
	Image            *string      `json:"image"`
	VideoURL         *string      `json:"video_url"`
	VideoFile        *string      `json:"video_file"`
	TypeTag          string       `json:"type_tag"`
	PublishedAt      *time.Time   `json:"published_at"`
	CreatedAt        time.Time    `json:"created_at"`
	ViewsCount       int64        `json:"views_count"`
}

type PostDetailDTO struct {
	ID               uint64       `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	Category         *CategoryDTO `json:"category"`
	ShortDescription string       `json:"short_description"`
	Content          string       `json:"content"`
	Image            *string      `json:"image"`
	VideoURL         *string      `json:"video_url"`
	VideoFile        *string      `json:"video_file"`
	TypeTag          string       `json:"type_tag"`
	Status           string       `json:"status"`
	PublishedAt      *time.Time   `json:"published_at"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	ViewsCount       int64        `json:"views_count"`
}

func NewCategoryDTO(c *model.PostCategory) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name, Type: c.Type, Description: c.Description}
}

func NewPostListDTO(p *model.Post, lang string, media MediaURL) *PostListDTO {
	return &PostListDTO{
		ID:               p.ID,
		Title:            p.Title().Title(lang),
		Slug:             p.Slug,
		Category:         NewCategoryDTO(p.Category),
		ShortDescription: p.ShortDescription().Text(lang),
		Image:            media(p.Image),
		VideoURL:         p.VideoURL,
		VideoFile:        media(p.VideoFile),
		TypeTag:          p.TypeTag,
		PublishedAt:      p.PublishedAt,
		CreatedAt:        p.CreatedAt,
		ViewsCount:       p.ViewsCount,
	}
}

func NewPostDetailDTO(p *model.Post, lang string, media MediaURL) *PostDetailDTO {
	return &PostDetailDTO{
		ID:               p.ID,
		Title:            p.Title().Title(lang),
		Slug:             p.Slug,
		Category:         NewCategoryDTO(p.Category),
		ShortDescription: p.ShortDescription().Text(lang),
		Content:          p.Content().Text(lang),
		Image:            media(p.Image),
		VideoURL:         p.VideoURL,
		VideoFile:        media(p.VideoFile),
		TypeTag:          p.TypeTag,
		Status:           p.Status,
		PublishedAt:      p.PublishedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		ViewsCount:       p.ViewsCount,
	}
}

func NewPostListDTOs(posts []*model.Post, lang string, media MediaURL) []*PostListDTO {
	out := make([]*PostListDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostListDTO(p, lang, media))
	}
	return out
}
