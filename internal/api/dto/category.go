package dto

import "time"

type CategoryInput struct {
	Name        string  `json:"name" binding:"required" validate:"min=1,max=100"`
	Type        string  `json:"type" binding:"required" validate:"oneof=news announcement report media"`
	Description *string `json:"description"`
}

type CategoryFilter struct {
	Type  string `form:"type" validate:"omitempty,oneof=news announcement report media"`
	Query string `form:"q"`
}

// AdminCategoryDTO category with its published post count.
type AdminCategoryDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	TypeLabel   string    `json:"type_label"`
	Description *string   `json:"description"`
	PostCount   int64     `json:"post_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
