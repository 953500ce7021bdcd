package dto

import "time"

type UserCreateDTO struct {
	Username  string `json:"username" binding:"required" validate:"min=3,max=150"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"omitempty,min=8,max=128"`
	IsActive  *bool  `json:"is_active"`
	IsStaff   *bool  `json:"is_staff"`
}

type UserUpdateDTO struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	IsActive  *bool   `json:"is_active"`
	IsStaff   *bool   `json:"is_staff"`
}

type UserFilter struct {
	Query    string `form:"q"`
	IsStaff  *bool  `form:"is_staff"`
	IsActive *bool  `form:"is_active"`
}

type UserDTO struct {
	ID            uint64     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	IsActive      bool       `json:"is_active"`
	IsStaff       bool       `json:"is_staff"`
	IsSuperuser   bool       `json:"is_superuser"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login"`
	DateJoined    time.Time  `json:"date_joined"`
	Permissions   []string   `json:"permissions,omitempty"`
}
