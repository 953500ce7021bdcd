package model

import (
	"time"
)

type User struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"type:varchar(150);uniqueIndex:idx_username;not null" json:"username"`
	Email         string     `gorm:"type:varchar(254);index" json:"email"`
	FirstName     string     `gorm:"type:varchar(150)" json:"first_name"`
	LastName      string     `gorm:"type:varchar(150)" json:"last_name"`
	Password      string     `gorm:"type:varchar(255)" json:"-"`
	IsActive      bool       `gorm:"not null" json:"is_active"`
	IsStaff       bool       `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser   bool       `gorm:"not null;default:false" json:"is_superuser"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	LastLogin     *time.Time `json:"last_login"`
	DateJoined    time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName first and last name when a first name is set, otherwise the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

func (u *User) AuditID() any { return u.ID }

func (u *User) AuditName() string { return u.Username }
