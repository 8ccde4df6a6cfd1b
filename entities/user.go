package entities

import (
	"github.com/google/uuid"
	"time"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:200;not null" json:"email"`
	FirstName string    `gorm:"size:150;not null" json:"first_name"`
	LastName  string    `gorm:"size:150;not null" json:"last_name"`
	Password  string    `gorm:"size:150;not null" json:"-"`
	IsStaff   bool      `json:"is_staff"`

	Timestamp
}

type Follow struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_follow_user_author;not null" json:"user_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_follow_user_author;not null" json:"author_id"`

	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
