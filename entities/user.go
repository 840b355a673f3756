package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Avatar   string    `json:"avatar,omitempty"`

	// Settings flags, flattened onto the user row.
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	PublicProfile      bool `gorm:"default:true" json:"public_profile"`

	Favorites []*Favorite `gorm:"foreignKey:UserID"`
	Timestamp
}
