package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CreatedBy       uuid.UUID `gorm:"index" json:"created_by"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DifficultyLevel string    `json:"difficulty_level"` // easy, medium, hard
	CookingTime     int       `json:"cooking_time"`     // in minutes
	Servings        int       `json:"servings"`
	CoverImage      string    `json:"cover_image,omitempty"`
	Ingredients     string    `json:"ingredients" gorm:"type:text"`  // JSON-encoded ingredient list
	Instructions    string    `json:"instructions" gorm:"type:text"` // JSON-encoded instruction list

	User *User `gorm:"foreignKey:CreatedBy"`
	Timestamp
}
