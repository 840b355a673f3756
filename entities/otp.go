package entities

import (
	"time"

	"github.com/google/uuid"
)

// PasswordOtp holds a pending password-reset code. The code itself is stored
// bcrypt-hashed; rows are purged on successful verification, on expiry, or when
// the attempt counter runs out.
type PasswordOtp struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"index" json:"email"`
	OtpHash   string    `json:"-"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `gorm:"type:timestamp" json:"expires_at"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
