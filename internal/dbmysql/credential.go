package dbmysql

import (
	"time"
)

// Credential is the login secret of an account. The account document
// itself lives in MongoDB under the same id.
type Credential struct {
	AccountID    string    `gorm:"primaryKey;column:account_id;size:36" json:"account_id"`
	Email        string    `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
