package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and an auto-generated ULID primary key.
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Admin represents a panel administrator account.
type Admin struct {
	BaseModel
	Email     string    `json:"email" gorm:"unique;not null"`
	SenhaHash string    `json:"-" gorm:"not null"`
	Name      string    `json:"name"`
	Role      string    `json:"role" gorm:"not null;default:'admin'"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AccessProfile represents a permission profile. The panel addresses profiles
// by numeric id, so this model keeps an integer key instead of a ULID.
type AccessProfile struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null;unique"`
	Description string    `json:"description"`
	Permissions string    `json:"-" gorm:"type:text"` // comma-separated, split for responses
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Admin{}, &AccessProfile{})
}
