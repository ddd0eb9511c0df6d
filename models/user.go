package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// User représente un propriétaire (ligne de la table profiles)
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	FullName  string    `gorm:"column:full_name;not null;size:100"`
	Email     string    `gorm:"column:email;unique;not null;size:100;index"`
	Password  string    `gorm:"column:password;not null;size:100"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "profiles"
}

// BeforeCreate hook de validation avant la création
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if len(strings.TrimSpace(u.FullName)) == 0 {
		return errors.New("le nom complet est obligatoire")
	}
	if len(u.Email) < 3 || len(u.Email) > 100 {
		return errors.New("l'email doit contenir entre 3 et 100 caractères")
	}
	return nil
}
