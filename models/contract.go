package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract représente un contrat de bail avec son fichier joint.
// Les noms du locataire et de la propriété sont dénormalisés (texte libre):
// renommer un locataire ne réécrit pas les contrats existants.
type Contract struct {
	gorm.Model
	UserID       uint       `gorm:"column:user_id;not null;index"`
	User         User       `gorm:"foreignKey:UserID"`
	Title        string     `gorm:"column:title;not null;size:150"`
	TenantName   string     `gorm:"column:tenant_name;size:100"`
	PropertyName string     `gorm:"column:property_name;size:100"`
	FilePath     string     `gorm:"column:file_path;not null;size:512"`
	FileType     string     `gorm:"column:file_type;size:128"`
	FileSize     int64      `gorm:"column:file_size;not null;default:0"`
	ExpiresAt    *time.Time `gorm:"column:expires_at"`
}

// TableName retourne le nom de la table pour le modèle Contract
func (Contract) TableName() string {
	return "contracts"
}

// IsExpired indique si le contrat est expiré à la date donnée
func (c *Contract) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
