package models

import (
	"gorm.io/gorm"
)

// PropertyStatus représente le statut de location d'une propriété
type PropertyStatus string

const (
	PropertyStatusRented PropertyStatus = "loué"   // Propriété louée
	PropertyStatusVacant PropertyStatus = "vacant" // Propriété vacante
)

// Property représente une propriété immobilière
type Property struct {
	gorm.Model
	UserID      uint           `gorm:"column:user_id;not null;index"`
	User        User           `gorm:"foreignKey:UserID"`
	Name        string         `gorm:"column:name;not null;size:100"`
	Type        string         `gorm:"column:type;size:50"`
	Address     string         `gorm:"column:address;not null;size:255"`
	City        string         `gorm:"column:city;not null;size:100"`
	PostalCode  string         `gorm:"column:postal_code;size:20"`
	Country     string         `gorm:"column:country;size:100;default:'Côte d''Ivoire'"`
	Status      PropertyStatus `gorm:"type:varchar(20);not null;default:'vacant'"`
	MonthlyRent float64        `gorm:"column:monthly_rent;not null;default:0"`
	SurfaceArea float64        `gorm:"column:surface_area"`
	Rooms       int            `gorm:"column:rooms"`
	Description string         `gorm:"column:description;type:text"`
	ImageURL    string         `gorm:"column:image_url;size:512"`
}

// TableName retourne le nom de la table pour le modèle Property
func (Property) TableName() string {
	return "properties"
}
