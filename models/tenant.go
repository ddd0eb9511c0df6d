package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Tenant représente un locataire
type Tenant struct {
	gorm.Model
	UserID      uint       `gorm:"column:user_id;not null;index"`
	User        User       `gorm:"foreignKey:UserID"`
	FullName    string     `gorm:"column:full_name;not null;size:100"`
	Email       string     `gorm:"column:email;size:100"`
	Phone       string     `gorm:"column:phone;size:30"`
	IDNumber    string     `gorm:"column:id_number;size:50"` // Numéro de pièce d'identité
	Address     string     `gorm:"column:address;size:255"`
	PropertyID  *uint      `gorm:"column:property_id;index"`
	Property    *Property  `gorm:"foreignKey:PropertyID"`
	MonthlyRent float64    `gorm:"column:monthly_rent;not null;default:0"`
	PaymentDay  int        `gorm:"column:payment_day;not null;default:1"` // Jour du mois (1-31)
	MoveInDate  *time.Time `gorm:"column:move_in_date"`
	MoveOutDate *time.Time `gorm:"column:move_out_date"`
	Notes       string     `gorm:"column:notes;type:text"`
}

// TableName retourne le nom de la table pour le modèle Tenant
func (Tenant) TableName() string {
	return "tenants"
}

// IsActive indique si le locataire occupe encore le logement
func (t *Tenant) IsActive() bool {
	return t.MoveOutDate == nil
}

// BeforeSave hook de validation avant l'enregistrement
func (t *Tenant) BeforeSave(tx *gorm.DB) error {
	if t.PaymentDay < 1 || t.PaymentDay > 31 {
		return errors.New("le jour de paiement doit être compris entre 1 et 31")
	}
	if t.MonthlyRent < 0 {
		return errors.New("le loyer mensuel ne peut pas être négatif")
	}
	return nil
}
