package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// PaymentStatus représente le statut d'un paiement de loyer
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "en attente" // Paiement attendu
	PaymentStatusPaid    PaymentStatus = "payé"       // Paiement encaissé
	PaymentStatusLate    PaymentStatus = "en retard"  // Paiement en retard
)

// Payment représente un paiement de loyer
type Payment struct {
	gorm.Model
	UserID        uint          `gorm:"column:user_id;not null;index"`
	User          User          `gorm:"foreignKey:UserID"`
	TenantID      uint          `gorm:"column:tenant_id;not null;index"`
	Tenant        Tenant        `gorm:"foreignKey:TenantID"`
	PropertyID    uint          `gorm:"column:property_id;not null;index"`
	Property      Property      `gorm:"foreignKey:PropertyID"`
	Amount        float64       `gorm:"column:amount;not null"`
	DueDate       time.Time     `gorm:"column:due_date;not null"` // Date d'échéance
	PaidDate      *time.Time    `gorm:"column:paid_date"`         // Date d'encaissement
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'en attente'"`
	PaymentMethod string        `gorm:"column:payment_method;size:50"`
	Notes         string        `gorm:"column:notes;type:text"`
}

// TableName retourne le nom de la table pour le modèle Payment
func (Payment) TableName() string {
	return "payments"
}

// BeforeSave hook de validation avant l'enregistrement
func (p *Payment) BeforeSave(tx *gorm.DB) error {
	if p.Amount <= 0 {
		return errors.New("le montant du paiement doit être positif")
	}
	return nil
}
