package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationStatus représente le statut d'une notification de rappel
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending" // En attente d'envoi
	NotificationStatusSent    NotificationStatus = "sent"    // Email envoyé
	NotificationStatusFailed  NotificationStatus = "failed"  // Envoi échoué
)

// PendingNotification représente un rappel de paiement à envoyer.
// Une ligne est créée par paiement à échéance proche; les champs du locataire
// et de la propriété sont copiés au moment de la création.
type PendingNotification struct {
	gorm.Model
	PaymentID       uint               `gorm:"column:payment_id;not null;uniqueIndex"`
	Payment         Payment            `gorm:"foreignKey:PaymentID"`
	TenantName      string             `gorm:"column:tenant_name;not null;size:100"`
	TenantEmail     string             `gorm:"column:tenant_email;not null;size:100"`
	PropertyName    string             `gorm:"column:property_name;size:100"`
	PropertyAddress string             `gorm:"column:property_address;size:255"`
	MonthlyRent     float64            `gorm:"column:monthly_rent;not null"`
	DueDate         time.Time          `gorm:"column:due_date;not null"`
	Status          NotificationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ErrorMessage    string             `gorm:"column:error_message;size:512"`
	SentAt          *time.Time         `gorm:"column:sent_at"`
}

// TableName retourne le nom de la table pour le modèle PendingNotification
func (PendingNotification) TableName() string {
	return "pending_notifications"
}
