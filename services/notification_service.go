package services

import (
	"errors"
	"fmt"
	"time"

	"immogest/models"
	"immogest/utils"

	"gorm.io/gorm"
)

// NotificationResult représente le résultat d'envoi d'une notification
type NotificationResult struct {
	NotificationID uint   `json:"notification_id"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
}

// ReminderBatchResult représente le résultat d'un lot de rappels
type ReminderBatchResult struct {
	Message string               `json:"message"`
	Results []NotificationResult `json:"results"`
}

// NotificationService gère les rappels de paiement: création des
// notifications pour les échéances proches, envoi des emails et marquage
// ligne par ligne. Pas de reprise automatique: un envoi échoué reste
// marqué "failed" et l'exécution continue sur les lignes suivantes.
type NotificationService struct {
	db            *gorm.DB
	email         EmailSender
	lookaheadDays int
	batchLimit    int
}

// NewNotificationService crée une nouvelle instance de NotificationService
func NewNotificationService(db *gorm.DB, email EmailSender, lookaheadDays, batchLimit int) *NotificationService {
	return &NotificationService{
		db:            db,
		email:         email,
		lookaheadDays: lookaheadDays,
		batchLimit:    batchLimit,
	}
}

// CheckAndCreatePaymentNotifications parcourt les paiements en attente dont
// l'échéance tombe dans la fenêtre d'anticipation et insère une notification
// par paiement. Un paiement déjà notifié est ignoré (index unique sur
// payment_id), ce qui rend la création ré-exécutable sans doublon.
func (s *NotificationService) CheckAndCreatePaymentNotifications(now time.Time) (int, error) {
	// La fenêtre part du début du jour courant: une échéance tombée plus
	// tôt dans la journée reste rappelée quelle que soit l'heure du cycle
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := dayStart.AddDate(0, 0, s.lookaheadDays)

	var payments []models.Payment
	if err := s.db.Where("status = ? AND due_date >= ? AND due_date <= ?",
		models.PaymentStatusPending, dayStart, windowEnd).
		Preload("Tenant").
		Preload("Property").
		Find(&payments).Error; err != nil {
		return 0, fmt.Errorf("erreur de recherche des paiements à échéance: %v", err)
	}

	created := 0
	for i := range payments {
		payment := &payments[i]

		// Sans email du locataire, rien à envoyer
		if payment.Tenant.Email == "" {
			continue
		}

		// Ignore les paiements déjà notifiés
		var count int64
		if err := s.db.Model(&models.PendingNotification{}).
			Where("payment_id = ?", payment.ID).
			Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		notification := &models.PendingNotification{
			PaymentID:       payment.ID,
			TenantName:      payment.Tenant.FullName,
			TenantEmail:     payment.Tenant.Email,
			PropertyName:    payment.Property.Name,
			PropertyAddress: payment.Property.Address,
			MonthlyRent:     payment.Amount,
			DueDate:         payment.DueDate,
			Status:          models.NotificationStatusPending,
		}

		if err := s.db.Create(notification).Error; err != nil {
			return created, fmt.Errorf("erreur de création de la notification: %v", err)
		}
		created++
		utils.GetMetrics().RecordNotification("create", nil)
	}

	return created, nil
}

// ProcessPendingNotifications envoie les notifications en attente, au plus
// batchLimit par exécution. Chaque ligne est traitée indépendamment: un
// échec d'envoi est enregistré et n'interrompt pas le reste du lot.
func (s *NotificationService) ProcessPendingNotifications() (*ReminderBatchResult, error) {
	var notifications []models.PendingNotification
	if err := s.db.Where("status = ?", models.NotificationStatusPending).
		Order("due_date ASC").
		Limit(s.batchLimit).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("erreur de lecture des notifications en attente: %v", err)
	}

	if len(notifications) == 0 {
		// Results reste un tableau vide dans le JSON, jamais null
		return &ReminderBatchResult{
			Message: "Aucune notification à envoyer",
			Results: []NotificationResult{},
		}, nil
	}

	results := make([]NotificationResult, 0, len(notifications))
	sent := 0
	for i := range notifications {
		notification := &notifications[i]

		subject := ReminderSubject(s.lookaheadDays)
		body := ReminderBody(
			notification.TenantName,
			notification.PropertyName,
			notification.PropertyAddress,
			notification.MonthlyRent,
			notification.DueDate,
			s.lookaheadDays,
		)

		if err := s.email.SendEmail(notification.TenantEmail, subject, body); err != nil {
			utils.LogError("Échec d'envoi pour la notification %d: %v", notification.ID, err)
			utils.GetMetrics().RecordNotification("fail", err)
			s.markNotificationSent(notification.ID, false, err.Error())
			results = append(results, NotificationResult{
				NotificationID: notification.ID,
				Success:        false,
				Error:          err.Error(),
			})
			continue
		}

		utils.GetMetrics().RecordNotification("send", nil)
		s.markNotificationSent(notification.ID, true, "")
		results = append(results, NotificationResult{
			NotificationID: notification.ID,
			Success:        true,
		})
		sent++
	}

	return &ReminderBatchResult{
		Message: fmt.Sprintf("%d emails envoyés sur %d", sent, len(results)),
		Results: results,
	}, nil
}

// markNotificationSent marque une notification comme envoyée ou échouée.
// L'échec du marquage est journalisé mais n'interrompt pas le lot.
func (s *NotificationService) markNotificationSent(id uint, emailSent bool, errorMessage string) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":        models.NotificationStatusFailed,
		"error_message": errorMessage,
	}
	if emailSent {
		updates["status"] = models.NotificationStatusSent
		updates["sent_at"] = &now
	}

	if err := s.db.Model(&models.PendingNotification{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		utils.LogError("Erreur de marquage de la notification %d: %v", id, err)
	}
}

// Run exécute le cycle complet: création des notifications puis envoi du lot
func (s *NotificationService) Run(now time.Time) (*ReminderBatchResult, error) {
	if _, err := s.CheckAndCreatePaymentNotifications(now); err != nil {
		// La création qui échoue n'empêche pas d'envoyer ce qui est déjà en attente
		utils.LogError("Erreur de création des notifications: %v", err)
	}

	result, err := s.ProcessPendingNotifications()
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("résultat de lot vide")
	}
	return result, nil
}
