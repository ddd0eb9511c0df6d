package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"immogest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeEmailSender enregistre les envois et échoue pour les adresses listées
type fakeEmailSender struct {
	failFor map[string]bool
	sent    []string
}

func (f *fakeEmailSender) SendEmail(to, subject, body string) error {
	if f.failFor[to] {
		return errors.New("SMTP indisponible")
	}
	f.sent = append(f.sent, to)
	return nil
}

// seedPendingPayment crée un locataire et son paiement en attente
func seedPendingPayment(t *testing.T, db *gorm.DB, userID, propertyID uint, name, email string, due time.Time) *models.Payment {
	t.Helper()

	tenant := &models.Tenant{
		UserID:     userID,
		FullName:   name,
		Email:      email,
		PaymentDay: 5,
	}
	require.NoError(t, db.Create(tenant).Error)

	payment := &models.Payment{
		UserID:     userID,
		TenantID:   tenant.ID,
		PropertyID: propertyID,
		Amount:     150000,
		DueDate:    due,
		Status:     models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func TestCheckAndCreatePaymentNotifications(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	property := seedProperty(t, db, user.ID, "Villa Cocody")

	now := time.Date(2026, time.August, 28, 8, 0, 0, 0, time.UTC)

	// Dans la fenêtre de 10 jours
	inWindow := seedPendingPayment(t, db, user.ID, property.ID,
		"Awa Koné", "awa@example.com", now.AddDate(0, 0, 5))
	// Hors fenêtre
	seedPendingPayment(t, db, user.ID, property.ID,
		"Moussa Traoré", "moussa@example.com", now.AddDate(0, 0, 20))
	// Dans la fenêtre mais sans email
	seedPendingPayment(t, db, user.ID, property.ID,
		"Sans Email", "", now.AddDate(0, 0, 3))

	sender := &fakeEmailSender{}
	service := NewNotificationService(db, sender, 10, 100)

	created, err := service.CheckAndCreatePaymentNotifications(now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var notifications []models.PendingNotification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, inWindow.ID, notifications[0].PaymentID)
	assert.Equal(t, "Awa Koné", notifications[0].TenantName)
	assert.Equal(t, "Villa Cocody", notifications[0].PropertyName)
	assert.Equal(t, models.NotificationStatusPending, notifications[0].Status)

	// Une deuxième passe ne crée pas de doublon
	created, err = service.CheckAndCreatePaymentNotifications(now)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestProcessPendingNotificationsPartialFailure(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	property := seedProperty(t, db, user.ID, "Villa Cocody")

	now := time.Date(2026, time.August, 28, 8, 0, 0, 0, time.UTC)
	tenants := []struct {
		name  string
		email string
	}{
		{"Awa Koné", "awa@example.com"},
		{"Moussa Traoré", "moussa@example.com"},
		{"Fatou Diallo", "fatou@example.com"},
	}
	for i, tc := range tenants {
		seedPendingPayment(t, db, user.ID, property.ID, tc.name, tc.email, now.AddDate(0, 0, i+1))
	}

	sender := &fakeEmailSender{failFor: map[string]bool{"moussa@example.com": true}}
	service := NewNotificationService(db, sender, 10, 100)

	_, err := service.CheckAndCreatePaymentNotifications(now)
	require.NoError(t, err)

	result, err := service.ProcessPendingNotifications()
	require.NoError(t, err)

	// Un échec n'interrompt pas le reste du lot
	assert.Equal(t, "2 emails envoyés sur 3", result.Message)
	require.Len(t, result.Results, 3)

	succeeded := 0
	for _, r := range result.Results {
		if r.Success {
			succeeded++
			assert.Empty(t, r.Error)
		} else {
			assert.Contains(t, r.Error, "SMTP indisponible")
		}
	}
	assert.Equal(t, 2, succeeded)
	assert.Len(t, sender.sent, 2)

	// Les statuts sont marqués ligne par ligne
	var sent []models.PendingNotification
	require.NoError(t, db.Where("status = ?", models.NotificationStatusSent).Find(&sent).Error)
	require.Len(t, sent, 2)
	for _, n := range sent {
		assert.NotNil(t, n.SentAt)
		assert.Empty(t, n.ErrorMessage)
	}

	var failed []models.PendingNotification
	require.NoError(t, db.Where("status = ?", models.NotificationStatusFailed).Find(&failed).Error)
	require.Len(t, failed, 1)
	assert.Equal(t, "moussa@example.com", failed[0].TenantEmail)
	assert.Contains(t, failed[0].ErrorMessage, "SMTP indisponible")
	assert.Nil(t, failed[0].SentAt)

	// Une deuxième passe ne retraite pas les lignes marquées
	result, err = service.ProcessPendingNotifications()
	require.NoError(t, err)
	assert.Equal(t, "Aucune notification à envoyer", result.Message)
	assert.Empty(t, result.Results)
}

func TestCheckIncludesPaymentsDueEarlierToday(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	property := seedProperty(t, db, user.ID, "Villa Cocody")

	// Échéance en début de journée, cycle lancé à 8h: la fenêtre part du
	// début du jour courant, le rappel doit donc être créé
	now := time.Date(2026, time.August, 28, 8, 0, 0, 0, time.UTC)
	dueToday := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	seedPendingPayment(t, db, user.ID, property.ID, "Awa Koné", "awa@example.com", dueToday)

	sender := &fakeEmailSender{}
	service := NewNotificationService(db, sender, 10, 100)

	created, err := service.CheckAndCreatePaymentNotifications(now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestEmptyBatchResultKeepsResultsArray(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeEmailSender{}
	service := NewNotificationService(db, sender, 10, 100)

	result, err := service.ProcessPendingNotifications()
	require.NoError(t, err)
	assert.Equal(t, "Aucune notification à envoyer", result.Message)

	// Le champ results est un tableau vide, pas null
	payload, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"results":[]`)
}

func TestProcessPendingNotificationsRespectsBatchLimit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	property := seedProperty(t, db, user.ID, "Villa Cocody")

	now := time.Date(2026, time.August, 28, 8, 0, 0, 0, time.UTC)
	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range emails {
		seedPendingPayment(t, db, user.ID, property.ID, "Locataire", email, now.AddDate(0, 0, i+1))
	}

	sender := &fakeEmailSender{}
	service := NewNotificationService(db, sender, 10, 2)

	_, err := service.CheckAndCreatePaymentNotifications(now)
	require.NoError(t, err)

	result, err := service.ProcessPendingNotifications()
	require.NoError(t, err)
	assert.Equal(t, "2 emails envoyés sur 2", result.Message)

	// La ligne restante part au lot suivant
	result, err = service.ProcessPendingNotifications()
	require.NoError(t, err)
	assert.Equal(t, "1 emails envoyés sur 1", result.Message)
}

func TestRunFullCycle(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	property := seedProperty(t, db, user.ID, "Villa Cocody")

	now := time.Date(2026, time.August, 28, 8, 0, 0, 0, time.UTC)
	seedPendingPayment(t, db, user.ID, property.ID, "Awa Koné", "awa@example.com", now.AddDate(0, 0, 2))

	sender := &fakeEmailSender{}
	service := NewNotificationService(db, sender, 10, 100)

	result, err := service.Run(now)
	require.NoError(t, err)
	assert.Equal(t, "1 emails envoyés sur 1", result.Message)
	assert.Equal(t, []string{"awa@example.com"}, sender.sent)

	// Cycle vide une fois tout envoyé
	result, err = service.Run(now)
	require.NoError(t, err)
	assert.Equal(t, "Aucune notification à envoyer", result.Message)
}
