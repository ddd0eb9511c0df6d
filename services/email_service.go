package services

import (
	"fmt"
	"strings"
	"time"

	"immogest/config"
	"immogest/utils"

	"gopkg.in/gomail.v2"
)

// EmailSender abstrait l'envoi d'emails (implémenté par EmailService)
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// EmailService envoie des emails via SMTP
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	config *config.Config
}

// NewEmailService crée une nouvelle instance d'EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		config: cfg,
	}
}

// SendEmail envoie un email HTML
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erreur d'envoi de l'email: %v", err)
	}

	return nil
}

// ReminderSubject retourne le sujet d'un email de rappel de paiement
func ReminderSubject(lookaheadDays int) string {
	return fmt.Sprintf("Rappel de paiement - Échéance dans %d jours", lookaheadDays)
}

// ReminderBody construit le corps d'un email de rappel de paiement
func ReminderBody(tenantName, propertyName, propertyAddress string, monthlyRent float64, dueDate time.Time, lookaheadDays int) string {
	body := fmt.Sprintf(`Bonjour %s,

Ceci est un rappel amical que votre loyer de %s FCFA
est dû dans %d jours (%s).

Propriété: %s
Adresse: %s

Merci de procéder au paiement avant la date d'échéance.

Cordialement,
Votre gestionnaire immobilier`,
		tenantName,
		utils.FormatCurrency(monthlyRent, utils.CurrencyOptions{}),
		lookaheadDays,
		dueDate.Format("02/01/2006"),
		propertyName,
		propertyAddress,
	)

	// Version HTML: simples retours à la ligne convertis
	return strings.ReplaceAll(body, "\n", "<br>")
}
