package services

import (
	"log"
	"time"
)

// ReminderSchedulerService déclenche périodiquement le cycle de rappels de
// paiement. Chaque exécution est indépendante et sans état; deux exécutions
// qui se chevauchent ne sont pas exclues, la livraison est donc au moins
// une fois.
type ReminderSchedulerService struct {
	notifications *NotificationService
	interval      time.Duration
	stop          chan struct{}
}

// NewReminderSchedulerService crée un nouveau planificateur de rappels
func NewReminderSchedulerService(notifications *NotificationService, interval time.Duration) *ReminderSchedulerService {
	return &ReminderSchedulerService{
		notifications: notifications,
		interval:      interval,
		stop:          make(chan struct{}),
	}
}

// Start lance le planificateur
func (s *ReminderSchedulerService) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				result, err := s.notifications.Run(time.Now())
				if err != nil {
					log.Printf("Erreur lors du traitement des rappels: %v", err)
					continue
				}
				log.Printf("Rappels de paiement: %s", result.Message)
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop arrête le planificateur
func (s *ReminderSchedulerService) Stop() {
	close(s.stop)
}
