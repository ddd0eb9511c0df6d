package utils

import (
	"sync"
	"time"
)

// Metrics contient les métriques de l'application
type Metrics struct {
	mu sync.RWMutex

	// Métriques des requêtes HTTP
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Métriques des rappels de paiement
	NotificationsCreated int64
	NotificationsSent    int64
	NotificationsFailed  int64
	LastReminderRun      time.Time

	// Métriques des erreurs
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics retourne l'instance des métriques
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest enregistre les métriques d'une requête
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordNotification enregistre les métriques d'une notification de rappel
func (m *Metrics) RecordNotification(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastReminderRun = time.Now()

	switch operation {
	case "create":
		m.NotificationsCreated++
	case "send":
		m.NotificationsSent++
	case "fail":
		m.NotificationsFailed++
	}

	if err != nil {
		m.recordErrorLocked(err)
	}
}

// RecordError enregistre les métriques d'une erreur
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErrorLocked(err)
}

func (m *Metrics) recordErrorLocked(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}

	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot retourne un instantané des métriques courantes
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_requests":        m.TotalRequests,
		"failed_requests":       m.FailedRequests,
		"average_latency":       m.AverageLatency.String(),
		"notifications_created": m.NotificationsCreated,
		"notifications_sent":    m.NotificationsSent,
		"notifications_failed":  m.NotificationsFailed,
		"last_reminder_run":     m.LastReminderRun,
		"error_count":           m.ErrorCount,
		"last_error_time":       m.LastErrorTime,
		"error_types":           m.ErrorTypes,
	}
}

// ResetMetrics remet toutes les métriques à zéro
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.NotificationsCreated = 0
	m.NotificationsSent = 0
	m.NotificationsFailed = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
