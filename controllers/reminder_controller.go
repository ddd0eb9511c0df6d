package controllers

import (
	"net/http"
	"time"

	"immogest/services"
	"immogest/utils"

	"github.com/gin-gonic/gin"
)

// ReminderController expose la fonction planifiée d'envoi des rappels de
// paiement sur le serveur de fonctions
type ReminderController struct {
	notifications *services.NotificationService
}

// NewReminderController crée une nouvelle instance de ReminderController
func NewReminderController(notifications *services.NotificationService) *ReminderController {
	return &ReminderController{notifications: notifications}
}

// SendPaymentReminders exécute le cycle de rappels et retourne le résultat
// du lot: {message, results[]} en 200, {error} en 400
func (c *ReminderController) SendPaymentReminders(ctx *gin.Context) {
	result, err := c.notifications.Run(time.Now())
	if err != nil {
		utils.LogError("Échec du lot de rappels: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Metrics retourne un instantané des métriques du service
func (c *ReminderController) Metrics(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, utils.GetMetrics().GetMetricsSnapshot())
}
