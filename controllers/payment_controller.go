package controllers

import (
	"encoding/json"
	"net/http"

	"immogest/database"
	"immogest/services"
	"immogest/utils"
)

// PaymentController gère les requêtes liées aux paiements de loyer
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController crée une nouvelle instance de PaymentController
func NewPaymentController(db *database.Database) *PaymentController {
	return &PaymentController{
		paymentService: services.NewPaymentService(db.DB),
	}
}

// List retourne les paiements du propriétaire avec les noms joints
func (c *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payments, err := c.paymentService.List(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

// Get retourne un paiement
func (c *PaymentController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := c.paymentService.GetByID(id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

// Create crée un nouveau paiement
func (c *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto services.PaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	payment, err := c.paymentService.Create(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// Update modifie un paiement
func (c *PaymentController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var dto services.PaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	payment, err := c.paymentService.Update(id, dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

// Delete supprime un paiement
func (c *PaymentController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.paymentService.Delete(id, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Paiement supprimé"})
}
