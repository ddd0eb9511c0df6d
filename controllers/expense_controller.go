package controllers

import (
	"encoding/json"
	"net/http"

	"immogest/database"
	"immogest/services"
	"immogest/utils"
)

// ExpenseController gère les requêtes liées aux dépenses
type ExpenseController struct {
	expenseService *services.ExpenseService
}

// NewExpenseController crée une nouvelle instance de ExpenseController
func NewExpenseController(db *database.Database) *ExpenseController {
	return &ExpenseController{
		expenseService: services.NewExpenseService(db.DB),
	}
}

// List retourne les dépenses du propriétaire, avec filtres optionnels
// ?category= et ?q=
func (c *ExpenseController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	expenses, err := c.expenseService.List(userID, category, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

// Get retourne une dépense
func (c *ExpenseController) Get(w http.ResponseWriter, r *http.Request) {
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

	expense, err := c.expenseService.GetByID(id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

// Create crée une nouvelle dépense
func (c *ExpenseController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto services.ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	expense, err := c.expenseService.Create(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// Update modifie une dépense
func (c *ExpenseController) Update(w http.ResponseWriter, r *http.Request) {
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

	var dto services.ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	expense, err := c.expenseService.Update(id, dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

// Delete supprime une dépense
func (c *ExpenseController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.expenseService.Delete(id, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Dépense supprimée"})
}
