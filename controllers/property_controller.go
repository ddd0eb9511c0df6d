package controllers

import (
	"encoding/json"
	"net/http"

	"immogest/database"
	"immogest/services"
	"immogest/utils"
)

// PropertyController gère les requêtes liées aux propriétés
type PropertyController struct {
	propertyService *services.PropertyService
}

// NewPropertyController crée une nouvelle instance de PropertyController
func NewPropertyController(db *database.Database) *PropertyController {
	return &PropertyController{
		propertyService: services.NewPropertyService(db.DB),
	}
}

// List retourne les propriétés du propriétaire connecté
func (c *PropertyController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	properties, err := c.propertyService.List(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

// Get retourne une propriété
func (c *PropertyController) Get(w http.ResponseWriter, r *http.Request) {
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

	property, err := c.propertyService.GetByID(id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// Create crée une nouvelle propriété
func (c *PropertyController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto services.PropertyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	property, err := c.propertyService.Create(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

// Update modifie une propriété
func (c *PropertyController) Update(w http.ResponseWriter, r *http.Request) {
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

	var dto services.PropertyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	property, err := c.propertyService.Update(id, dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// Delete supprime une propriété
func (c *PropertyController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.propertyService.Delete(id, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Propriété supprimée"})
}
