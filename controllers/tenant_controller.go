package controllers

import (
	"encoding/json"
	"net/http"

	"immogest/database"
	"immogest/services"
	"immogest/utils"
)

// TenantController gère les requêtes liées aux locataires
type TenantController struct {
	tenantService *services.TenantService
}

// NewTenantController crée une nouvelle instance de TenantController
func NewTenantController(db *database.Database) *TenantController {
	return &TenantController{
		tenantService: services.NewTenantService(db.DB),
	}
}

// List retourne les locataires du propriétaire, filtrés par le paramètre
// de recherche optionnel ?q=
func (c *TenantController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	tenants, err := c.tenantService.List(userID, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tenants)
}

// Get retourne un locataire
func (c *TenantController) Get(w http.ResponseWriter, r *http.Request) {
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

	tenant, err := c.tenantService.GetByID(id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

// Create crée un nouveau locataire
func (c *TenantController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto services.TenantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	tenant, err := c.tenantService.Create(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tenant)
}

// Update modifie un locataire
func (c *TenantController) Update(w http.ResponseWriter, r *http.Request) {
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

	var dto services.TenantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}
	dto.UserID = userID

	tenant, err := c.tenantService.Update(id, dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

// Delete supprime un locataire
func (c *TenantController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.tenantService.Delete(id, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Locataire supprimé"})
}
