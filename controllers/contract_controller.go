package controllers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"immogest/database"
	"immogest/services"
	"immogest/utils"
)

// ContractController gère les contrats de bail et leurs fichiers
type ContractController struct {
	contractService *services.ContractService
}

// NewContractController crée une nouvelle instance de ContractController
func NewContractController(db *database.Database, storage *services.StorageService) *ContractController {
	return &ContractController{
		contractService: services.NewContractService(db.DB, storage),
	}
}

// List retourne les contrats du propriétaire, filtrés par ?q=
func (c *ContractController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	contracts, err := c.contractService.List(userID, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contracts)
}

// Upload crée un contrat depuis un formulaire multipart: champs title,
// tenant_name, property_name, expires_at (AAAA-MM-JJ) et fichier "file"
func (c *ContractController) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// La limite de lecture dépasse légèrement la taille maximale admise
	// pour laisser la validation produire le bon message
	if err := r.ParseMultipartForm(services.MaxContractFileSize + 1024*1024); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "formulaire multipart invalide"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "le fichier du contrat est obligatoire"))
		return
	}
	defer file.Close()

	dto := services.ContractUploadDTO{
		Title:        r.FormValue("title"),
		TenantName:   r.FormValue("tenant_name"),
		PropertyName: r.FormValue("property_name"),
		FileName:     header.Filename,
		FileType:     header.Header.Get("Content-Type"),
		FileSize:     header.Size,
		UserID:       userID,
	}

	if expiresAt := r.FormValue("expires_at"); expiresAt != "" {
		t, err := time.Parse("2006-01-02", expiresAt)
		if err != nil {
			writeError(w, utils.NewAppError(utils.CodeValidation, "date d'expiration invalide (AAAA-MM-JJ)"))
			return
		}
		dto.ExpiresAt = &t
	}

	contract, err := c.contractService.Upload(dto, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, contract)
}

// Download renvoie le fichier d'un contrat
func (c *ContractController) Download(w http.ResponseWriter, r *http.Request) {
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

	contract, f, err := c.contractService.Download(id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer f.Close()

	contentType := contract.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(contract.FileSize, 10))
	w.Header().Set("Content-Disposition", "attachment; filename=\""+contract.Title+"\"")
	io.Copy(w, f)
}

// Delete supprime un contrat et son fichier
func (c *ContractController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.contractService.Delete(id, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Contrat supprimé"})
}
