package services

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"immogest/models"
	"immogest/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ContractUploadDTO représente les métadonnées d'un contrat à créer
type ContractUploadDTO struct {
	Title        string     `json:"title" validate:"required,min=2,max=150"`
	TenantName   string     `json:"tenant_name" validate:"omitempty,max=100"`
	PropertyName string     `json:"property_name" validate:"omitempty,max=100"`
	ExpiresAt    *time.Time `json:"expires_at"`
	FileName     string     `json:"-" validate:"required"`
	FileType     string     `json:"-"`
	FileSize     int64      `json:"-"`
	UserID       uint       `json:"-" validate:"required"`
}

// ContractResponseDTO représente un contrat avec son statut d'expiration
type ContractResponseDTO struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	TenantName   string     `json:"tenant_name,omitempty"`
	PropertyName string     `json:"property_name,omitempty"`
	FilePath     string     `json:"file_path"`
	FileType     string     `json:"file_type,omitempty"`
	FileSize     int64      `json:"file_size"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ExpiryStatus string     `json:"expiry_status,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ContractService gère les contrats de bail et leurs fichiers
type ContractService struct {
	db        *gorm.DB
	storage   *StorageService
	validator *validator.Validate
}

// NewContractService crée une nouvelle instance de ContractService
func NewContractService(db *gorm.DB, storage *StorageService) *ContractService {
	return &ContractService{
		db:        db,
		storage:   storage,
		validator: validator.New(),
	}
}

// ExpiryStatus calcule le statut d'expiration d'un contrat à la date donnée.
// Retourne "expiré" pour une date passée, "expire le <date>" pour une date
// future, vide sans date d'expiration.
func ExpiryStatus(expiresAt *time.Time, now time.Time) string {
	if expiresAt == nil {
		return ""
	}
	if expiresAt.Before(now) {
		return "expiré"
	}
	return "expire le " + expiresAt.Format("02/01/2006")
}

// toContractResponseDTO convertit un modèle en DTO de réponse
func toContractResponseDTO(c *models.Contract, now time.Time) ContractResponseDTO {
	return ContractResponseDTO{
		ID:           c.ID,
		Title:        c.Title,
		TenantName:   c.TenantName,
		PropertyName: c.PropertyName,
		FilePath:     c.FilePath,
		FileType:     c.FileType,
		FileSize:     c.FileSize,
		ExpiresAt:    c.ExpiresAt,
		ExpiryStatus: ExpiryStatus(c.ExpiresAt, now),
		CreatedAt:    c.CreatedAt,
	}
}

// List retourne les contrats du propriétaire, les plus récents d'abord.
// Le terme de recherche filtre sur titre, locataire et propriété.
func (s *ContractService) List(userID uint, query string) ([]ContractResponseDTO, error) {
	var contracts []models.Contract
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	dtos := make([]ContractResponseDTO, 0, len(contracts))
	for i := range contracts {
		dto := toContractResponseDTO(&contracts[i], now)
		if query != "" && !contractMatches(dto, query) {
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// contractMatches vérifie si un contrat correspond au terme de recherche
func contractMatches(c ContractResponseDTO, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.TenantName), q) ||
		strings.Contains(strings.ToLower(c.PropertyName), q)
}

// GetByID retourne un contrat du propriétaire
func (s *ContractService) GetByID(id, userID uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.CodeNotFound, "Contrat introuvable")
		}
		return nil, err
	}
	return &contract, nil
}

// Upload valide le fichier, l'enregistre dans le stockage et crée la
// ligne du contrat
func (s *ContractService) Upload(dto ContractUploadDTO, file io.Reader) (*models.Contract, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}
	if err := ValidateContractFile(dto.FileName, dto.FileType, dto.FileSize); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}

	key := BuildObjectKey(dto.UserID, dto.FileName, time.Now())
	path, err := s.storage.Save(ContractsBucket, key, file)
	if err != nil {
		return nil, err
	}

	contract := &models.Contract{
		UserID:       dto.UserID,
		Title:        dto.Title,
		TenantName:   dto.TenantName,
		PropertyName: dto.PropertyName,
		FilePath:     path,
		FileType:     dto.FileType,
		FileSize:     dto.FileSize,
		ExpiresAt:    dto.ExpiresAt,
	}

	if err := s.db.Create(contract).Error; err != nil {
		// La ligne a échoué: on retire le fichier déjà écrit
		_ = s.storage.Delete(path)
		return nil, err
	}

	return contract, nil
}

// Download ouvre le fichier d'un contrat du propriétaire
func (s *ContractService) Download(id, userID uint) (*models.Contract, *os.File, error) {
	contract, err := s.GetByID(id, userID)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.storage.Open(contract.FilePath)
	if err != nil {
		return nil, nil, utils.NewAppError(utils.CodeNotFound, "Fichier du contrat introuvable")
	}
	return contract, f, nil
}

// Delete supprime le fichier puis la ligne du contrat
func (s *ContractService) Delete(id, userID uint) error {
	contract, err := s.GetByID(id, userID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(contract.FilePath); err != nil {
		return err
	}

	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Contract{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError(utils.CodeNotFound, "Contrat introuvable")
	}
	return nil
}
