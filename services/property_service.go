package services

import (
	"errors"

	"immogest/models"
	"immogest/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// PropertyDTO représente les données d'une propriété pour créer ou modifier
type PropertyDTO struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Type        string  `json:"type" validate:"omitempty,max=50"`
	Address     string  `json:"address" validate:"required,max=255"`
	City        string  `json:"city" validate:"required,max=100"`
	PostalCode  string  `json:"postal_code" validate:"omitempty,max=20"`
	Country     string  `json:"country" validate:"omitempty,max=100"`
	Status      string  `json:"status" validate:"required,oneof=loué vacant"`
	MonthlyRent float64 `json:"monthly_rent" validate:"gte=0"`
	SurfaceArea float64 `json:"surface_area" validate:"gte=0"`
	Rooms       int     `json:"rooms" validate:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=512"`
	UserID      uint    `json:"-" validate:"required"`
}

// PropertyService gère les opérations sur les propriétés
type PropertyService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewPropertyService crée une nouvelle instance de PropertyService
func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{
		db:        db,
		validator: validator.New(),
	}
}

// List retourne les propriétés du propriétaire, les plus récentes d'abord
func (s *PropertyService) List(userID uint) ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// GetByID retourne une propriété du propriétaire
func (s *PropertyService) GetByID(id, userID uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.CodeNotFound, "Propriété introuvable")
		}
		return nil, err
	}
	return &property, nil
}

// Create crée une nouvelle propriété
func (s *PropertyService) Create(dto PropertyDTO) (*models.Property, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}

	property := &models.Property{
		UserID:      dto.UserID,
		Name:        dto.Name,
		Type:        dto.Type,
		Address:     dto.Address,
		City:        dto.City,
		PostalCode:  dto.PostalCode,
		Country:     dto.Country,
		Status:      models.PropertyStatus(dto.Status),
		MonthlyRent: dto.MonthlyRent,
		SurfaceArea: dto.SurfaceArea,
		Rooms:       dto.Rooms,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
	}

	if err := s.db.Create(property).Error; err != nil {
		return nil, err
	}

	return property, nil
}

// Update modifie une propriété existante du propriétaire
func (s *PropertyService) Update(id uint, dto PropertyDTO) (*models.Property, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}

	property, err := s.GetByID(id, dto.UserID)
	if err != nil {
		return nil, err
	}

	property.Name = dto.Name
	property.Type = dto.Type
	property.Address = dto.Address
	property.City = dto.City
	property.PostalCode = dto.PostalCode
	property.Country = dto.Country
	property.Status = models.PropertyStatus(dto.Status)
	property.MonthlyRent = dto.MonthlyRent
	property.SurfaceArea = dto.SurfaceArea
	property.Rooms = dto.Rooms
	property.Description = dto.Description
	property.ImageURL = dto.ImageURL

	if err := s.db.Save(property).Error; err != nil {
		return nil, err
	}

	return property, nil
}

// Delete supprime une propriété du propriétaire.
// La suppression est limitée aux lignes du propriétaire: aucune
// suppression croisée entre comptes n'est possible.
func (s *PropertyService) Delete(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError(utils.CodeNotFound, "Propriété introuvable")
	}
	return nil
}
