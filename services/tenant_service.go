package services

import (
	"errors"
	"strings"
	"time"

	"immogest/models"
	"immogest/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantDTO représente les données d'un locataire pour créer ou modifier
type TenantDTO struct {
	FullName    string     `json:"full_name" validate:"required,min=2,max=100"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone" validate:"omitempty,max=30"`
	IDNumber    string     `json:"id_number" validate:"omitempty,max=50"`
	Address     string     `json:"address" validate:"omitempty,max=255"`
	PropertyID  *uint      `json:"property_id"`
	MonthlyRent float64    `json:"monthly_rent" validate:"gte=0"`
	PaymentDay  int        `json:"payment_day" validate:"required,gte=1,lte=31"`
	MoveInDate  *time.Time `json:"move_in_date"`
	MoveOutDate *time.Time `json:"move_out_date"`
	Notes       string     `json:"notes"`
	UserID      uint       `json:"-" validate:"required"`
}

// TenantResponseDTO représente un locataire avec ses champs dérivés
type TenantResponseDTO struct {
	ID           uint       `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	IDNumber     string     `json:"id_number"`
	Address      string     `json:"address"`
	PropertyID   *uint      `json:"property_id"`
	PropertyName string     `json:"property_name,omitempty"`
	MonthlyRent  float64    `json:"monthly_rent"`
	PaymentDay   int        `json:"payment_day"`
	MoveInDate   *time.Time `json:"move_in_date,omitempty"`
	MoveOutDate  *time.Time `json:"move_out_date,omitempty"`
	Notes        string     `json:"notes"`
	Active       bool       `json:"active"`
}

// TenantService gère les opérations sur les locataires
type TenantService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewTenantService crée une nouvelle instance de TenantService
func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{
		db:        db,
		validator: validator.New(),
	}
}

// toResponseDTO convertit un modèle en DTO de réponse
func toTenantResponseDTO(t *models.Tenant) TenantResponseDTO {
	dto := TenantResponseDTO{
		ID:          t.ID,
		FullName:    t.FullName,
		Email:       t.Email,
		Phone:       t.Phone,
		IDNumber:    t.IDNumber,
		Address:     t.Address,
		PropertyID:  t.PropertyID,
		MonthlyRent: t.MonthlyRent,
		PaymentDay:  t.PaymentDay,
		MoveInDate:  t.MoveInDate,
		MoveOutDate: t.MoveOutDate,
		Notes:       t.Notes,
		Active:      t.IsActive(),
	}
	if t.Property != nil {
		dto.PropertyName = t.Property.Name
	}
	return dto
}

// List retourne les locataires du propriétaire avec le nom de la propriété.
// Le terme de recherche filtre sur nom, email, téléphone et propriété
// (insensible à la casse).
func (s *TenantService) List(userID uint, query string) ([]TenantResponseDTO, error) {
	var tenants []models.Tenant
	if err := s.db.Where("user_id = ?", userID).
		Preload("Property").
		Order("created_at DESC").
		Find(&tenants).Error; err != nil {
		return nil, err
	}

	dtos := make([]TenantResponseDTO, 0, len(tenants))
	for i := range tenants {
		dto := toTenantResponseDTO(&tenants[i])
		if query != "" && !tenantMatches(dto, query) {
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// tenantMatches vérifie si un locataire correspond au terme de recherche
func tenantMatches(t TenantResponseDTO, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.FullName), q) ||
		strings.Contains(strings.ToLower(t.Email), q) ||
		strings.Contains(strings.ToLower(t.Phone), q) ||
		strings.Contains(strings.ToLower(t.PropertyName), q)
}

// GetByID retourne un locataire du propriétaire
func (s *TenantService) GetByID(id, userID uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Property").
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.CodeNotFound, "Locataire introuvable")
		}
		return nil, err
	}
	return &tenant, nil
}

// Create crée un nouveau locataire
func (s *TenantService) Create(dto TenantDTO) (*models.Tenant, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}

	tenant := &models.Tenant{
		UserID:      dto.UserID,
		FullName:    dto.FullName,
		Email:       dto.Email,
		Phone:       dto.Phone,
		IDNumber:    dto.IDNumber,
		Address:     dto.Address,
		PropertyID:  dto.PropertyID,
		MonthlyRent: dto.MonthlyRent,
		PaymentDay:  dto.PaymentDay,
		MoveInDate:  dto.MoveInDate,
		MoveOutDate: dto.MoveOutDate,
		Notes:       dto.Notes,
	}

	if err := s.db.Create(tenant).Error; err != nil {
		return nil, err
	}

	return tenant, nil
}

// Update modifie un locataire existant du propriétaire
func (s *TenantService) Update(id uint, dto TenantDTO) (*models.Tenant, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}

	tenant, err := s.GetByID(id, dto.UserID)
	if err != nil {
		return nil, err
	}

	tenant.FullName = dto.FullName
	tenant.Email = dto.Email
	tenant.Phone = dto.Phone
	tenant.IDNumber = dto.IDNumber
	tenant.Address = dto.Address
	tenant.PropertyID = dto.PropertyID
	tenant.MonthlyRent = dto.MonthlyRent
	tenant.PaymentDay = dto.PaymentDay
	tenant.MoveInDate = dto.MoveInDate
	tenant.MoveOutDate = dto.MoveOutDate
	tenant.Notes = dto.Notes

	if err := s.db.Omit(clause.Associations).Save(tenant).Error; err != nil {
		return nil, err
	}

	return tenant, nil
}

// Delete supprime un locataire du propriétaire
func (s *TenantService) Delete(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Tenant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError(utils.CodeNotFound, "Locataire introuvable")
	}
	return nil
}
