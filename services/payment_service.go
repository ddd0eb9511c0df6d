package services

import (
	"errors"
	"time"

	"immogest/models"
	"immogest/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentDTO représente les données d'un paiement pour créer ou modifier
type PaymentDTO struct {
	TenantID      uint       `json:"tenant_id" validate:"required"`
	PropertyID    uint       `json:"property_id" validate:"required"`
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	DueDate       time.Time  `json:"due_date" validate:"required"`
	PaidDate      *time.Time `json:"paid_date"`
	Status        string     `json:"status" validate:"required,oneof='en attente' 'payé' 'en retard'"`
	PaymentMethod string     `json:"payment_method" validate:"omitempty,max=50"`
	Notes         string     `json:"notes"`
	UserID        uint       `json:"-" validate:"required"`
}

// PaymentResponseDTO représente un paiement avec les noms joints
type PaymentResponseDTO struct {
	ID            uint       `json:"id"`
	TenantID      uint       `json:"tenant_id"`
	TenantName    string     `json:"tenant_name,omitempty"`
	PropertyID    uint       `json:"property_id"`
	PropertyName  string     `json:"property_name,omitempty"`
	Amount        float64    `json:"amount"`
	DueDate       time.Time  `json:"due_date"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// PaymentService gère les opérations sur les paiements de loyer
type PaymentService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewPaymentService crée une nouvelle instance de PaymentService
func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{
		db:        db,
		validator: validator.New(),
	}
}

// List retourne les paiements du propriétaire, échéances récentes d'abord
func (s *PaymentService) List(userID uint) ([]PaymentResponseDTO, error) {
	var payments []models.Payment
	if err := s.db.Where("user_id = ?", userID).
		Preload("Tenant").
		Preload("Property").
		Order("due_date DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}

	dtos := make([]PaymentResponseDTO, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		dtos = append(dtos, PaymentResponseDTO{
			ID:            p.ID,
			TenantID:      p.TenantID,
			TenantName:    p.Tenant.FullName,
			PropertyID:    p.PropertyID,
			PropertyName:  p.Property.Name,
			Amount:        p.Amount,
			DueDate:       p.DueDate,
			PaidDate:      p.PaidDate,
			Status:        string(p.Status),
			PaymentMethod: p.PaymentMethod,
			Notes:         p.Notes,
		})
	}
	return dtos, nil
}

// GetByID retourne un paiement du propriétaire
func (s *PaymentService) GetByID(id, userID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.CodeNotFound, "Paiement introuvable")
		}
		return nil, err
	}
	return &payment, nil
}

// Create crée un nouveau paiement. Le locataire et la propriété doivent
// appartenir au propriétaire.
func (s *PaymentService) Create(dto PaymentDTO) (*models.Payment, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}

	if err := s.checkOwnership(dto); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:        dto.UserID,
		TenantID:      dto.TenantID,
		PropertyID:    dto.PropertyID,
		Amount:        dto.Amount,
		DueDate:       dto.DueDate,
		PaidDate:      dto.PaidDate,
		Status:        models.PaymentStatus(dto.Status),
		PaymentMethod: dto.PaymentMethod,
		Notes:         dto.Notes,
	}

	if err := s.db.Create(payment).Error; err != nil {
		return nil, err
	}

	return payment, nil
}

// checkOwnership vérifie que le locataire et la propriété appartiennent
// bien au propriétaire du paiement
func (s *PaymentService) checkOwnership(dto PaymentDTO) error {
	var count int64
	if err := s.db.Model(&models.Tenant{}).
		Where("id = ? AND user_id = ?", dto.TenantID, dto.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.NewAppError(utils.CodeNotFound, "Locataire introuvable")
	}

	if err := s.db.Model(&models.Property{}).
		Where("id = ? AND user_id = ?", dto.PropertyID, dto.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.NewAppError(utils.CodeNotFound, "Propriété introuvable")
	}
	return nil
}

// Update modifie un paiement existant du propriétaire
func (s *PaymentService) Update(id uint, dto PaymentDTO) (*models.Payment, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}

	payment, err := s.GetByID(id, dto.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnership(dto); err != nil {
		return nil, err
	}

	payment.TenantID = dto.TenantID
	payment.PropertyID = dto.PropertyID
	payment.Amount = dto.Amount
	payment.DueDate = dto.DueDate
	payment.PaidDate = dto.PaidDate
	payment.Status = models.PaymentStatus(dto.Status)
	payment.PaymentMethod = dto.PaymentMethod
	payment.Notes = dto.Notes

	if err := s.db.Omit(clause.Associations).Save(payment).Error; err != nil {
		return nil, err
	}

	return payment, nil
}

// Delete supprime un paiement du propriétaire
func (s *PaymentService) Delete(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Payment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError(utils.CodeNotFound, "Paiement introuvable")
	}
	return nil
}
