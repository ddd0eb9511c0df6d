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

// ExpenseDTO représente les données d'une dépense pour créer ou modifier
type ExpenseDTO struct {
	PropertyID  *uint     `json:"property_id"`
	Category    string    `json:"category" validate:"required"`
	Description string    `json:"description" validate:"required,max=255"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	ExpenseDate time.Time `json:"expense_date" validate:"required"`
	ReceiptURL  string    `json:"receipt_url" validate:"omitempty,max=512"`
	Notes       string    `json:"notes"`
	UserID      uint      `json:"-" validate:"required"`
}

// ExpenseResponseDTO représente une dépense avec le nom de la propriété
type ExpenseResponseDTO struct {
	ID           uint      `json:"id"`
	PropertyID   *uint     `json:"property_id,omitempty"`
	PropertyName string    `json:"property_name,omitempty"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	ExpenseDate  time.Time `json:"expense_date"`
	ReceiptURL   string    `json:"receipt_url,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// ExpenseService gère les opérations sur les dépenses
type ExpenseService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewExpenseService crée une nouvelle instance de ExpenseService
func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{
		db:        db,
		validator: validator.New(),
	}
}

// List retourne les dépenses du propriétaire. Le filtre de catégorie et le
// terme de recherche (description, notes, propriété) sont optionnels.
func (s *ExpenseService) List(userID uint, category, query string) ([]ExpenseResponseDTO, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).
		Preload("Property").
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	dtos := make([]ExpenseResponseDTO, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		dto := ExpenseResponseDTO{
			ID:          e.ID,
			PropertyID:  e.PropertyID,
			Category:    string(e.Category),
			Description: e.Description,
			Amount:      e.Amount,
			ExpenseDate: e.ExpenseDate,
			ReceiptURL:  e.ReceiptURL,
			Notes:       e.Notes,
		}
		if e.Property != nil {
			dto.PropertyName = e.Property.Name
		}

		if category != "" && category != "all" && dto.Category != category {
			continue
		}
		if query != "" && !expenseMatches(dto, query) {
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// expenseMatches vérifie si une dépense correspond au terme de recherche
func expenseMatches(e ExpenseResponseDTO, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(e.Notes), q) ||
		strings.Contains(strings.ToLower(e.PropertyName), q)
}

// GetByID retourne une dépense du propriétaire
func (s *ExpenseService) GetByID(id, userID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.CodeNotFound, "Dépense introuvable")
		}
		return nil, err
	}
	return &expense, nil
}

// Create crée une nouvelle dépense
func (s *ExpenseService) Create(dto ExpenseDTO) (*models.Expense, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}
	if !models.IsValidExpenseCategory(models.ExpenseCategory(dto.Category)) {
		return nil, utils.NewAppError(utils.CodeValidation, "Catégorie de dépense inconnue")
	}

	expense := &models.Expense{
		UserID:      dto.UserID,
		PropertyID:  dto.PropertyID,
		Category:    models.ExpenseCategory(dto.Category),
		Description: dto.Description,
		Amount:      dto.Amount,
		ExpenseDate: dto.ExpenseDate,
		ReceiptURL:  dto.ReceiptURL,
		Notes:       dto.Notes,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, err
	}

	return expense, nil
}

// Update modifie une dépense existante du propriétaire
func (s *ExpenseService) Update(id uint, dto ExpenseDTO) (*models.Expense, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, utils.NewAppError(utils.CodeValidation, err.Error())
	}
	if !models.IsValidExpenseCategory(models.ExpenseCategory(dto.Category)) {
		return nil, utils.NewAppError(utils.CodeValidation, "Catégorie de dépense inconnue")
	}

	expense, err := s.GetByID(id, dto.UserID)
	if err != nil {
		return nil, err
	}

	expense.PropertyID = dto.PropertyID
	expense.Category = models.ExpenseCategory(dto.Category)
	expense.Description = dto.Description
	expense.Amount = dto.Amount
	expense.ExpenseDate = dto.ExpenseDate
	expense.ReceiptURL = dto.ReceiptURL
	expense.Notes = dto.Notes

	if err := s.db.Omit(clause.Associations).Save(expense).Error; err != nil {
		return nil, err
	}

	return expense, nil
}

// Delete supprime une dépense du propriétaire
func (s *ExpenseService) Delete(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError(utils.CodeNotFound, "Dépense introuvable")
	}
	return nil
}
