package models

import (
	"errors"

	"gorm.io/gorm"
	"time"
)

// ExpenseCategory représente une catégorie de dépense
type ExpenseCategory string

const (
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryRepair      ExpenseCategory = "réparation"
	ExpenseCategoryImprovement ExpenseCategory = "amélioration"
	ExpenseCategoryTaxes       ExpenseCategory = "taxes"
	ExpenseCategoryInsurance   ExpenseCategory = "assurance"
	ExpenseCategoryUtilities   ExpenseCategory = "utilitaires"
	ExpenseCategoryManagement  ExpenseCategory = "gestion"
	ExpenseCategoryMarketing   ExpenseCategory = "marketing"
	ExpenseCategoryLegal       ExpenseCategory = "juridique"
	ExpenseCategoryOther       ExpenseCategory = "autre"
)

// ExpenseCategories liste les catégories de dépenses admises
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryMaintenance,
	ExpenseCategoryRepair,
	ExpenseCategoryImprovement,
	ExpenseCategoryTaxes,
	ExpenseCategoryInsurance,
	ExpenseCategoryUtilities,
	ExpenseCategoryManagement,
	ExpenseCategoryMarketing,
	ExpenseCategoryLegal,
	ExpenseCategoryOther,
}

// IsValidExpenseCategory vérifie qu'une catégorie appartient à l'énumération
func IsValidExpenseCategory(category ExpenseCategory) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Expense représente une dépense liée à la gestion immobilière
type Expense struct {
	gorm.Model
	UserID      uint            `gorm:"column:user_id;not null;index"`
	User        User            `gorm:"foreignKey:UserID"`
	PropertyID  *uint           `gorm:"column:property_id;index"`
	Property    *Property       `gorm:"foreignKey:PropertyID"`
	Category    ExpenseCategory `gorm:"type:varchar(30);not null"`
	Description string          `gorm:"column:description;not null;size:255"`
	Amount      float64         `gorm:"column:amount;not null"`
	ExpenseDate time.Time       `gorm:"column:expense_date;not null"`
	ReceiptURL  string          `gorm:"column:receipt_url;size:512"`
	Notes       string          `gorm:"column:notes;type:text"`
}

// TableName retourne le nom de la table pour le modèle Expense
func (Expense) TableName() string {
	return "expenses"
}

// BeforeSave hook de validation avant l'enregistrement
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	if e.Amount < 0 {
		return errors.New("le montant de la dépense ne peut pas être négatif")
	}
	if !IsValidExpenseCategory(e.Category) {
		return errors.New("catégorie de dépense inconnue")
	}
	return nil
}
