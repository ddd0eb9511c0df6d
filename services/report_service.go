package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"immogest/models"

	"gorm.io/gorm"
)

// Libellés des mois abrégés en français
var frenchMonths = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// MonthlyData représente les agrégats d'un mois calendaire
type MonthlyData struct {
	Month    string  `json:"month"`
	Revenus  float64 `json:"revenus"`
	Depenses float64 `json:"depenses"`
	Benefice float64 `json:"benefice"`
}

// CategoryData représente le total des dépenses d'une catégorie
type CategoryData struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ReportSummary représente le rapport financier d'une fenêtre de N mois
type ReportSummary struct {
	Months            int            `json:"months"`
	MonthlyData       []MonthlyData  `json:"monthly_data"`
	ExpenseCategories []CategoryData `json:"expense_categories"`
	TotalRevenue      float64        `json:"total_revenue"`
	TotalExpenses     float64        `json:"total_expenses"`
	NetProfit         float64        `json:"net_profit"`
}

// ReportService calcule les rapports financiers. Tout est recalculé à
// chaque appel; rien n'est mis en cache.
type ReportService struct {
	db *gorm.DB
}

// NewReportService crée une nouvelle instance de ReportService
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// monthKey retourne la clé d'affichage d'un mois (ex: "janv. 2026")
func monthKey(t time.Time) string {
	return fmt.Sprintf("%s %d", frenchMonths[t.Month()-1], t.Year())
}

// Summary calcule les agrégats mensuels sur une fenêtre de 3, 6 ou 12 mois
// se terminant au mois courant
func (s *ReportService) Summary(userID uint, months int, now time.Time) (*ReportSummary, error) {
	if months != 3 && months != 6 && months != 12 {
		months = 6
	}

	// Bornes de la fenêtre: du premier jour du mois le plus ancien
	// au dernier instant du mois courant
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	endDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	// Paiements encaissés dans la fenêtre
	var payments []models.Payment
	if err := s.db.Where("user_id = ? AND status = ? AND paid_date >= ? AND paid_date < ?",
		userID, models.PaymentStatusPaid, firstMonth, endDate).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	// Dépenses dans la fenêtre
	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND expense_date >= ? AND expense_date < ?",
		userID, firstMonth, endDate).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	// Initialise tous les mois de la fenêtre, même vides
	keys := make([]string, 0, months)
	buckets := make(map[string]*MonthlyData, months)
	for i := 0; i < months; i++ {
		key := monthKey(firstMonth.AddDate(0, i, 0))
		keys = append(keys, key)
		buckets[key] = &MonthlyData{Month: key}
	}

	// Ajoute les revenus
	for i := range payments {
		if payments[i].PaidDate == nil {
			continue
		}
		if bucket, ok := buckets[monthKey(*payments[i].PaidDate)]; ok {
			bucket.Revenus += payments[i].Amount
		}
	}

	// Ajoute les dépenses
	categoryTotals := make(map[string]float64)
	for i := range expenses {
		if bucket, ok := buckets[monthKey(expenses[i].ExpenseDate)]; ok {
			bucket.Depenses += expenses[i].Amount
		}
		category := string(expenses[i].Category)
		if category == "" {
			category = string(models.ExpenseCategoryOther)
		}
		categoryTotals[category] += expenses[i].Amount
	}

	// Assemble le rapport dans l'ordre chronologique
	summary := &ReportSummary{Months: months}
	for _, key := range keys {
		bucket := buckets[key]
		bucket.Benefice = bucket.Revenus - bucket.Depenses
		summary.MonthlyData = append(summary.MonthlyData, *bucket)
		summary.TotalRevenue += bucket.Revenus
		summary.TotalExpenses += bucket.Depenses
	}
	summary.NetProfit = summary.TotalRevenue - summary.TotalExpenses

	// Répartition des dépenses par catégorie, décroissante
	for name, value := range categoryTotals {
		summary.ExpenseCategories = append(summary.ExpenseCategories, CategoryData{Name: name, Value: value})
	}
	sort.Slice(summary.ExpenseCategories, func(i, j int) bool {
		if summary.ExpenseCategories[i].Value != summary.ExpenseCategories[j].Value {
			return summary.ExpenseCategories[i].Value > summary.ExpenseCategories[j].Value
		}
		return summary.ExpenseCategories[i].Name < summary.ExpenseCategories[j].Name
	})

	return summary, nil
}

// ExportCSV génère le rapport au format CSV, une ligne par mois
func (s *ReportService) ExportCSV(userID uint, months int, now time.Time) ([]byte, string, error) {
	summary, err := s.Summary(userID, months, now)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Mois", "Revenus", "Dépenses", "Bénéfice"}); err != nil {
		return nil, "", err
	}
	for _, m := range summary.MonthlyData {
		record := []string{
			m.Month,
			strconv.FormatFloat(m.Revenus, 'f', -1, 64),
			strconv.FormatFloat(m.Depenses, 'f', -1, 64),
			strconv.FormatFloat(m.Benefice, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	fileName := "rapport-financier-" + now.Format("2006-01-02") + ".csv"
	return buf.Bytes(), fileName, nil
}
