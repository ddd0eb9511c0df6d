package services

import (
	"strings"
	"testing"
	"time"

	"immogest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedPaidPayment crée un paiement encaissé dans le mois donné
func seedPaidPayment(t *testing.T, db *testDBHolder, amount float64, paidDate time.Time) {
	t.Helper()

	payment := &models.Payment{
		UserID:     db.user.ID,
		TenantID:   db.tenant.ID,
		PropertyID: db.property.ID,
		Amount:     amount,
		DueDate:    paidDate,
		PaidDate:   &paidDate,
		Status:     models.PaymentStatusPaid,
	}
	require.NoError(t, db.db.Create(payment).Error)
}

// testDBHolder regroupe la base et les lignes de référence des tests
type testDBHolder struct {
	db       *gorm.DB
	user     *models.User
	tenant   *models.Tenant
	property *models.Property
}

func newReportFixture(t *testing.T) *testDBHolder {
	t.Helper()

	db := newTestDB(t)
	user := seedUser(t, db, "rapport@example.com")
	property := seedProperty(t, db, user.ID, "Villa Cocody")

	tenant := &models.Tenant{
		UserID:      user.ID,
		FullName:    "Awa Koné",
		Email:       "awa@example.com",
		PropertyID:  &property.ID,
		MonthlyRent: 150000,
		PaymentDay:  5,
	}
	require.NoError(t, db.Create(tenant).Error)

	return &testDBHolder{db: db, user: user, tenant: tenant, property: property}
}

func TestReportSummaryMonthBuckets(t *testing.T) {
	fixture := newReportFixture(t)
	service := NewReportService(fixture.db)

	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	currentMonth := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	// Un paiement encaissé de 100 et une dépense de 40 dans le même mois
	seedPaidPayment(t, fixture, 100, currentMonth)
	expense := &models.Expense{
		UserID:      fixture.user.ID,
		Category:    models.ExpenseCategoryMaintenance,
		Description: "Entretien jardin",
		Amount:      40,
		ExpenseDate: currentMonth,
	}
	require.NoError(t, fixture.db.Create(expense).Error)

	summary, err := service.Summary(fixture.user.ID, 6, now)
	require.NoError(t, err)

	// Tous les mois de la fenêtre sont présents, même vides
	require.Len(t, summary.MonthlyData, 6)

	// Le mois courant est le dernier élément
	last := summary.MonthlyData[5]
	assert.Equal(t, "août 2026", last.Month)
	assert.Equal(t, float64(100), last.Revenus)
	assert.Equal(t, float64(40), last.Depenses)
	assert.Equal(t, float64(60), last.Benefice)

	// Les totaux couvrent l'ensemble des mois de la fenêtre
	assert.Equal(t, float64(100), summary.TotalRevenue)
	assert.Equal(t, float64(40), summary.TotalExpenses)
	assert.Equal(t, float64(60), summary.NetProfit)
}

func TestReportSummaryIgnoresPendingAndForeignRows(t *testing.T) {
	fixture := newReportFixture(t)
	service := NewReportService(fixture.db)

	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	currentMonth := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	// Paiement non encaissé: ignoré
	pending := &models.Payment{
		UserID:     fixture.user.ID,
		TenantID:   fixture.tenant.ID,
		PropertyID: fixture.property.ID,
		Amount:     99999,
		DueDate:    currentMonth,
		Status:     models.PaymentStatusPending,
	}
	require.NoError(t, fixture.db.Create(pending).Error)

	// Dépense d'un autre propriétaire: ignorée
	other := seedUser(t, fixture.db, "autre@example.com")
	foreign := &models.Expense{
		UserID:      other.ID,
		Category:    models.ExpenseCategoryTaxes,
		Description: "Taxe foncière",
		Amount:      5000,
		ExpenseDate: currentMonth,
	}
	require.NoError(t, fixture.db.Create(foreign).Error)

	summary, err := service.Summary(fixture.user.ID, 3, now)
	require.NoError(t, err)

	assert.Equal(t, float64(0), summary.TotalRevenue)
	assert.Equal(t, float64(0), summary.TotalExpenses)
	require.Len(t, summary.MonthlyData, 3)
}

func TestReportSummaryCategoryBreakdown(t *testing.T) {
	fixture := newReportFixture(t)
	service := NewReportService(fixture.db)

	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	currentMonth := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	for _, e := range []struct {
		category models.ExpenseCategory
		amount   float64
	}{
		{models.ExpenseCategoryMaintenance, 30},
		{models.ExpenseCategoryMaintenance, 20},
		{models.ExpenseCategoryTaxes, 70},
	} {
		expense := &models.Expense{
			UserID:      fixture.user.ID,
			Category:    e.category,
			Description: "Dépense de test",
			Amount:      e.amount,
			ExpenseDate: currentMonth,
		}
		require.NoError(t, fixture.db.Create(expense).Error)
	}

	summary, err := service.Summary(fixture.user.ID, 3, now)
	require.NoError(t, err)

	// Tri décroissant par montant
	require.Len(t, summary.ExpenseCategories, 2)
	assert.Equal(t, "taxes", summary.ExpenseCategories[0].Name)
	assert.Equal(t, float64(70), summary.ExpenseCategories[0].Value)
	assert.Equal(t, "maintenance", summary.ExpenseCategories[1].Name)
	assert.Equal(t, float64(50), summary.ExpenseCategories[1].Value)
}

func TestReportExportCSV(t *testing.T) {
	fixture := newReportFixture(t)
	service := NewReportService(fixture.db)

	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	currentMonth := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	seedPaidPayment(t, fixture, 150000, currentMonth)

	data, fileName, err := service.ExportCSV(fixture.user.ID, 3, now)
	require.NoError(t, err)

	assert.Equal(t, "rapport-financier-2026-08-28.csv", fileName)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// En-tête + une ligne par mois de la fenêtre
	require.Len(t, lines, 4)
	assert.Equal(t, "Mois,Revenus,Dépenses,Bénéfice", lines[0])
	assert.Equal(t, "août 2026,150000,0,150000", lines[3])
}
