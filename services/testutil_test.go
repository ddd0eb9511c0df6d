package services

import (
	"testing"

	"immogest/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB ouvre une base sqlite en mémoire avec le schéma des modèles
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("ouverture sqlite: %v", err)
	}

	// Une seule connexion: la base mémoire est liée à la connexion
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("pool sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Tenant{},
		&models.Contract{},
		&models.Payment{},
		&models.Expense{},
		&models.PendingNotification{},
	); err != nil {
		t.Fatalf("migration des modèles: %v", err)
	}

	return db
}

// seedUser crée un profil propriétaire de test
func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		FullName: "Propriétaire Test",
		Email:    email,
		Password: "hashed-password",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("création du profil: %v", err)
	}
	return user
}

// seedProperty crée une propriété de test
func seedProperty(t *testing.T, db *gorm.DB, userID uint, name string) *models.Property {
	t.Helper()

	property := &models.Property{
		UserID:      userID,
		Name:        name,
		Address:     "Rue des Jardins 12",
		City:        "Abidjan",
		Status:      models.PropertyStatusRented,
		MonthlyRent: 150000,
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("création de la propriété: %v", err)
	}
	return property
}
