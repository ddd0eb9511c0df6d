package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"immogest/config"
	"immogest/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database représente la connexion à la base de données
type Database struct {
	DB *gorm.DB
}

// NewDatabase crée une nouvelle connexion à la base de données
func NewDatabase(cfg *config.Config) (*Database, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &Database{DB: db}, nil
}

// GetDB retourne l'instance GORM
func (d *Database) GetDB() *gorm.DB {
	return d.DB
}

// Close ferme la connexion à la base de données
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Connect établit la connexion à la base de données et exécute les migrations
func Connect(cfg *config.Config) (*gorm.DB, error) {
	// Chaîne de connexion
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.DBName,
	)

	// Configuration du logger GORM
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Ouverture de la connexion
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("erreur de connexion à la base de données: %v", err)
	}

	// Configuration du pool de connexions
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("erreur d'accès au pool de connexions: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Migrations SQL
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("erreur d'exécution des migrations SQL: %v", err)
	}

	// Migration automatique des modèles
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("erreur de migration automatique des modèles: %v", err)
	}

	return db, nil
}

// runMigrations exécute les migrations SQL
func runMigrations(cfg *config.Config) error {
	// URL de migration
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.DBName,
	)

	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("erreur de création de la migration: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("erreur d'exécution des migrations: %v", err)
	}

	return nil
}

// autoMigrate exécute la migration automatique des modèles
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Tenant{},
		&models.Contract{},
		&models.Payment{},
		&models.Expense{},
		&models.PendingNotification{},
	)
	if err != nil {
		return fmt.Errorf("erreur de migration automatique: %v", err)
	}

	return nil
}

// Méthodes d'accès aux profils
func (d *Database) CreateUser(user *models.User) error {
	return d.DB.Create(user).Error
}

func (d *Database) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := d.DB.First(&user, id).Error
	return &user, err
}

func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}
