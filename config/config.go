package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config représente la configuration de l'application
type Config struct {
	Server struct {
		Port          int
		FunctionsPort int // Port du serveur de fonctions planifiées
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // en heures
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Storage struct {
		Path string // Répertoire racine du stockage de documents
	}
	Reminder struct {
		LookaheadDays int // Fenêtre d'anticipation des échéances
		BatchLimit    int // Taille maximale d'un lot de notifications
		IntervalHours int // Intervalle du planificateur
	}
}

// NewConfig crée une nouvelle instance de configuration depuis les
// variables d'environnement, avec des valeurs par défaut documentées
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Valeurs par défaut
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("FUNCTIONS_PORT", 8090)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "immogest_db")
	v.SetDefault("JWT_SECRET_KEY", "your-secret-key-here")
	v.SetDefault("JWT_EXPIRES_IN", 24)
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "your-email@gmail.com")
	v.SetDefault("SMTP_PASSWORD", "your-app-password")
	v.SetDefault("SMTP_FROM", "your-email@gmail.com")
	v.SetDefault("STORAGE_PATH", "storage")
	v.SetDefault("REMINDER_LOOKAHEAD_DAYS", 10)
	v.SetDefault("REMINDER_BATCH_LIMIT", 100)
	v.SetDefault("SCHEDULER_INTERVAL_HOURS", 24)

	cfg := &Config{}

	// Paramètres serveur
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.FunctionsPort = v.GetInt("FUNCTIONS_PORT")
	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("port du serveur invalide: %d", cfg.Server.Port)
	}

	// Paramètres base de données
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")
	if cfg.DB.Port <= 0 {
		return nil, fmt.Errorf("port de la base de données invalide: %d", cfg.DB.Port)
	}

	// Paramètres JWT
	cfg.JWT.SecretKey = v.GetString("JWT_SECRET_KEY")
	cfg.JWT.ExpiresIn = v.GetInt("JWT_EXPIRES_IN")

	// Paramètres SMTP
	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")

	// Paramètres de stockage
	cfg.Storage.Path = v.GetString("STORAGE_PATH")

	// Paramètres des rappels de paiement
	cfg.Reminder.LookaheadDays = v.GetInt("REMINDER_LOOKAHEAD_DAYS")
	cfg.Reminder.BatchLimit = v.GetInt("REMINDER_BATCH_LIMIT")
	cfg.Reminder.IntervalHours = v.GetInt("SCHEDULER_INTERVAL_HOURS")
	if cfg.Reminder.BatchLimit <= 0 {
		return nil, fmt.Errorf("taille de lot invalide: %d", cfg.Reminder.BatchLimit)
	}

	return cfg, nil
}
