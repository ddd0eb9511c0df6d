package services

import (
	"errors"

	"immogest/database"
	"immogest/models"
	"immogest/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService gère les comptes propriétaires (table profiles)
type UserService struct {
	db *database.Database
}

// UserDTO représente un profil exposé par l'API
type UserDTO struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// CreateUserRequest représente les données d'inscription
type CreateUserRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// NewUserService crée une nouvelle instance de UserService
func NewUserService(db *database.Database) *UserService {
	return &UserService{db: db}
}

// CreateUserInternal crée un nouveau profil propriétaire
func (h *UserService) CreateUserInternal(req CreateUserRequest) (*models.User, error) {
	// Vérifie qu'aucun profil n'existe déjà pour cet email
	var existingUser models.User
	if err := h.db.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&existingUser).Error; err == nil {
		return nil, utils.NewAppError(utils.CodeEmailExists, "Cet email est déjà enregistré. Essayez de vous connecter.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Hache le mot de passe
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Crée le profil
	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.db.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate vérifie les identifiants et retourne le profil
func (h *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := h.FindByEmail(email)
	if err != nil {
		return nil, utils.NewAppError(utils.CodeInvalidCredentials, "Email ou mot de passe incorrect")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.NewAppError(utils.CodeInvalidCredentials, "Email ou mot de passe incorrect")
	}

	return user, nil
}

// FindByEmail cherche un profil par email (insensible à la casse et aux espaces)
func (h *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := h.db.DB.Where("LOWER(TRIM(email)) = LOWER(TRIM(?))", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profil introuvable")
		}
		return nil, err
	}
	return &user, nil
}

// FindByID cherche un profil par identifiant
func (h *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := h.db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profil introuvable")
		}
		return nil, err
	}
	return &user, nil
}
