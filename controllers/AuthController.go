package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"immogest/config"
	"immogest/database"
	"immogest/services"
	"immogest/utils"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// AuthController gère l'inscription et la connexion
type AuthController struct {
	userService *services.UserService
	validate    *validator.Validate
	config      *config.Config
}

// SignInRequest représente les identifiants de connexion
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Claims représente les claims JWT de l'application
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Token représente un jeton émis avec l'identité associée
type Token struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	UserID uint   `json:"userId"`
}

// AuthResponse représente la réponse d'inscription ou de connexion
type AuthResponse struct {
	Token Token `json:"token"`
	User  struct {
		ID       uint   `json:"id"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	} `json:"user"`
}

// NewAuthController crée une nouvelle instance d'AuthController
func NewAuthController(db *database.Database, cfg *config.Config) *AuthController {
	return &AuthController{
		userService: services.NewUserService(db),
		validate:    validator.New(),
		config:      cfg,
	}
}

// SignUp traite l'inscription d'un propriétaire. La validation locale
// (champs obligatoires, mot de passe d'au moins 6 caractères) précède
// tout accès à la base.
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}

	// Validation avant tout appel réseau ou base
	if err := c.validate.Struct(req); err != nil {
		writeError(w, translateValidationErrors(err))
		return
	}

	user, err := c.userService.CreateUserInternal(req)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := c.generateToken(user.ID, user.Email)
	if err != nil {
		writeError(w, utils.NewAppError(utils.CodeInternal, "échec de génération du jeton"))
		return
	}

	response := AuthResponse{Token: *token}
	response.User.ID = user.ID
	response.User.FullName = user.FullName
	response.User.Email = user.Email

	writeJSON(w, http.StatusCreated, response)
}

// SignIn traite la connexion d'un propriétaire
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.NewAppError(utils.CodeValidation, "corps de requête invalide"))
		return
	}

	if err := c.validate.Struct(req); err != nil {
		writeError(w, translateValidationErrors(err))
		return
	}

	user, err := c.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := c.generateToken(user.ID, user.Email)
	if err != nil {
		writeError(w, utils.NewAppError(utils.CodeInternal, "échec de génération du jeton"))
		return
	}

	response := AuthResponse{Token: *token}
	response.User.ID = user.ID
	response.User.FullName = user.FullName
	response.User.Email = user.Email

	writeJSON(w, http.StatusOK, response)
}

// GetJWTKey retourne la clé de signature JWT
func (c *AuthController) GetJWTKey() string {
	return c.config.JWT.SecretKey
}

// generateToken crée un jeton JWT signé
func (c *AuthController) generateToken(userID uint, email string) (*Token, error) {
	expirationTime := time.Now().Add(time.Duration(c.config.JWT.ExpiresIn) * time.Hour)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(c.config.JWT.SecretKey))
	if err != nil {
		return nil, err
	}

	return &Token{
		Token:  tokenString,
		Email:  email,
		UserID: userID,
	}, nil
}
