package utils

import (
	"errors"
	"strings"
)

// Codes d'erreur structurés retournés par l'API
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailNotConfirmed  = "EMAIL_NOT_CONFIRMED"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeNetworkError       = "NETWORK_ERROR"
	CodeCORSError          = "CORS_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError représente une erreur applicative avec un code structuré
// et un message destiné à l'utilisateur
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implémente l'interface error
func (e *AppError) Error() string {
	return e.Message
}

// NewAppError crée une nouvelle erreur applicative
func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// AsAppError extrait une AppError d'une erreur quelconque
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Classify mappe une erreur vers une AppError. Les erreurs déjà typées
// passent telles quelles; pour les erreurs brutes héritées (texte libre),
// la correspondance par sous-chaîne reste un dernier recours.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "Invalid login credentials") || strings.Contains(lower, "invalid_credentials"):
		return &AppError{Code: CodeInvalidCredentials, Message: "Email ou mot de passe incorrect", Details: msg}
	case strings.Contains(lower, "email not confirmed"):
		return &AppError{Code: CodeEmailNotConfirmed, Message: "Veuillez confirmer votre email avant de vous connecter", Details: msg}
	case strings.Contains(lower, "already registered") || strings.Contains(lower, "déjà enregistré"):
		return &AppError{Code: CodeEmailExists, Message: "Cet email est déjà enregistré. Essayez de vous connecter.", Details: msg}
	case strings.Contains(lower, "cors"):
		return &AppError{Code: CodeCORSError, Message: "Erreur de configuration CORS", Details: msg}
	case strings.Contains(lower, "fetch") || strings.Contains(lower, "network") || strings.Contains(lower, "connection refused"):
		return &AppError{Code: CodeNetworkError, Message: "Erreur de connexion au serveur", Details: msg}
	default:
		return &AppError{Code: CodeInternal, Message: "Une erreur inattendue s'est produite", Details: msg}
	}
}
