package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"immogest/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// writeJSON sérialise la réponse en JSON avec le statut donné
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError écrit une erreur applicative structurée avec le statut HTTP
// correspondant à son code
func writeError(w http.ResponseWriter, err error) {
	appErr := utils.Classify(err)

	status := http.StatusInternalServerError
	switch appErr.Code {
	case utils.CodeValidation:
		status = http.StatusBadRequest
	case utils.CodeInvalidCredentials, utils.CodeEmailNotConfirmed:
		status = http.StatusUnauthorized
	case utils.CodeForbidden:
		status = http.StatusForbidden
	case utils.CodeNotFound:
		status = http.StatusNotFound
	case utils.CodeEmailExists:
		status = http.StatusConflict
	}

	writeJSON(w, status, map[string]interface{}{"error": appErr})
}

// translateValidationErrors traduit les erreurs de validation en messages
// destinés à l'utilisateur
func translateValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var errorMessages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" est obligatoire")
		case "email":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" doit être un email valide")
		case "min":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" doit contenir au moins "+e.Param()+" caractères")
		case "max":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" est trop long")
		case "gt":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" doit être supérieur à 0")
		case "gte":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" doit être supérieur ou égal à "+e.Param())
		case "lte":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" doit être inférieur ou égal à "+e.Param())
		case "oneof":
			errorMessages = append(errorMessages, "le champ "+e.Field()+" doit être l'un de: "+e.Param())
		default:
			errorMessages = append(errorMessages, "le champ "+e.Field()+" est invalide")
		}
	}
	return utils.NewAppError(utils.CodeValidation, strings.Join(errorMessages, "; "))
}

// userIDFromRequest récupère l'identifiant du propriétaire depuis le
// contexte (placé par le middleware d'authentification)
func userIDFromRequest(r *http.Request) (uint, bool) {
	userID, ok := r.Context().Value("user_id").(uint)
	return userID, ok
}

// idFromRequest récupère l'identifiant de ressource depuis l'URL
func idFromRequest(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		return 0, utils.NewAppError(utils.CodeValidation, "identifiant invalide")
	}
	return uint(id), nil
}
