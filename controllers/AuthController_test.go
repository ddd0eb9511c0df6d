package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"immogest/config"
	"immogest/database"
	"immogest/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthController(t *testing.T) (*AuthController, *database.Database) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("ouverture de la base de test: %v", err)
	}

	// Une base mémoire par connexion: on se limite à une seule
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("accès au pool de connexions: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gormDB.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migration de la base de test: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "cle-de-test"
	cfg.JWT.ExpiresIn = 24

	db := &database.Database{DB: gormDB}
	return NewAuthController(db, cfg), db
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encodage du corps de requête: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestSignUpRejectsShortPasswordBeforeDatabase(t *testing.T) {
	controller, db := newAuthController(t)

	rr := postJSON(t, controller.SignUp, "/api/auth/signUp", map[string]string{
		"fullName": "Aïcha Bamba",
		"email":    "aicha@example.com",
		"password": "12345",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("statut 400 attendu, obtenu %d", rr.Code)
	}

	// Le refus précède toute écriture: aucun profil ne doit exister
	var count int64
	if err := db.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("comptage des profils: %v", err)
	}
	if count != 0 {
		t.Fatalf("aucun profil attendu, obtenu %d", count)
	}
}

func TestSignUpThenSignIn(t *testing.T) {
	controller, _ := newAuthController(t)

	rr := postJSON(t, controller.SignUp, "/api/auth/signUp", map[string]string{
		"fullName": "Aïcha Bamba",
		"email":    "aicha@example.com",
		"password": "secret123",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("statut 201 attendu, obtenu %d: %s", rr.Code, rr.Body.String())
	}

	var response AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("décodage de la réponse: %v", err)
	}
	if response.Token.Token == "" {
		t.Fatal("un jeton est attendu à l'inscription")
	}
	if response.User.Email != "aicha@example.com" {
		t.Fatalf("email inattendu: %s", response.User.Email)
	}

	rr = postJSON(t, controller.SignIn, "/api/auth/signIn", map[string]string{
		"email":    "aicha@example.com",
		"password": "secret123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("statut 200 attendu, obtenu %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	controller, _ := newAuthController(t)

	rr := postJSON(t, controller.SignUp, "/api/auth/signUp", map[string]string{
		"fullName": "Aïcha Bamba",
		"email":    "aicha@example.com",
		"password": "secret123",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("statut 201 attendu, obtenu %d", rr.Code)
	}

	rr = postJSON(t, controller.SignIn, "/api/auth/signIn", map[string]string{
		"email":    "aicha@example.com",
		"password": "mauvais-mdp",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("statut 401 attendu, obtenu %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	controller, _ := newAuthController(t)

	body := map[string]string{
		"fullName": "Aïcha Bamba",
		"email":    "aicha@example.com",
		"password": "secret123",
	}
	rr := postJSON(t, controller.SignUp, "/api/auth/signUp", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("statut 201 attendu, obtenu %d", rr.Code)
	}

	rr = postJSON(t, controller.SignUp, "/api/auth/signUp", body)
	if rr.Code != http.StatusConflict {
		t.Fatalf("statut 409 attendu, obtenu %d: %s", rr.Code, rr.Body.String())
	}
}
