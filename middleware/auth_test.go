package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testJWTKey = []byte("cle-de-test")

func signToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("signature du jeton de test: %v", err)
	}
	return signed
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	var gotUserID uint
	var gotEmail string

	handler := AuthMiddleware(testJWTKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, email, err := GetUserFromContext(r)
		if err != nil {
			t.Fatalf("identité absente du contexte: %v", err)
		}
		gotUserID = userID
		gotEmail = email
		w.WriteHeader(http.StatusOK)
	}))

	token := signToken(t, testJWTKey, jwt.MapClaims{
		"user_id": 7,
		"email":   "aicha@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("statut 200 attendu, obtenu %d", rr.Code)
	}
	if gotUserID != 7 {
		t.Errorf("user_id 7 attendu, obtenu %d", gotUserID)
	}
	if gotEmail != "aicha@example.com" {
		t.Errorf("email inattendu: %s", gotEmail)
	}
}

func TestAuthMiddlewareRejectsInvalidTokens(t *testing.T) {
	handler := AuthMiddleware(testJWTKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("le handler ne doit pas être appelé sans jeton valide")
	}))

	expired := signToken(t, testJWTKey, jwt.MapClaims{
		"user_id": 7,
		"email":   "aicha@example.com",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, []byte("autre-cle"), jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"en-tête absent", ""},
		{"jeton illisible", "Bearer pas-un-jeton"},
		{"jeton expiré", "Bearer " + expired},
		{"mauvaise clé de signature", "Bearer " + wrongKey},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("statut 401 attendu, obtenu %d", rr.Code)
			}
		})
	}
}
