package services

import (
	"testing"
	"time"

	"immogest/models"
	"immogest/utils"
)

func seedTenant(t *testing.T, service *TenantService, dto TenantDTO) *models.Tenant {
	t.Helper()

	tenant, err := service.Create(dto)
	if err != nil {
		t.Fatalf("création du locataire: %v", err)
	}
	return tenant
}

func TestTenantActiveDerivedFromMoveOutDate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	service := NewTenantService(db)

	moveOut := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

	seedTenant(t, service, TenantDTO{
		FullName:   "Awa Koné",
		PaymentDay: 5,
		UserID:     user.ID,
	})
	seedTenant(t, service, TenantDTO{
		FullName:    "Moussa Traoré",
		PaymentDay:  1,
		MoveOutDate: &moveOut,
		UserID:      user.ID,
	})

	tenants, err := service.List(user.ID, "")
	if err != nil {
		t.Fatalf("liste des locataires: %v", err)
	}
	if len(tenants) != 2 {
		t.Fatalf("2 locataires attendus, obtenu %d", len(tenants))
	}

	// Actif si et seulement si move_out_date est nul
	for _, tenant := range tenants {
		wantActive := tenant.MoveOutDate == nil
		if tenant.Active != wantActive {
			t.Errorf("locataire %s: actif=%v attendu %v", tenant.FullName, tenant.Active, wantActive)
		}
	}
}

func TestTenantSearchFilter(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	property := seedProperty(t, db, user.ID, "Villa Cocody")
	service := NewTenantService(db)

	seedTenant(t, service, TenantDTO{
		FullName:   "Awa Koné",
		Email:      "awa.kone@example.com",
		Phone:      "+225 07 01 02 03",
		PropertyID: &property.ID,
		PaymentDay: 5,
		UserID:     user.ID,
	})
	seedTenant(t, service, TenantDTO{
		FullName:   "Moussa Traoré",
		Email:      "moussa@example.com",
		Phone:      "+225 05 99 88 77",
		PaymentDay: 1,
		UserID:     user.ID,
	})

	cases := []struct {
		query string
		want  int
	}{
		{"awa", 1},           // nom, insensible à la casse
		{"MOUSSA@", 1},       // email
		{"99 88", 1},         // téléphone
		{"cocody", 1},        // nom de la propriété
		{"example.com", 2},   // email commun
		{"introuvable", 0},   // aucun résultat
		{"", 2},              // pas de filtre
	}

	for _, tc := range cases {
		tenants, err := service.List(user.ID, tc.query)
		if err != nil {
			t.Fatalf("recherche %q: %v", tc.query, err)
		}
		if len(tenants) != tc.want {
			t.Errorf("recherche %q: %d résultats attendus, obtenu %d", tc.query, tc.want, len(tenants))
		}
	}
}

func TestTenantPaymentDayBounds(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "proprio@example.com")
	service := NewTenantService(db)

	for _, day := range []int{0, 32, -1} {
		_, err := service.Create(TenantDTO{
			FullName:   "Jour Invalide",
			PaymentDay: day,
			UserID:     user.ID,
		})
		if err == nil {
			t.Errorf("jour de paiement %d: une erreur de validation est attendue", day)
		}
	}

	if _, err := service.Create(TenantDTO{
		FullName:   "Jour Valide",
		PaymentDay: 31,
		UserID:     user.ID,
	}); err != nil {
		t.Errorf("jour de paiement 31: aucune erreur attendue, obtenu %v", err)
	}
}

func TestTenantDeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "proprio@example.com")
	intruder := seedUser(t, db, "intrus@example.com")
	service := NewTenantService(db)

	tenant := seedTenant(t, service, TenantDTO{
		FullName:   "Awa Koné",
		PaymentDay: 5,
		UserID:     owner.ID,
	})

	// La suppression par un autre compte échoue sans toucher la ligne
	err := service.Delete(tenant.ID, intruder.ID)
	appErr, ok := utils.AsAppError(err)
	if !ok || appErr.Code != utils.CodeNotFound {
		t.Fatalf("erreur NOT_FOUND attendue, obtenu %v", err)
	}

	remaining, err := service.List(owner.ID, "")
	if err != nil {
		t.Fatalf("liste des locataires: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("le locataire ne doit pas être supprimé par un autre compte")
	}

	// La suppression par le propriétaire retire exactement la ligne ciblée
	if err := service.Delete(tenant.ID, owner.ID); err != nil {
		t.Fatalf("suppression par le propriétaire: %v", err)
	}

	remaining, err = service.List(owner.ID, "")
	if err != nil {
		t.Fatalf("liste des locataires: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("0 locataire attendu après suppression, obtenu %d", len(remaining))
	}
}
