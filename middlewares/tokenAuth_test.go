package middlewares

import (
	"CluCare/models"
	"CluCare/utils"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// fakeAccountStore serves live records keyed by email.
type fakeAccountStore struct {
	users    map[string]*models.User
	staff    map[string]*models.Staff
	patients map[string]*models.Patient
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		users:    make(map[string]*models.User),
		staff:    make(map[string]*models.Staff),
		patients: make(map[string]*models.Patient),
	}
}

func (f *fakeAccountStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeAccountStore) FindStaffByEmail(_ context.Context, email string) (*models.Staff, error) {
	return f.staff[email], nil
}

func (f *fakeAccountStore) FindPatientByEmail(_ context.Context, email string) (*models.Patient, error) {
	return f.patients[email], nil
}

func newProtectedRouter(t *testing.T, roles ...string) (*gin.Engine, *utils.TokenIssuer, *fakeAccountStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	issuer, err := utils.NewTokenIssuer("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	store := newFakeAccountStore()
	router := gin.New()
	middleware := []gin.HandlerFunc{TokenAuthMiddleware(issuer, store)}
	if len(roles) > 0 {
		middleware = append(middleware, RoleAuthMiddleware(roles...))
	}
	group := router.Group("/", middleware...)
	group.GET("/secure", func(c *gin.Context) {
		role, _ := ExtractUserRoleFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return router, issuer, store
}

func get(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTokenAuthMiddleware(t *testing.T) {
	router, issuer, store := newProtectedRouter(t)
	store.staff["d@x.test"] = &models.Staff{ID: "s1", Email: "d@x.test", Role: "doctor"}

	if w := get(router, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: status = %d, want 401", w.Code)
	}
	if w := get(router, "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}

	token, err := issuer.Generate(utils.TokenClaims{UserID: "s1", Role: "doctor", Email: "d@x.test"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if w := get(router, token); w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200; body %s", w.Code, w.Body.String())
	}
}

func TestTokenAuthRejectsDeletedAccount(t *testing.T) {
	router, issuer, store := newProtectedRouter(t)

	// A well-formed, unexpired token whose account no longer exists in any
	// record set must not be honored.
	token, err := issuer.Generate(utils.TokenClaims{UserID: "gone", Role: "admin", Email: "gone@hospital.test"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if w := get(router, token); w.Code != http.StatusUnauthorized {
		t.Errorf("deleted account: status = %d, want 401; body %s", w.Code, w.Body.String())
	}

	// The same token passes once the record is back.
	store.users["gone@hospital.test"] = &models.User{ID: "gone", Email: "gone@hospital.test", Role: "admin"}
	if w := get(router, token); w.Code != http.StatusOK {
		t.Errorf("restored account: status = %d, want 200; body %s", w.Code, w.Body.String())
	}
}

func TestTokenAuthChecksRoleImpliedSetFirst(t *testing.T) {
	router, issuer, store := newProtectedRouter(t)
	store.patients["pat@home.test"] = &models.Patient{ID: "p1", Email: "pat@home.test"}

	token, err := issuer.Generate(utils.TokenClaims{UserID: "p1", Role: "patient", Email: "pat@home.test"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if w := get(router, token); w.Code != http.StatusOK {
		t.Errorf("patient token: status = %d, want 200; body %s", w.Code, w.Body.String())
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	router, issuer, store := newProtectedRouter(t, "admin", "pharmacy")
	store.staff["doc@x.test"] = &models.Staff{ID: "u1", Email: "doc@x.test", Role: "doctor"}
	store.users["adm@x.test"] = &models.User{ID: "u2", Email: "adm@x.test", Role: "admin"}
	store.users["ph@x.test"] = &models.User{ID: "u3", Email: "ph@x.test", Role: "pharmacy"}

	doctorToken, _ := issuer.Generate(utils.TokenClaims{UserID: "u1", Role: "doctor", Email: "doc@x.test"})
	if w := get(router, doctorToken); w.Code != http.StatusForbidden {
		t.Errorf("doctor on admin route: status = %d, want 403", w.Code)
	}

	adminToken, _ := issuer.Generate(utils.TokenClaims{UserID: "u2", Role: "admin", Email: "adm@x.test"})
	if w := get(router, adminToken); w.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", w.Code)
	}

	pharmacyToken, _ := issuer.Generate(utils.TokenClaims{UserID: "u3", Role: "pharmacy", Email: "ph@x.test"})
	if w := get(router, pharmacyToken); w.Code != http.StatusOK {
		t.Errorf("pharmacy: status = %d, want 200", w.Code)
	}
}
