package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, role model.Role, typ string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":   uuid.NewString(),
		"full_name": "Test User",
		"role":      string(role),
		"typ":       typ,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func testEngine(roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/p", JWTAuth(testSecret))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/resource", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": string(GetClaims(c).Role)})
	})
	return r
}

func TestJWTAuthRedirectsAnonymousToLogin(t *testing.T) {
	r := testEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/resource", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestJWTAuthRedirectsGarbageTokenToLogin(t *testing.T) {
	r := testEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/resource", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestJWTAuthRejectsRefreshTokenForAccess(t *testing.T) {
	r := testEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/resource", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleSales, "refresh"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := testEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/resource", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleSales, "access"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sales")
}

func TestJWTAuthAcceptsQueryToken(t *testing.T) {
	// EventSource clients cannot set headers.
	r := testEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/resource?token="+signTestToken(t, model.RoleManager, "access"), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRedirectsWrongRoleToDashboard(t *testing.T) {
	r := testEngine(model.RoleManager, model.RoleFinance)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/resource", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleSales, "access"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	r := testEngine(model.RoleManager, model.RoleFinance)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/resource", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleFinance, "access"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
