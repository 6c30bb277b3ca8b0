package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, sub uint64, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func setupEcho() *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(testSecret), RequireRole("ADMIN"))
	g.GET("/protegido", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})
	return e
}

func TestJWTAuthMissingToken(t *testing.T) {
	e := setupEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/protegido", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	e := setupEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/protegido", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{"sub": uint64(1), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, _ := tok.SignedString([]byte("otro-secreto"))

	e := setupEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+s)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	e := setupEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 1, "ADMIN", -time.Minute))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	e := setupEcho()
	for _, role := range []string{"COMUN", "COMERCIO", ""} {
		req := httptest.NewRequest(http.MethodGet, "/v1/protegido", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, role, time.Hour))
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "role %q", role)
	}
}

func TestRequireRoleAllowsMatch(t *testing.T) {
	e := setupEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7, "ADMIN", time.Hour))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ADMIN")
}
