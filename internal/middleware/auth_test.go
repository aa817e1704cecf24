package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tally/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-signing-secret"

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	os.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Cleanup(func() { os.Unsetenv("AUTH_JWT_SECRET") })
	if _, err := config.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("subject")})
	})
	return r
}

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()

	claims := AuthClaims{
		Email: "user@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_token", func(t *testing.T) {
		r := setupAuthRouter(t)
		token := signToken(t, testSecret, time.Now().Add(time.Hour))

		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		r := setupAuthRouter(t)

		rec := doAuthRequest(r, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		r := setupAuthRouter(t)

		rec := doAuthRequest(r, "NotBearer xyz")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong_secret", func(t *testing.T) {
		r := setupAuthRouter(t)
		token := signToken(t, "some-other-secret", time.Now().Add(time.Hour))

		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		r := setupAuthRouter(t)
		token := signToken(t, testSecret, time.Now().Add(-time.Hour))

		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
