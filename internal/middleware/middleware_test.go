package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vignesh678/stock-glass-visualizer/internal/config"
	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setTestConfig(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{JWTSecret: "test-secret", JWTExpirationDur: time.Hour})
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey), "email": c.GetString(EmailKey)})
	})
	return r
}

func doRequest(r *gin.Engine, method string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/me", http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in body: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestAuthMiddleware(t *testing.T) {
	setTestConfig(t)
	user := &models.User{Base: models.Base{ID: "0190a5f0-1111-7000-8000-000000000001"}, Email: "a@example.com"}
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, _ := expired.SignedString([]byte("test-secret"))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{UserID: user.ID})
	forgedToken, _ := forged.SignedString([]byte("other-secret"))

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantCode   string
	}{
		{"bearer", map[string]string{"Authorization": "Bearer " + token}, http.StatusOK, ""},
		{"x_auth_token", map[string]string{TokenHeader: token}, http.StatusOK, ""},
		{"missing", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad_scheme", map[string]string{"Authorization": "Token " + token}, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expired", map[string]string{"Authorization": "Bearer " + expiredToken}, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"wrong_secret", map[string]string{TokenHeader: forgedToken}, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"garbage", map[string]string{TokenHeader: "not-a-jwt"}, http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	r := setupAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(r, http.MethodGet, tt.headers)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantCode != "" {
				if code := errorCode(t, rec); code != tt.wantCode {
					t.Errorf("expected code %q, got %q", tt.wantCode, code)
				}
				return
			}
			body := parseBody(t, rec)
			if body["user_id"] != user.ID {
				t.Errorf("expected user_id %s, got %v", user.ID, body["user_id"])
			}
			if body["email"] != user.Email {
				t.Errorf("expected email %s, got %v", user.Email, body["email"])
			}
		})
	}
}

func TestGenerateToken_Expiry(t *testing.T) {
	config.Set(&config.Config{JWTSecret: "test-secret", JWTExpirationDur: 24 * time.Hour})
	token, err := GenerateToken(&models.User{Base: models.Base{ID: "u1"}})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 24*time.Hour {
		t.Errorf("expected ~24h expiry, got %v", ttl)
	}
	if claims.Subject != "u1" {
		t.Errorf("expected subject u1, got %s", claims.Subject)
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app_error", apperrors.ErrLotNotFound, http.StatusNotFound, "PORTFOLIO_LOT_NOT_FOUND"},
		{"wrapped_app_error", apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db gone")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/me", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := doRequest(r, http.MethodGet, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, code)
			}
		})
	}
}

func TestRequestLogging_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := doRequest(r, http.MethodGet, nil)
	generated := rec.Header().Get(RequestIDHeader)
	if generated == "" {
		t.Fatal("expected a generated request id")
	}

	incoming := "0190a5f0-2222-7000-8000-000000000002"
	rec = doRequest(r, http.MethodGet, map[string]string{RequestIDHeader: incoming})
	if got := rec.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("expected incoming request id to be reused, got %s", got)
	}

	rec = doRequest(r, http.MethodGet, map[string]string{RequestIDHeader: "not a uuid"})
	if got := rec.Header().Get(RequestIDHeader); got == "not a uuid" {
		t.Error("expected malformed request id to be replaced")
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := doRequest(r, http.MethodOptions, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected preflight 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected allow-origin header")
	}

	rec = doRequest(r, http.MethodGet, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
