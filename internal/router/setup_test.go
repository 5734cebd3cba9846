package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vignesh678/stock-glass-visualizer/internal/config"
	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
	"github.com/vignesh678/stock-glass-visualizer/internal/testutil"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Publisher *recordingPublisher
}

type recordingPublisher struct {
	mu       sync.Mutex
	requests []events.EmailRequested
}

func (p *recordingPublisher) PublishEmailRequested(_ context.Context, e events.EmailRequested) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, e)
	return nil
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	config.Set(&config.Config{JWTSecret: "flow-test-secret", JWTExpirationDur: 24 * time.Hour})
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	pub := &recordingPublisher{}
	return &testApp{
		DB:        db,
		Router:    New(Options{DB: db, EmailPublisher: pub}),
		Publisher: pub,
	}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// signup registers a new user and returns the token and user ID.
func (app *testApp) signup(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request(http.MethodPost, "/api/signup", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// addLot records a RELIANCE purchase and returns the new lot's ID.
func (app *testApp) addLot(t *testing.T, token, target string) string {
	t.Helper()
	body := `{"stockId":1,"symbol":"RELIANCE","name":"Reliance Industries Ltd","purchasePrice":2500,"quantity":10,"currentPrice":2567.35`
	if target != "" {
		body += `,"targetPrice":` + target
	}
	body += "}"
	rec := app.request(http.MethodPost, "/api/portfolio", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add lot failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}

// listLots returns the caller's lots.
func (app *testApp) listLots(t *testing.T, token string) []map[string]interface{} {
	t.Helper()
	rec := app.request(http.MethodGet, "/api/portfolio", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	var lots []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &lots); err != nil {
		t.Fatalf("decode lots: %v", err)
	}
	return lots
}

// requestWithHeader makes a bodyless request carrying a single extra header.
func (app *testApp) requestWithHeader(method, path, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	req.Header.Set(header, value)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}
