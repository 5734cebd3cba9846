package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/services"
)

type mockNotificationService struct {
	sendEmailFn func(ctx context.Context, userID string, req services.EmailRequest) error
}

func (m *mockNotificationService) SendEmail(ctx context.Context, userID string, req services.EmailRequest) error {
	if m.sendEmailFn != nil {
		return m.sendEmailFn(ctx, userID, req)
	}
	return nil
}

func setupNotifyRouter(handler *NotifyHandler) *gin.Engine {
	r := gin.New()
	r.POST("/notify/email", injectUserID(testUserID), handler.SendEmail)
	return r
}

func TestNotifyHandler_SendEmail(t *testing.T) {
	t.Run("returns success", func(t *testing.T) {
		var got services.EmailRequest
		svc := &mockNotificationService{
			sendEmailFn: func(_ context.Context, _ string, req services.EmailRequest) error {
				got = req
				return nil
			},
		}
		audit := &mockAuditService{}
		r := setupNotifyRouter(NewNotifyHandler(svc, audit))

		rec := doRequest(r, http.MethodPost, "/notify/email",
			`{"email":"alice@example.com","subject":"StockGlass Alert","message":"hello"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseJSON(t, rec)
		if body["success"] != true || body["message"] != "Notification sent" {
			t.Errorf("unexpected body: %v", body)
		}
		if got.Email != "alice@example.com" || got.Message != "hello" {
			t.Errorf("unexpected request: %+v", got)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditActionNotify {
			t.Errorf("expected one NOTIFY audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on invalid email", func(t *testing.T) {
		r := setupNotifyRouter(NewNotifyHandler(&mockNotificationService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/notify/email", `{"email":"nope","subject":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 500 when publishing fails", func(t *testing.T) {
		svc := &mockNotificationService{
			sendEmailFn: func(context.Context, string, services.EmailRequest) error {
				return apperrors.Wrap(apperrors.ErrInternalServer, errors.New("broker down"))
			},
		}
		r := setupNotifyRouter(NewNotifyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/notify/email", `{"email":"alice@example.com","subject":"x"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
