package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vignesh678/stock-glass-visualizer/internal/services"
)

// NotifyHandler accepts notification requests from clients.
type NotifyHandler struct {
	notificationService services.NotificationServicer
	auditService        services.AuditServicer
}

// NewNotifyHandler creates a new NotifyHandler
func NewNotifyHandler(notificationService services.NotificationServicer, auditService services.AuditServicer) *NotifyHandler {
	return &NotifyHandler{notificationService: notificationService, auditService: auditService}
}

// EmailRequest is the body of POST /notify/email.
type EmailRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=255"`
	Message string `json:"message" binding:"max=4096"`
}

// NotifyResponse acknowledges a notification request.
type NotifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendEmail records an email notification request
// @Summary     Request an email notification
// @Description Accepts an email for delivery. The request is logged, audited and published for the mailer.
// @Tags        notify
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EmailRequest true "Email to send"
// @Success     200 {object} NotifyResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notify/email [post]
func (h *NotifyHandler) SendEmail(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	err = h.notificationService.SendEmail(c.Request.Context(), userID, services.EmailRequest{
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionNotify, "email", "", c.ClientIP(),
		map[string]interface{}{"email": req.Email, "subject": req.Subject})

	c.JSON(http.StatusOK, NotifyResponse{Success: true, Message: "Notification sent"})
}
