package services

import (
	"context"
	"strings"

	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
)

// notificationService records email requests. Delivery itself belongs to
// whatever consumes the published events.
type notificationService struct {
	publisher EmailPublisher
}

// NewNotificationService creates a NotificationServicer. publisher may be nil,
// in which case requests are only logged.
func NewNotificationService(publisher EmailPublisher) NotificationServicer {
	return &notificationService{publisher: publisher}
}

// SendEmail validates and records an email notification request.
func (s *notificationService) SendEmail(ctx context.Context, userID string, req EmailRequest) error {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Subject) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "email and subject are required")
	}

	logger.Named("notify").Infow("email notification requested",
		"user_id", userID,
		"email", req.Email,
		"subject", req.Subject,
	)

	if s.publisher == nil {
		return nil
	}
	err := s.publisher.PublishEmailRequested(ctx, events.EmailRequested{
		UserID:  userID,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
