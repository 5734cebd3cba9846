package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/models"
	"github.com/vignesh678/stock-glass-visualizer/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	Authenticate(email, password string) (*models.User, error)
}

// AddLotInput carries the fields of a new purchased lot.
type AddLotInput struct {
	StockID       int
	Symbol        string
	Name          string
	PurchasePrice decimal.Decimal
	Quantity      decimal.Decimal
	CurrentPrice  decimal.Decimal
	TargetPrice   *decimal.Decimal
	PurchaseDate  *time.Time
}

// LotPatch is a partial update. Nil fields are left unchanged. When SetTarget
// is true TargetPrice replaces the stored target, and a nil TargetPrice clears it.
type LotPatch struct {
	Quantity      *decimal.Decimal
	PurchasePrice *decimal.Decimal
	SetTarget     bool
	TargetPrice   *decimal.Decimal
}

// PortfolioSummary aggregates every lot a user holds.
type PortfolioSummary struct {
	Lots          int             `json:"lots"`
	Invested      decimal.Decimal `json:"invested"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	ProfitLoss    decimal.Decimal `json:"profitLoss"`
	ProfitLossPct decimal.Decimal `json:"profitLossPct"`
}

// PortfolioServicer defines the contract for purchased-lot storage. Every
// method is scoped to the calling user; lots owned by anyone else behave as
// if they did not exist.
type PortfolioServicer interface {
	ListLots(userID string) ([]models.PurchasedLot, error)
	GetLot(userID, lotID string) (*models.PurchasedLot, error)
	AddLot(userID string, input AddLotInput) (*models.PurchasedLot, error)
	UpdateLot(userID, lotID string, patch LotPatch) (*models.PurchasedLot, error)
	RemoveLot(userID, lotID string) error
	Summary(userID string) (*PortfolioSummary, error)
}

// EmailRequest is a notification a user asked the backend to deliver.
type EmailRequest struct {
	Email   string
	Subject string
	Message string
}

// NotificationServicer accepts email notification requests.
type NotificationServicer interface {
	SendEmail(ctx context.Context, userID string, req EmailRequest) error
}

// EmailPublisher hands email requests to an out-of-process mailer.
type EmailPublisher interface {
	PublishEmailRequested(ctx context.Context, e events.EmailRequested) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	ListForUser(userID string, page pagination.PageRequest) (pagination.Page[models.AuditLog], error)
}
