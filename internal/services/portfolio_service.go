package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/models"
)

var hundred = decimal.NewFromInt(100)

// portfolioService handles purchased-lot storage.
type portfolioService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db, now: time.Now}
}

// ListLots returns the user's lots, most recent purchase first.
func (s *portfolioService) ListLots(userID string) ([]models.PurchasedLot, error) {
	lots := []models.PurchasedLot{}
	if err := s.db.Where("user_id = ?", userID).
		Order("purchase_date DESC, created_at DESC").
		Find(&lots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lots, nil
}

// GetLot retrieves one of the user's lots.
func (s *portfolioService) GetLot(userID, lotID string) (*models.PurchasedLot, error) {
	var lot models.PurchasedLot
	if err := s.db.Where("id = ? AND user_id = ?", lotID, userID).First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &lot, nil
}

// AddLot records a purchase for the user.
func (s *portfolioService) AddLot(userID string, input AddLotInput) (*models.PurchasedLot, error) {
	if input.StockID <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "stockId must be positive")
	}
	if strings.TrimSpace(input.Symbol) == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol and name are required")
	}
	if err := requirePositive("purchasePrice", &input.PurchasePrice); err != nil {
		return nil, err
	}
	if err := requirePositive("quantity", &input.Quantity); err != nil {
		return nil, err
	}
	if err := requirePositive("currentPrice", &input.CurrentPrice); err != nil {
		return nil, err
	}
	if err := requirePositive("targetPrice", input.TargetPrice); err != nil {
		return nil, err
	}

	purchaseDate := s.now()
	if input.PurchaseDate != nil {
		purchaseDate = *input.PurchaseDate
	}

	lot := &models.PurchasedLot{
		UserID:        userID,
		StockID:       input.StockID,
		Symbol:        strings.TrimSpace(input.Symbol),
		Name:          strings.TrimSpace(input.Name),
		PurchasePrice: input.PurchasePrice,
		Quantity:      input.Quantity,
		CurrentPrice:  input.CurrentPrice,
		TargetPrice:   input.TargetPrice,
		PurchaseDate:  purchaseDate,
	}
	if err := s.db.Create(lot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lot, nil
}

// UpdateLot applies a partial update to one of the user's lots. Changing the
// target re-arms its notification.
func (s *portfolioService) UpdateLot(userID, lotID string, patch LotPatch) (*models.PurchasedLot, error) {
	if err := requirePositive("quantity", patch.Quantity); err != nil {
		return nil, err
	}
	if err := requirePositive("purchasePrice", patch.PurchasePrice); err != nil {
		return nil, err
	}
	if patch.SetTarget {
		if err := requirePositive("targetPrice", patch.TargetPrice); err != nil {
			return nil, err
		}
	}

	var lot *models.PurchasedLot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current models.PurchasedLot
		if txErr := tx.Where("id = ? AND user_id = ?", lotID, userID).First(&current).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrLotNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		updates := map[string]interface{}{}
		if patch.Quantity != nil {
			current.Quantity = *patch.Quantity
			updates["quantity"] = current.Quantity
		}
		if patch.PurchasePrice != nil {
			current.PurchasePrice = *patch.PurchasePrice
			updates["purchase_price"] = current.PurchasePrice
		}
		if patch.SetTarget {
			current.TargetPrice = patch.TargetPrice
			current.NotificationSent = false
			updates["target_price"] = current.TargetPrice
			updates["notification_sent"] = false
		}
		if len(updates) == 0 {
			lot = &current
			return nil
		}

		if txErr := tx.Model(&current).Updates(updates).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		lot = &current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// RemoveLot deletes one of the user's lots.
func (s *portfolioService) RemoveLot(userID, lotID string) error {
	result := s.db.Where("id = ? AND user_id = ?", lotID, userID).Delete(&models.PurchasedLot{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrLotNotFound
	}
	return nil
}

// Summary totals the user's lots at their stored current prices.
func (s *portfolioService) Summary(userID string) (*PortfolioSummary, error) {
	lots, err := s.ListLots(userID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{
		Lots:          len(lots),
		Invested:      decimal.Zero,
		CurrentValue:  decimal.Zero,
		ProfitLoss:    decimal.Zero,
		ProfitLossPct: decimal.Zero,
	}
	for i := range lots {
		summary.Invested = summary.Invested.Add(lots[i].Invested())
		summary.CurrentValue = summary.CurrentValue.Add(lots[i].MarketValue())
	}
	summary.ProfitLoss = summary.CurrentValue.Sub(summary.Invested)
	if summary.Invested.IsPositive() {
		summary.ProfitLossPct = summary.ProfitLoss.Div(summary.Invested).Mul(hundred).Round(2)
	}
	return summary, nil
}

func requirePositive(field string, v *decimal.Decimal) error {
	if v != nil && !v.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be greater than zero")
	}
	return nil
}
