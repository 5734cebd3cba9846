package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vignesh678/stock-glass-visualizer/internal/pagination"
	"github.com/vignesh678/stock-glass-visualizer/internal/services"
)

const lotResource = "purchased_lot"

// PortfolioHandler handles the caller's purchased lots.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	auditService     services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer, auditService services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, auditService: auditService}
}

// AddLotRequest represents a purchase to record.
type AddLotRequest struct {
	StockID       int              `json:"stockId" binding:"required,gt=0"`
	Symbol        string           `json:"symbol" binding:"required,ticker"`
	Name          string           `json:"name" binding:"required,max=255"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" binding:"required,positive_decimal" swaggertype:"number"`
	Quantity      *decimal.Decimal `json:"quantity" binding:"required,positive_decimal" swaggertype:"number"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice" binding:"required,positive_decimal" swaggertype:"number"`
	TargetPrice   *decimal.Decimal `json:"targetPrice" binding:"omitempty,positive_decimal" swaggertype:"number"`
	PurchaseDate  *time.Time       `json:"purchaseDate"`
}

// NullableDecimal distinguishes an absent JSON field (Set false) from an
// explicit null (Set true, Value nil).
type NullableDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableDecimal) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	n.Value = &d
	return nil
}

// UpdateLotRequest is a partial update. Omitted fields are left unchanged;
// "targetPrice": null clears the target.
type UpdateLotRequest struct {
	TargetPrice   NullableDecimal  `json:"targetPrice" swaggertype:"number"`
	Quantity      *decimal.Decimal `json:"quantity" binding:"omitempty,positive_decimal" swaggertype:"number"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" binding:"omitempty,positive_decimal" swaggertype:"number"`
}

// ListLots returns the caller's lots
// @Summary     List portfolio
// @Description Get every lot the authenticated user holds
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.PurchasedLot
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *PortfolioHandler) ListLots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lots, err := h.portfolioService.ListLots(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

// AddLot records a purchase
// @Summary     Add to portfolio
// @Description Record a purchased lot for the authenticated user
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddLotRequest true "Purchase details"
// @Success     201 {object} models.PurchasedLot
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio [post]
func (h *PortfolioHandler) AddLot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	lot, err := h.portfolioService.AddLot(userID, services.AddLotInput{
		StockID:       req.StockID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		PurchasePrice: *req.PurchasePrice,
		Quantity:      *req.Quantity,
		CurrentPrice:  *req.CurrentPrice,
		TargetPrice:   req.TargetPrice,
		PurchaseDate:  req.PurchaseDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionCreate, lotResource, lot.ID, c.ClientIP(),
		map[string]interface{}{"symbol": lot.Symbol, "quantity": lot.Quantity.String()})

	c.JSON(http.StatusCreated, lot)
}

// UpdateLot patches one of the caller's lots
// @Summary     Update a lot
// @Description Change target price, quantity or purchase price. Omitted fields are unchanged.
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Lot ID"
// @Param       request body UpdateLotRequest true "Fields to change"
// @Success     200 {object} models.PurchasedLot
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Lot not found"
// @Router      /portfolio/{id} [put]
func (h *PortfolioHandler) UpdateLot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lotID, err := parseLotID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	lot, err := h.portfolioService.UpdateLot(userID, lotID, services.LotPatch{
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		SetTarget:     req.TargetPrice.Set,
		TargetPrice:   req.TargetPrice.Value,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionUpdate, lotResource, lot.ID, c.ClientIP(), patchChanges(req))

	c.JSON(http.StatusOK, lot)
}

// RemoveLot deletes one of the caller's lots
// @Summary     Remove a lot
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Lot ID"
// @Success     200 {object} MessageResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Lot not found"
// @Router      /portfolio/{id} [delete]
func (h *PortfolioHandler) RemoveLot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lotID, err := parseLotID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.portfolioService.RemoveLot(userID, lotID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionDelete, lotResource, lotID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Stock removed from portfolio"})
}

// Summary totals the caller's portfolio
// @Summary     Portfolio summary
// @Description Invested amount, current value and profit or loss across every lot
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioSummary
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/summary [get]
func (h *PortfolioHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolioService.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Activity lists the caller's recorded portfolio changes
// @Summary     Portfolio activity
// @Description Paginated audit trail of lot changes and notification requests, newest first
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page number" minimum(1)
// @Param       pageSize query int false "Items per page" minimum(1) maximum(100)
// @Success     200 {object} pagination.Page[models.AuditLog]
// @Failure     400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/activity [get]
func (h *PortfolioHandler) Activity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.auditService.ListForUser(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func patchChanges(req UpdateLotRequest) map[string]interface{} {
	changes := map[string]interface{}{}
	if req.Quantity != nil {
		changes["quantity"] = req.Quantity.String()
	}
	if req.PurchasePrice != nil {
		changes["purchasePrice"] = req.PurchasePrice.String()
	}
	if req.TargetPrice.Set {
		if req.TargetPrice.Value == nil {
			changes["targetPrice"] = nil
		} else {
			changes["targetPrice"] = req.TargetPrice.Value.String()
		}
	}
	return changes
}
