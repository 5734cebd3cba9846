package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vignesh678/stock-glass-visualizer/internal/catalog"
)

// StockHandler serves the public equity catalog.
type StockHandler struct{}

// NewStockHandler creates a new StockHandler
func NewStockHandler() *StockHandler {
	return &StockHandler{}
}

// ListStocks returns the catalog
// @Summary     List stocks
// @Tags        stocks
// @Produce     json
// @Success     200 {array} catalog.Stock
// @Router      /stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.All())
}

// GetStock returns one stock with its detail analytics
// @Summary     Stock detail
// @Description Quarterly results, dividend history, yearly range and company history for one stock
// @Tags        stocks
// @Produce     json
// @Param       id path int true "Stock ID"
// @Success     200 {object} catalog.StockDetail
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{id} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	id, err := parseStockID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	detail, err := catalog.Detail(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
