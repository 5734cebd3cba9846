// Package catalog holds the fixed set of tradeable equities and the analytics
// derived from them for the stock detail view.
package catalog

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
)

// Stock is one catalog equity. MarketCap is in thousand crore rupees.
type Stock struct {
	ID        int             `json:"id"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Change    decimal.Decimal `json:"change"`
	Sector    string          `json:"sector"`
	MarketCap decimal.Decimal `json:"marketCap"`
	PE        decimal.Decimal `json:"pe"`
}

func stock(id int, symbol, name, price, change, sector, marketCap, pe string) Stock {
	return Stock{
		ID:        id,
		Symbol:    symbol,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Change:    decimal.RequireFromString(change),
		Sector:    sector,
		MarketCap: decimal.RequireFromString(marketCap),
		PE:        decimal.RequireFromString(pe),
	}
}

var stocks = []Stock{
	stock(1, "RELIANCE", "Reliance Industries Ltd", "2567.35", "15.75", "Oil & Gas", "1734.22", "19.8"),
	stock(2, "TCS", "Tata Consultancy Services Ltd", "3456.80", "-12.45", "IT", "1268.40", "27.3"),
	stock(3, "HDFCBANK", "HDFC Bank Ltd", "1587.25", "8.90", "Financial Services", "887.94", "22.5"),
	stock(4, "INFY", "Infosys Ltd", "1423.65", "-5.30", "IT", "595.75", "25.1"),
	stock(5, "ICICIBANK", "ICICI Bank Ltd", "945.50", "12.75", "Financial Services", "661.20", "20.4"),
	stock(6, "HINDUNILVR", "Hindustan Unilever Ltd", "2345.65", "-8.20", "Consumer Goods", "552.45", "62.5"),
	stock(7, "SBIN", "State Bank of India", "568.75", "4.50", "Financial Services", "508.35", "9.8"),
	stock(8, "BHARTIARTL", "Bharti Airtel Ltd", "784.35", "7.65", "Telecom", "437.80", "33.2"),
	stock(9, "BAJFINANCE", "Bajaj Finance Ltd", "6543.25", "-28.90", "Financial Services", "395.40", "35.7"),
	stock(10, "KOTAKBANK", "Kotak Mahindra Bank Ltd", "1754.45", "5.85", "Financial Services", "347.50", "25.9"),
}

// All returns a copy of the catalog in id order.
func All() []Stock {
	out := make([]Stock, len(stocks))
	copy(out, stocks)
	return out
}

// ByID looks up a stock by its catalog id.
func ByID(id int) (Stock, bool) {
	for _, s := range stocks {
		if s.ID == id {
			return s, true
		}
	}
	return Stock{}, false
}

// BySymbol looks up a stock by its ticker.
func BySymbol(symbol string) (Stock, bool) {
	for _, s := range stocks {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return Stock{}, false
}

// Get is ByID returning ErrStockNotFound for unknown ids.
func Get(id int) (Stock, error) {
	s, ok := ByID(id)
	if !ok {
		return Stock{}, apperrors.ErrStockNotFound
	}
	return s, nil
}
