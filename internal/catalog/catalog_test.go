package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
)

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("expected 10 stocks, got %d", len(all))
	}
	for i, s := range all {
		if s.ID != i+1 {
			t.Errorf("stock %d has id %d", i, s.ID)
		}
	}

	all[0].Symbol = "CHANGED"
	if s, _ := ByID(1); s.Symbol != "RELIANCE" {
		t.Error("All should return a copy")
	}
}

func TestByID(t *testing.T) {
	tests := []struct {
		id     int
		symbol string
		found  bool
	}{
		{1, "RELIANCE", true},
		{9, "BAJFINANCE", true},
		{10, "KOTAKBANK", true},
		{0, "", false},
		{11, "", false},
	}
	for _, tt := range tests {
		s, ok := ByID(tt.id)
		if ok != tt.found {
			t.Errorf("ByID(%d) found = %v, want %v", tt.id, ok, tt.found)
			continue
		}
		if s.Symbol != tt.symbol {
			t.Errorf("ByID(%d).Symbol = %q, want %q", tt.id, s.Symbol, tt.symbol)
		}
	}
}

func TestBySymbol(t *testing.T) {
	s, ok := BySymbol("TCS")
	if !ok || s.ID != 2 {
		t.Errorf("BySymbol(TCS) = %v, %v", s, ok)
	}
	if _, ok := BySymbol("NOPE"); ok {
		t.Error("expected unknown symbol to be missing")
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get(42)
	if !errors.Is(err, apperrors.ErrStockNotFound) {
		t.Errorf("expected ErrStockNotFound, got %v", err)
	}
}

func TestDetail(t *testing.T) {
	d, err := Detail(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.QuarterlyResults) != 5 || d.QuarterlyResults[0].Quarter != "Q1 FY24" {
		t.Fatalf("unexpected quarterly results: %+v", d.QuarterlyResults)
	}
	// 1734.22 * 0.12 = 208.1064
	if got := d.QuarterlyResults[0].Revenue.String(); got != "208.11" {
		t.Errorf("revenue = %s, want 208.11", got)
	}
	// 2567.35 * 0.01 = 25.6735
	if got := d.QuarterlyResults[0].EPS.String(); got != "25.67" {
		t.Errorf("eps = %s, want 25.67", got)
	}

	if d.DividendHistory[0].Year != 2023 || d.DividendHistory[4].Year != 2019 {
		t.Errorf("unexpected dividend years: %d..%d", d.DividendHistory[0].Year, d.DividendHistory[4].Year)
	}
	if got := d.DividendHistory[0].YieldPercentage.String(); got != "3" {
		t.Errorf("yield = %s, want 3", got)
	}

	// 2567.35 * 1.25 = 3209.1875, 2567.35 * 0.85 = 2182.2475
	if got := d.YearlyHighLow[0].High.String(); got != "3209.19" {
		t.Errorf("high = %s, want 3209.19", got)
	}
	if got := d.YearlyHighLow[0].Low.String(); got != "2182.25" {
		t.Errorf("low = %s, want 2182.25", got)
	}

	wantHistory := []Milestone{
		{Year: 1971, Description: "Reliance Industries Ltd was founded"},
		{Year: 1986, Description: "Reliance Industries Ltd went public with IPO"},
		{Year: 1996, Description: "Reliance Industries Ltd expanded operations internationally"},
		{Year: 2006, Description: "Reliance Industries Ltd launched major new product line"},
		{Year: 2016, Description: "Reliance Industries Ltd achieved record market capitalization"},
	}
	for i, want := range wantHistory {
		if d.CompanyHistory[i] != want {
			t.Errorf("milestone %d = %+v, want %+v", i, d.CompanyHistory[i], want)
		}
	}
}

func TestDetail_JSONShape(t *testing.T) {
	d, err := Detail(1)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var shape struct {
		DividendHistory []map[string]any `json:"dividendHistory"`
		CompanyHistory  []map[string]any `json:"companyHistory"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(shape.DividendHistory) != 5 {
		t.Fatalf("dividendHistory has %d entries, want 5", len(shape.DividendHistory))
	}
	if _, ok := shape.DividendHistory[0]["yieldPercentage"]; !ok {
		t.Errorf("dividend entry missing yieldPercentage: %v", shape.DividendHistory[0])
	}
	if got := shape.CompanyHistory[1]["milestone"]; got != "Reliance Industries Ltd went public with IPO" {
		t.Errorf("milestone = %v", got)
	}
}

func TestDetail_NotFound(t *testing.T) {
	if _, err := Detail(0); !errors.Is(err, apperrors.ErrStockNotFound) {
		t.Errorf("expected ErrStockNotFound, got %v", err)
	}
}
