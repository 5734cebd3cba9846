package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vignesh678/stock-glass-visualizer/internal/models"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestLot creates a RELIANCE lot of 10 shares bought at 2500.00 with
// no target.
func CreateTestLot(t *testing.T, db *gorm.DB, userID string) *models.PurchasedLot {
	t.Helper()
	return CreateTestLotWithTarget(t, db, userID, nil)
}

// CreateTestLotWithTarget creates a RELIANCE lot with the given target price.
func CreateTestLotWithTarget(t *testing.T, db *gorm.DB, userID string, target *decimal.Decimal) *models.PurchasedLot {
	t.Helper()

	lot := &models.PurchasedLot{
		UserID:        userID,
		StockID:       1,
		Symbol:        "RELIANCE",
		Name:          "Reliance Industries Ltd",
		PurchasePrice: decimal.RequireFromString("2500.00"),
		Quantity:      decimal.NewFromInt(10),
		CurrentPrice:  decimal.RequireFromString("2567.35"),
		TargetPrice:   target,
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("failed to create test lot: %v", err)
	}
	return lot
}

// DecimalPtr parses s and returns a pointer to it. It panics on bad input.
func DecimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
