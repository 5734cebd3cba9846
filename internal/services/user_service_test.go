package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/vignesh678/stock-glass-visualizer/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserServiceWithCost(db, bcrypt.MinCost)

		user, err := svc.CreateUser("alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected user ID to be set")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserServiceWithCost(db, bcrypt.MinCost)

		_, err := svc.CreateUser("dup@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("DUP@example.com", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("empty_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserServiceWithCost(db, bcrypt.MinCost)

		_, err := svc.CreateUser("  ", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserServiceWithCost(db, bcrypt.MinCost)

		_, err := svc.CreateUser("test@example.com", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserServiceWithCost(db, bcrypt.MinCost)

		user, err := svc.CreateUser("Alice@EXAMPLE.COM", "password123")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewUserService(db)
		created := testutil.CreateTestUserWithEmail(t, db, "bob@example.com")

		user, err := svc.GetUserByEmail("Bob@Example.com")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetUserByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserService(db)
	created := testutil.CreateTestUser(t, db)

	user, err := svc.GetUserByID(created.ID)
	testutil.AssertNoError(t, err)
	if user.Email != created.Email {
		t.Errorf("expected email %s, got %s", created.Email, user.Email)
	}

	_, err = svc.GetUserByID("0190a5f0-0000-7000-8000-000000000000")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

func TestAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserService(db)
	created := testutil.CreateTestUserWithEmail(t, db, "carol@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{"valid", "carol@example.com", testutil.TestPassword, ""},
		{"wrong_password", "carol@example.com", "wrong", "INVALID_CREDENTIALS"},
		{"unknown_email", "dave@example.com", testutil.TestPassword, "INVALID_CREDENTIALS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.email, tt.password)
			if tt.wantCode != "" {
				testutil.AssertAppError(t, err, tt.wantCode)
				return
			}
			testutil.AssertNoError(t, err)
			if user.ID != created.ID {
				t.Errorf("expected user %s, got %s", created.ID, user.ID)
			}
		})
	}
}
