package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"finledger/internal/config"
	"finledger/internal/models"
	"finledger/internal/testutil"
)

func newTestUserService(t *testing.T) (UserServicer, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}
	svc := NewUserService(db, cfg)
	return svc, func() { testutil.TeardownTestDB(t, db) }
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:   username,
		Email:      fmt.Sprintf("%s@test.com", username),
		Password:   "password123",
		BudgetGoal: decimal.Zero,
	}
}

func TestUserServiceRegister(t *testing.T) {
	svc, teardown := newTestUserService(t)
	defer teardown()

	t.Run("valid", func(t *testing.T) {
		user, err := svc.Register(registerInput("alice"))
		testutil.AssertNoError(t, err)
		if user.Username != "alice" {
			t.Errorf("expected username alice, got %q", user.Username)
		}
		if user.Role != models.RoleRegular {
			t.Errorf("expected regular role, got %q", user.Role)
		}
		if user.PasswordHash == "password123" {
			t.Error("password stored in plaintext")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := svc.Register(registerInput("alice"))
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("username_normalized", func(t *testing.T) {
		// Casing and surrounding whitespace normalize to an existing name.
		_, err := svc.Register(RegisterInput{
			Username:   "  ALICE  ",
			Email:      "alice2@test.com",
			Password:   "password123",
			BudgetGoal: decimal.Zero,
		})
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("short_username", func(t *testing.T) {
		_, err := svc.Register(registerInput("ab"))
		testutil.AssertAppError(t, err, "INVALID_FIELD")
	})

	t.Run("bad_email", func(t *testing.T) {
		input := registerInput("bob")
		input.Email = "not-an-email"
		_, err := svc.Register(input)
		testutil.AssertAppError(t, err, "INVALID_FIELD")
	})

	t.Run("short_password", func(t *testing.T) {
		input := registerInput("carol")
		input.Password = "short"
		_, err := svc.Register(input)
		testutil.AssertAppError(t, err, "INVALID_FIELD")
	})

	t.Run("negative_budget_goal", func(t *testing.T) {
		input := registerInput("dave")
		input.BudgetGoal = decimal.NewFromInt(-1)
		_, err := svc.Register(input)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	svc, teardown := newTestUserService(t)
	defer teardown()

	_, err := svc.Register(registerInput("erin"))
	testutil.AssertNoError(t, err)

	t.Run("valid_credentials", func(t *testing.T) {
		user, token, err := svc.Authenticate("erin", "password123")
		testutil.AssertNoError(t, err)
		if user.Username != "erin" {
			t.Errorf("expected username erin, got %q", user.Username)
		}

		claims := &SessionClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		testutil.AssertNoError(t, err)
		if !parsed.Valid {
			t.Fatal("expected valid session token")
		}
		if claims.UserID != user.ID {
			t.Errorf("expected token subject %q, got %q", user.ID, claims.UserID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, _, err := svc.Authenticate("erin", "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, _, err := svc.Authenticate("nobody", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUserServiceEnsureDefaultAdmin(t *testing.T) {
	svc, teardown := newTestUserService(t)
	defer teardown()

	testutil.AssertNoError(t, svc.EnsureDefaultAdmin())

	admin, err := svc.GetByUsername("admin")
	testutil.AssertNoError(t, err)
	if admin.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %q", admin.Role)
	}

	// Idempotent: a second call does not create another admin.
	testutil.AssertNoError(t, svc.EnsureDefaultAdmin())
}
