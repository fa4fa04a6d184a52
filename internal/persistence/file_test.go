package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"finledger/internal/persistence"
	"finledger/internal/testutil"
)

func TestFileGatewayBudget(t *testing.T) {
	gateway, err := persistence.NewFileGateway(t.TempDir())
	testutil.AssertNoError(t, err)
	ctx := context.Background()

	t.Run("load_missing", func(t *testing.T) {
		_, err := gateway.LoadBudget(ctx, testutil.UniqueUserID())
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})

	t.Run("save_load_round_trip", func(t *testing.T) {
		userID := testutil.UniqueUserID()
		snap := sampleBudgetSnapshot(t)

		testutil.AssertNoError(t, gateway.SaveBudget(ctx, userID, snap))

		got, err := gateway.LoadBudget(ctx, userID)
		testutil.AssertNoError(t, err)
		if got.ID != snap.ID {
			t.Errorf("expected budget ID %q, got %q", snap.ID, got.ID)
		}
		for i := range snap.Months {
			testutil.AssertDecimalEqual(t, snap.Months[i].ExpenseTotal, got.Months[i].ExpenseTotal)
		}
	})

	t.Run("save_overwrites", func(t *testing.T) {
		userID := testutil.UniqueUserID()
		first := sampleBudgetSnapshot(t)
		second := sampleBudgetSnapshot(t)

		testutil.AssertNoError(t, gateway.SaveBudget(ctx, userID, first))
		testutil.AssertNoError(t, gateway.SaveBudget(ctx, userID, second))

		got, err := gateway.LoadBudget(ctx, userID)
		testutil.AssertNoError(t, err)
		if got.ID != second.ID {
			t.Errorf("expected latest snapshot %q, got %q", second.ID, got.ID)
		}
	})

	t.Run("users_isolated", func(t *testing.T) {
		userA := testutil.UniqueUserID()
		userB := testutil.UniqueUserID()

		testutil.AssertNoError(t, gateway.SaveBudget(ctx, userA, sampleBudgetSnapshot(t)))

		_, err := gateway.LoadBudget(ctx, userB)
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})
}

func TestFileGatewayStore(t *testing.T) {
	gateway, err := persistence.NewFileGateway(t.TempDir())
	testutil.AssertNoError(t, err)
	ctx := context.Background()

	t.Run("load_missing", func(t *testing.T) {
		_, err := gateway.LoadStore(ctx)
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})

	t.Run("save_load_round_trip", func(t *testing.T) {
		snap := sampleStoreSnapshot(t)
		testutil.AssertNoError(t, gateway.SaveStore(ctx, snap))

		got, err := gateway.LoadStore(ctx)
		testutil.AssertNoError(t, err)
		if len(got.Users) != len(snap.Users) {
			t.Fatalf("expected %d users, got %d", len(snap.Users), len(got.Users))
		}
	})
}

func TestFileGatewaySanitizesUserID(t *testing.T) {
	dataDir := t.TempDir()
	gateway, err := persistence.NewFileGateway(dataDir)
	testutil.AssertNoError(t, err)
	ctx := context.Background()

	// A hostile user ID must not write outside the data directory.
	testutil.AssertNoError(t, gateway.SaveBudget(ctx, "../escape", sampleBudgetSnapshot(t)))

	if _, err := os.Stat(filepath.Join(filepath.Dir(dataDir), "escape")); !os.IsNotExist(err) {
		t.Fatal("snapshot escaped the data directory")
	}
	got, err := gateway.LoadBudget(ctx, "../escape")
	testutil.AssertNoError(t, err)
	if got == nil {
		t.Fatal("expected snapshot under sanitized name")
	}
}

func TestFileGatewayCorruptFile(t *testing.T) {
	dataDir := t.TempDir()
	gateway, err := persistence.NewFileGateway(dataDir)
	testutil.AssertNoError(t, err)
	ctx := context.Background()
	userID := testutil.UniqueUserID()

	path := filepath.Join(dataDir, "budget_"+userID+".json")
	testutil.AssertNoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	_, err = gateway.LoadBudget(ctx, userID)
	testutil.AssertAppError(t, err, "PERSISTENCE_FAILURE")
}
