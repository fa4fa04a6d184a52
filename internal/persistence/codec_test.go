package persistence_test

import (
	"testing"
	"time"

	"finledger/internal/models"
	"finledger/internal/persistence"
	"finledger/internal/testutil"
)

func sampleBudgetSnapshot(t *testing.T) *models.BudgetSnapshot {
	t.Helper()

	budget := testutil.CreateTestBudget(t, "1000", "300")
	if err := budget.AddExpense(3, "Food", testutil.Dec(t, "120.50")); err != nil {
		t.Fatalf("failed to add expense: %v", err)
	}
	return budget.Snapshot()
}

func sampleStoreSnapshot(t *testing.T) *models.StoreSnapshot {
	t.Helper()

	tx := testutil.BuildTestTransaction(t, models.KindExpense, "Food", "45.25")
	return &models.StoreSnapshot{
		Users: map[string][]models.TransactionSnapshot{
			testutil.UniqueUserID(): {tx.Snapshot()},
		},
	}
}

func TestBudgetCodecRoundTrip(t *testing.T) {
	snap := sampleBudgetSnapshot(t)

	data, err := persistence.EncodeBudget(snap)
	testutil.AssertNoError(t, err)

	got, err := persistence.DecodeBudget(data)
	testutil.AssertNoError(t, err)

	if got.ID != snap.ID || got.Name != snap.Name {
		t.Errorf("identity changed across round trip: got %q/%q, want %q/%q",
			got.ID, got.Name, snap.ID, snap.Name)
	}
	if got.Mode != snap.Mode || got.Exceeded != snap.Exceeded {
		t.Errorf("enforcement state changed across round trip")
	}
	testutil.AssertDecimalEqual(t, snap.GoalLimit, got.GoalLimit)
	for i := range snap.Months {
		testutil.AssertDecimalEqual(t, snap.Months[i].IncomeTotal, got.Months[i].IncomeTotal)
		testutil.AssertDecimalEqual(t, snap.Months[i].ExpenseTotal, got.Months[i].ExpenseTotal)
	}
}

func TestStoreCodecRoundTrip(t *testing.T) {
	snap := sampleStoreSnapshot(t)

	data, err := persistence.EncodeStore(snap)
	testutil.AssertNoError(t, err)

	got, err := persistence.DecodeStore(data)
	testutil.AssertNoError(t, err)

	if len(got.Users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(got.Users))
	}
	for userID, seq := range snap.Users {
		decoded := got.Users[userID]
		if len(decoded) != len(seq) {
			t.Fatalf("expected %d transactions for %s, got %d", len(seq), userID, len(decoded))
		}
		if decoded[0].ID != seq[0].ID || decoded[0].Kind != seq[0].Kind {
			t.Errorf("transaction identity changed across round trip")
		}
		testutil.AssertDecimalEqual(t, seq[0].Amount, decoded[0].Amount)
		if !decoded[0].OccurredOn.Equal(seq[0].OccurredOn) {
			t.Errorf("expected date %v, got %v", seq[0].OccurredOn, decoded[0].OccurredOn)
		}
	}
}

func TestCodecRejectsBadInput(t *testing.T) {
	t.Run("nil_budget_snapshot", func(t *testing.T) {
		_, err := persistence.EncodeBudget(nil)
		testutil.AssertAppError(t, err, "INVALID_FIELD")
	})

	t.Run("nil_store_snapshot", func(t *testing.T) {
		_, err := persistence.EncodeStore(nil)
		testutil.AssertAppError(t, err, "INVALID_FIELD")
	})

	t.Run("malformed_budget_payload", func(t *testing.T) {
		_, err := persistence.DecodeBudget([]byte("{not json"))
		testutil.AssertAppError(t, err, "PERSISTENCE_FAILURE")
	})

	t.Run("malformed_store_payload", func(t *testing.T) {
		_, err := persistence.DecodeStore([]byte("{not json"))
		testutil.AssertAppError(t, err, "PERSISTENCE_FAILURE")
	})
}

func TestDecodeStoreEmptyObject(t *testing.T) {
	got, err := persistence.DecodeStore([]byte(`{}`))
	testutil.AssertNoError(t, err)
	if got.Users == nil {
		t.Fatal("expected users map to be initialized")
	}
	if len(got.Users) != 0 {
		t.Errorf("expected empty users map, got %d entries", len(got.Users))
	}
}

// Guards against time zone drift in the JSON encoding of dates.
func TestStoreCodecPreservesInstant(t *testing.T) {
	occurred := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.FixedZone("UTC+8", 8*3600))
	snap := &models.StoreSnapshot{
		Users: map[string][]models.TransactionSnapshot{
			"u1": {{
				ID:         "5f4c9f7e-0000-7000-8000-000000000001",
				Amount:     testutil.Dec(t, "10"),
				Kind:       models.KindIncome,
				Category:   "Salary",
				OccurredOn: occurred,
			}},
		},
	}

	data, err := persistence.EncodeStore(snap)
	testutil.AssertNoError(t, err)
	got, err := persistence.DecodeStore(data)
	testutil.AssertNoError(t, err)

	if !got.Users["u1"][0].OccurredOn.Equal(occurred) {
		t.Errorf("expected instant %v, got %v", occurred, got.Users["u1"][0].OccurredOn)
	}
}
