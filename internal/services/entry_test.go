package services

import (
	"testing"
	"time"

	"finledger/internal/models"
	"finledger/internal/testutil"
)

func TestBuildEntry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tx, err := BuildEntry(EntryInput{
			Month:       3,
			Kind:        models.KindExpense,
			Category:    "Food",
			Amount:      testutil.Dec(t, "45.25"),
			Description: "weekly groceries",
		})
		testutil.AssertNoError(t, err)

		if tx.Month() != 3 {
			t.Errorf("expected month 3, got %d", tx.Month())
		}
		if tx.OccurredOn().Year() != time.Now().Year() {
			t.Errorf("expected entry dated in the current year, got %d", tx.OccurredOn().Year())
		}
		if tx.Kind() != models.KindExpense {
			t.Errorf("expected expense kind, got %s", tx.Kind())
		}
		testutil.AssertDecimalEqual(t, testutil.Dec(t, "45.25"), tx.Amount())
		if tx.Description() != "weekly groceries" {
			t.Errorf("unexpected description %q", tx.Description())
		}
	})

	t.Run("month_out_of_range", func(t *testing.T) {
		for _, month := range []int{0, 13, -1} {
			_, err := BuildEntry(EntryInput{
				Month:    month,
				Kind:     models.KindIncome,
				Category: "Salary",
				Amount:   testutil.Dec(t, "100"),
			})
			testutil.AssertAppError(t, err, "INVALID_MONTH")
		}
	})

	t.Run("bad_kind", func(t *testing.T) {
		_, err := BuildEntry(EntryInput{
			Month:    1,
			Kind:     models.TransactionKind("transfer"),
			Category: "Salary",
			Amount:   testutil.Dec(t, "100"),
		})
		testutil.AssertAppError(t, err, "INVALID_FIELD")
	})

	t.Run("empty_category", func(t *testing.T) {
		_, err := BuildEntry(EntryInput{
			Month:  1,
			Kind:   models.KindIncome,
			Amount: testutil.Dec(t, "100"),
		})
		testutil.AssertAppError(t, err, "INVALID_FIELD")
	})

	t.Run("negative_amount", func(t *testing.T) {
		_, err := BuildEntry(EntryInput{
			Month:    1,
			Kind:     models.KindIncome,
			Category: "Salary",
			Amount:   testutil.Dec(t, "-10"),
		})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("unique_ids", func(t *testing.T) {
		input := EntryInput{
			Month:    2,
			Kind:     models.KindIncome,
			Category: "Salary",
			Amount:   testutil.Dec(t, "100"),
		}
		a, err := BuildEntry(input)
		testutil.AssertNoError(t, err)
		b, err := BuildEntry(input)
		testutil.AssertNoError(t, err)
		if a.ID() == b.ID() {
			t.Errorf("expected distinct IDs, got %q twice", a.ID())
		}
	})
}
