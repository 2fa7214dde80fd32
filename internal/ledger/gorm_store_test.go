package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/testutil"
)

func TestInsertAndQueryTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		tx := &models.Transaction{
			Date:        "2023-01-05",
			Amount:      decimal.NewFromInt(-150),
			Category:    "food",
			Description: "groceries",
			Type:        models.TransactionTypeExpense,
		}
		testutil.AssertNoError(t, store.InsertTransaction(ctx, tx))
		if tx.ID == 0 {
			t.Fatal("expected store to assign an id")
		}

		txs, err := store.QueryTransactions(ctx, Filter{From: "2023-01-05", To: "2023-01-05"})
		testutil.AssertNoError(t, err)
		if len(txs) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txs))
		}
		got := txs[0]
		if got.ID != tx.ID || got.Category != "food" || got.Description != "groceries" || got.Type != models.TransactionTypeExpense {
			t.Errorf("unexpected transaction: %+v", got)
		}
		testutil.AssertDecimal(t, got.Amount, "-150")
	})

	t.Run("ids_increase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		a := &models.Transaction{Date: "2023-01-01", Amount: decimal.NewFromInt(1), Category: "x", Type: models.TransactionTypeIncome}
		b := &models.Transaction{Date: "2023-01-01", Amount: decimal.NewFromInt(2), Category: "x", Type: models.TransactionTypeIncome}
		testutil.AssertNoError(t, store.InsertTransaction(ctx, a))
		testutil.AssertNoError(t, store.InsertTransaction(ctx, b))
		if b.ID <= a.ID {
			t.Errorf("expected increasing ids, got %d then %d", a.ID, b.ID)
		}
	})

	t.Run("ordered_by_date_then_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		late := testutil.CreateTestExpense(t, db, "2023-02-01", "5", "food")
		first := testutil.CreateTestExpense(t, db, "2023-01-10", "5", "food")
		second := testutil.CreateTestExpense(t, db, "2023-01-10", "7", "food")

		txs, err := store.QueryTransactions(ctx, Filter{})
		testutil.AssertNoError(t, err)
		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txs))
		}
		want := []uint{first.ID, second.ID, late.ID}
		for i, id := range want {
			if txs[i].ID != id {
				t.Errorf("position %d: expected id %d, got %d", i, id, txs[i].ID)
			}
		}
	})

	t.Run("filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		testutil.CreateTestIncome(t, db, "2023-01-01", "5000", "salary")
		testutil.CreateTestExpense(t, db, "2023-01-31", "40", "food")
		testutil.CreateTestExpense(t, db, "2023-02-01", "60", "food")
		testutil.CreateTestExpense(t, db, "2023-02-03", "25", "transport")

		cases := []struct {
			name   string
			filter Filter
			want   int
		}{
			{"no_filter", Filter{}, 4},
			{"inclusive_to", Filter{From: "2023-01-01", To: "2023-01-31"}, 2},
			{"exclusive_before", Filter{From: "2023-01-01", Before: "2023-02-01"}, 2},
			{"from_only", Filter{From: "2023-02-01"}, 2},
			{"category", Filter{Category: "food"}, 2},
			{"type", Filter{Type: models.TransactionTypeIncome}, 1},
			{"combined", Filter{From: "2023-02-01", Category: "food", Type: models.TransactionTypeExpense}, 1},
		}
		for _, tc := range cases {
			txs, err := store.QueryTransactions(ctx, tc.filter)
			testutil.AssertNoError(t, err)
			if len(txs) != tc.want {
				t.Errorf("%s: expected %d rows, got %d", tc.name, tc.want, len(txs))
			}
		}
	})
}

func TestQueryTransactionsPage(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewGormStore(db)

	for _, d := range []string{"2023-01-01", "2023-01-02", "2023-01-03"} {
		testutil.CreateTestExpense(t, db, d, "1", "food")
	}

	txs, total, err := store.QueryTransactionsPage(ctx, Filter{}, pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 rows on the first page, got %d", len(txs))
	}
	if txs[0].Date != "2023-01-03" {
		t.Errorf("expected newest first, got %s", txs[0].Date)
	}
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewGormStore(db)

	created := testutil.CreateTestIncome(t, db, "2023-01-01", "100", "salary")

	got, err := store.GetTransaction(ctx, created.ID)
	testutil.AssertNoError(t, err)
	if got.Category != "salary" {
		t.Errorf("expected salary, got %s", got.Category)
	}

	_, err = store.GetTransaction(ctx, 9999)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewGormStore(db)

	tx := testutil.CreateTestExpense(t, db, "2023-01-05", "150", "food")

	deleted, err := store.DeleteTransaction(ctx, tx.ID)
	testutil.AssertNoError(t, err)
	if !deleted {
		t.Error("expected first delete to report true")
	}

	deleted, err = store.DeleteTransaction(ctx, tx.ID)
	testutil.AssertNoError(t, err)
	if deleted {
		t.Error("expected second delete to report false")
	}

	txs, err := store.QueryTransactions(ctx, Filter{})
	testutil.AssertNoError(t, err)
	if len(txs) != 0 {
		t.Errorf("expected no rows left, got %d", len(txs))
	}
}

func TestBudgets(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert_replaces_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		_, err := store.UpsertBudget(ctx, "food", decimal.NewFromInt(500))
		testutil.AssertNoError(t, err)
		_, err = store.UpsertBudget(ctx, "food", decimal.NewFromInt(650))
		testutil.AssertNoError(t, err)

		budgets, err := store.QueryBudgets(ctx)
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		testutil.AssertDecimal(t, budgets[0].MonthlyLimit, "650")
	})

	t.Run("ordered_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		for _, c := range []string{"transport", "food", "rent"} {
			_, err := store.UpsertBudget(ctx, c, decimal.NewFromInt(100))
			testutil.AssertNoError(t, err)
		}

		budgets, err := store.QueryBudgets(ctx)
		testutil.AssertNoError(t, err)
		want := []string{"food", "rent", "transport"}
		for i, c := range want {
			if budgets[i].Category != c {
				t.Errorf("position %d: expected %s, got %s", i, c, budgets[i].Category)
			}
		}
	})

	t.Run("get_and_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		testutil.CreateTestBudget(t, db, "food", "500")

		budget, err := store.GetBudget(ctx, "food")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, budget.MonthlyLimit, "500")

		_, err = store.GetBudget(ctx, "travel")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		deleted, err := store.DeleteBudget(ctx, "food")
		testutil.AssertNoError(t, err)
		if !deleted {
			t.Error("expected delete to report true")
		}
		deleted, err = store.DeleteBudget(ctx, "food")
		testutil.AssertNoError(t, err)
		if deleted {
			t.Error("expected repeated delete to report false")
		}
	})
}

func TestSpendingSummary(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewGormStore(db)

	testutil.CreateTestBudget(t, db, "food", "500")
	testutil.CreateTestBudget(t, db, "transport", "100")
	testutil.CreateTestExpense(t, db, "2023-01-05", "100", "food")
	testutil.CreateTestExpense(t, db, "2023-02-05", "50", "food")
	testutil.CreateTestIncome(t, db, "2023-01-05", "20", "food")
	testutil.CreateTestExpense(t, db, "2023-01-07", "999", "leisure")

	summary, err := store.SpendingSummary(ctx)
	testutil.AssertNoError(t, err)
	if len(summary) != 2 {
		t.Fatalf("expected one row per budget, got %d", len(summary))
	}

	food := summary[0]
	if food.Category != "food" {
		t.Fatalf("expected food first, got %s", food.Category)
	}
	testutil.AssertDecimal(t, food.MonthlyLimit, "500")
	testutil.AssertDecimal(t, food.Expense, "-150")
	testutil.AssertDecimal(t, food.Remaining, "350")

	transport := summary[1]
	testutil.AssertDecimal(t, transport.Expense, "0")
	testutil.AssertDecimal(t, transport.Remaining, "100")
}

func TestListCategoriesAndMonths(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewGormStore(db)

	testutil.CreateTestExpense(t, db, "2023-02-05", "10", "food")
	testutil.CreateTestExpense(t, db, "2023-01-05", "10", "food")
	testutil.CreateTestIncome(t, db, "2023-01-01", "10", "salary")
	testutil.CreateTestBudget(t, db, "rent", "800")

	categories, err := store.ListCategories(ctx)
	testutil.AssertNoError(t, err)
	wantCats := []string{"food", "rent", "salary"}
	if len(categories) != len(wantCats) {
		t.Fatalf("expected %v, got %v", wantCats, categories)
	}
	for i := range wantCats {
		if categories[i] != wantCats[i] {
			t.Errorf("expected %v, got %v", wantCats, categories)
			break
		}
	}

	months, err := store.ListMonths(ctx)
	testutil.AssertNoError(t, err)
	if len(months) != 2 || months[0] != "2023-01" || months[1] != "2023-02" {
		t.Errorf("expected [2023-01 2023-02], got %v", months)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewGormStore(db)

	testutil.CreateTestExpense(t, db, "2023-01-05", "10", "food")
	testutil.CreateTestBudget(t, db, "food", "500")

	testutil.AssertNoError(t, store.Reset(ctx))

	txs, err := store.QueryTransactions(ctx, Filter{})
	testutil.AssertNoError(t, err)
	budgets, err := store.QueryBudgets(ctx)
	testutil.AssertNoError(t, err)
	if len(txs) != 0 || len(budgets) != 0 {
		t.Errorf("expected empty ledger, got %d transactions and %d budgets", len(txs), len(budgets))
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("csv_without_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		tx := &models.Transaction{
			Date: "2023-01-05", Amount: decimal.NewFromInt(-150), Category: "food",
			Description: "secret note", Type: models.TransactionTypeExpense,
		}
		testutil.AssertNoError(t, store.InsertTransaction(ctx, tx))

		path := filepath.Join(t.TempDir(), "nested", "out.csv")
		testutil.AssertNoError(t, store.ExportCSV(ctx, path))

		f, err := os.Open(path)
		testutil.AssertNoError(t, err)
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		testutil.AssertNoError(t, err)

		if len(records) != 2 {
			t.Fatalf("expected header and one row, got %d records", len(records))
		}
		if got := records[0]; len(got) != 5 || got[0] != "id" || got[4] != "type" {
			t.Errorf("unexpected header %v", got)
		}
		row := records[1]
		if row[1] != "2023-01-05" || row[2] != "-150" || row[3] != "food" || row[4] != "expense" {
			t.Errorf("unexpected row %v", row)
		}
		for _, field := range row {
			if field == "secret note" {
				t.Error("description must not be exported")
			}
		}
	})

	t.Run("xlsx_round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormStore(db)

		testutil.CreateTestIncome(t, db, "2023-01-01", "5000", "salary")
		testutil.CreateTestExpense(t, db, "2023-01-05", "150", "food")

		path := filepath.Join(t.TempDir(), "out.xlsx")
		testutil.AssertNoError(t, store.ExportXLSX(ctx, path))

		f, err := excelize.OpenFile(path)
		testutil.AssertNoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(sheetName)
		testutil.AssertNoError(t, err)
		if len(rows) != 4 {
			t.Fatalf("expected header, two rows and a total, got %d rows", len(rows))
		}
		if rows[1][3] != "salary" || rows[2][3] != "food" {
			t.Errorf("unexpected rows %v", rows)
		}
		if rows[3][0] != "total" || rows[3][2] != "4850" {
			t.Errorf("unexpected total row %v", rows[3])
		}
	})

	t.Run("unknown_format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteExport(&buf, "pdf", nil); err == nil {
			t.Error("expected an error for an unknown format")
		}
	})
}
