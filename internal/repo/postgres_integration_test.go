package repo_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/julienmatondotezolo/ada-stock/internal/db"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/repo"
)

// openTestDB connects to ADASTOCK_TEST_DATABASE_URL; the tests are skipped
// without it.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbURL := os.Getenv("ADASTOCK_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("ADASTOCK_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		t.Fatalf("❌ Could not connect to database: %v", err)
	}
	if err := db.Migrate(ctx, database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestPostgresProductLifecycle(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	categories := repo.NewPostgresCategoryRepository(database)
	products := repo.NewPostgresProductRepository(database)
	transactions := repo.NewPostgresTransactionRepository(database)

	suffix := uuid.NewString()[:8]
	cat, err := categories.Create(ctx, models.Category{Name: "it-" + suffix, IsActive: true})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() { _ = categories.Delete(ctx, cat.ID) })

	if _, err := categories.Create(ctx, models.Category{Name: cat.Name, IsActive: true}); !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		t.Errorf("expected ErrDuplicatedValueUnique, got %v", err)
	}

	p, err := products.Create(ctx, models.Product{
		CategoryID:      cat.ID,
		Name:            "Tomatoes " + suffix,
		Unit:            "kg",
		CurrentQuantity: 10,
		MinimumStock:    5,
		IsActive:        true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	got, err := products.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.CurrentQuantity != 10 || got.MinimumStock != 5 || got.Unit != "kg" {
		t.Errorf("unexpected product %+v", got)
	}

	if _, err := products.AdjustQuantity(ctx, p.ID, -11); !errors.Is(err, repo.ErrInvalidQuantityChange) {
		t.Errorf("expected ErrInvalidQuantityChange, got %v", err)
	}
	adjusted, err := products.AdjustQuantity(ctx, p.ID, 5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if adjusted.CurrentQuantity != 15 {
		t.Errorf("expected 15, got %d", adjusted.CurrentQuantity)
	}

	set, err := products.SetQuantity(ctx, p.ID, 3)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if set.CurrentQuantity != 3 {
		t.Errorf("expected 3, got %d", set.CurrentQuantity)
	}

	if _, err := transactions.Log(ctx, models.StockTransaction{
		ProductID:       p.ID,
		TransactionType: models.TransactionIn,
		QuantityChange:  5,
		PerformedBy:     "test",
	}); err != nil {
		t.Fatalf("log transaction: %v", err)
	}
	txs, total, err := transactions.GetByProductID(ctx, p.ID, repo.TransactionFilter{})
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if total != 1 || len(txs) != 1 || txs[0].QuantityChange != 5 {
		t.Errorf("unexpected transactions %d %+v", total, txs)
	}

	if n, err := products.CountByCategory(ctx, cat.ID); err != nil || n != 1 {
		t.Errorf("expected 1 product in category, got %d (%v)", n, err)
	}
	if err := categories.Delete(ctx, cat.ID); !errors.Is(err, repo.ErrCategoryInUse) {
		t.Errorf("expected ErrCategoryInUse, got %v", err)
	}

	if err := products.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := products.GetByID(ctx, p.ID); !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestPostgresSeedCategoriesIsIdempotent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	categories := repo.NewPostgresCategoryRepository(database)

	before, err := categories.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(before) == 0 {
		t.Skip("empty database, seeding is covered by the memory tests")
	}
	n, err := repo.SeedCategories(ctx, categories, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no categories seeded, got %d", n)
	}
}
