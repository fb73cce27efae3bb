package repo

import (
	"context"
	"testing"
	"time"

	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

func TestInMemoryDashboard(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)

	products := NewInMemoryProductRepository()
	products.now = func() time.Time { return day }
	categories := NewInMemoryCategoryRepository()
	transactions := NewInMemoryTransactionRepository()
	dash := NewInMemoryDashboardRepository()
	dash.SetRepositories(products, categories, transactions)

	veg, _ := categories.Create(ctx, models.Category{Name: "vegetables", IsActive: true})
	dairy, _ := categories.Create(ctx, models.Category{Name: "dairy", IsActive: true, SortOrder: 1})
	tomatoes, _ := products.Create(ctx, models.Product{Name: "Tomatoes", CategoryID: veg.ID, CurrentQuantity: 5, MinimumStock: 10})
	_, _ = products.Create(ctx, models.Product{Name: "Mozzarella", CategoryID: dairy.ID, CurrentQuantity: 8, MinimumStock: 5})
	_, _ = products.Create(ctx, models.Product{Name: "Parmesan", CategoryID: dairy.ID, CurrentQuantity: 0, MinimumStock: 3})
	_, _ = transactions.Log(ctx, models.StockTransaction{ProductID: tomatoes.ID, TransactionType: models.TransactionIn, QuantityChange: 5})

	s, err := dash.Summary(ctx, "2026-02-17")
	if err != nil {
		t.Fatal(err)
	}
	want := models.DashboardSummary{TotalProducts: 3, TotalCategories: 2, LowStockCount: 2, OutOfStockCount: 1, TotalTransactions: 1, UpdatedToday: 3}
	if s != want {
		t.Errorf("summary = %+v, want %+v", s, want)
	}

	cats, _ := dash.Categories(ctx)
	if len(cats) != 2 || cats[1].Name != "dairy" || cats[1].ProductCount != 2 || cats[1].LowStockCount != 1 || cats[1].TotalQuantity != 8 {
		t.Errorf("categories = %+v", cats)
	}

	activity, _ := dash.RecentActivity(ctx, 10)
	if len(activity) != 1 || activity[0].ProductName != "Tomatoes" {
		t.Errorf("activity = %+v", activity)
	}

	status, _ := dash.StockStatus(ctx)
	if len(status.OutOfStock) != 1 || len(status.LowStock) != 1 || status.GoodCount != 1 {
		t.Errorf("status = %+v", status)
	}
}

func TestInMemoryTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryTransactionRepository()
	for i := 1; i <= 3; i++ {
		_, _ = r.Log(ctx, models.StockTransaction{ProductID: "p1", TransactionType: models.TransactionAdjustment, QuantityChange: i})
	}
	_, _ = r.Log(ctx, models.StockTransaction{ProductID: "p2", TransactionType: models.TransactionOut, QuantityChange: -1})

	recent, _ := r.Recent(ctx, 2)
	if len(recent) != 2 || recent[0].ProductID != "p2" || recent[1].QuantityChange != 3 {
		t.Fatalf("recent = %+v", recent)
	}

	limit := 2
	byProduct, total, _ := r.GetByProductID(ctx, "p1", TransactionFilter{Limit: &limit})
	if total != 3 || len(byProduct) != 2 || byProduct[0].QuantityChange != 3 {
		t.Fatalf("byProduct = %+v total=%d", byProduct, total)
	}
}

func TestSeedCategoriesOnlyOnce(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryCategoryRepository()
	catalog := i18n.MustLoad()

	n, err := SeedCategories(ctx, r, catalog)
	if err != nil || n != len(stock.CategoryKeys) {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	all, _ := r.GetAll(ctx, false)
	if all[0].Name != "vegetables" || all[0].NameNL != "Groenten" || all[0].NameFR != "Légumes" {
		t.Fatalf("first category = %+v", all[0])
	}

	n, _ = SeedCategories(ctx, r, catalog)
	if n != 0 {
		t.Fatalf("second seed created %d categories", n)
	}
}
