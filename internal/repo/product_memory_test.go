package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

func seedProducts(t *testing.T, r *InMemoryProductRepository, products ...models.Product) []models.Product {
	t.Helper()
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		created, err := r.Create(context.Background(), p)
		if err != nil {
			t.Fatalf("create %s: %v", p.Name, err)
		}
		out = append(out, created)
	}
	return out
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInMemoryProductFilter(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()
	seedProducts(t, r,
		models.Product{Name: "tomatoes", CategoryID: "veg", CurrentQuantity: 5, MinimumStock: 10, IsActive: true},
		models.Product{Name: "Basil", CategoryID: "herbs", CurrentQuantity: 12, MinimumStock: 8, IsActive: true},
		models.Product{Name: "Parmesan", CategoryID: "dairy", CurrentQuantity: 0, MinimumStock: 3, IsActive: true},
		models.Product{Name: "Zucchini", CategoryID: "veg", CurrentQuantity: 9, MinimumStock: 2, IsActive: false},
	)
	active := true
	two, one := 2, 1

	tests := []struct {
		name      string
		filter    ProductFilter
		want      []string
		wantTotal int
	}{
		{"default sorts by name", ProductFilter{}, []string{"Basil", "Parmesan", "tomatoes", "Zucchini"}, 4},
		{"category", ProductFilter{CategoryID: "veg"}, []string{"tomatoes", "Zucchini"}, 2},
		{"active only", ProductFilter{IsActive: &active}, []string{"Basil", "Parmesan", "tomatoes"}, 3},
		{"low stock", ProductFilter{LowStockOnly: true}, []string{"Parmesan", "tomatoes"}, 2},
		{"out of stock", ProductFilter{OutOfStockOnly: true}, []string{"Parmesan"}, 1},
		{"search", ProductFilter{Search: "MAT"}, []string{"tomatoes"}, 1},
		{"quantity desc", ProductFilter{SortBy: "current_quantity", SortOrder: "desc"}, []string{"Basil", "Zucchini", "tomatoes", "Parmesan"}, 4},
		{"paginated", ProductFilter{Offset: &one, Limit: &two}, []string{"Parmesan", "tomatoes"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := r.Filter(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if !equalStrings(names(got), tt.want) || total != tt.wantTotal {
				t.Errorf("got %v (total %d), want %v (total %d)", names(got), total, tt.want, tt.wantTotal)
			}
		})
	}
}

func TestInMemoryAdjustQuantity(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()
	p := seedProducts(t, r, models.Product{Name: "Flour", CurrentQuantity: 10})[0]

	got, err := r.AdjustQuantity(ctx, p.ID, 5)
	if err != nil || got.CurrentQuantity != 15 {
		t.Fatalf("adjust +5: %v %d", err, got.CurrentQuantity)
	}
	if _, err := r.AdjustQuantity(ctx, p.ID, -16); !errors.Is(err, ErrInvalidQuantityChange) {
		t.Fatalf("expected ErrInvalidQuantityChange, got %v", err)
	}
	if _, err := r.AdjustQuantity(ctx, "missing", 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := r.SetQuantity(ctx, p.ID, -1); !errors.Is(err, ErrInvalidQuantityChange) {
		t.Fatalf("expected ErrInvalidQuantityChange, got %v", err)
	}
	got, _ = r.SetQuantity(ctx, p.ID, 0)
	if got.CurrentQuantity != 0 {
		t.Fatalf("set 0: got %d", got.CurrentQuantity)
	}
}

func TestInMemoryProductCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()
	p := seedProducts(t, r, models.Product{Name: "X", CurrentQuantity: 5, MinimumStock: 2})[0]
	if p.ID == "" || p.CreatedAt == "" {
		t.Fatalf("create did not assign id and timestamps: %+v", p)
	}

	p.Name = "Y"
	if _, err := r.Update(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, _ := r.GetByID(ctx, p.ID)
	if got.Name != "Y" {
		t.Fatalf("update not stored: %+v", got)
	}

	if err := r.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetByID(ctx, p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := r.Delete(ctx, p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestInMemoryCategoryUniqueName(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryCategoryRepository()
	if _, err := r.Create(ctx, models.Category{Name: "dairy", IsActive: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create(ctx, models.Category{Name: "Dairy"}); !errors.Is(err, ErrDuplicatedValueUnique) {
		t.Fatalf("expected ErrDuplicatedValueUnique, got %v", err)
	}
	_, _ = r.Create(ctx, models.Category{Name: "archive", IsActive: false, SortOrder: -1})

	active, _ := r.GetAll(ctx, false)
	all, _ := r.GetAll(ctx, true)
	if len(active) != 1 || len(all) != 2 || all[0].Name != "archive" {
		t.Fatalf("active=%v all=%v", active, all)
	}
}
