package stock

// MockItems is the sample inventory shown when the backend cannot be reached
// and no snapshot is cached.
func MockItems() []Item {
	return []Item{
		{ID: "1", Name: "Tomaten / Tomates / Tomatoes", Category: "vegetables", Quantity: 5, MinStock: 10, Unit: "kg", LastUpdated: "2026-02-17"},
		{ID: "2", Name: "Mozzarella", Category: "dairy", Quantity: 8, MinStock: 5, Unit: "pcs", LastUpdated: "2026-02-17"},
		{ID: "3", Name: "Pasta", Category: "drygoods", Quantity: 25, MinStock: 15, Unit: "kg", LastUpdated: "2026-02-16"},
		{ID: "4", Name: "Olijfolie / Huile d'olive / Olive Oil", Category: "oils", Quantity: 2, MinStock: 5, Unit: "L", LastUpdated: "2026-02-17"},
		{ID: "5", Name: "Basilicum / Basilic / Basil", Category: "herbs", Quantity: 12, MinStock: 8, Unit: "bunch", LastUpdated: "2026-02-17"},
		{ID: "6", Name: "Bloem / Farine / Flour", Category: "drygoods", Quantity: 18, MinStock: 20, Unit: "kg", LastUpdated: "2026-02-16"},
		{ID: "7", Name: "Parmesan", Category: "dairy", Quantity: 0, MinStock: 3, Unit: "pcs", LastUpdated: "2026-02-17"},
		{ID: "8", Name: "Oregano", Category: "spices", Quantity: 1, MinStock: 5, Unit: "pack", LastUpdated: "2026-02-16"},
	}
}
