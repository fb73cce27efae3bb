package models

// DashboardSummary aggregates the whole inventory.
type DashboardSummary struct {
	TotalProducts     int `json:"total_products"`
	TotalCategories   int `json:"total_categories"`
	LowStockCount     int `json:"low_stock_count"`
	OutOfStockCount   int `json:"out_of_stock_count"`
	TotalTransactions int `json:"total_transactions"`
	UpdatedToday      int `json:"updated_today"`
}

type CategorySummary struct {
	CategoryID    string `json:"category_id"`
	Name          string `json:"name"`
	ProductCount  int    `json:"product_count"`
	LowStockCount int    `json:"low_stock_count"`
	TotalQuantity int    `json:"total_quantity"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	StockTransaction
	ProductName string `json:"product_name"`
}

type StockStatusReport struct {
	OutOfStock []Product `json:"out_of_stock"`
	LowStock   []Product `json:"low_stock"`
	GoodCount  int       `json:"good_count"`
}

// Health is the unenveloped health-check body.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
