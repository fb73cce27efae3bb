package apiv1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/repo"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

// attachCategories embeds the category of each product.
func attachCategories(ctx context.Context, products []models.Product) error {
	categories, err := categoryRepo.GetAll(ctx, true)
	if err != nil {
		return err
	}
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for i := range products {
		if c, ok := byID[products[i].CategoryID]; ok {
			products[i].Category = &c
		}
	}
	return nil
}

func withCategory(ctx context.Context, p models.Product) models.Product {
	c, err := categoryRepo.GetByID(ctx, p.CategoryID)
	if err == nil {
		p.Category = &c
	}
	return p
}

// categoryExists reports a 400 field error when id does not name a category.
func categoryExists(ctx context.Context, id string) ([]models.FieldError, error) {
	_, err := categoryRepo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrCategoryNotFound) {
		return []models.FieldError{{Field: "category_id", Description: "Category does not exist"}}, nil
	}
	return nil, err
}

func alertIfLow(p models.Product) {
	switch stock.Classify(p.CurrentQuantity, p.MinimumStock) {
	case stock.StatusOut:
		slog.Warn("⚠️ ALERT: product is out of stock", "product_id", p.ID, "name", p.Name)
	case stock.StatusLow:
		slog.Warn("⚠️ ALERT: product is at or below minimum stock", "product_id", p.ID, "name", p.Name,
			"quantity", p.CurrentQuantity, "minimum_stock", p.MinimumStock)
	}
}

// logTransaction records a movement; a failure is logged but does not fail the request.
func logTransaction(ctx context.Context, tx models.StockTransaction) models.StockTransaction {
	logged, err := transactionRepo.Log(ctx, tx)
	if err != nil {
		slog.Error("could not log stock transaction", "product_id", tx.ProductID, "error", err)
		return tx
	}
	return logged
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.CreateProductRequest true "Product to add"
// @Success 201 {object} Response{data=models.Product}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}

	product := models.Product{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		NameNL:          req.NameNL,
		NameFR:          req.NameFR,
		NameEN:          req.NameEN,
		Description:     req.Description,
		SKU:             req.SKU,
		Barcode:         req.Barcode,
		Unit:            req.Unit,
		CurrentQuantity: req.CurrentQuantity,
		MinimumStock:    req.MinimumStock,
		MaximumStock:    req.MaximumStock,
		ReorderPoint:    req.ReorderPoint,
		CostPrice:       req.CostPrice,
		StorageLocation: req.StorageLocation,
		ExpiryTracking:  req.ExpiryTracking,
		IsActive:        true,
	}
	if product.Unit == "" {
		product.Unit = string(stock.DefaultUnit)
	}

	if errs := validateProduct(product); len(errs) > 0 {
		failValidation(w, errs)
		return
	}
	errs, err := categoryExists(r.Context(), product.CategoryID)
	if err != nil {
		slog.Error("could not look up category", "category_id", product.CategoryID, "error", err)
		fail(w, http.StatusInternalServerError, "could not create product")
		return
	}
	if len(errs) > 0 {
		failValidation(w, errs)
		return
	}

	created, err := productRepo.Create(r.Context(), product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			fail(w, http.StatusConflict, "could not create product: sku or barcode duplicated")
			return
		}
		slog.Error("could not create product", "error", err)
		fail(w, http.StatusInternalServerError, "could not create product")
		return
	}

	alertIfLow(created)
	respond(w, http.StatusCreated, withCategory(r.Context(), created), "Product created")
}

// GetProductsHandler godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category_id query string false "Category ID"
// @Param is_active query bool false "Active flag"
// @Param low_stock_only query bool false "Only products at or below minimum stock"
// @Param out_of_stock_only query bool false "Only products with zero stock"
// @Param search query string false "Case-insensitive name search"
// @Param sort_by query string false "name, current_quantity, minimum_stock, created_at or updated_at"
// @Param sort_order query string false "asc or desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} Response{data=[]models.Product}
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.ProductFilter{
		CategoryID: q.Get("category_id"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
	}

	var err error
	if filter.IsActive, err = queryBool(r, "is_active"); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	for name, dst := range map[string]*bool{
		"low_stock_only":    &filter.LowStockOnly,
		"out_of_stock_only": &filter.OutOfStockOnly,
	} {
		v, err := queryBool(r, name)
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}
		*dst = v != nil && *v
	}

	if !repo.ValidSort(filter.SortBy) {
		fail(w, http.StatusBadRequest, "invalid sort_by")
		return
	}
	if filter.SortOrder != "" && filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		fail(w, http.StatusBadRequest, "sort_order must be asc or desc")
		return
	}

	if filter.Limit, filter.Offset, err = pagination(r); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	products, total, err := productRepo.Filter(r.Context(), filter)
	if err != nil {
		slog.Error("could not fetch products", "error", err)
		fail(w, http.StatusInternalServerError, "could not fetch products")
		return
	}
	if err := attachCategories(r.Context(), products); err != nil {
		slog.Warn("could not attach categories", "error", err)
	}

	w.Header().Set(totalCountHeader, strconv.Itoa(total))
	respond(w, http.StatusOK, products, "")
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} Response{data=models.Product}
// @Failure 404 {object} Response
// @Failure 500 {object} Response
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetByID(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			fail(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("could not fetch product", "id", idParam(r), "error", err)
		fail(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	respond(w, http.StatusOK, withCategory(r.Context(), product), "")
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Partial update; omitted fields are left untouched
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} Response{data=models.Product}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}

	ctx := r.Context()
	existing, err := productRepo.GetByID(ctx, idParam(r))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			fail(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("could not fetch product", "id", idParam(r), "error", err)
		fail(w, http.StatusInternalServerError, "could not update product")
		return
	}

	product := existing
	req.Apply(&product)
	if errs := validateProduct(product); len(errs) > 0 {
		failValidation(w, errs)
		return
	}
	if product.CategoryID != existing.CategoryID {
		errs, err := categoryExists(ctx, product.CategoryID)
		if err != nil {
			slog.Error("could not look up category", "category_id", product.CategoryID, "error", err)
			fail(w, http.StatusInternalServerError, "could not update product")
			return
		}
		if len(errs) > 0 {
			failValidation(w, errs)
			return
		}
	}

	updated, err := productRepo.Update(ctx, product)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			fail(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			fail(w, http.StatusConflict, "could not update product: sku or barcode duplicated")
		default:
			slog.Error("could not update product", "id", product.ID, "error", err)
			fail(w, http.StatusInternalServerError, "could not update product")
		}
		return
	}

	if change := updated.CurrentQuantity - existing.CurrentQuantity; change != 0 {
		logTransaction(ctx, models.StockTransaction{
			ProductID:       updated.ID,
			TransactionType: models.TransactionAdjustment,
			QuantityChange:  change,
			Notes:           "product update",
			PerformedBy:     performer(r, ""),
		})
		alertIfLow(updated)
	}

	respond(w, http.StatusOK, withCategory(ctx, updated), "Product updated")
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := productRepo.Delete(r.Context(), idParam(r)); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			fail(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("could not delete product", "id", idParam(r), "error", err)
		fail(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	respond(w, http.StatusOK, nil, "Product deleted")
}

// SetQuantityHandler godoc
// @Summary Set the absolute quantity of a product
// @Description Logs an ADJUSTMENT transaction with the difference
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body models.QuantityUpdate true "New quantity"
// @Success 200 {object} Response{data=models.Product}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /products/{id}/quantity [post]
func SetQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req models.QuantityUpdate
	if err := readJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Quantity < 0 {
		failValidation(w, []models.FieldError{{Field: "quantity", Description: "Quantity cannot be negative"}})
		return
	}

	ctx := r.Context()
	before, err := productRepo.GetByID(ctx, idParam(r))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			fail(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("could not fetch product", "id", idParam(r), "error", err)
		fail(w, http.StatusInternalServerError, "could not update quantity")
		return
	}

	updated, err := productRepo.SetQuantity(ctx, before.ID, req.Quantity)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			fail(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("could not set quantity", "id", before.ID, "error", err)
		fail(w, http.StatusInternalServerError, "could not update quantity")
		return
	}

	if change := updated.CurrentQuantity - before.CurrentQuantity; change != 0 {
		logTransaction(ctx, models.StockTransaction{
			ProductID:       updated.ID,
			TransactionType: models.TransactionAdjustment,
			QuantityChange:  change,
			Notes:           "quantity set to " + strconv.Itoa(updated.CurrentQuantity),
			PerformedBy:     performer(r, ""),
		})
	}
	alertIfLow(updated)

	respond(w, http.StatusOK, withCategory(ctx, updated), "Quantity updated")
}

// AdjustQuantityHandler godoc
// @Summary Adjust product quantity
// @Description Applies a signed delta and logs an ADJUSTMENT transaction
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param adjustment body models.QuantityAdjustment true "Quantity delta"
// @Success 200 {object} Response{data=models.AdjustmentResult}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response "Resulting quantity would be negative"
// @Router /products/{id}/adjust [post]
func AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req models.QuantityAdjustment
	if err := readJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.QuantityChange == 0 {
		failValidation(w, []models.FieldError{{Field: "quantity_change", Description: "Quantity change cannot be zero"}})
		return
	}

	ctx := r.Context()
	updated, err := productRepo.AdjustQuantity(ctx, idParam(r), req.QuantityChange)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			fail(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repo.ErrInvalidQuantityChange):
			fail(w, http.StatusConflict, "resulting quantity cannot be negative")
		default:
			slog.Error("could not adjust quantity", "id", idParam(r), "error", err)
			fail(w, http.StatusInternalServerError, "could not adjust quantity")
		}
		return
	}

	tx := logTransaction(ctx, models.StockTransaction{
		ProductID:       updated.ID,
		TransactionType: models.TransactionAdjustment,
		QuantityChange:  req.QuantityChange,
		Notes:           req.Reason,
		PerformedBy:     performer(r, req.PerformedBy),
	})
	alertIfLow(updated)

	respond(w, http.StatusOK, models.AdjustmentResult{Product: withCategory(ctx, updated), Transaction: tx}, "Quantity adjusted")
}

// GetProductTransactionsHandler godoc
// @Summary List stock transactions of a product
// @Tags transactions
// @Produce json
// @Param id path string true "Product ID"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} Response{data=[]models.StockTransaction}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /products/{id}/transactions [get]
func GetProductTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := idParam(r)
	if _, err := productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			fail(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("could not fetch product", "id", id, "error", err)
		fail(w, http.StatusInternalServerError, "could not retrieve transactions")
		return
	}

	var filter repo.TransactionFilter
	var err error
	if filter.Since, err = queryTime(r, "since"); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.Until, err = queryTime(r, "until"); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.Limit, filter.Offset, err = pagination(r); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, total, err := transactionRepo.GetByProductID(ctx, id, filter)
	if err != nil {
		slog.Error("could not retrieve transactions", "product_id", id, "error", err)
		fail(w, http.StatusInternalServerError, "could not retrieve transactions")
		return
	}

	w.Header().Set(totalCountHeader, strconv.Itoa(total))
	respond(w, http.StatusOK, transactions, "")
}
