package apiv1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/repo"
)

// GetCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param include_inactive query bool false "Include inactive categories"
// @Success 200 {object} Response{data=[]models.Category}
// @Failure 400 {object} Response
// @Router /categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	includeInactive, err := queryBool(r, "include_inactive")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := categoryRepo.GetAll(r.Context(), includeInactive != nil && *includeInactive)
	if err != nil {
		slog.Error("could not fetch categories", "error", err)
		fail(w, http.StatusInternalServerError, "could not fetch categories")
		return
	}
	respond(w, http.StatusOK, categories, "")
}

// GetCategoryByIDHandler godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} Response{data=models.Category}
// @Failure 404 {object} Response
// @Router /categories/{id} [get]
func GetCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	category, err := categoryRepo.GetByID(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			fail(w, http.StatusNotFound, "category not found")
			return
		}
		slog.Error("could not fetch category", "id", idParam(r), "error", err)
		fail(w, http.StatusInternalServerError, "could not fetch category")
		return
	}
	respond(w, http.StatusOK, category, "")
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} Response{data=models.Category}
// @Failure 400 {object} Response
// @Failure 409 {object} Response "Name already used"
// @Router /categories [post]
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}

	category := models.Category{
		Name:        req.Name,
		NameNL:      req.NameNL,
		NameFR:      req.NameFR,
		NameEN:      req.NameEN,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if errs := validateCategory(category); len(errs) > 0 {
		failValidation(w, errs)
		return
	}

	created, err := categoryRepo.Create(r.Context(), category)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			fail(w, http.StatusConflict, "could not create category: name duplicated")
			return
		}
		slog.Error("could not create category", "error", err)
		fail(w, http.StatusInternalServerError, "could not create category")
		return
	}
	respond(w, http.StatusCreated, created, "Category created")
}

// UpdateCategoryHandler godoc
// @Summary Update a category
// @Description Partial update; omitted fields are left untouched
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param category body models.CategoryUpdate true "Fields to change"
// @Success 200 {object} Response{data=models.Category}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response "Name already used"
// @Router /categories/{id} [put]
func UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryUpdate
	if err := readJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}

	category, err := categoryRepo.GetByID(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			fail(w, http.StatusNotFound, "category not found")
			return
		}
		slog.Error("could not fetch category", "id", idParam(r), "error", err)
		fail(w, http.StatusInternalServerError, "could not update category")
		return
	}

	req.Apply(&category)
	if errs := validateCategory(category); len(errs) > 0 {
		failValidation(w, errs)
		return
	}

	updated, err := categoryRepo.Update(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrCategoryNotFound):
			fail(w, http.StatusNotFound, "category not found")
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			fail(w, http.StatusConflict, "could not update category: name duplicated")
		default:
			slog.Error("could not update category", "id", category.ID, "error", err)
			fail(w, http.StatusInternalServerError, "could not update category")
		}
		return
	}
	respond(w, http.StatusOK, updated, "Category updated")
}

// DeleteCategoryHandler godoc
// @Summary Delete a category
// @Description Fails with 409 while products still reference the category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response "Category still has products"
// @Router /categories/{id} [delete]
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := idParam(r)

	n, err := productRepo.CountByCategory(ctx, id)
	if err != nil {
		slog.Error("could not count products of category", "id", id, "error", err)
		fail(w, http.StatusInternalServerError, "could not delete category")
		return
	}
	if n > 0 {
		fail(w, http.StatusConflict, repo.ErrCategoryInUse.Error())
		return
	}

	if err := categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrCategoryNotFound):
			fail(w, http.StatusNotFound, "category not found")
		case errors.Is(err, repo.ErrCategoryInUse):
			fail(w, http.StatusConflict, err.Error())
		default:
			slog.Error("could not delete category", "id", id, "error", err)
			fail(w, http.StatusInternalServerError, "could not delete category")
		}
		return
	}
	respond(w, http.StatusOK, nil, "Category deleted")
}
