package web

import (
	"strconv"
	"strings"

	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
)

// FieldError is one failed form rule; Key is a message key and Message its
// translation.
type FieldError struct {
	Field   string
	Key     string
	Message string
}

func localize(t i18n.Translator, errs []FieldError) []FieldError {
	for i := range errs {
		errs[i].Message = t.T(errs[i].Key)
	}
	return errs
}

// parseCount reads a non-negative integer form value; ok is false when the
// value is missing, malformed or negative.
func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func validateAdd(f addForm) []FieldError {
	errs := []FieldError{}
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Key: "modal.productNameRequired"})
	}
	if strings.TrimSpace(f.Category) == "" {
		errs = append(errs, FieldError{Field: "category", Key: "modal.categoryRequired"})
	}
	if _, ok := parseCount(f.Quantity); !ok {
		errs = append(errs, FieldError{Field: "quantity", Key: "modal.validQuantityRequired"})
	}
	if _, ok := parseCount(f.MinStock); !ok {
		errs = append(errs, FieldError{Field: "minStock", Key: "modal.validMinStockRequired"})
	}
	return errs
}

func validateEdit(f editForm) []FieldError {
	errs := []FieldError{}
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Key: "validation.nameRequired"})
	}
	if _, ok := parseCount(f.Quantity); !ok {
		errs = append(errs, FieldError{Field: "quantity", Key: "validation.quantityPositive"})
	}
	if _, ok := parseCount(f.MinStock); !ok {
		errs = append(errs, FieldError{Field: "minStock", Key: "validation.minStockPositive"})
	}
	return errs
}
