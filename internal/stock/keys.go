package stock

import (
	"strings"
	"unicode"
)

// CategoryKey is a known category translation key.
type CategoryKey string

const (
	CategoryVegetables CategoryKey = "vegetables"
	CategoryFruits     CategoryKey = "fruits"
	CategoryDairy      CategoryKey = "dairy"
	CategoryMeat       CategoryKey = "meat"
	CategorySeafood    CategoryKey = "seafood"
	CategoryFish       CategoryKey = "fish"
	CategoryDryGoods   CategoryKey = "drygoods"
	CategoryOils       CategoryKey = "oils"
	CategoryHerbs      CategoryKey = "herbs"
	CategorySpices     CategoryKey = "spices"
	CategoryBeverages  CategoryKey = "beverages"
	CategoryFrozen     CategoryKey = "frozen"
	CategoryCanned     CategoryKey = "canned"
	CategoryOther      CategoryKey = "other"
)

// CategoryKeys is the closed set, in form order.
var CategoryKeys = []CategoryKey{
	CategoryVegetables, CategoryFruits, CategoryDairy, CategoryMeat, CategorySeafood, CategoryFish,
	CategoryDryGoods, CategoryOils, CategoryHerbs, CategorySpices, CategoryBeverages, CategoryFrozen,
	CategoryCanned, CategoryOther,
}

// NormalizeCategory lowercases name and strips whitespace.
func NormalizeCategory(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// ParseCategoryKey maps a category name onto the closed set.
func ParseCategoryKey(name string) (CategoryKey, bool) {
	n := CategoryKey(NormalizeCategory(name))
	for _, k := range CategoryKeys {
		if k == n {
			return k, true
		}
	}
	return "", false
}

// Unit is a unit of measure offered by the product forms.
type Unit string

var Units = []Unit{"pcs", "kg", "g", "L", "ml", "bunch", "pack", "box", "bottle", "can"}

// DefaultUnit is used when a new product names none.
const DefaultUnit Unit = "pcs"

func ParseUnit(s string) (Unit, bool) {
	for _, u := range Units {
		if string(u) == s {
			return u, true
		}
	}
	return "", false
}
