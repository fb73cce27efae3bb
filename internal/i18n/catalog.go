package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

//go:embed messages/*.json
var messageFS embed.FS

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Params are the interpolation values for a message.
type Params map[string]string

// Catalog holds one message tree per locale.
type Catalog struct {
	trees map[Locale]map[string]any
}

// Load reads the embedded message files.
func Load() (*Catalog, error) {
	c := &Catalog{trees: make(map[Locale]map[string]any, len(Locales))}
	for _, l := range Locales {
		raw, err := messageFS.ReadFile("messages/" + string(l) + ".json")
		if err != nil {
			return nil, fmt.Errorf("read %s messages: %w", l, err)
		}
		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse %s messages: %w", l, err)
		}
		c.trees[l] = tree
	}
	return c, nil
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// NewCatalog builds a catalog from in-memory trees.
func NewCatalog(trees map[Locale]map[string]any) *Catalog {
	return &Catalog{trees: trees}
}

// T resolves key for l, then English, then returns the key itself.
func (c *Catalog) T(l Locale, key string, params Params) string {
	msg, ok := lookup(c.trees[l], key)
	if !ok && l != EN {
		msg, ok = lookup(c.trees[EN], key)
	}
	if !ok {
		return key
	}
	return interpolate(msg, params)
}

func lookup(tree map[string]any, key string) (string, bool) {
	if tree == nil {
		return "", false
	}
	var node any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		if node, ok = m[part]; !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok
}

// interpolate leaves a placeholder untouched when its value is missing or empty.
func interpolate(msg string, params Params) string {
	if len(params) == 0 {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		if v := params[m[1:len(m)-1]]; v != "" {
			return v
		}
		return m
	})
}

// UnitLabel translates a unit, falling back to the raw unit.
func (c *Catalog) UnitLabel(l Locale, unit string) string {
	key := "units." + unit
	if v := c.T(l, key, nil); v != key {
		return v
	}
	return unit
}

// CategoryLabel translates a category name, falling back to the raw name.
func (c *Catalog) CategoryLabel(l Locale, name string) string {
	key := "categories." + stock.NormalizeCategory(name)
	if v := c.T(l, key, nil); v != key {
		return v
	}
	return name
}

// Translator binds a catalog to one locale for templates.
type Translator struct {
	Locale  Locale
	catalog *Catalog
}

// For returns a Translator for l.
func (c *Catalog) For(l Locale) Translator {
	return Translator{Locale: l, catalog: c}
}

// T translates key. Extra arguments are read as name, value pairs.
func (t Translator) T(key string, kv ...any) string {
	var p Params
	if len(kv) > 1 {
		p = make(Params, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			p[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
		}
	}
	return t.catalog.T(t.Locale, key, p)
}

func (t Translator) Unit(unit string) string { return t.catalog.UnitLabel(t.Locale, unit) }

func (t Translator) Category(name string) string { return t.catalog.CategoryLabel(t.Locale, name) }
