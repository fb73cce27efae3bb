package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
	"github.com/julienmatondotezolo/ada-stock/internal/store"
)

const (
	viewDashboard = "dashboard"
	viewProducts  = "products"

	layoutCard = "card"
	layoutList = "list"
)

// quickDeltas are the quick-action buttons of the product view.
var quickDeltas = []int{-10, -5, -1, 1, 5, 10}

var funcs = template.FuncMap{
	"statusKey": statusKey,
	"stockKey":  func(s string) string { return statusKey(stock.Status(s)) },
	"withItem":  withItem,
	"signed": func(n int) string {
		if n > 0 {
			return "+" + strconv.Itoa(n)
		}
		return strconv.Itoa(n)
	},
}

func statusKey(st stock.Status) string {
	switch st {
	case stock.StatusOut:
		return "stock.outOfStock"
	case stock.StatusLow:
		return "stock.lowStock"
	}
	return "stock.goodStock"
}

type itemView struct {
	stock.Item
	CategoryLabel string
	UnitLabel     string
}

// itemContext is the dot of the per-item partials.
type itemContext struct {
	Page *pageData
	Item itemView
	Form *editForm
}

func withItem(p *pageData, it itemView) itemContext {
	c := itemContext{Page: p, Item: it}
	if p.Edit != nil && p.Edit.ID == it.ID {
		c.Form = p.Edit
	}
	return c
}

type categoryView struct {
	Name     string
	Label    string
	Count    int
	LowStock int
}

type option struct {
	Value string
	Label string
}

// addForm carries the add modal's values back after a failed validation.
type addForm struct {
	Name     string
	Category string
	Quantity string
	MinStock string
	Unit     string
	Errors   []FieldError
}

type editForm struct {
	ID       string
	Name     string
	Quantity string
	MinStock string
	Unit     string
	Errors   []FieldError
}

type pageData struct {
	T       i18n.Translator
	Locale  i18n.Locale
	Locales []i18n.Locale
	View    string
	Layout  string
	Return  string

	LoadError string
	Source    store.Source
	Unsaved   string
	Editing   bool

	Summary       stock.Summary
	Urgent        []itemView
	CategoryStats []categoryView

	Filter       stock.Filter
	FilterOpts   []option
	StockOpts    []option
	Items        []itemView
	Total        int
	QuickDeltas  []int
	CategoryOpts []option
	Units        []option

	Add  *addForm
	Edit *editForm
}

func (s *Server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	s.ensureLoaded(r.Context())
	s.render(w, http.StatusOK, s.page(r, viewDashboard, r.URL.Query(), r.URL.RequestURI()))
}

func (s *Server) productsPage(w http.ResponseWriter, r *http.Request) {
	s.ensureLoaded(r.Context())
	s.render(w, http.StatusOK, s.page(r, viewProducts, r.URL.Query(), r.URL.RequestURI()))
}

// ensureLoaded runs the first load lazily when nothing loaded the store yet.
func (s *Server) ensureLoaded(ctx context.Context) {
	if s.store.Source() == "" {
		_ = s.store.Load(ctx)
	}
}

func (s *Server) locale(r *http.Request) i18n.Locale {
	return i18n.FromRequest(r, s.defaultLocale)
}

func (s *Server) page(r *http.Request, view string, q url.Values, ret string) *pageData {
	loc := s.locale(r)
	t := s.catalog.For(loc)

	p := &pageData{
		T:           t,
		Locale:      loc,
		Locales:     i18n.Locales,
		View:        view,
		Layout:      layoutCard,
		Return:      ret,
		Source:      s.store.Source(),
		Unsaved:     q.Get("unsaved"),
		Editing:     s.store.Editing(),
		QuickDeltas: quickDeltas,
	}
	if q.Get("layout") == layoutList {
		p.Layout = layoutList
	}
	if err := s.store.LoadError(); err != nil {
		p.LoadError = err.Error()
	}

	items := s.store.Items()
	p.Summary = stock.Summarize(items, stock.Today(s.now()))
	p.Total = len(items)

	if view == viewDashboard {
		p.Urgent = s.views(t, stock.Urgent(items))
		for _, cs := range stock.ByCategory(items) {
			p.CategoryStats = append(p.CategoryStats, categoryView{
				Name: cs.Name, Label: t.Category(cs.Name), Count: len(cs.Items), LowStock: cs.LowStock,
			})
		}
	} else {
		p.Filter = stock.Filter{Search: q.Get("q"), Category: q.Get("category"), Stock: q.Get("stock")}
		p.Items = s.views(t, p.Filter.Apply(s.store.Arranged()))
		p.FilterOpts = []option{{Value: stock.All, Label: t.T("filters.allCategories")}}
		for _, c := range stock.Categories(items) {
			p.FilterOpts = append(p.FilterOpts, option{Value: c, Label: t.Category(c)})
		}
		p.StockOpts = []option{
			{Value: stock.All, Label: t.T("filters.allStock")},
			{Value: string(stock.StatusOut), Label: t.T("stock.outOfStock")},
			{Value: string(stock.StatusLow), Label: t.T("stock.lowStock")},
			{Value: string(stock.StatusGood), Label: t.T("stock.goodStock")},
		}
	}

	p.CategoryOpts = s.categoryOptions(t)
	for _, u := range stock.Units {
		p.Units = append(p.Units, option{Value: string(u), Label: t.Unit(string(u))})
	}
	return p
}

func (s *Server) views(t i18n.Translator, items []stock.Item) []itemView {
	out := make([]itemView, len(items))
	for i, it := range items {
		out[i] = itemView{Item: it, CategoryLabel: t.Category(it.Category), UnitLabel: t.Unit(it.Unit)}
	}
	return out
}

// categoryOptions lists backend categories by id. Without any, the known
// category keys are offered so the form still works offline.
func (s *Server) categoryOptions(t i18n.Translator) []option {
	cats := s.store.Categories()
	if len(cats) > 0 {
		opts := make([]option, len(cats))
		for i, c := range cats {
			opts[i] = option{Value: c.ID, Label: t.Category(c.Name)}
		}
		return opts
	}
	opts := make([]option, len(stock.CategoryKeys))
	for i, k := range stock.CategoryKeys {
		opts[i] = option{Value: keyPrefix + string(k), Label: t.Category(string(k))}
	}
	return opts
}

func (s *Server) render(w http.ResponseWriter, status int, p *pageData) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page", p); err != nil {
		s.log.Error("could not render page", "view", p.View, "error", err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Error("could not write page", "error", err)
	}
}
