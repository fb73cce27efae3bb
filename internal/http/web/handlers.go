package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
	"github.com/julienmatondotezolo/ada-stock/internal/store"
)

// keyPrefix marks an add-form category chosen from the known keys rather
// than from backend categories.
const keyPrefix = "key:"

// returnTo is the local page a form came from, "/" when absent or foreign.
func returnTo(r *http.Request) string {
	ret := r.PostFormValue("return")
	if !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.HasPrefix(ret, "/\\") {
		return "/"
	}
	return ret
}

// redirect sends the browser back to ret. A write that only reached local
// state adds the unsaved notice.
func redirect(w http.ResponseWriter, r *http.Request, ret string, out store.Outcome, name string) {
	u, err := url.Parse(ret)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Del("unsaved")
	if !out.Persisted && out.Err != nil {
		q.Set("unsaved", name)
	}
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.RequestURI(), http.StatusSeeOther)
}

// rerender shows the page a form came from again, with the form still open.
func (s *Server) rerender(w http.ResponseWriter, r *http.Request, ret string, fill func(*pageData)) {
	u, err := url.Parse(ret)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	view := viewDashboard
	if u.Path == "/products" {
		view = viewProducts
	}
	p := s.page(r, view, u.Query(), ret)
	fill(p)
	s.render(w, http.StatusBadRequest, p)
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	f := addForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Category: r.PostFormValue("category"),
		Quantity: r.PostFormValue("quantity"),
		MinStock: r.PostFormValue("minStock"),
		Unit:     r.PostFormValue("unit"),
	}
	ret := returnTo(r)
	if errs := validateAdd(f); len(errs) > 0 {
		s.rerender(w, r, ret, func(p *pageData) {
			f.Errors = localize(p.T, errs)
			p.Add = &f
		})
		return
	}

	quantity, _ := parseCount(f.Quantity)
	minStock, _ := parseCount(f.MinStock)
	np := store.NewProduct{Name: f.Name, Quantity: quantity, MinStock: minStock}
	if u, ok := stock.ParseUnit(f.Unit); ok {
		np.Unit = string(u)
	}
	if key, ok := strings.CutPrefix(f.Category, keyPrefix); ok {
		np.Category = key
	} else {
		np.CategoryID = f.Category
		for _, c := range s.store.Categories() {
			if c.ID == f.Category {
				np.Category = c.Name
			}
		}
	}

	it, out := s.store.Add(r.Context(), np)
	redirect(w, r, ret, out, it.Name)
}

func (s *Server) item(w http.ResponseWriter, r *http.Request) (stock.Item, bool) {
	it, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
	}
	return it, ok
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	it, ok := s.item(w, r)
	if !ok {
		return
	}
	q, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}
	out, err := s.store.SetQuantity(r.Context(), it.ID, q)
	if s.notFound(w, err) {
		return
	}
	redirect(w, r, returnTo(r), out, it.Name)
}

func (s *Server) adjustQuantity(w http.ResponseWriter, r *http.Request) {
	it, ok := s.item(w, r)
	if !ok {
		return
	}
	delta, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("delta")))
	if err != nil {
		http.Error(w, "invalid delta", http.StatusBadRequest)
		return
	}
	out, err := s.store.AdjustQuantity(r.Context(), it.ID, delta)
	if s.notFound(w, err) {
		return
	}
	redirect(w, r, returnTo(r), out, it.Name)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	it, ok := s.item(w, r)
	if !ok {
		return
	}
	f := editForm{
		ID:       it.ID,
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Quantity: r.PostFormValue("quantity"),
		MinStock: r.PostFormValue("minStock"),
		Unit:     r.PostFormValue("unit"),
	}
	ret := returnTo(r)
	if errs := validateEdit(f); len(errs) > 0 {
		s.rerender(w, r, ret, func(p *pageData) {
			f.Errors = localize(p.T, errs)
			p.Edit = &f
		})
		return
	}

	quantity, _ := parseCount(f.Quantity)
	minStock, _ := parseCount(f.MinStock)
	patch := store.Patch{Name: &f.Name, Quantity: &quantity, MinStock: &minStock}
	if u, ok := stock.ParseUnit(f.Unit); ok {
		unit := string(u)
		patch.Unit = &unit
	}

	out, err := s.store.Update(r.Context(), it.ID, patch)
	if s.notFound(w, err) {
		return
	}
	redirect(w, r, ret, out, f.Name)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	it, ok := s.item(w, r)
	if !ok {
		return
	}
	out, err := s.store.Delete(r.Context(), it.ID)
	if s.notFound(w, err) {
		return
	}
	redirect(w, r, returnTo(r), out, it.Name)
}

// notFound handles a store error; it reports whether the response was written.
func (s *Server) notFound(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrItemNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return true
	}
	s.log.Error("store operation failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
	return true
}

func (s *Server) setLocale(w http.ResponseWriter, r *http.Request) {
	l, ok := i18n.ParseLocale(r.PostFormValue("locale"))
	if !ok {
		l = s.defaultLocale
	}
	i18n.SetCookie(w, l)
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	// The error is kept by the store and shown in the banner.
	_ = s.store.Load(r.Context())
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	s.store.DismissError()
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, models.Health{
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

// ProductsResponse is the JSON view of the current product list.
type ProductsResponse struct {
	Items   []stock.Item  `json:"items"`
	Summary stock.Summary `json:"summary"`
	Source  store.Source  `json:"source"`
	Editing bool          `json:"editing"`
	Error   string        `json:"error,omitempty"`
}

func (s *Server) productsJSON(w http.ResponseWriter, r *http.Request) {
	s.ensureLoaded(r.Context())
	items := s.store.Arranged()
	resp := ProductsResponse{
		Items:   items,
		Summary: stock.Summarize(items, stock.Today(s.now())),
		Source:  s.store.Source(),
		Editing: s.store.Editing(),
	}
	if err := s.store.LoadError(); err != nil {
		resp.Error = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	out, err := json.Marshal(data)
	if err != nil {
		s.log.Error("could not marshal response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.log.Error("could not write response", "error", err)
	}
}
