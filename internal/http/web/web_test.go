package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julienmatondotezolo/ada-stock/internal/cache"
	"github.com/julienmatondotezolo/ada-stock/internal/client"
	"github.com/julienmatondotezolo/ada-stock/internal/http/apiv1"
	"github.com/julienmatondotezolo/ada-stock/internal/http/web"
	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
	"github.com/julienmatondotezolo/ada-stock/internal/store"
)

type app struct {
	handler    http.Handler
	store      *store.Store
	api        *client.Client
	categoryID string
}

// newApp runs the reference backend and the web app in-process.
func newApp(t *testing.T) app {
	t.Helper()
	apiv1.SetTokenParser(nil)
	apiv1.SetLimiter(nil)
	_, categories, _ := apiv1.UseMemory()
	veg, err := categories.Create(context.Background(), models.Category{Name: "vegetables", IsActive: true})
	require.NoError(t, err)

	backend := httptest.NewServer(apiv1.NewRouter(nil))
	t.Cleanup(backend.Close)

	api := client.New(backend.URL + "/api/v1")
	st := store.New(api, store.WithSnapshots(cache.NewMemory()))
	require.NoError(t, st.Load(context.Background()))

	return app{handler: newHandler(t, st), store: st, api: api, categoryID: veg.ID}
}

func newHandler(t *testing.T, st *store.Store) http.Handler {
	t.Helper()
	srv, err := web.NewServer(st, i18n.MustLoad(), web.WithDefaultLocale(i18n.EN))
	require.NoError(t, err)
	return srv.Routes()
}

func post(h http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func products(t *testing.T, h http.Handler) web.ProductsResponse {
	t.Helper()
	w := get(h, "/api/products")
	require.Equal(t, http.StatusOK, w.Code)
	var resp web.ProductsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func (a app) add(t *testing.T, name string, quantity, minStock int) stock.Item {
	t.Helper()
	w := post(a.handler, "/products", url.Values{
		"name":     {name},
		"category": {a.categoryID},
		"quantity": {strconv.Itoa(quantity)},
		"minStock": {strconv.Itoa(minStock)},
		"unit":     {"kg"},
		"return":   {"/products"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	require.Equal(t, "/products", w.Header().Get("Location"))
	for _, it := range a.store.Items() {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("%s not in store after add", name)
	return stock.Item{}
}

func backendProducts(t *testing.T, a app) []models.Product {
	t.Helper()
	list, err := a.api.ListProducts(context.Background(), client.ProductQuery{})
	require.NoError(t, err)
	return list
}

func TestAddProductShowsInList(t *testing.T) {
	a := newApp(t)
	a.add(t, "Tomatoes", 15, 5)

	resp := products(t, a.handler)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Tomatoes", resp.Items[0].Name)
	assert.Equal(t, 15, resp.Items[0].Quantity)
	assert.Equal(t, "vegetables", resp.Items[0].Category)
	assert.False(t, resp.Items[0].Unsynced)

	page := get(a.handler, "/products")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Tomatoes")
	assert.Contains(t, page.Body.String(), "Showing 1 of 1 products")
}

func TestAddProductRoundTrip(t *testing.T) {
	a := newApp(t)
	a.add(t, "X", 5, 2)

	var found []models.Product
	for _, p := range backendProducts(t, a) {
		if p.Name == "X" {
			found = append(found, p)
		}
	}
	require.Len(t, found, 1)
	assert.Equal(t, 5, found[0].CurrentQuantity)
	assert.Equal(t, 2, found[0].MinimumStock)
	assert.Equal(t, "kg", found[0].Unit)
}

func TestAddProductWithoutBackendCategoryUsesFirst(t *testing.T) {
	a := newApp(t)
	w := post(a.handler, "/products", url.Values{
		"name":     {"Parsley"},
		"category": {"key:herbs"},
		"quantity": {"3"},
		"minStock": {"1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	list := backendProducts(t, a)
	require.Len(t, list, 1)
	assert.Equal(t, a.categoryID, list[0].CategoryID)
	assert.Equal(t, "pcs", list[0].Unit)
}

func TestAddProductValidation(t *testing.T) {
	a := newApp(t)
	w := post(a.handler, "/products", url.Values{
		"name":     {"  "},
		"quantity": {""},
		"minStock": {"-1"},
		"return":   {"/products"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	for _, msg := range []string{"Product name is required", "Category is required", "Enter a valid quantity", "Enter a valid minimum stock"} {
		assert.Contains(t, body, msg)
	}
	assert.Empty(t, a.store.Items())
}

func TestQuickActionAddsFive(t *testing.T) {
	a := newApp(t)
	it := a.add(t, "Onions", 10, 2)

	w := post(a.handler, "/products/"+it.ID+"/adjust", url.Values{"delta": {"5"}, "return": {"/products"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))

	got, ok := a.store.Get(it.ID)
	require.True(t, ok)
	assert.Equal(t, 15, got.Quantity)

	p, err := a.api.GetProduct(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, p.CurrentQuantity)
}

func TestDecrementClampsAtZero(t *testing.T) {
	a := newApp(t)
	it := a.add(t, "Garlic", 3, 1)

	w := post(a.handler, "/products/"+it.ID+"/adjust", url.Values{"delta": {"-10"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	got, _ := a.store.Get(it.ID)
	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, stock.StatusOut, got.Status())

	p, err := a.api.GetProduct(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentQuantity)
}

func TestSetQuantityDirectly(t *testing.T) {
	a := newApp(t)
	it := a.add(t, "Rice", 4, 1)

	w := post(a.handler, "/products/"+it.ID+"/quantity", url.Values{"quantity": {"12"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	got, _ := a.store.Get(it.ID)
	assert.Equal(t, 12, got.Quantity)

	w = post(a.handler, "/products/"+it.ID+"/quantity", url.Values{"quantity": {"lots"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	a := newApp(t)
	a.add(t, "Lemons", 3, 1)
	it := a.add(t, "Limes", 3, 1)
	before := len(products(t, a.handler).Items)

	w := post(a.handler, "/products/"+it.ID+"/delete", url.Values{"return": {"/products"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	after := products(t, a.handler).Items
	assert.Len(t, after, before-1)
	for _, i := range after {
		assert.NotEqual(t, "Limes", i.Name)
	}
	for _, p := range backendProducts(t, a) {
		assert.NotEqual(t, "Limes", p.Name)
	}

	w = post(a.handler, "/products/"+it.ID+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	a := newApp(t)
	it := a.add(t, "Tomatoes", 10, 2)

	w := post(a.handler, "/products/"+it.ID+"/update", url.Values{
		"name": {"Roma tomatoes"}, "quantity": {"7"}, "minStock": {"3"}, "unit": {"box"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	p, err := a.api.GetProduct(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roma tomatoes", p.Name)
	assert.Equal(t, 7, p.CurrentQuantity)
	assert.Equal(t, 3, p.MinimumStock)
	assert.Equal(t, "box", p.Unit)

	w = post(a.handler, "/products/"+it.ID+"/update", url.Values{
		"name": {""}, "quantity": {"-2"}, "minStock": {"1"}, "return": {"/products"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name is required")
	assert.Contains(t, w.Body.String(), "Quantity cannot be negative")
}

func TestEditKeepsOrderUntilIdle(t *testing.T) {
	a := newApp(t)
	first := a.add(t, "Apples", 10, 2)
	second := a.add(t, "Bananas", 10, 2)

	require.Equal(t, http.StatusOK, get(a.handler, "/products").Code)
	post(a.handler, "/products/"+second.ID+"/quantity", url.Values{"quantity": {"0"}})

	resp := products(t, a.handler)
	assert.True(t, resp.Editing)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, first.ID, resp.Items[0].ID)
	assert.Equal(t, second.ID, resp.Items[1].ID)
}

func TestFiltersAndNoResults(t *testing.T) {
	a := newApp(t)
	a.add(t, "Tomatoes", 15, 5)
	a.add(t, "Basil", 2, 3)

	w := get(a.handler, "/products?stock=low")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Basil")
	assert.Contains(t, body, "Showing 1 of 2 products")
	assert.Contains(t, body, "Active filters:")

	w = get(a.handler, "/products?q=zucchini&layout=list")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No products found")
}

func TestDashboardPage(t *testing.T) {
	a := newApp(t)
	a.add(t, "Tomatoes", 15, 5)
	a.add(t, "Mozzarella", 0, 2)

	w := get(a.handler, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Needs urgent attention")
	assert.Contains(t, body, "Mozzarella")
	assert.Contains(t, body, "Vegetables")
	assert.Contains(t, body, "L&#39;Osteria Deerlijk")
}

func TestLocaleSwitch(t *testing.T) {
	a := newApp(t)

	w := post(a.handler, "/locale", url.Values{"locale": {"nl"}, "return": {"/products"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "locale", cookies[0].Name)
	assert.Equal(t, "nl", cookies[0].Value)

	page := get(a.handler, "/products", cookies[0])
	assert.Contains(t, page.Body.String(), "Producten")
	assert.Contains(t, page.Body.String(), `lang="nl"`)

	w = post(a.handler, "/locale", url.Values{"locale": {"fr"}, "return": {"//evil.example"}})
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestOfflineFallback(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	base := backend.URL + "/api/v1"
	backend.Close()

	st := store.New(client.New(base))
	require.Error(t, st.Load(context.Background()))
	h := newHandler(t, st)

	page := get(h, "/")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "API Connection Issue")
	assert.Contains(t, page.Body.String(), "Try Again")

	resp := products(t, h)
	assert.Equal(t, store.SourceMock, resp.Source)
	assert.Len(t, resp.Items, 8)
	assert.NotEmpty(t, resp.Error)

	target := resp.Items[0]
	w := post(h, "/products/"+target.ID+"/adjust", url.Values{"delta": {"1"}, "return": {"/products"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/products", loc.Path)
	assert.Equal(t, target.Name, loc.Query().Get("unsaved"))

	got, _ := st.Get(target.ID)
	assert.Equal(t, target.Quantity+1, got.Quantity)
	assert.True(t, got.Unsynced)

	notice := get(h, loc.RequestURI())
	assert.Contains(t, notice.Body.String(), "could not be saved to the server")

	post(h, "/dismiss", url.Values{"return": {"/"}})
	assert.NotContains(t, get(h, "/").Body.String(), "API Connection Issue")
}

func TestHealth(t *testing.T) {
	st := store.New(client.New("http://127.0.0.1:1/api/v1"))
	h := newHandler(t, st)

	w := get(h, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	var body models.Health
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ada-stock", body.Service)
	assert.Equal(t, "1.0.0", body.Version)
	assert.NotEmpty(t, body.Timestamp)
}

func TestStaticAssets(t *testing.T) {
	h := newHandler(t, store.New(client.New("http://127.0.0.1:1/api/v1")))
	w := get(h, "/static/app.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".badge")
}
