package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockly/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

func do(t *testing.T, r *router.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndDispatch(t *testing.T) {
	r := router.New()
	r.Get("/products", "products.index", ok("list"))
	r.Post("/products", "products.store", ok("created"))

	rec := do(t, r, http.MethodGet, "/products")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list", rec.Body.String())

	rec = do(t, r, http.MethodPost, "/products")
	assert.Equal(t, "created", rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Get("/products", "products.index", ok("list"))

	rec := do(t, r, http.MethodDelete, "/products")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", tag("outer"))
	v1 := api.Group("/v1", tag("inner"))
	v1.Get("/ping", "ping", ok("pong"), tag("route"))

	rec := do(t, r, http.MethodGet, "/api/v1/ping")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, []string{"outer", "inner", "route"}, order)
}

func TestNamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok(""))

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/products/{id}", path)

	_, found = r.Path("missing")
	assert.False(t, found)
}

func TestURLFillsParams(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok(""))

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/products/42", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err, "unfilled placeholder")

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutesReturnsCopy(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok(""))

	routes := r.Routes()
	routes["a"] = "tampered"

	path, _ := r.Path("a")
	assert.Equal(t, "/a", path)
}

func TestUnnamedRoutesAreNotListed(t *testing.T) {
	r := router.New()
	r.Get("/internal", "", ok(""))

	assert.Empty(t, r.Routes())
	rec := do(t, r, http.MethodGet, "/internal")
	assert.Equal(t, http.StatusOK, rec.Code)
}
