package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artizon/internal/gateway"
	"artizon/internal/handlers"
	"artizon/internal/router"
	"artizon/internal/session"
	"artizon/internal/storage"
	"artizon/internal/stores"
)

// fakeBackend is a scripted transport adapter standing in for the remote API.
type fakeBackend struct {
	routes map[string]func(req *http.Request) *http.Response
}

func (b *fakeBackend) Do(req *http.Request) (*http.Response, error) {
	if handler, ok := b.routes[req.Method+" "+req.URL.Path]; ok {
		return handler(req), nil
	}
	return jsonResponse(http.StatusNotFound, `{"message":"not found"}`), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// setupApp wires the full storefront surface over in-memory storage and the
// scripted backend, the same way main does.
func setupApp(t *testing.T, backend *fakeBackend) (*fiber.App, *session.Manager) {
	t.Helper()

	store := storage.NewMemoryStore()
	client := gateway.NewClient("https://api.test", session.NewCredentials(store), backend)
	authAPI := gateway.NewAuthAPI(client)
	productsAPI := gateway.NewProductsAPI(client)
	ordersAPI := gateway.NewOrdersAPI(client)

	sessionManager, err := session.NewManager(store, authAPI)
	require.NoError(t, err)

	cartStore, err := stores.NewCartStore(store)
	require.NoError(t, err)
	ordersStore := stores.NewOrdersStore(ordersAPI, nil)

	table, err := router.NewTable(router.DefaultPaths(), router.DefaultRequirements())
	require.NoError(t, err)
	guard := router.NewGuard(sessionManager, table, store)

	client.OnSessionExpired(func() {
		sessionManager.Logout()
		ordersStore.Reset()
	})

	app := fiber.New()
	handlers.NewAuthHandler(authAPI, sessionManager, ordersStore).RegisterRoutes(app)
	handlers.NewNavigationHandler(guard).RegisterRoutes(app)
	handlers.NewCartHandler(cartStore).RegisterRoutes(app)
	handlers.NewOrderHandler(ordersStore, ordersAPI).RegisterRoutes(app)
	handlers.NewProductHandler(productsAPI).RegisterRoutes(app)

	return app, sessionManager
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func customerBackend() *fakeBackend {
	return &fakeBackend{routes: map[string]func(req *http.Request) *http.Response{
		"POST /auth/login": func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"access_token":"tok-1"}`)
		},
		"GET /auth/profile": func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"first_name":"A","last_name":"B","email":"a@b.com","user_type":"customer"}`)
		},
	}}
}

func login(t *testing.T, app *fiber.App) {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginFlow(t *testing.T) {
	app, sessionManager := setupApp(t, customerBackend())

	login(t, app)

	assert.True(t, sessionManager.IsAuthenticated())
	assert.True(t, sessionManager.IsCustomer())

	resp, state := doJSON(t, app, http.MethodGet, "/auth/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, state["authenticated"])
	assert.Equal(t, true, state["is_customer"])
	assert.Equal(t, false, state["is_vendor"])
}

func TestLoginValidation(t *testing.T) {
	app, _ := setupApp(t, customerBackend())

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["message"])
}

func TestNavigationGuard(t *testing.T) {
	app, _ := setupApp(t, customerBackend())

	// Anonymous visitor heading for the dashboard lands on login.
	resp, decision := doJSON(t, app, http.MethodGet, "/navigate?to=/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decision["allowed"])
	assert.Equal(t, router.LoginPath, decision["redirect_to"])

	login(t, app)

	// Signed in, the login page bounces to the dashboard.
	_, decision = doJSON(t, app, http.MethodGet, "/navigate?to=/auth/login", nil)
	assert.Equal(t, false, decision["allowed"])
	assert.Equal(t, router.DashboardPath, decision["redirect_to"])

	// The cart stays open either way.
	_, decision = doJSON(t, app, http.MethodGet, "/navigate?to=/cart", nil)
	assert.Equal(t, true, decision["allowed"])
}

func TestCartEndpoints(t *testing.T) {
	app, _ := setupApp(t, customerBackend())

	item := map[string]interface{}{"id": 1, "name": "Vase", "price": 40.0, "image_urls": []string{}}
	resp, body := doJSON(t, app, http.MethodPost, "/cart/items", item)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["item_count"])

	_, body = doJSON(t, app, http.MethodPost, "/cart/items", item)
	assert.EqualValues(t, 2, body["item_count"])

	_, body = doJSON(t, app, http.MethodPatch, "/cart/items/1", map[string]int{"quantity": 5})
	assert.EqualValues(t, 5, body["item_count"])
	assert.EqualValues(t, 200, body["total"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, http.MethodGet, "/cart", nil)
	assert.EqualValues(t, 0, body["item_count"])
}

func TestPlaceOrderFlow(t *testing.T) {
	backend := customerBackend()
	backend.routes["POST /orders/place"] = func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusCreated, `{"id":1,"total_amount":80,"status":"pending"}`)
	}
	app, _ := setupApp(t, backend)
	login(t, app)

	resp, order := doJSON(t, app, http.MethodPost, "/orders", map[string]interface{}{
		"items":            []map[string]int{{"product_id": 5, "quantity": 2}},
		"shipping_address": "X",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1, order["id"])
}

func TestPlaceOrderBackendRejection(t *testing.T) {
	backend := customerBackend()
	backend.routes["POST /orders/place"] = func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusBadRequest, `{"message":"insufficient stock"}`)
	}
	app, _ := setupApp(t, backend)
	login(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/orders", map[string]interface{}{
		"items":            []map[string]int{{"product_id": 5, "quantity": 2}},
		"shipping_address": "X",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "insufficient stock")
}

func TestExpiredSessionLogsOut(t *testing.T) {
	backend := customerBackend()
	backend.routes["GET /orders/my"] = func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusUnauthorized, `{}`)
	}
	app, sessionManager := setupApp(t, backend)
	login(t, app)

	// The read degrades to the store's error field, but the 401 has already
	// torn the session down.
	resp, body := doJSON(t, app, http.MethodGet, "/orders?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
	assert.False(t, sessionManager.IsAuthenticated())
}

func TestProductsProxy(t *testing.T) {
	backend := customerBackend()
	backend.routes["GET /products"] = func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, `{"products":[{"id":1,"name":"Vase"}],"page":1,"total_pages":1,"total":1}`)
	}
	app, _ := setupApp(t, backend)

	resp, body := doJSON(t, app, http.MethodGet, "/products?page=1&limit=10", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}
