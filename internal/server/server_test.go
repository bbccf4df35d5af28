package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/forkline-dev/forkline/internal/config"
)

const (
	testAdminEmail    = "admin@forkline.test"
	testAdminPassword = "admin-secret"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Database: config.DatabaseConfig{
			URL: filepath.Join(t.TempDir(), "test.sqlite"),
		},
		Redis: config.RedisConfig{Address: "localhost:6379"},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-not-for-production",
			AdminEmail:    testAdminEmail,
			AdminPassword: testAdminPassword,
		},
	}

	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func registerUser(t *testing.T, srv *Server, name, email, password string) AuthResponse {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", h{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res AuthResponse
	decodeBody(t, rec, &res)
	require.NotEmpty(t, res.Token)
	require.NotNil(t, res.User)
	return res
}

func loginUser(t *testing.T, srv *Server, email, password string) AuthResponse {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/login", "", h{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res AuthResponse
	decodeBody(t, rec, &res)
	return res
}

type h = map[string]any

func writeTestSeedFile(t *testing.T, path string) {
	t.Helper()

	catalog := `restaurants:
  - name: Seeded Trattoria
    cuisine: Italian
    rating: 4.2
    menu:
      - name: Margherita
        category: Pizza
        price: 12.5
      - name: Tiramisu
        category: Dessert
        price: 6.0
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0644))
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Equal(t, "online", body["status"])
}

func TestRegisterCreatesCustomer(t *testing.T) {
	srv := newTestServer(t)

	res := registerUser(t, srv, "Ada", "Ada@Example.com", "secret1")
	require.Equal(t, "customer", res.User.Role)
	// Emails are stored lowercased
	require.Equal(t, "ada@example.com", res.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "Ada", "ada@example.com", "secret1")

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", h{
		"name": "Imposter", "email": "ADA@example.com", "password": "secret2",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "Email exists", body["error"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", h{
		"name": "Ada", "email": "ada@example.com", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "Ada", "ada@example.com", "secret1")

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/login", "", h{
		"email": "ada@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "Invalid email or password", body["error"])
}

func TestLoginUnknownEmail(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/login", "", h{
		"email": "ghost@example.com", "password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminIsSeeded(t *testing.T) {
	srv := newTestServer(t)

	res := loginUser(t, srv, testAdminEmail, testAdminPassword)
	require.Equal(t, "admin", res.User.Role)
}

func TestAdminEndpointsRejectCustomers(t *testing.T) {
	srv := newTestServer(t)

	customer := registerUser(t, srv, "Ada", "ada@example.com", "secret1")

	rec := doRequest(t, srv, http.MethodPost, "/api/restaurants", customer.Token, h{
		"name": "Sneaky Diner",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "Admin access required", body["error"])
}

func TestAuthenticatedEndpointsRejectMissingToken(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/orders/my-orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/orders/my-orders", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRestaurantLifecycle(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)

	rec := doRequest(t, srv, http.MethodPost, "/api/restaurants", admin.Token, h{
		"name": "Trattoria", "cuisine": "Italian", "rating": 4.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	decodeBody(t, rec, &created)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	// Listing is public
	rec = doRequest(t, srv, http.MethodGet, "/api/restaurants", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)

	rec = doRequest(t, srv, http.MethodGet, "/api/restaurants/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/restaurants/missing", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/restaurants/"+id, admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/restaurants/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRestaurantRejectsOutOfRangeRating(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)

	rec := doRequest(t, srv, http.MethodPost, "/api/restaurants", admin.Token, h{
		"name": "Overrated", "rating": 6.0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func createTestRestaurant(t *testing.T, srv *Server, adminToken, name string) string {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/restaurants", adminToken, h{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	decodeBody(t, rec, &created)
	return created["id"].(string)
}

func createTestMenuItem(t *testing.T, srv *Server, adminToken, restaurantID, name string, price float64) string {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/menu", adminToken, h{
		"restaurant_id": restaurantID, "name": name, "price": price,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	decodeBody(t, rec, &created)
	return created["id"].(string)
}

func TestMenuLifecycle(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)

	restaurantID := createTestRestaurant(t, srv, admin.Token, "Trattoria")
	itemID := createTestMenuItem(t, srv, admin.Token, restaurantID, "Margherita", 12.5)

	// Menu is public
	rec := doRequest(t, srv, http.MethodGet, "/api/menu/"+restaurantID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	decodeBody(t, rec, &items)
	require.Len(t, items, 1)
	require.Equal(t, "Margherita", items[0]["name"])
	require.Equal(t, true, items[0]["available"])

	// Unknown restaurant answers 404, not an empty list
	rec = doRequest(t, srv, http.MethodGet, "/api/menu/missing", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/menu/"+itemID, admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/menu/"+restaurantID, "", nil)
	decodeBody(t, rec, &items)
	require.Empty(t, items)
}

func TestMenuItemRequiresExistingRestaurant(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)

	rec := doRequest(t, srv, http.MethodPost, "/api/menu", admin.Token, h{
		"restaurant_id": "missing", "name": "Orphan Dish", "price": 9.0,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderTotalComputedFromMenu(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)
	customer := registerUser(t, srv, "Ada", "ada@example.com", "secret1")

	restaurantID := createTestRestaurant(t, srv, admin.Token, "Trattoria")
	pizzaID := createTestMenuItem(t, srv, admin.Token, restaurantID, "Margherita", 12.5)
	pastaID := createTestMenuItem(t, srv, admin.Token, restaurantID, "Carbonara", 14.0)

	rec := doRequest(t, srv, http.MethodPost, "/api/orders", customer.Token, h{
		"restaurant_id": restaurantID,
		"items": []h{
			{"menu_item_id": pizzaID, "quantity": 2},
			{"menu_item_id": pastaID, "quantity": 1},
		},
		"delivery_address": "42 Main St",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order OrderDetail
	decodeBody(t, rec, &order)
	require.Equal(t, "pending", order.Status)
	require.InDelta(t, 2*12.5+14.0, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	require.Equal(t, "Trattoria", order.RestaurantName)

	// The order shows up in my-orders
	rec = doRequest(t, srv, http.MethodGet, "/api/orders/my-orders", customer.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []OrderDetail
	decodeBody(t, rec, &orders)
	require.Len(t, orders, 1)
	require.Equal(t, order.ID, orders[0].ID)
}

func TestOrderRejectsForeignMenuItem(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)
	customer := registerUser(t, srv, "Ada", "ada@example.com", "secret1")

	trattoriaID := createTestRestaurant(t, srv, admin.Token, "Trattoria")
	sushiID := createTestRestaurant(t, srv, admin.Token, "Sushi Bar")
	rollID := createTestMenuItem(t, srv, admin.Token, sushiID, "California Roll", 8.0)

	// An item from another restaurant cannot ride along
	rec := doRequest(t, srv, http.MethodPost, "/api/orders", customer.Token, h{
		"restaurant_id":    trattoriaID,
		"items":            []h{{"menu_item_id": rollID, "quantity": 1}},
		"delivery_address": "42 Main St",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderRejectsUnavailableItem(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)
	customer := registerUser(t, srv, "Ada", "ada@example.com", "secret1")

	restaurantID := createTestRestaurant(t, srv, admin.Token, "Trattoria")
	itemID := createTestMenuItem(t, srv, admin.Token, restaurantID, "Seasonal Special", 20.0)

	require.NoError(t, srv.GetDB().Table("menu_items").
		Where("id = ?", itemID).
		Update("available", false).Error)

	rec := doRequest(t, srv, http.MethodPost, "/api/orders", customer.Token, h{
		"restaurant_id":    restaurantID,
		"items":            []h{{"menu_item_id": itemID, "quantity": 1}},
		"delivery_address": "42 Main St",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyOrdersIsolatedPerUser(t *testing.T) {
	srv := newTestServer(t)
	admin := loginUser(t, srv, testAdminEmail, testAdminPassword)
	ada := registerUser(t, srv, "Ada", "ada@example.com", "secret1")
	bob := registerUser(t, srv, "Bob", "bob@example.com", "secret1")

	restaurantID := createTestRestaurant(t, srv, admin.Token, "Trattoria")
	itemID := createTestMenuItem(t, srv, admin.Token, restaurantID, "Margherita", 12.5)

	rec := doRequest(t, srv, http.MethodPost, "/api/orders", ada.Token, h{
		"restaurant_id":    restaurantID,
		"items":            []h{{"menu_item_id": itemID, "quantity": 1}},
		"delivery_address": "42 Main St",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/orders/my-orders", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []OrderDetail
	decodeBody(t, rec, &orders)
	require.Empty(t, orders)
}

func TestProfileUpdateLeavesEmailAlone(t *testing.T) {
	srv := newTestServer(t)
	customer := registerUser(t, srv, "Ada", "ada@example.com", "secret1")

	rec := doRequest(t, srv, http.MethodPut, "/api/users/profile", customer.Token, h{
		"name": "Ada Lovelace", "phone": "555-0100", "email": "hijack@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile UserDetail
	decodeBody(t, rec, &profile)
	require.Equal(t, "Ada Lovelace", profile.Name)
	require.Equal(t, "555-0100", profile.Phone)
	require.Equal(t, "ada@example.com", profile.Email)

	// Empty fields stay unchanged
	rec = doRequest(t, srv, http.MethodPut, "/api/users/profile", customer.Token, h{
		"address": "42 Main St",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &profile)
	require.Equal(t, "Ada Lovelace", profile.Name)
	require.Equal(t, "42 Main St", profile.Address)
}

func TestUnknownAPIRouteAnswersJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/does-not-exist", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "API endpoint not found", body["error"])
}

func TestSeedCatalogPopulatesEmptyDatabase(t *testing.T) {
	srv := newTestServer(t)

	seedFile := filepath.Join(t.TempDir(), "catalog.yaml")
	writeTestSeedFile(t, seedFile)

	require.NoError(t, srv.seedCatalog(seedFile))

	rec := doRequest(t, srv, http.MethodGet, "/api/restaurants", "", nil)
	var list []map[string]any
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)

	// Seeding is idempotent once the catalog is non-empty
	require.NoError(t, srv.seedCatalog(seedFile))
	rec = doRequest(t, srv, http.MethodGet, "/api/restaurants", "", nil)
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
}

func TestStaticServingWithSPAFallback(t *testing.T) {
	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte("<html>app</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "app.js"), []byte("console.log(1)"), 0644))

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", PublicDir: publicDir},
		Database: config.DatabaseConfig{
			URL: filepath.Join(t.TempDir(), "test.sqlite"),
		},
		Redis: config.RedisConfig{Address: "localhost:6379"},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-not-for-production",
			AdminEmail:    testAdminEmail,
			AdminPassword: testAdminPassword,
		},
	}
	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)

	// An existing asset is served as-is
	rec := doRequest(t, srv, http.MethodGet, "/app.js", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "console.log(1)", rec.Body.String())

	// Client-side routes fall back to index.html
	rec = doRequest(t, srv, http.MethodGet, "/restaurants/some-client-route", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "app")

	// API misses still answer JSON, never the SPA shell
	rec = doRequest(t, srv, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "API endpoint not found")
}
