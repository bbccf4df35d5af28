package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/forkline-dev/forkline/internal/client/gateway"
	"github.com/forkline-dev/forkline/internal/client/session"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

// newTestClient wires a client against a handler-backed server and returns
// the session store feeding the gateway's token source.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Store, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewMemoryBackend())
	gw := gateway.New(server.URL, store, zerolog.Nop())
	return New(gw, store), store, server
}

func jsonHandler(status int, body string, record *recordedRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if record != nil {
			record.method = r.Method
			record.path = r.URL.Path
			json.NewDecoder(r.Body).Decode(&record.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestLoginRecordsSession(t *testing.T) {
	var rec recordedRequest
	client, store, _ := newTestClient(t, jsonHandler(http.StatusOK,
		`{"token":"tok-1","user":{"id":"u1","name":"Ada","email":"ada@example.com","role":"admin"}}`, &rec))

	res, err := client.Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if rec.method != http.MethodPost || rec.path != "/auth/login" {
		t.Errorf("request = %s %s, want POST /auth/login", rec.method, rec.path)
	}
	if rec.body["email"] != "ada@example.com" || rec.body["password"] != "secret" {
		t.Errorf("credentials body = %v", rec.body)
	}

	if res.Token != "tok-1" {
		t.Errorf("token = %q, want tok-1", res.Token)
	}

	token, ok := store.Token()
	if !ok || token != "tok-1" {
		t.Errorf("stored token = %q, %v, want tok-1, true", token, ok)
	}
	if !store.IsAdmin() {
		t.Error("admin role should be recorded")
	}
}

func TestRegisterRecordsSession(t *testing.T) {
	var rec recordedRequest
	client, store, _ := newTestClient(t, jsonHandler(http.StatusCreated,
		`{"token":"tok-2","user":{"id":"u2","name":"Bob","email":"bob@example.com","role":"customer"}}`, &rec))

	_, err := client.Register(context.Background(), RegisterInput{
		Name: "Bob", Email: "bob@example.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if rec.method != http.MethodPost || rec.path != "/auth/register" {
		t.Errorf("request = %s %s, want POST /auth/register", rec.method, rec.path)
	}
	if !store.IsAuthenticated() {
		t.Error("register should record the session")
	}
}

func TestAuthResponseWithoutTokenLeavesStoreUntouched(t *testing.T) {
	client, store, _ := newTestClient(t, jsonHandler(http.StatusOK,
		`{"user":{"id":"u1","name":"Ada"}}`, nil))

	if _, err := client.Login(context.Background(), "a@b.c", "x"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("missing token must not record a session")
	}
}

func TestAuthResponseWithoutUserLeavesStoreUntouched(t *testing.T) {
	client, store, _ := newTestClient(t, jsonHandler(http.StatusOK, `{"token":"tok-1"}`, nil))

	if _, err := client.Login(context.Background(), "a@b.c", "x"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("missing user must not record a session")
	}
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	client, store, _ := newTestClient(t, jsonHandler(http.StatusUnauthorized,
		`{"error":"Invalid email or password"}`, nil))

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	if err == nil || err.Error() != "Invalid email or password" {
		t.Errorf("error = %v, want 'Invalid email or password'", err)
	}
	if store.IsAuthenticated() {
		t.Error("failed login must not record a session")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	client, store, _ := newTestClient(t, jsonHandler(http.StatusOK,
		`{"token":"tok-1","user":{"id":"u1"}}`, nil))

	if _, err := client.Login(context.Background(), "a@b.c", "x"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	client.Logout()

	if store.IsAuthenticated() {
		t.Error("logout should clear the session")
	}
}

func TestRestaurantsBinding(t *testing.T) {
	var rec recordedRequest
	client, _, _ := newTestClient(t, jsonHandler(http.StatusOK,
		`[{"id":"r1","name":"Trattoria","cuisine":"Italian","rating":4.5}]`, &rec))

	restaurants, err := client.Restaurants(context.Background())
	if err != nil {
		t.Fatalf("Restaurants failed: %v", err)
	}

	if rec.method != http.MethodGet || rec.path != "/restaurants" {
		t.Errorf("request = %s %s, want GET /restaurants", rec.method, rec.path)
	}
	if len(restaurants) != 1 || restaurants[0].Name != "Trattoria" {
		t.Errorf("restaurants = %+v", restaurants)
	}
}

func TestMenuBinding(t *testing.T) {
	var rec recordedRequest
	client, _, _ := newTestClient(t, jsonHandler(http.StatusOK, `[]`, &rec))

	if _, err := client.Menu(context.Background(), "r1"); err != nil {
		t.Fatalf("Menu failed: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/menu/r1" {
		t.Errorf("request = %s %s, want GET /menu/r1", rec.method, rec.path)
	}
}

func TestPlaceOrderBinding(t *testing.T) {
	var rec recordedRequest
	client, _, _ := newTestClient(t, jsonHandler(http.StatusCreated,
		`{"id":"o1","status":"pending","total":21.5}`, &rec))

	order, err := client.PlaceOrder(context.Background(), OrderInput{
		RestaurantID:    "r1",
		Items:           []OrderItemInput{{MenuItemID: "m1", Quantity: 2}},
		DeliveryAddress: "42 Main St",
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if rec.method != http.MethodPost || rec.path != "/orders" {
		t.Errorf("request = %s %s, want POST /orders", rec.method, rec.path)
	}
	if rec.body["restaurant_id"] != "r1" || rec.body["delivery_address"] != "42 Main St" {
		t.Errorf("order body = %v", rec.body)
	}
	if order.Status != "pending" || order.Total != 21.5 {
		t.Errorf("order = %+v", order)
	}
}

func TestMyOrdersBinding(t *testing.T) {
	var rec recordedRequest
	client, _, _ := newTestClient(t, jsonHandler(http.StatusOK, `[]`, &rec))

	if _, err := client.MyOrders(context.Background()); err != nil {
		t.Fatalf("MyOrders failed: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/orders/my-orders" {
		t.Errorf("request = %s %s, want GET /orders/my-orders", rec.method, rec.path)
	}
}

func TestDeleteRestaurantToleratesEmptyBody(t *testing.T) {
	var rec recordedRequest
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		// Confirmation with no JSON body
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteRestaurant(context.Background(), "r1"); err != nil {
		t.Fatalf("DeleteRestaurant failed: %v", err)
	}
	if rec.method != http.MethodDelete || rec.path != "/restaurants/r1" {
		t.Errorf("request = %s %s, want DELETE /restaurants/r1", rec.method, rec.path)
	}
}

func TestProfileBinding(t *testing.T) {
	var rec recordedRequest
	client, _, _ := newTestClient(t, jsonHandler(http.StatusOK,
		`{"id":"u1","name":"Ada","email":"ada@example.com","role":"customer"}`, &rec))

	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/users/profile" {
		t.Errorf("request = %s %s, want GET /users/profile", rec.method, rec.path)
	}
	if profile.Email != "ada@example.com" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestUpdateProfileBinding(t *testing.T) {
	var rec recordedRequest
	client, _, _ := newTestClient(t, jsonHandler(http.StatusOK,
		`{"id":"u1","name":"Ada Lovelace"}`, &rec))

	_, err := client.UpdateProfile(context.Background(), ProfileInput{Name: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/users/profile" {
		t.Errorf("request = %s %s, want PUT /users/profile", rec.method, rec.path)
	}
	if rec.body["name"] != "Ada Lovelace" {
		t.Errorf("body = %v", rec.body)
	}
}

func TestAuthenticatedCallCarriesRecordedToken(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", jsonHandler(http.StatusOK,
		`{"token":"tok-9","user":{"id":"u1"}}`, nil))
	mux.HandleFunc("/orders/my-orders", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	client, _, _ := newTestClient(t, mux.ServeHTTP)

	if _, err := client.Login(context.Background(), "a@b.c", "x"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := client.MyOrders(context.Background()); err != nil {
		t.Fatalf("MyOrders failed: %v", err)
	}

	if gotAuth != "Bearer tok-9" {
		t.Errorf("Authorization = %q, want 'Bearer tok-9'", gotAuth)
	}
}
