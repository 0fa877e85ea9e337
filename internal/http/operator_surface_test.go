package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"platano/internal/http/handlers"
	"platano/internal/services"
	"platano/internal/store"

	"github.com/gofiber/fiber/v2"
)

const operatorToken = "test-operator-token"

func newOperatorApp(t *testing.T) (*fiber.App, *services.CatalogService) {
	t.Helper()
	st, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	catalog := services.NewCatalogService(st, nil)
	auth, err := services.NewAuthService(operatorToken)
	if err != nil {
		t.Fatal(err)
	}
	deps := handlers.NewDeps(catalog, auth)
	return handlers.NewOperatorApp(deps, handlers.RequireOperator(auth), "../../web/templates"), catalog
}

func sidCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	return nil
}

func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	form := strings.NewReader("token=" + operatorToken)
	req := httptest.NewRequest("POST", "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect after login, got %d", resp.StatusCode)
	}
	sid := sidCookie(resp)
	if sid == nil {
		t.Fatal("no sid cookie set")
	}
	return sid
}

func TestOperatorRoutesRequireLogin(t *testing.T) {
	app, _ := newOperatorApp(t)

	req := httptest.NewRequest("GET", "/inquiries", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for JSON clients, got %d", resp.StatusCode)
	}

	// browser clients get bounced to the login form
	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect to login, got %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadToken(t *testing.T) {
	app, _ := newOperatorApp(t)
	form := strings.NewReader("token=not-the-token")
	req := httptest.NewRequest("POST", "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}

func TestAddProductCommand(t *testing.T) {
	app, catalog := newOperatorApp(t)
	sid := login(t, app)

	body := `{"command":"Air Jordan 4 | Retro white cement | Jordan | 40,41,42 | 75.95 | 125.00"}`
	req := httptest.NewRequest("POST", "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	margin := out["margin"].(float64)
	if margin < 64.5 || margin > 64.7 {
		t.Fatalf("want margin near 64.6, got %v", margin)
	}

	p, err := catalog.Search("air jordan", services.Requester{ID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.ResalePrice != 125.00 {
		t.Fatalf("product not searchable after add: %+v", p)
	}
}

func TestAddProductValidationSurfacesVerbatim(t *testing.T) {
	app, catalog := newOperatorApp(t)
	sid := login(t, app)

	cases := []string{
		`{"command":"too | few | fields"}`,
		`{"command":"Name | desc | cat | 40 | not-a-price | 125.00"}`,
		`{"command":"Name | desc | cat | 40 | 75.95 | 125.00 | extra"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest("POST", "/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(sid)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: want 400, got %d", body, resp.StatusCode)
		}
		var out map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if out["error"] == "" {
			t.Fatalf("%s: validation message must reach the operator", body)
		}
	}

	// no partial writes
	if p, _ := catalog.Search("name", services.Requester{ID: 1}); p != nil {
		t.Fatalf("rejected commands must not write rows, found %+v", p)
	}
}

func TestInquiriesAndOrdersListings(t *testing.T) {
	app, catalog := newOperatorApp(t)
	sid := login(t, app)

	// one miss, one order
	if _, err := catalog.Search("yeezy", services.Requester{ID: 7, Name: "Marc"}); err != nil {
		t.Fatal(err)
	}
	res, err := catalog.AddProduct(services.ProductFields{Name: "Air Jordan 4", SourcePrice: 75.95, ResalePrice: 125})
	if err != nil {
		t.Fatal(err)
	}
	p, _ := catalog.GetProduct(res.ID)
	if _, err := catalog.PlaceOrder(services.Requester{ID: 7, Name: "Marc"}, *p, "42"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/inquiries", nil)
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var inqs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&inqs); err != nil {
		t.Fatal(err)
	}
	if inqs["count"].(float64) != 1 {
		t.Fatalf("want 1 pending inquiry, got %v", inqs)
	}

	req = httptest.NewRequest("GET", "/orders", nil)
	req.AddCookie(sid)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var orders map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		t.Fatal(err)
	}
	if orders["count"].(float64) != 1 {
		t.Fatalf("want 1 order, got %v", orders)
	}
}

func TestDashboardRenders(t *testing.T) {
	app, _ := newOperatorApp(t)
	sid := login(t, app)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}
