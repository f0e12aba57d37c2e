package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"cocobloom/internal/config"
	"cocobloom/internal/http/handlers"
	"cocobloom/internal/repos"
	"cocobloom/internal/services"
)

func today() string { return time.Now().Format("2006-01-02") }

// Minimal app with the storefront state routes wired like production.
func newStoreApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", MediaDir: "../../web/media"}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/v1/")
		},
	}))

	deps := handlers.NewDeps(db, cfg, authSvc)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/search", deps.SearchHandler.Search)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/qty", deps.CartHandler.UpdateQty)
	app.Get("/compare", deps.CompareHandler.Panel)
	app.Post("/compare", deps.CompareHandler.Add)
	api := app.Group("/api/v1")
	api.Post("/offers/:id/view", deps.OfferHandler.View)
	api.Post("/offers/:id/click", deps.OfferHandler.Click)

	return app, db
}

func postForm(t *testing.T, app *fiber.App, path, form string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestCartFlowOverHTTP(t *testing.T) {
	app, _ := newStoreApp(t)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookieAuth(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}

	// anonymous add bounces to login
	respAnon := postForm(t, app, "/cart", "csrf="+csrfTok+"&productId=p-mango-milk", csrfCookie)
	if respAnon.StatusCode != http.StatusFound || respAnon.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous add should redirect to /login, got %d -> %s",
			respAnon.StatusCode, respAnon.Header.Get("Location"))
	}

	respAuth := postForm(t, app, "/login",
		"csrf="+csrfTok+"&email=meera@cocobloom.test&password=Passw0rd!", csrfCookie)
	if respAuth.StatusCode != http.StatusFound {
		t.Fatalf("login failed: %d", respAuth.StatusCode)
	}
	sid := extractCookieAuth(respAuth, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing")
	}
	sidCookie := &http.Cookie{Name: "sid", Value: sid}

	respAdd := postForm(t, app, "/cart", "csrf="+csrfTok+"&productId=p-mango-milk", csrfCookie, sidCookie)
	if respAdd.StatusCode != http.StatusFound {
		t.Fatalf("add to cart failed: %d", respAdd.StatusCode)
	}

	// unknown product -> 404
	resp404 := postForm(t, app, "/cart", "csrf="+csrfTok+"&productId=p-ghost", csrfCookie, sidCookie)
	if resp404.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product should 404, got %d", resp404.StatusCode)
	}

	reqView := httptest.NewRequest("GET", "/cart", nil)
	reqView.AddCookie(sidCookie)
	respView, err := app.Test(reqView)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(respView.Body)
	if !strings.Contains(string(body), "Mango Milk") {
		t.Fatalf("cart page missing added item; body=%s", body)
	}
}

func TestCompareLimitOverHTTP(t *testing.T) {
	app, _ := newStoreApp(t)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookieAuth(respLogin, "csrf_")
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}
	sidCookie := &http.Cookie{Name: "sid", Value: "sid-compare"}

	// compare works without sign-in; fill the tray past its limit
	for _, pid := range []string{"p-mango-milk", "p-dark-70", "p-hazel-white", "p-sea-salt"} {
		resp := postForm(t, app, "/compare", "csrf="+csrfTok+"&productId="+pid, csrfCookie, sidCookie)
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("compare add %s: %d", pid, resp.StatusCode)
		}
	}

	reqPanel := httptest.NewRequest("GET", "/compare", nil)
	reqPanel.AddCookie(sidCookie)
	respPanel, err := app.Test(reqPanel)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(respPanel.Body)
	s := string(body)
	if !strings.Contains(s, "Hazelnut White") {
		t.Fatalf("third product missing from panel; body=%s", s)
	}
	if strings.Contains(s, "Sea Salt") {
		t.Fatalf("fourth product must be rejected; body=%s", s)
	}
	if !strings.Contains(s, "up to 3") {
		t.Fatalf("limit notice missing; body=%s", s)
	}
}

func TestOfferBeaconsAlways204(t *testing.T) {
	app, db := newStoreApp(t)
	statsRepo := repos.NewAnalyticsRepo(db)

	// beacons skip the CSRF check; no form token needed
	for _, path := range []string{
		"/api/v1/offers/of-trio/view",
		"/api/v1/offers/of-trio/view", // duplicate view, same sid
		"/api/v1/offers/of-trio/click",
	} {
		req := httptest.NewRequest("POST", path, nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-beacon"})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("%s: want 204, got %d", path, resp.StatusCode)
		}
	}

	s, err := statsRepo.ForDay("of-trio", today())
	if err != nil {
		t.Fatal(err)
	}
	if s.Views != 1 || s.Clicks != 1 {
		t.Fatalf("want views=1 clicks=1, got %+v", s)
	}

	// malformed offer ids are swallowed, never an error page
	req := httptest.NewRequest("POST", "/api/v1/offers/%2e%2e/view", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("bad id beacon: want 204, got %d", resp.StatusCode)
	}
}
