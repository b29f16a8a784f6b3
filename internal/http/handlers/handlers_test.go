package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"twostreet/internal/config"
	"twostreet/internal/http/handlers"
	"twostreet/internal/repos"
	"twostreet/internal/services"
	"twostreet/internal/store"
)

// newTestApp wires the real handlers over a throwaway snapshot file, with the
// same route map as main minus the login limiter.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Config{
		DataFile:  filepath.Join(dir, "data.json"),
		UploadDir: filepath.Join(dir, "uploads"),
		JWTSecret: "test-secret",
	}
	st, err := store.Open(cfg.DataFile)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		t.Fatal(err)
	}

	userRepo := repos.NewUserRepo(st)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)
	deps := handlers.NewDeps(st, cfg, authSvc)
	requireUser := handlers.RequireUser(authSvc)

	app := fiber.New()

	auth := app.Group("/api/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", deps.AuthHandler.Login)
	auth.Get("/me", requireUser, deps.AuthHandler.Me)

	listings := app.Group("/api/listings")
	listings.Get("/", deps.ListingHandler.Search)
	listings.Get("/:id", deps.ListingHandler.Detail)
	listings.Get("/:id/seller-listings", deps.ListingHandler.SellerListings)
	listings.Post("/", requireUser, deps.ListingHandler.Create)
	listings.Put("/:id", requireUser, deps.ListingHandler.Update)
	listings.Delete("/:id", requireUser, deps.ListingHandler.Delete)
	listings.Patch("/:id/sold", requireUser, deps.ListingHandler.MarkSold)
	listings.Post("/:id/report", requireUser, deps.ListingHandler.Report)

	users := app.Group("/api/users")
	users.Get("/profile", requireUser, deps.UserHandler.Profile)
	users.Put("/profile", requireUser, deps.UserHandler.UpdateProfile)
	users.Get("/my-listings", requireUser, deps.UserHandler.MyListings)
	users.Get("/:id", deps.UserHandler.PublicProfile)

	admin := app.Group("/api/admin", requireUser, handlers.RequireAdmin())
	admin.Get("/users", deps.AdminHandler.UsersPage)
	admin.Get("/listings", deps.AdminHandler.ListingsPage)
	admin.Delete("/listings/:id", deps.AdminHandler.DeleteListing)
	admin.Patch("/listings/:id/approve", deps.AdminHandler.ApproveListing)
	admin.Patch("/users/:id/ban", deps.AdminHandler.BanUser)
	admin.Patch("/users/:id/unban", deps.AdminHandler.UnbanUser)
	admin.Get("/stats", deps.AdminHandler.StatsPage)
	admin.Get("/reports", deps.AdminHandler.ReportsPage)
	admin.Patch("/reports/:id/status", deps.AdminHandler.UpdateReportStatus)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatal("login returned no token")
	}
	return body.Token
}
