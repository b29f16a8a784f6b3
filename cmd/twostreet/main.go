package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"twostreet/internal/config"
	"twostreet/internal/http/handlers"
	applog "twostreet/internal/log"
	"twostreet/internal/repos"
	"twostreet/internal/services"
	"twostreet/internal/store"
)

func main() {
	_ = godotenv.Load()

	if os.Getenv("APP_ENV") == "production" && os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	dataStore, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(dataStore)
	listingRepo := repos.NewListingRepo(dataStore)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)

	// Consistency pass runs before the server listens, so the first catalog
	// query always sees corrected data.
	integrity := services.NewIntegrityService(userRepo, listingRepo)
	res, err := integrity.Run()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[integrity] orphans_removed=%d images_normalized=%d", res.OrphansRemoved, res.ImagesNormalized)

	app := fiber.New(fiber.Config{
		BodyLimit: 16 << 20, // room for three 5 MiB images per create
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": "Server error"})
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// ---------- Static uploads ----------
	app.Static("/uploads", cfg.UploadDir)

	// ---------- Routes ----------
	deps := handlers.NewDeps(dataStore, cfg, authSvc)
	requireUser := handlers.RequireUser(authSvc)

	auth := app.Group("/api/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
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

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	log.Fatal(app.Listen(":" + cfg.Port))
}
