package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "platano/internal/log"
	"platano/internal/metrics"
)

// NewClientApp builds the customer-facing surface: stateless JSON handlers
// for search, photo inquiry and order placement. One bad message cannot take
// the loop down; the recover middleware isolates each request.
func NewClientApp(deps *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong, please try again"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	app.Post("/search", deps.Search.Search)
	app.Post("/search/photo", deps.Search.SearchByPhoto)
	app.Post("/orders", deps.Order.Place)
	app.Get("/product/:id", deps.Order.Detail)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	return app
}

// NewOperatorApp builds the operator-facing surface: login, the add-product
// command, inquiry and order listings, a dashboard page and /metrics.
func NewOperatorApp(deps *Deps, auth fiber.Handler, templatesDir string) *fiber.App {
	engine := html.New(templatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Everything below requires an operator session.
	app.Use(auth)
	app.Get("/", deps.Operator.Dashboard)
	app.Post("/products", deps.Operator.AddProduct)
	app.Get("/inquiries", deps.Operator.Inquiries)
	app.Get("/orders", deps.Operator.Orders)
	app.Get("/metrics", metrics.Handler())

	return app
}
