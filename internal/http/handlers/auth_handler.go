package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "platano/internal/log"
	"platano/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	token := c.FormValue("token")
	if token == "" {
		token = c.Get("X-Operator-Token")
	}
	if err := h.Auth.Login(sid, token); err != nil {
		applog.Security(c, "auth.login.fail", nil)
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid operator token"})
	}
	applog.Audit(c, "auth.login.success", nil)
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}

// RequireOperator guards the operator routes behind the session registry.
func RequireOperator(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" || !auth.LoggedIn(sid) {
			applog.Security(c, "access.denied.operator", nil)
			if c.Accepts("html", "json") == "json" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "operator login required"})
			}
			return c.Redirect("/login")
		}
		return c.Next()
	}
}
