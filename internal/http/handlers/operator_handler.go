package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "platano/internal/log"
	"platano/internal/services"
)

type OperatorHandler struct {
	Catalog *services.CatalogService
}

// Dashboard renders pending inquiries and recent orders for the operator.
func (h *OperatorHandler) Dashboard(c *fiber.Ctx) error {
	inqs, err := h.Catalog.PendingInquiries()
	if err != nil {
		applog.Error(c, "operator.inquiries.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load inquiries"})
	}
	orders, err := h.Catalog.RecentOrders(25)
	if err != nil {
		applog.Error(c, "operator.orders.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return c.Render("dashboard", fiber.Map{"Inquiries": inqs, "Orders": orders})
}

// AddProduct handles POST /products. The body carries the structured
// command: 6 pipe-delimited fields. Accepts JSON {"command": ...}, a form
// value, or the raw body. Validation messages go back to the operator
// verbatim.
func (h *OperatorHandler) AddProduct(c *fiber.Ctx) error {
	raw := commandFromRequest(c)
	if strings.TrimSpace(raw) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty command; expected name|description|category|sizes|source price|resale price"})
	}

	fields, err := services.ParseAddCommand(raw)
	if err == nil {
		var res services.AddResult
		res, err = h.Catalog.AddProduct(fields)
		if err == nil {
			applog.Audit(c, "product.add", map[string]any{"product_id": res.ID, "name": fields.Name, "margin": res.Margin})
			return c.JSON(fiber.Map{"id": res.ID, "name": fields.Name, "margin": res.Margin})
		}
	}

	if services.IsValidation(err) {
		applog.Security(c, "product.add.invalid", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Error(c, "product.add.fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save the product, please retry"})
}

// Inquiries handles GET /inquiries: pending inquiries, newest first.
func (h *OperatorHandler) Inquiries(c *fiber.Ctx) error {
	inqs, err := h.Catalog.PendingInquiries()
	if err != nil {
		applog.Error(c, "operator.inquiries.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load inquiries"})
	}
	out := make([]fiber.Map, 0, len(inqs))
	for _, q := range inqs {
		out = append(out, fiber.Map{
			"id":            q.ID,
			"customer_id":   q.CustomerID,
			"customer_name": q.CustomerName,
			"handle":        q.Handle,
			"term":          q.Term,
			"description":   q.Description,
			"photo_ref":     q.PhotoRef,
			"status":        q.Status,
			"created_at":    q.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"inquiries": out, "count": len(out)})
}

// Orders handles GET /orders: the latest ledger entries.
func (h *OperatorHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.Catalog.RecentOrders(100)
	if err != nil {
		applog.Error(c, "operator.orders.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	out := make([]fiber.Map, 0, len(orders))
	for _, o := range orders {
		m := fiber.Map{
			"id":            o.ID,
			"customer_id":   o.CustomerID,
			"customer_name": o.CustomerName,
			"product_name":  o.ProductName,
			"size":          o.Size,
			"price":         o.Price,
			"status":        o.Status,
			"created_at":    o.CreatedAt,
		}
		if o.ProductID.Valid {
			m["product_id"] = o.ProductID.Int64
		}
		out = append(out, m)
	}
	return c.JSON(fiber.Map{"orders": out, "count": len(out)})
}

func commandFromRequest(c *fiber.Ctx) string {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var body struct {
			Command string `json:"command"`
		}
		if err := c.BodyParser(&body); err == nil && body.Command != "" {
			return body.Command
		}
		return ""
	}
	if v := c.FormValue("command"); v != "" {
		return v
	}
	return string(c.Body())
}
