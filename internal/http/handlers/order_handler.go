package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "platano/internal/log"
	"platano/internal/services"
	"platano/internal/validate"
)

type OrderHandler struct {
	Catalog *services.CatalogService
}

type orderRequest struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	ProductID    int64  `json:"product_id"`
	Size         string `json:"size"`
}

// Place handles POST /orders: the customer picked a size on a found product.
// The final price is the product's resale price at call time.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if req.ProductID <= 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product_id is required"})
	}
	size := strings.TrimSpace(req.Size)
	if size == "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "size"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "size is required"})
	}

	p, err := h.Catalog.GetProduct(req.ProductID)
	if err != nil {
		applog.Error(c, "order.product.load", err, map[string]any{"product_id": req.ProductID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not place your order, please retry"})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this item is no longer available"})
	}

	id, err := h.Catalog.PlaceOrder(services.Requester{ID: req.CustomerID, Name: req.CustomerName}, *p, size)
	if err != nil {
		applog.Error(c, "order.place.fail", err, map[string]any{"product_id": p.ID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not place your order, please retry"})
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": id, "product_id": p.ID, "size": size, "price": p.ResalePrice})
	return c.JSON(fiber.Map{
		"order_id": id,
		"product":  p.Name,
		"size":     size,
		"price":    p.ResalePrice,
		"status":   "pending",
	})
}

// Detail handles GET /product/:id for display after a hit.
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		applog.Error(c, "product.load", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	if p == nil || !p.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this item is no longer available"})
	}
	return c.JSON(fiber.Map{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.ResalePrice,
		"sizes":       p.Sizes,
		"image_url":   p.ImageURL,
	})
}
