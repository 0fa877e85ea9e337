package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "platano/internal/log"
	"platano/internal/services"
	"platano/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

type searchRequest struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Handle       string `json:"handle"`
	Q            string `json:"q"`
}

type photoSearchRequest struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Handle       string `json:"handle"`
	PhotoRef     string `json:"photo_ref"`
	Caption      string `json:"caption"`
}

// Search handles POST /search. A hit returns the product card; a miss
// records an inquiry and tells the customer it will be sourced.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	term, ok := validate.Term(req.Q)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": req.Q})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid search term"})
	}

	p, err := h.Catalog.Search(term, services.Requester{ID: req.CustomerID, Name: req.CustomerName, Handle: req.Handle})
	if err != nil {
		applog.Error(c, "search.error", err, map[string]any{"q": term})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not run your search, please retry"})
	}
	if p == nil {
		applog.Info(c, "search.miss", map[string]any{"q": term, "customer_id": req.CustomerID})
		return c.JSON(fiber.Map{
			"found":   false,
			"message": "We don't have that yet. Your request was passed to the operator and we'll get back to you.",
		})
	}

	applog.Info(c, "search.hit", map[string]any{"q": term, "product_id": p.ID})
	return c.JSON(fiber.Map{
		"found": true,
		"product": fiber.Map{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"category":    p.Category,
			"price":       p.ResalePrice,
			"sizes":       p.Sizes,
			"image_url":   p.ImageURL,
		},
	})
}

// SearchByPhoto handles POST /search/photo: always a miss by definition.
func (h *SearchHandler) SearchByPhoto(c *fiber.Ctx) error {
	var req photoSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if req.PhotoRef == "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "photo_ref"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo_ref is required"})
	}

	err := h.Catalog.SearchByImage(
		services.Requester{ID: req.CustomerID, Name: req.CustomerName, Handle: req.Handle},
		req.PhotoRef, req.Caption)
	if err != nil {
		applog.Error(c, "search.photo.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not record your request, please retry"})
	}

	applog.Info(c, "search.photo", map[string]any{"customer_id": req.CustomerID})
	return c.JSON(fiber.Map{
		"found":   false,
		"message": "Photo received. The operator will look for this pair and get back to you.",
	})
}
