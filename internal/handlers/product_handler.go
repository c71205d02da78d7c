package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"artizon/internal/gateway"
)

// ProductHandler proxies catalog reads to the backend for the UI.
type ProductHandler struct {
	api *gateway.ProductsAPI
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(api *gateway.ProductsAPI) *ProductHandler {
	return &ProductHandler{
		api: api,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/my", h.HandleMine)
	productRoutes.Get("/:id", h.HandleGet)
}

// HandleList returns one page of the public catalog.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.api.List(c.Context(), page, limit)
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(result)
}

// HandleMine returns one page of the signed-in vendor's listings.
func (h *ProductHandler) HandleMine(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.api.Mine(c.Context(), page, limit)
	if err != nil {
		log.Printf("Error fetching own products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(result)
}

// HandleGet returns a single listing.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	product, err := h.api.Get(c.Context(), uint(id))
	if err != nil {
		log.Printf("Error fetching product %d: %v", id, err)
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}
