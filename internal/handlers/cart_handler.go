package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"artizon/internal/models"
	"artizon/internal/stores"
)

// CartHandler exposes the locally persisted cart to the UI.
type CartHandler struct {
	cart *stores.CartStore
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *stores.CartStore) *CartHandler {
	return &CartHandler{
		cart: cart,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGet)
	cartRoutes.Post("/items", h.HandleAdd)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemove)
	cartRoutes.Delete("/", h.HandleClear)
}

// HandleGet returns the cart snapshot with its derived totals.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items":      h.cart.Items(),
		"total":      h.cart.Total(),
		"item_count": h.cart.ItemCount(),
	})
}

// HandleAdd puts one unit of a product in the cart.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	var item models.CartItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if item.ID == 0 || item.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id and name are required",
		})
	}

	if err := h.cart.Add(item); err != nil {
		log.Printf("Error adding item %d to cart: %v", item.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return h.HandleGet(c)
}

// HandleUpdateQuantity sets the quantity of one cart line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.cart.UpdateQuantity(uint(id), body.Quantity); err != nil {
		log.Printf("Error updating quantity for item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return h.HandleGet(c)
}

// HandleRemove drops one line from the cart.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	if err := h.cart.Remove(uint(id)); err != nil {
		log.Printf("Error removing item %d from cart: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return h.HandleGet(c)
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.cart.Clear(); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
