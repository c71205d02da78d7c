package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artizon/internal/gateway"
	"artizon/internal/models"
	"artizon/internal/stores"
)

// OrderHandler exposes the order history and placement flow to the UI. List
// and detail reads go through the orders store so the UI observes its
// loading/error state; the vendor-side endpoints call the gateway directly.
type OrderHandler struct {
	store    *stores.OrdersStore
	api      *gateway.OrdersAPI
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store *stores.OrdersStore, api *gateway.OrdersAPI) *OrderHandler {
	return &OrderHandler{
		store:    store,
		api:      api,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleList)
	orderRoutes.Post("/", h.HandlePlace)
	orderRoutes.Get("/vendor", h.HandleVendorList)
	orderRoutes.Get("/:id", h.HandleGetByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateStatus)
}

// HandleList fetches one page of the caller's order history and returns the
// store snapshot. A fetch failure degrades to the snapshot's error field, it
// does not fail the request.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	h.store.FetchOrders(c.Context(), page, limit)

	return c.JSON(fiber.Map{
		"orders":      h.store.Orders(),
		"page":        h.store.Page(),
		"total_pages": h.store.TotalPages(),
		"total":       h.store.Total(),
		"error":       h.store.Error(),
	})
}

// HandleGetByID fetches one order's detail into the store and returns it.
func (h *OrderHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	h.store.FetchOrderByID(c.Context(), uint(id))

	return c.JSON(fiber.Map{
		"order": h.store.CurrentOrder(),
		"error": h.store.Error(),
	})
}

// HandlePlace submits a new order. Unlike the reads, a placement failure is
// answered as a failed request, since the UI flow depends on the outcome.
func (h *OrderHandler) HandlePlace(c *fiber.Ctx) error {
	var req models.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.store.PlaceOrder(c.Context(), req)
	if err != nil {
		log.Printf("Error placing order: %v", err)
		return respondError(c, "Could not place order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleVendorList fetches one page of orders against the caller's listings.
func (h *OrderHandler) HandleVendorList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.api.Vendor(c.Context(), page, limit)
	if err != nil {
		log.Printf("Error fetching vendor orders: %v", err)
		return respondError(c, "Could not retrieve vendor orders", err)
	}
	return c.JSON(result)
}

// HandleUpdateStatus moves an order to a new fulfilment status.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	}

	if err := h.api.UpdateStatus(c.Context(), uint(id), body.Status); err != nil {
		log.Printf("Error updating status for order %d: %v", id, err)
		return respondError(c, "Could not update order status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
	})
}
