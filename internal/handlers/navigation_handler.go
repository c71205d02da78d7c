package handlers

import (
	"github.com/gofiber/fiber/v2"

	"artizon/internal/router"
)

// NavigationHandler lets the UI ask the route guard whether a navigation is
// allowed before rendering the target view.
type NavigationHandler struct {
	guard *router.Guard
}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler(guard *router.Guard) *NavigationHandler {
	return &NavigationHandler{
		guard: guard,
	}
}

// RegisterRoutes registers the navigation routes with the Fiber app.
func (h *NavigationHandler) RegisterRoutes(route fiber.Router) {
	route.Get("/navigate", h.HandleNavigate)
	route.Post("/navigate/ready", h.HandleReady)
}

// HandleNavigate evaluates one navigation attempt.
func (h *NavigationHandler) HandleNavigate(c *fiber.Ctx) error {
	target := c.Query("to")
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'to' is required",
		})
	}

	decision := h.guard.Authorize(c.Context(), target)
	return c.JSON(fiber.Map{
		"allowed":     decision.Allowed,
		"redirect_to": decision.RedirectTo,
	})
}

// HandleReady marks the UI as loaded cleanly, clearing the one-shot reload
// flag.
func (h *NavigationHandler) HandleReady(c *fiber.Ctx) error {
	h.guard.Ready()
	return c.JSON(fiber.Map{
		"message": "Ready",
	})
}
