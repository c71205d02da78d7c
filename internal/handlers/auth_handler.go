package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artizon/internal/gateway"
	"artizon/internal/models"
	"artizon/internal/session"
	"artizon/internal/stores"
)

// AuthHandler exposes the session lifecycle to the UI: login, signup, logout
// and the current session state.
type AuthHandler struct {
	auth     *gateway.AuthAPI
	session  *session.Manager
	orders   *stores.OrdersStore
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *gateway.AuthAPI, sessionManager *session.Manager, orders *stores.OrdersStore) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		session:  sessionManager,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the auth routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/session", h.HandleSession)
}

// HandleLogin exchanges credentials for a token, persists it and resolves the
// profile so the UI gets the full session state back in one round trip.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	authSession, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return respondError(c, "Login failed", err)
	}
	if err := h.session.SetToken(authSession.AccessToken); err != nil {
		log.Printf("Error persisting credential: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not persist session",
			"error":   err.Error(),
		})
	}
	if err := h.session.Initialize(c.Context()); err != nil {
		log.Printf("Error resolving profile after login: %v", err)
		return respondError(c, "Login failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    h.session.User(),
	})
}

// HandleSignup registers a new account. It does not sign the account in; the
// UI sends the user through login afterwards.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.auth.Signup(c.Context(), req)
	if err != nil {
		log.Printf("Error during signup for %s: %v", req.Email, err)
		return respondError(c, "Signup failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"user":    user,
	})
}

// HandleLogout clears the session and resets order state.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.session.Logout()
	h.orders.Reset()
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleSession reports the current session state for the UI to observe.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"authenticated": h.session.IsAuthenticated(),
		"user":          h.session.User(),
		"is_vendor":     h.session.IsVendor(),
		"is_customer":   h.session.IsCustomer(),
	})
}
