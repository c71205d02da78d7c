package gateway

import (
	"context"
	"fmt"
	"net/http"

	"artizon/internal/models"
)

// OrdersAPI groups the order endpoints. All of them require authentication.
type OrdersAPI struct {
	client *Client
}

// NewOrdersAPI creates a new OrdersAPI over the given gateway client.
func NewOrdersAPI(client *Client) *OrdersAPI {
	return &OrdersAPI{
		client: client,
	}
}

// Place submits a new order and returns it with its server-assigned ID.
func (a *OrdersAPI) Place(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	var order models.Order
	err := a.client.RequestJSON(ctx, "/orders/place", Options{
		Method:       http.MethodPost,
		Body:         req,
		RequiresAuth: true,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Mine fetches one page of the caller's own order history.
func (a *OrdersAPI) Mine(ctx context.Context, page, limit int) (*models.OrdersPage, error) {
	var result models.OrdersPage
	err := a.client.RequestJSON(ctx, fmt.Sprintf("/orders/my?page=%d&limit=%d", pageOrDefault(page), limitOrDefault(limit)), Options{
		RequiresAuth: true,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches a single order by ID.
func (a *OrdersAPI) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := a.client.RequestJSON(ctx, fmt.Sprintf("/orders/%d", id), Options{
		RequiresAuth: true,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Vendor fetches one page of orders placed against the caller's listings.
func (a *OrdersAPI) Vendor(ctx context.Context, page, limit int) (*models.OrdersPage, error) {
	var result models.OrdersPage
	err := a.client.RequestJSON(ctx, fmt.Sprintf("/orders/vendor?page=%d&limit=%d", pageOrDefault(page), limitOrDefault(limit)), Options{
		RequiresAuth: true,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateStatus moves an order to a new fulfilment status.
func (a *OrdersAPI) UpdateStatus(ctx context.Context, id uint, status string) error {
	return a.client.RequestJSON(ctx, fmt.Sprintf("/orders/%d/status", id), Options{
		Method:       http.MethodPatch,
		Body:         map[string]string{"status": status},
		RequiresAuth: true,
	}, nil)
}

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func limitOrDefault(limit int) int {
	if limit < 1 {
		return 10
	}
	return limit
}
