package stores

import (
	"context"
	"errors"
	"log"
	"sync"

	"artizon/internal/gateway"
	"artizon/internal/models"
)

// OrdersAPI is what the orders store needs from the gateway.
type OrdersAPI interface {
	Place(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error)
	Mine(ctx context.Context, page, limit int) (*models.OrdersPage, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
}

// EventPublisher announces placed orders to downstream consumers. May be
// absent; publication is best effort either way.
type EventPublisher interface {
	PublishOrderPlaced(order *models.Order) error
}

// OrdersStore maintains the fetched order history and the placement flow.
//
// Fetch operations fold failures into the store's error field; placement
// additionally re-raises, because the caller's flow depends on the outcome.
// Concurrent fetches are not serialized: the last response to resolve wins.
type OrdersStore struct {
	api    OrdersAPI
	events EventPublisher

	mu           sync.Mutex
	orders       []models.Order
	currentOrder *models.Order
	loading      bool
	err          string
	page         int
	totalPages   int
	total        int
}

// NewOrdersStore creates an OrdersStore in its initial idle state. events may
// be nil when no broker is configured.
func NewOrdersStore(api OrdersAPI, events EventPublisher) *OrdersStore {
	return &OrdersStore{
		api:        api,
		events:     events,
		page:       1,
		totalPages: 1,
	}
}

// FetchOrders replaces the order list and pagination fields with one page of
// the caller's order history. Failures land in the error field.
func (s *OrdersStore) FetchOrders(ctx context.Context, page, limit int) {
	s.beginOperation()
	defer s.endOperation()

	result, err := s.api.Mine(ctx, page, limit)
	if err != nil {
		s.setError(err, "Failed to fetch orders")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = result.Orders
	s.page = result.Page
	s.totalPages = result.TotalPages
	s.total = result.Total
}

// FetchOrderByID populates the current order detail. Failures land in the
// error field.
func (s *OrdersStore) FetchOrderByID(ctx context.Context, id uint) {
	s.beginOperation()
	defer s.endOperation()

	order, err := s.api.Get(ctx, id)
	if err != nil {
		s.setError(err, "Failed to fetch order details")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentOrder = order
}

// PlaceOrder submits a new order. On success the created order is prepended
// to the list and returned; on failure the error field is set and the error
// is returned to the caller as well.
func (s *OrdersStore) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	s.beginOperation()
	defer s.endOperation()

	order, err := s.api.Place(ctx, req)
	if err != nil {
		s.setError(err, "Failed to place order")
		return nil, err
	}

	s.mu.Lock()
	s.orders = append([]models.Order{*order}, s.orders...)
	s.total++
	s.mu.Unlock()

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(order); err != nil {
			log.Printf("Warning: failed to publish order placed event for order %d: %v", order.ID, err)
		}
	}
	return order, nil
}

// ClearError clears the last failure message.
func (s *OrdersStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Reset returns every field to its initial empty, idle value. Used on logout
// or when navigating away from an order-scoped view.
func (s *OrdersStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = nil
	s.currentOrder = nil
	s.loading = false
	s.err = ""
	s.page = 1
	s.totalPages = 1
	s.total = 0
}

// Orders returns a copy of the current page's orders.
func (s *OrdersStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]models.Order, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// CurrentOrder returns the fetched order detail, or nil.
func (s *OrdersStore) CurrentOrder() *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentOrder
}

// Loading reports whether an operation is in flight.
func (s *OrdersStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the last failure message, or the empty string.
func (s *OrdersStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Page returns the current page number.
func (s *OrdersStore) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// TotalPages returns the total number of pages.
func (s *OrdersStore) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPages
}

// Total returns the total number of orders.
func (s *OrdersStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// beginOperation marks the store in flight and clears the previous error.
func (s *OrdersStore) beginOperation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

// endOperation clears the in-flight mark regardless of outcome.
func (s *OrdersStore) endOperation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// setError records a failure message, preferring the backend-supplied one.
func (s *OrdersStore) setError(err error, fallback string) {
	message := fallback
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = message
	log.Printf("%s: %v", fallback, err)
}
