package models

// OrderItem represents a single line of a placed order.
type OrderItem struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
}

// Order represents a placed order as returned by the backend. Orders are
// created only by placement; the client never mutates one after the fact.
type Order struct {
	ID              uint        `json:"id"`
	CustomerID      uint        `json:"customer_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	Status          string      `json:"status"`
	CreatedAtUTC    string      `json:"created_at_utc"`
}

// PlaceOrderItem identifies one product and quantity in a placement request.
type PlaceOrderItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest is the payload for POST /orders/place.
type PlaceOrderRequest struct {
	Items           []PlaceOrderItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string           `json:"shipping_address" validate:"required"`
}

// OrdersPage is one page of the caller's order history.
type OrdersPage struct {
	Orders     []Order `json:"orders"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Total      int     `json:"total"`
}
