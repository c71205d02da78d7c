package models

// CartItem is a single line in the locally persisted shopping cart.
type CartItem struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	ImageURLs []string `json:"image_urls"`
}
