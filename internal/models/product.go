package models

// ProductImage is a single image attached to a product listing.
type ProductImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// Product represents a product listing in the marketplace.
type Product struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Images      []ProductImage `json:"images"`
	VendorID    uint           `json:"vendor_id"`
}

// ProductsPage is one page of product listings as returned by the backend.
type ProductsPage struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
}
