package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"artizon/internal/models"
)

// ImageFile is one product image to upload.
type ImageFile struct {
	Name   string
	Reader io.Reader
}

// ProductForm carries the fields for creating or updating a listing. It is
// encoded as multipart form data so the images travel alongside the fields.
type ProductForm struct {
	Name        string
	Description string
	Price       float64
	Images      []ImageFile
}

// encode builds the multipart body and returns it with its content type,
// boundary included.
func (f ProductForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("name", f.Name); err != nil {
		return nil, "", fmt.Errorf("failed to encode product form: %w", err)
	}
	if err := writer.WriteField("description", f.Description); err != nil {
		return nil, "", fmt.Errorf("failed to encode product form: %w", err)
	}
	if err := writer.WriteField("price", strconv.FormatFloat(f.Price, 'f', -1, 64)); err != nil {
		return nil, "", fmt.Errorf("failed to encode product form: %w", err)
	}
	for _, image := range f.Images {
		part, err := writer.CreateFormFile("images", image.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode image %s: %w", image.Name, err)
		}
		if _, err := io.Copy(part, image.Reader); err != nil {
			return nil, "", fmt.Errorf("failed to encode image %s: %w", image.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize product form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// ProductsAPI groups the product endpoints.
type ProductsAPI struct {
	client *Client
}

// NewProductsAPI creates a new ProductsAPI over the given gateway client.
func NewProductsAPI(client *Client) *ProductsAPI {
	return &ProductsAPI{
		client: client,
	}
}

// List fetches one page of the public catalog.
func (a *ProductsAPI) List(ctx context.Context, page, limit int) (*models.ProductsPage, error) {
	var result models.ProductsPage
	err := a.client.RequestJSON(ctx, fmt.Sprintf("/products?page=%d&limit=%d", pageOrDefault(page), limitOrDefault(limit)), Options{}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Mine fetches one page of the signed-in vendor's own listings.
func (a *ProductsAPI) Mine(ctx context.Context, page, limit int) (*models.ProductsPage, error) {
	var result models.ProductsPage
	err := a.client.RequestJSON(ctx, fmt.Sprintf("/products/my?page=%d&limit=%d", pageOrDefault(page), limitOrDefault(limit)), Options{
		RequiresAuth: true,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches a single listing by ID.
func (a *ProductsAPI) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := a.client.RequestJSON(ctx, fmt.Sprintf("/products/%d", id), Options{}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create uploads a new listing with its images.
func (a *ProductsAPI) Create(ctx context.Context, form ProductForm) (*models.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var product models.Product
	err = a.client.RequestJSON(ctx, "/products/create", Options{
		Method:       http.MethodPost,
		RawBody:      body,
		Headers:      map[string]string{"Content-Type": contentType},
		RequiresAuth: true,
	}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces an existing listing's fields and images.
func (a *ProductsAPI) Update(ctx context.Context, id uint, form ProductForm) (*models.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var product models.Product
	err = a.client.RequestJSON(ctx, fmt.Sprintf("/products/%d", id), Options{
		Method:       http.MethodPut,
		RawBody:      body,
		Headers:      map[string]string{"Content-Type": contentType},
		RequiresAuth: true,
	}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a listing.
func (a *ProductsAPI) Delete(ctx context.Context, id uint) error {
	return a.client.RequestJSON(ctx, fmt.Sprintf("/products/%d", id), Options{
		Method:       http.MethodDelete,
		RequiresAuth: true,
	}, nil)
}
