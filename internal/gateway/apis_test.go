package gateway_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artizon/internal/gateway"
	"artizon/internal/models"
)

func TestAuthAPI_Login(t *testing.T) {
	transport := &fakeTransport{resp: httpResponse(http.StatusOK, `{"access_token":"tok-1"}`)}
	api := gateway.NewAuthAPI(gateway.NewClient("https://api.test", staticCreds{}, transport))

	session, err := api.Login(context.Background(), "a@b.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.AccessToken)
	assert.Equal(t, http.MethodPost, transport.lastReq.Method)
	assert.Equal(t, "/auth/login", transport.lastReq.URL.Path)

	body, _ := io.ReadAll(transport.lastReq.Body)
	assert.JSONEq(t, `{"email":"a@b.com","password":"secret"}`, string(body))
}

func TestAuthAPI_ProfileRequiresAuth(t *testing.T) {
	transport := &fakeTransport{resp: httpResponse(http.StatusOK, `{"first_name":"A","last_name":"B","email":"a@b.com","user_type":"customer"}`)}
	api := gateway.NewAuthAPI(gateway.NewClient("https://api.test", staticCreds{token: "tok"}, transport))

	user, err := api.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.UserTypeCustomer, user.UserType)
	assert.Equal(t, "Bearer tok", transport.lastReq.Header.Get("Authorization"))
}

func TestOrdersAPI_MineBuildsPagedURL(t *testing.T) {
	transport := &fakeTransport{resp: httpResponse(http.StatusOK, `{"orders":[],"page":2,"total_pages":5,"total":42}`)}
	api := gateway.NewOrdersAPI(gateway.NewClient("https://api.test", staticCreds{token: "tok"}, transport))

	page, err := api.Mine(context.Background(), 2, 10)

	require.NoError(t, err)
	assert.Equal(t, "/orders/my", transport.lastReq.URL.Path)
	assert.Equal(t, "page=2&limit=10", transport.lastReq.URL.RawQuery)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 42, page.Total)
}

func TestOrdersAPI_DefaultsPagination(t *testing.T) {
	transport := &fakeTransport{resp: httpResponse(http.StatusOK, `{"orders":[]}`)}
	api := gateway.NewOrdersAPI(gateway.NewClient("https://api.test", staticCreds{token: "tok"}, transport))

	_, err := api.Mine(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, "page=1&limit=10", transport.lastReq.URL.RawQuery)
}

func TestOrdersAPI_UpdateStatus(t *testing.T) {
	transport := &fakeTransport{resp: httpResponse(http.StatusOK, `{"message":"ok"}`)}
	api := gateway.NewOrdersAPI(gateway.NewClient("https://api.test", staticCreds{token: "tok"}, transport))

	err := api.UpdateStatus(context.Background(), 7, "shipped")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, transport.lastReq.Method)
	assert.Equal(t, "/orders/7/status", transport.lastReq.URL.Path)

	body, _ := io.ReadAll(transport.lastReq.Body)
	assert.JSONEq(t, `{"status":"shipped"}`, string(body))
}

func TestProductsAPI_CreateSendsMultipart(t *testing.T) {
	transport := &fakeTransport{resp: httpResponse(http.StatusCreated, `{"id":3,"name":"Bowl"}`)}
	api := gateway.NewProductsAPI(gateway.NewClient("https://api.test", staticCreds{token: "tok"}, transport))

	product, err := api.Create(context.Background(), gateway.ProductForm{
		Name:        "Bowl",
		Description: "Hand thrown",
		Price:       35.5,
		Images:      []gateway.ImageFile{{Name: "bowl.jpg", Reader: strings.NewReader("jpegbytes")}},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(3), product.ID)
	assert.Equal(t, "/products/create", transport.lastReq.URL.Path)

	contentType := transport.lastReq.Header.Get("Content-Type")
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="), "got content type %q", contentType)

	body, _ := io.ReadAll(transport.lastReq.Body)
	assert.Contains(t, string(body), `name="images"; filename="bowl.jpg"`)
	assert.Contains(t, string(body), "jpegbytes")
	assert.Contains(t, string(body), "35.5")
}

func TestProductsAPI_Delete(t *testing.T) {
	transport := &fakeTransport{resp: httpResponse(http.StatusOK, ``)}
	api := gateway.NewProductsAPI(gateway.NewClient("https://api.test", staticCreds{token: "tok"}, transport))

	err := api.Delete(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, transport.lastReq.Method)
	assert.Equal(t, "/products/9", transport.lastReq.URL.Path)
	assert.Equal(t, "Bearer tok", transport.lastReq.Header.Get("Authorization"))
}
