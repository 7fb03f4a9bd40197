package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/api", append([]Option{WithHTTPClient(srv.Client())}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com")
	require.Error(t, err)

	_, err = NewHTTPClient("::::")
	require.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err, "request id must be a uuid")
		assert.Empty(t, r.Header.Get("Authorization"))

		var in models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, models.Credentials{Email: "riya@example.com", Password: "pw"}, in)

		_, _ = io.WriteString(w, `{"token":"a.b.c","user":{"id":1,"name":"Riya","email":"riya@example.com"}}`)
	})

	resp, err := c.Login(context.Background(), "riya@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", resp.Token)
	assert.Equal(t, models.ID("1"), resp.User.ID)
	assert.Equal(t, "Riya", resp.User.Name)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid email or password"}`)
	})

	_, err := c.Login(context.Background(), "riya@example.com", "bad")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegister_FieldErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var in models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "1 Main St", in.Address.Full)

		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"errors":[{"msg":"Email already registered","param":"email"},{"msg":"second"}]}`)
	})

	_, err := c.Register(context.Background(), models.RegisterRequest{
		Name: "Riya", Email: "riya@example.com", Password: "Secret1!",
		Address: models.Address{Full: "1 Main St"},
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "Email already registered", apiErr.FirstFieldMessage())
	assert.Contains(t, apiErr.Error(), "Email already registered")
	assert.Nil(t, apiErr.Unwrap())
}

func TestRequests_CarryBearerToken(t *testing.T) {
	token := "h.p.s"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"success":true,"products":[],"pagination":{"page":1,"pages":1,"total":0}}`)
	}, WithTokenSource(func() string { return token }))

	_, err := c.ListProducts(context.Background(), 1, 12)
	require.NoError(t, err)
}

func TestListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))

		_, _ = io.WriteString(w, `{
			"success": true,
			"products": [{"id":"p1","name":"Mug","price":9.5,"stock":4},{"id":2,"name":"Tee","price":15}],
			"pagination": {"page":2,"pages":3,"total":26}
		}`)
	})

	page, err := c.ListProducts(context.Background(), 2, 12)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, models.ID("p1"), page.Products[0].ID)
	assert.Equal(t, 4, page.Products[0].Stock)
	assert.Equal(t, models.ID("2"), page.Products[1].ID)
	assert.Equal(t, models.Pagination{Page: 2, Pages: 3, Total: 26}, page.Pagination)
}

func TestListProducts_OmitsNonPositivePaging(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	page, err := c.ListProducts(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

func TestListProducts_UnsuccessfulEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false}`)
	})

	_, err := c.ListProducts(context.Background(), 1, 12)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to load products.", apiErr.Message)
}

func TestGetProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/p%201", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"success":true,"product":{"id":"p 1","name":"Mug","price":9.5,"originalPrice":12,"stock":3}}`)
	})

	p, err := c.GetProduct(context.Background(), "p 1")
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, 12.0, p.OriginalPrice)
}

func TestGetProduct_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		id      models.ID
	}{
		{
			name: "404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(w, `{"message":"Product not found"}`)
			},
			id: "missing",
		},
		{
			name: "success without product",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"success":true}`)
			},
			id: "missing",
		},
		{
			name: "empty id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("no request expected for an empty id")
			},
			id: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			_, err := c.GetProduct(context.Background(), tt.id)
			require.ErrorIs(t, err, ErrNotFound)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "Product not found", apiErr.Message)
		})
	}
}

func TestServerError_IsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>bad gateway</html>`)
	})

	_, err := c.ListProducts(context.Background(), 1, 12)
	require.ErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "api error 502", apiErr.Error())
}

func TestTransportFailure_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewHTTPClient(base)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@b.co", "pw")
	require.ErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestTimeout_IsUnavailable(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.ListProducts(context.Background(), 1, 12)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
