package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/common"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/logging"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/netx"
)

const defaultTimeout = 10 * time.Second

// TokenSource returns the bearer token to attach to a request, or "" when
// the caller is anonymous.
type TokenSource func() string

type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	token   TokenSource
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request; zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTPClient) { h.token = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient builds a client rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u.String(),
		http:    &http.Client{},
		timeout: defaultTimeout,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	body := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type productListResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
}

// ListProducts fetches one page of the catalog. Non-positive page or limit
// values are left for the server to default.
func (c *HTTPClient) ListProducts(ctx context.Context, page, limit int) (*models.ProductPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp productListResponse
	if err := c.do(ctx, http.MethodGet, "/products", q, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: orDefault(resp.Message, "Failed to load products.")}
	}
	if resp.Products == nil {
		resp.Products = []models.Product{}
	}
	return &models.ProductPage{Products: resp.Products, Pagination: resp.Pagination}, nil
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

func (c *HTTPClient) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	if id.IsZero() {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Product not found"}
	}

	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id.String()), nil, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Product == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: orDefault(resp.Message, "Product not found")}
	}
	return resp.Product, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	reqID := uuid.NewString()
	header := http.Header{}
	header.Set(common.RequestIDHeaderName, reqID)
	if c.token != nil {
		if tok := c.token(); tok != "" {
			header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
		}
	}

	c.log.Debug(ctx, "api request", "method", method, "path", path, "request_id", reqID)

	err = netx.DoJSON(ctx, c.http, netx.Request{Method: method, URL: endpoint, Body: in, Header: header}, out)
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if errors.As(err, &se) {
		apiErr := parseAPIError(se.StatusCode, se.Body)
		c.log.Debug(ctx, "api error", "request_id", reqID, "status", se.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	c.log.Warn(ctx, "api unavailable", "request_id", reqID, "err", err)
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
