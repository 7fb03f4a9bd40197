package client

import (
	"context"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ListProducts(ctx context.Context, page, limit int) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id models.ID) (*models.Product, error)
}
