package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/client"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

// reportAPIError prints a catalog failure in user terms.
func (a *App) reportAPIError(ctx context.Context, err error) {
	a.log.Warn(ctx, "catalog request failed", "err", err)

	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotFound):
		a.router.Println("Product not found.")
	case errors.As(err, &apiErr) && apiErr.StatusCode < 500:
		a.router.Println(apiErr.Error())
	case errors.Is(err, client.ErrUnavailable):
		a.router.Println("The store is unavailable right now. Please try again later.")
	default:
		a.router.Println("Error:", err)
	}
}

func (a *App) products(ctx context.Context, args []string) {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			a.router.Println("Usage: products [page]")
			return
		}
		page = n
	}

	res, err := a.catalog.ListProducts(ctx, page, a.pageSize)
	if err != nil {
		a.reportAPIError(ctx, err)
		return
	}
	a.router.Go(ViewCatalog)
	renderProducts(a.router, res)
}

func (a *App) show(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.router.Println("Usage: show <id>")
		return
	}
	p, err := a.catalog.GetProduct(ctx, models.ID(args[0]))
	if err != nil {
		a.reportAPIError(ctx, err)
		return
	}
	a.router.Go("/product/" + p.ID.String())
	renderProduct(a.router, p, a.cart.CartItemQuantity(p.ID))
}
