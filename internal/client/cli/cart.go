package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/cart"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

func (a *App) add(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		a.router.Println("Usage: add <id> [qty]")
		return
	}
	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			a.router.Println("Quantity must be a positive number.")
			return
		}
		qty = n
	}

	p, err := a.catalog.GetProduct(ctx, models.ID(args[0]))
	if err != nil {
		a.reportAPIError(ctx, err)
		return
	}

	held := a.cart.CartItemQuantity(p.ID)
	switch err := a.cart.AddToCart(ctx, *p, qty); {
	case err == nil:
		a.router.Printf("Added %d x %s to cart.\n", qty, p.Name)
	case errors.Is(err, cart.ErrExceedsStock) && held > 0:
		a.router.Printf("Cannot add %d more: %d of %s already in your cart (max stock reached).\n", qty, held, p.Name)
	case errors.Is(err, cart.ErrExceedsStock) && !p.InStock():
		a.router.Printf("%s is out of stock.\n", p.Name)
	case errors.Is(err, cart.ErrExceedsStock):
		a.router.Printf("Only %d of %s in stock.\n", p.Stock, p.Name)
	default:
		a.router.Println("Error:", err)
	}
}

func (a *App) remove(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.router.Println("Usage: remove <id>")
		return
	}
	id := models.ID(args[0])
	if a.cart.CartItemQuantity(id) == 0 {
		a.router.Println("That product is not in your cart.")
		return
	}
	a.cart.RemoveFromCart(ctx, id)
	a.router.Println("Removed from cart.")
}

func (a *App) setQuantity(ctx context.Context, args []string) {
	if len(args) != 2 {
		a.router.Println("Usage: qty <id> <n>")
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		a.router.Println("Quantity must be a number.")
		return
	}
	id := models.ID(args[0])
	if a.cart.CartItemQuantity(id) == 0 {
		a.router.Println("That product is not in your cart.")
		return
	}

	a.cart.UpdateQuantity(ctx, id, n)

	got := a.cart.CartItemQuantity(id)
	switch {
	case got == 0:
		a.router.Println("Removed from cart.")
	case got < n:
		a.router.Printf("Only %d available; quantity set to %d.\n", got, got)
	default:
		a.router.Printf("Quantity set to %d.\n", got)
	}
}

func (a *App) openCart() {
	a.cart.OpenCart()
	a.router.Go(ViewCart)
	renderCart(a.router, a.cart.Items(), a.cart.CartTotal())
}

func (a *App) closeCart() {
	a.cart.CloseCart()
	if a.router.View() == ViewCart {
		a.router.Go(ViewCatalog)
	}
}

func (a *App) clearCart(ctx context.Context) {
	a.cart.ClearCart(ctx)
	a.router.Println("Cart cleared.")
}

func (a *App) total() {
	renderTotals(a.router, a.cart.CartTotal())
}
