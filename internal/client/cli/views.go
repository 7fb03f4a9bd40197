package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/cart"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func stockLabel(p models.Product) string {
	switch {
	case !p.InStock():
		return "Out of Stock"
	case p.LowStock():
		return fmt.Sprintf("Only %d left", p.Stock)
	default:
		return "In Stock"
	}
}

func renderProducts(w io.Writer, page *models.ProductPage) {
	if len(page.Products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range page.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, money(p.Price), stockLabel(p))
	}
	tw.Flush()

	pg := page.Pagination
	fmt.Fprintf(w, "Page %d of %d (%d products)\n", pg.Page, pg.Pages, pg.Total)
}

func renderProduct(w io.Writer, p *models.Product, inCart int) {
	fmt.Fprintln(w, p.Name)
	if p.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", p.Category)
	}

	price := money(p.Price)
	if d := p.Discount(); d > 0 {
		price = fmt.Sprintf("%s (was %s, %d%% off)", price, money(p.OriginalPrice), d)
	}
	fmt.Fprintf(w, "Price:    %s\n", price)
	fmt.Fprintf(w, "Rating:   %.1f (%d reviews)\n", p.Rating, p.Reviews)

	stock := stockLabel(*p)
	if p.LowStock() {
		stock += " in stock"
	}
	fmt.Fprintf(w, "Stock:    %s\n", stock)
	if inCart > 0 {
		fmt.Fprintf(w, "In cart:  %d\n", inCart)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

func renderCart(w io.Writer, items []cart.LineItem, totals cart.Totals) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tITEM\tPRICE\tQTY\tTOTAL\t")
	for _, it := range items {
		note := ""
		if it.AtStockLimit() {
			note = "Max stock reached"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", it.ID, it.Name, money(it.Price), it.Quantity, money(it.LineTotal()), note)
	}
	tw.Flush()
	renderTotals(w, totals)
}

func renderTotals(w io.Writer, t cart.Totals) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Items:\t%d\t\n", t.ItemCount)
	fmt.Fprintf(tw, "Subtotal:\t%s\t\n", money(t.Subtotal))
	fmt.Fprintf(tw, "Tax (%.0f%%):\t%s\t\n", cart.TaxRate*100, money(t.Tax))
	fmt.Fprintf(tw, "Total:\t%s\t\n", money(t.Total))
	tw.Flush()
}
