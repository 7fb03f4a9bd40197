package models

// Product is a catalog entry. Stock is the number of units available; a
// product without a stock figure decodes as 0 and cannot be added to a cart.
type Product struct {
	ID            ID       `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Images        []string `json:"images,omitempty"`
	Stock         int      `json:"stock"`
	Rating        float64  `json:"rating,omitempty"`
	Reviews       int      `json:"reviews,omitempty"`
	Category      string   `json:"category,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock > 0 }

// LowStock reports whether the product should carry an "only N left" badge.
func (p Product) LowStock() bool { return p.Stock > 0 && p.Stock < 10 }

// Discount returns the whole-percent markdown from OriginalPrice, or 0 when
// the product is not discounted.
func (p Product) Discount() int {
	if p.OriginalPrice <= 0 || p.OriginalPrice <= p.Price {
		return 0
	}
	return int((p.OriginalPrice-p.Price)/p.OriginalPrice*100 + 0.5)
}

// Pagination describes one page of a product listing.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// ProductPage is one page of GET /products.
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
