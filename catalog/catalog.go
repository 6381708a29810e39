// Package catalog holds product types and the fixed tab filter predicates
// shared by the editor preview and the public storefront.
package catalog

import (
	"fmt"
	"math"
)

// Product is one sellable item of a store.
type Product struct {
	ID                 string  `json:"id"`
	StoreID            string  `json:"store_id,omitempty"`
	Name               string  `json:"name"`
	Description        string  `json:"description,omitempty"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Stock              int     `json:"stock"`
	Image              string  `json:"image,omitempty"`
	Category           string  `json:"category,omitempty"`
	IsNew              bool    `json:"is_new"`
	IsFeatured         bool    `json:"is_featured"`
}

// Tab names a fixed product filter.
type Tab string

const (
	TabAll         Tab = "all"
	TabOnSale      Tab = "on_sale"
	TabNew         Tab = "new"
	TabFeatured    Tab = "featured"
	TabBestSellers Tab = "best_sellers"
)

// Tabs is the display order of product tabs.
var Tabs = []Tab{TabAll, TabOnSale, TabNew, TabFeatured, TabBestSellers}

// Label returns the human-readable tab title.
func (t Tab) Label() string {
	switch t {
	case TabOnSale:
		return "On Sale"
	case TabNew:
		return "New"
	case TabFeatured:
		return "Featured"
	case TabBestSellers:
		return "Best Sellers"
	default:
		return "All"
	}
}

// Filter applies a tab's predicate. Unknown tabs behave like "all".
func Filter(products []Product, tab Tab) []Product {
	switch tab {
	case TabOnSale:
		return keep(products, func(p Product) bool { return p.DiscountPercentage > 0 })
	case TabNew:
		return keep(products, func(p Product) bool { return p.IsNew })
	case TabFeatured, TabBestSellers:
		return keep(products, func(p Product) bool { return p.IsFeatured })
	default:
		return products
	}
}

func keep(products []Product, pred func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// EffectivePrice is the price after discount, unrounded.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price * (1 - p.DiscountPercentage/100)
	}
	return p.Price
}

// DisplayPrice formats the effective price rounded to two decimals. Rounding
// is display-only; the underlying value stays unrounded.
func (p Product) DisplayPrice() string {
	return fmt.Sprintf("$%.2f", math.Round(p.EffectivePrice()*100)/100)
}

// OnSale reports whether the product carries a positive discount.
func (p Product) OnSale() bool {
	return p.DiscountPercentage > 0
}
