package catalog

// MockProducts returns the seed products created alongside a store's first
// save, keyed by template name. Unknown templates fall back to the minimal
// set.
func MockProducts(template string) []Product {
	switch template {
	case "boutique":
		return []Product{
			{Name: "Silk Wrap Dress", Price: 129.00, DiscountPercentage: 15, Stock: 12, Category: "dresses", IsFeatured: true},
			{Name: "Linen Summer Dress", Price: 89.00, Stock: 20, Category: "dresses", IsNew: true},
			{Name: "Woven Tote Bag", Price: 49.50, Stock: 35, Category: "accessories"},
			{Name: "Gold-Plated Hoops", Price: 32.00, DiscountPercentage: 10, Stock: 50, Category: "jewelry", IsFeatured: true},
			{Name: "Pearl Pendant", Price: 58.00, Stock: 18, Category: "jewelry", IsNew: true},
		}
	case "electronics":
		return []Product{
			{Name: "Wireless Earbuds Pro", Price: 149.99, DiscountPercentage: 20, Stock: 40, Category: "audio", IsFeatured: true},
			{Name: "Ultrabook 14\"", Price: 1099.00, Stock: 8, Category: "laptops", IsNew: true},
			{Name: "Smart Bulb Kit", Price: 39.99, Stock: 100, Category: "smart-home"},
			{Name: "Noise-Cancelling Headphones", Price: 249.00, DiscountPercentage: 12, Stock: 15, Category: "audio", IsFeatured: true},
			{Name: "5G Phone X2", Price: 699.00, Stock: 25, Category: "phones", IsNew: true},
		}
	default:
		return []Product{
			{Name: "Classic Tee", Price: 24.00, Stock: 60, IsFeatured: true},
			{Name: "Canvas Cap", Price: 19.00, DiscountPercentage: 25, Stock: 45},
			{Name: "Everyday Mug", Price: 14.50, Stock: 80, IsNew: true},
			{Name: "Notebook Set", Price: 12.00, Stock: 120},
		}
	}
}
