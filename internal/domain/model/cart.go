package model

// Cart maps product ID to size to quantity. It lives embedded in the user
// record and is rewritten in full on every mutation. Entries with zero
// quantity may remain structurally but do not count toward totals.
type Cart map[string]map[string]int

// NewCart returns an empty cart.
func NewCart() Cart {
	return make(Cart)
}

// Add increments the quantity for the given product/size pair.
func (c Cart) Add(productID, size string) {
	sizes, ok := c[productID]
	if !ok {
		sizes = make(map[string]int)
		c[productID] = sizes
	}
	sizes[size]++
}

// Has reports whether the product/size pair is present in the cart.
func (c Cart) Has(productID, size string) bool {
	sizes, ok := c[productID]
	if !ok {
		return false
	}
	_, ok = sizes[size]
	return ok
}

// SetQuantity overwrites the quantity for an existing product/size pair.
func (c Cart) SetQuantity(productID, size string, quantity int) {
	sizes, ok := c[productID]
	if !ok {
		sizes = make(map[string]int)
		c[productID] = sizes
	}
	sizes[size] = quantity
}

// TotalQuantity sums positive quantities across all products and sizes.
func (c Cart) TotalQuantity() int {
	var total int
	for _, sizes := range c {
		for _, qty := range sizes {
			if qty > 0 {
				total += qty
			}
		}
	}
	return total
}
