package domain

import "time"

// Cart represents a per-user shopping cart.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartLine represents a single product line in the cart. PriceRef is the
// opaque identifier the payment provider uses to price the line; lines
// without one cannot be checked out.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Selected  bool   `json:"selected"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category,omitempty"`
	PriceRef  string `json:"price_ref,omitempty"`
}

// Subtotal calculates the total price (in cents) of the selected lines only.
// Unselected lines never contribute to the subtotal.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		if line.Selected {
			total += line.UnitPrice * int64(line.Quantity)
		}
	}
	return total
}

// ItemCount returns the sum of quantities across all lines, regardless of
// selection. Used for the cart badge count.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// FindLineIndex returns the index of the cart line matching the given product ID.
// Returns -1 if not found.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// SelectedLines returns the lines currently included in subtotal and checkout.
func (c *Cart) SelectedLines() []CartLine {
	selected := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Selected {
			selected = append(selected, line)
		}
	}
	return selected
}
