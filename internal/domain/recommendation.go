package domain

// Recommendation is a single recommended supplement with its catalog link.
type Recommendation struct {
	ProductName string `json:"product_name"`
	ProductLink string `json:"product_link"`
}
