package domain

import "time"

// Money values are int64 in the smallest currency unit (rupiah).

type Product struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Price       int64  `db:"price" json:"price"`
	Image       string `db:"image" json:"image,omitempty"`
	Description string `db:"description" json:"description,omitempty"`
	Category    string `db:"category" json:"category,omitempty"`
	Stock       int    `db:"stock" json:"stock"` // advisory; not enforced against cart quantity
}

// Availability buckets the advisory stock count for listings.
func (p Product) Availability() string {
	switch {
	case p.Stock >= 5:
		return "IN_STOCK"
	case p.Stock > 0:
		return "LOW_STOCK"
	default:
		return "OUT_OF_STOCK"
	}
}

// CartLine pairs a product snapshot with the count of units in the cart.
// Quantity is always >= 1; the line id is the product id.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() int64 { return l.Product.Price * int64(l.Quantity) }

type ShippingOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PaymentCategory struct {
	Name    string          `json:"name"`
	Methods []PaymentMethod `json:"methods"`
}

// OrderLine is a snapshot taken at checkout; later catalog edits never
// touch it.
type OrderLine struct {
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Price     int64  `db:"price" json:"price"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

func (l OrderLine) Subtotal() int64 { return l.Price * int64(l.Quantity) }

// Order is immutable once placed.
type Order struct {
	ID             string      `db:"id" json:"id"`
	Lines          []OrderLine `json:"lines"`
	Subtotal       int64       `db:"subtotal" json:"subtotal"`
	ShippingCost   int64       `db:"shipping_cost" json:"shipping_cost"`
	Total          int64       `db:"total" json:"total"`
	Address        string      `db:"address" json:"address"`
	PaymentMethod  string      `db:"payment_method" json:"payment_method"`
	ShippingMethod string      `db:"shipping_method" json:"shipping_method"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
}
