package domain

import "database/sql"

const (
	// StatusPending is the initial (and only implemented) status for
	// inquiries and orders.
	StatusPending = "pending"

	// NoHandle marks a requester without a public handle.
	NoHandle = "no-handle"

	// PhotoInquiryTerm is the search-term sentinel stored when a request
	// arrived as an image instead of text.
	PhotoInquiryTerm = "photo inquiry"
)

type Product struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Sizes       string  `db:"sizes"` // comma-joined size labels, e.g. "40,41,42"
	SourcePrice float64 `db:"source_price"`
	ResalePrice float64 `db:"resale_price"`
	Margin      float64 `db:"margin"`
	SourceURL   string  `db:"source_url"`
	ImageURL    string  `db:"image_url"`
	CreatedAt   string  `db:"created_at"`
	Active      bool    `db:"active"`
}

type Inquiry struct {
	ID           int64  `db:"id"`
	CustomerID   int64  `db:"customer_id"`
	CustomerName string `db:"customer_name"`
	Handle       string `db:"handle"`
	Term         string `db:"term"`
	Description  string `db:"description"`
	PhotoRef     string `db:"photo_ref"`
	Status       string `db:"status"`
	CreatedAt    string `db:"created_at"`
}

// Order keeps a product name snapshot so it stays meaningful even if the
// catalog row changes later. ProductID is nullable on purpose.
type Order struct {
	ID           int64         `db:"id"`
	CustomerID   int64         `db:"customer_id"`
	CustomerName string        `db:"customer_name"`
	ProductID    sql.NullInt64 `db:"product_id"`
	ProductName  string        `db:"product_name"`
	Size         string        `db:"size"`
	Price        float64       `db:"price"`
	Status       string        `db:"status"`
	Notes        string        `db:"notes"`
	CreatedAt    string        `db:"created_at"`
}
