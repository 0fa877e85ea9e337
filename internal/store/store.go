// Package store holds the durable backend behind the catalog service: one
// interface, two interchangeable implementations (SQLite and Postgres)
// selected by DSN shape at construction time. Callers never branch on the
// backend kind.
package store

import (
	"strings"

	"platano/internal/domain"
)

type Store interface {
	// FindMatch returns the first active product whose name or description
	// contains term, case-insensitively, or nil when nothing matches. A
	// miss is not an error.
	FindMatch(term string) (*domain.Product, error)

	// GetProduct returns the product with the given id, or nil.
	GetProduct(id int64) (*domain.Product, error)

	// InsertProduct persists p (margin already computed) and returns the
	// new identity.
	InsertProduct(p domain.Product) (int64, error)

	// RecordInquiry always inserts a new row. Duplicate inquiries for the
	// same term accumulate; that is documented behavior.
	RecordInquiry(q domain.Inquiry) error

	// PendingInquiries lists inquiries with status "pending", newest first.
	PendingInquiries() ([]domain.Inquiry, error)

	// PlaceOrder inserts an order row with status "pending" and returns
	// the new identity. No size or stock check happens here.
	PlaceOrder(o domain.Order) (int64, error)

	// RecentOrders lists the latest orders, newest first.
	RecentOrders(limit int) ([]domain.Order, error)

	Close() error
}

// Open picks the backend from the DSN: postgres URLs go to lib/pq, anything
// else is treated as a SQLite file path (or ":memory:").
func Open(dsn string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return OpenPostgres(dsn)
	}
	return OpenSQLite(dsn)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a literal substring match. LIKE wildcards in the
// term are escaped; queries using the pattern must carry ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
