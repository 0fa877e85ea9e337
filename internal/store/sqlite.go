package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"platano/internal/domain"
)

// SQLite's built-in LOWER folds ASCII only; ulower folds the way the rest of
// the code does, so matching behaves the same as the Postgres backend's ILIKE.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("ulower", 1,
		func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return strings.ToLower(v), nil
			case nil:
				return nil, nil
			default:
				return nil, fmt.Errorf("ulower: unexpected argument type %T", v)
			}
		})
}

type SQLite struct{ db *sqlx.DB }

func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSQLiteSchema(db); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func ensureSQLiteSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'General',
  sizes TEXT NOT NULL DEFAULT '',
  source_price NUMERIC NOT NULL CHECK (source_price >= 0),
  resale_price NUMERIC NOT NULL CHECK (resale_price >= 0),
  margin NUMERIC NOT NULL DEFAULT 0,
  source_url TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  active INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_products_name   ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_active ON products(active);

CREATE TABLE IF NOT EXISTS pending_inquiries(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER NOT NULL,
  customer_name TEXT NOT NULL DEFAULT '',
  handle TEXT NOT NULL DEFAULT 'no-handle',
  term TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  photo_ref TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_inquiries_status ON pending_inquiries(status);

CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER NOT NULL,
  customer_name TEXT NOT NULL DEFAULT '',
  product_id INTEGER REFERENCES products(id),
  product_name TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`
	_, err := db.Exec(schema)
	return err
}

const sqliteProductCols = `
  id, name, description, category, sizes, source_price, resale_price, margin,
  source_url, image_url, COALESCE(created_at,'') AS created_at, active`

func (s *SQLite) FindMatch(term string) (*domain.Product, error) {
	pat := likePattern(strings.ToLower(term))
	var p domain.Product
	err := s.db.Get(&p, `
	  SELECT `+sqliteProductCols+`
	  FROM products
	  WHERE active = 1 AND (ulower(name) LIKE ? ESCAPE '\' OR ulower(description) LIKE ? ESCAPE '\')
	  ORDER BY id
	  LIMIT 1
	`, pat, pat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLite) GetProduct(id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.Get(&p, `SELECT `+sqliteProductCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLite) InsertProduct(p domain.Product) (int64, error) {
	res, err := s.db.Exec(`
	  INSERT INTO products(name, description, category, sizes, source_price, resale_price, margin, source_url, image_url, active)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
	`, p.Name, p.Description, p.Category, p.Sizes, p.SourcePrice, p.ResalePrice, p.Margin, p.SourceURL, p.ImageURL)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLite) RecordInquiry(q domain.Inquiry) error {
	_, err := s.db.Exec(`
	  INSERT INTO pending_inquiries(customer_id, customer_name, handle, term, description, photo_ref, status)
	  VALUES(?, ?, ?, ?, ?, ?, 'pending')
	`, q.CustomerID, q.CustomerName, q.Handle, q.Term, q.Description, q.PhotoRef)
	return err
}

func (s *SQLite) PendingInquiries() ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	err := s.db.Select(&out, `
	  SELECT id, customer_id, customer_name, handle, term, description, photo_ref, status,
	         COALESCE(created_at,'') AS created_at
	  FROM pending_inquiries
	  WHERE status = 'pending'
	  ORDER BY id DESC
	`)
	return out, err
}

func (s *SQLite) PlaceOrder(o domain.Order) (int64, error) {
	res, err := s.db.Exec(`
	  INSERT INTO orders(customer_id, customer_name, product_id, product_name, size, price, status, notes)
	  VALUES(?, ?, ?, ?, ?, ?, 'pending', ?)
	`, o.CustomerID, o.CustomerName, o.ProductID, o.ProductName, o.Size, o.Price, o.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLite) RecentOrders(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := s.db.Select(&out, `
	  SELECT id, customer_id, customer_name, product_id, product_name, size, price, status, notes,
	         COALESCE(created_at,'') AS created_at
	  FROM orders
	  ORDER BY id DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (s *SQLite) Close() error { return s.db.Close() }
