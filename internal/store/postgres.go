package store

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"platano/internal/domain"
)

type Postgres struct{ db *sqlx.DB }

func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensurePostgresSchema(db); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func ensurePostgresSchema(db *sqlx.DB) error {
	// created_at is text on both backends so rows read identically; no FK on
	// orders.product_id, the order keeps its own name snapshot.
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'General',
  sizes TEXT NOT NULL DEFAULT '',
  source_price NUMERIC NOT NULL CHECK (source_price >= 0),
  resale_price NUMERIC NOT NULL CHECK (resale_price >= 0),
  margin NUMERIC NOT NULL DEFAULT 0,
  source_url TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (now()::text),
  active BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_products_name   ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_active ON products(active);

CREATE TABLE IF NOT EXISTS pending_inquiries(
  id BIGSERIAL PRIMARY KEY,
  customer_id BIGINT NOT NULL,
  customer_name TEXT NOT NULL DEFAULT '',
  handle TEXT NOT NULL DEFAULT 'no-handle',
  term TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  photo_ref TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT NOT NULL DEFAULT (now()::text)
);
CREATE INDEX IF NOT EXISTS idx_inquiries_status ON pending_inquiries(status);

CREATE TABLE IF NOT EXISTS orders(
  id BIGSERIAL PRIMARY KEY,
  customer_id BIGINT NOT NULL,
  customer_name TEXT NOT NULL DEFAULT '',
  product_id BIGINT,
  product_name TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (now()::text)
);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`
	_, err := db.Exec(schema)
	return err
}

const pgProductCols = `
  id, name, description, category, sizes,
  source_price::float8 AS source_price, resale_price::float8 AS resale_price,
  margin::float8 AS margin, source_url, image_url, created_at, active`

func (s *Postgres) FindMatch(term string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.Get(&p, `
	  SELECT `+pgProductCols+`
	  FROM products
	  WHERE active AND (name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\')
	  ORDER BY id
	  LIMIT 1
	`, likePattern(term))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Postgres) GetProduct(id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.Get(&p, `SELECT `+pgProductCols+` FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Postgres) InsertProduct(p domain.Product) (int64, error) {
	var id int64
	err := s.db.Get(&id, `
	  INSERT INTO products(name, description, category, sizes, source_price, resale_price, margin, source_url, image_url, active)
	  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
	  RETURNING id
	`, p.Name, p.Description, p.Category, p.Sizes, p.SourcePrice, p.ResalePrice, p.Margin, p.SourceURL, p.ImageURL)
	return id, err
}

func (s *Postgres) RecordInquiry(q domain.Inquiry) error {
	_, err := s.db.Exec(`
	  INSERT INTO pending_inquiries(customer_id, customer_name, handle, term, description, photo_ref, status)
	  VALUES($1, $2, $3, $4, $5, $6, 'pending')
	`, q.CustomerID, q.CustomerName, q.Handle, q.Term, q.Description, q.PhotoRef)
	return err
}

func (s *Postgres) PendingInquiries() ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	err := s.db.Select(&out, `
	  SELECT id, customer_id, customer_name, handle, term, description, photo_ref, status, created_at
	  FROM pending_inquiries
	  WHERE status = 'pending'
	  ORDER BY id DESC
	`)
	return out, err
}

func (s *Postgres) PlaceOrder(o domain.Order) (int64, error) {
	var id int64
	err := s.db.Get(&id, `
	  INSERT INTO orders(customer_id, customer_name, product_id, product_name, size, price, status, notes)
	  VALUES($1, $2, $3, $4, $5, $6, 'pending', $7)
	  RETURNING id
	`, o.CustomerID, o.CustomerName, o.ProductID, o.ProductName, o.Size, o.Price, o.Notes)
	return id, err
}

func (s *Postgres) RecentOrders(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := s.db.Select(&out, `
	  SELECT id, customer_id, customer_name, product_id, product_name, size,
	         price::float8 AS price, status, notes, created_at
	  FROM orders
	  ORDER BY id DESC
	  LIMIT $1
	`, limit)
	return out, err
}

func (s *Postgres) Close() error { return s.db.Close() }
