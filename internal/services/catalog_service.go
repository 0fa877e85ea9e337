package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"platano/internal/domain"
	"platano/internal/metrics"
	"platano/internal/notify"
	"platano/internal/store"
	"platano/internal/validate"
)

// Requester identifies the customer behind a search or order. There is no
// managed user entity; the identity is carried by value.
type Requester struct {
	ID     int64
	Name   string
	Handle string
}

// ProductFields is the normalized input to AddProduct, whether it came from
// the operator command or from the ingestion collaborator.
type ProductFields struct {
	Name        string
	Description string
	Category    string
	Sizes       string
	SourcePrice float64
	ResalePrice float64
	SourceURL   string
	ImageURL    string
}

type AddResult struct {
	ID     int64
	Margin float64
}

type CatalogService struct {
	Store  store.Store
	Events notify.Emitter
}

func NewCatalogService(st store.Store, events notify.Emitter) *CatalogService {
	return &CatalogService{Store: st, Events: events}
}

// Margin is the markup policy: percentage of resale over source. A zero
// source price yields zero by convention, not a division fault.
func Margin(source, resale float64) float64 {
	if source <= 0 {
		return 0
	}
	return (resale - source) / source * 100
}

// Search returns the first matching active product, or nil on a miss. A miss
// records a pending inquiry and emits an operator notification; it is a
// normal control-flow branch, never an error.
func (s *CatalogService) Search(term string, req Requester) (*domain.Product, error) {
	metrics.Searches.Inc()
	p, err := s.Store.FindMatch(term)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if err := s.Store.RecordInquiry(domain.Inquiry{
		CustomerID:   req.ID,
		CustomerName: req.Name,
		Handle:       handleOrSentinel(req.Handle),
		Term:         term,
	}); err != nil {
		return nil, err
	}
	metrics.SearchMisses.Inc()
	s.emit(notify.Event{
		RequesterID:   req.ID,
		RequesterName: req.Name,
		Handle:        req.Handle,
		Term:          term,
		At:            time.Now(),
	})
	return nil, nil
}

// SearchByImage is always treated as a miss: the inquiry is stored under the
// photo-inquiry sentinel with the caption as description.
func (s *CatalogService) SearchByImage(req Requester, photoRef, caption string) error {
	metrics.Searches.Inc()
	if err := s.Store.RecordInquiry(domain.Inquiry{
		CustomerID:   req.ID,
		CustomerName: req.Name,
		Handle:       handleOrSentinel(req.Handle),
		Term:         domain.PhotoInquiryTerm,
		Description:  caption,
		PhotoRef:     photoRef,
	}); err != nil {
		return err
	}
	metrics.SearchMisses.Inc()
	s.emit(notify.Event{
		RequesterID:   req.ID,
		RequesterName: req.Name,
		Handle:        req.Handle,
		Term:          domain.PhotoInquiryTerm,
		Caption:       caption,
		PhotoRef:      photoRef,
		At:            time.Now(),
	})
	return nil
}

const addCommandVerb = "add-product"

// ParseAddCommand decomposes the operator's structured add-product command:
// exactly 6 pipe-delimited fields, name|description|category|sizes|source
// price|resale price. A leading "add-product" verb, as emitted by the
// scraper's command export, is stripped before parsing. Malformed input
// yields a ValidationError and nothing is written anywhere.
func ParseAddCommand(raw string) (ProductFields, error) {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, addCommandVerb+" "); ok {
		raw = rest
	}
	parts := strings.Split(raw, "|")
	if len(parts) != 6 {
		return ProductFields{}, validationf(fmt.Sprintf("expected 6 fields separated by |, got %d", len(parts)))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	src, ok := validate.Price(parts[4])
	if !ok {
		return ProductFields{}, validationf("source price must be a non-negative number")
	}
	resale, ok := validate.Price(parts[5])
	if !ok {
		return ProductFields{}, validationf("resale price must be a non-negative number")
	}
	return ProductFields{
		Name:        parts[0],
		Description: parts[1],
		Category:    parts[2],
		Sizes:       parts[3],
		SourcePrice: src,
		ResalePrice: resale,
	}, nil
}

// AddProduct is the sole ingestion entry point, for operator commands and
// scraper records alike. It computes the margin and persists the product.
func (s *CatalogService) AddProduct(f ProductFields) (AddResult, error) {
	if f.Name == "" {
		return AddResult{}, validationf("product name is required")
	}
	if f.SourcePrice < 0 || f.ResalePrice < 0 {
		return AddResult{}, validationf("prices must be non-negative")
	}
	if f.Category == "" {
		f.Category = "General"
	}
	if f.Sizes != "" {
		sizes, ok := validate.Sizes(f.Sizes)
		if !ok {
			return AddResult{}, validationf("sizes must be a comma-separated list of size labels")
		}
		f.Sizes = sizes
	}

	m := Margin(f.SourcePrice, f.ResalePrice)
	id, err := s.Store.InsertProduct(domain.Product{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Sizes:       f.Sizes,
		SourcePrice: f.SourcePrice,
		ResalePrice: f.ResalePrice,
		Margin:      m,
		SourceURL:   f.SourceURL,
		ImageURL:    f.ImageURL,
		Active:      true,
	})
	if err != nil {
		return AddResult{}, err
	}
	metrics.ProductsAdded.Inc()
	return AddResult{ID: id, Margin: m}, nil
}

// PlaceOrder writes one order row. The final price is the product's stored
// resale price at call time; size validity is not checked here.
func (s *CatalogService) PlaceOrder(req Requester, p domain.Product, size string) (int64, error) {
	id, err := s.Store.PlaceOrder(domain.Order{
		CustomerID:   req.ID,
		CustomerName: req.Name,
		ProductID:    sql.NullInt64{Int64: p.ID, Valid: p.ID > 0},
		ProductName:  p.Name,
		Size:         size,
		Price:        p.ResalePrice,
	})
	if err != nil {
		return 0, err
	}
	metrics.OrdersPlaced.Inc()
	return id, nil
}

func (s *CatalogService) GetProduct(id int64) (*domain.Product, error) {
	return s.Store.GetProduct(id)
}

func (s *CatalogService) PendingInquiries() ([]domain.Inquiry, error) {
	return s.Store.PendingInquiries()
}

func (s *CatalogService) RecentOrders(limit int) ([]domain.Order, error) {
	return s.Store.RecentOrders(limit)
}

func (s *CatalogService) emit(e notify.Event) {
	if s.Events != nil {
		s.Events.Emit(e)
	}
}

func handleOrSentinel(h string) string {
	if strings.TrimSpace(h) == "" {
		return domain.NoHandle
	}
	return h
}
