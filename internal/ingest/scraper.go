// Package ingest walks a sneaker retailer's site, extracts product listings
// with CSS-selector heuristics, and feeds them into the catalog through the
// same AddProduct path the operator uses.
package ingest

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	applog "platano/internal/log"
)

// Record is one validated product field-set produced by the scraper.
type Record struct {
	Name        string
	Description string
	Category    string
	Sizes       string
	Price       float64 // source price in EUR
	URL         string
	ImageURL    string
}

// DefaultSizes is the standard size run assumed when a listing does not
// expose per-size stock.
const DefaultSizes = "36,37,38,39,40,41,42,43,44,45"

var (
	titleSelectors = []string{"h1", ".product-title", ".entry-title", "title"}
	priceSelectors = []string{".price", ".woocommerce-Price-amount", ".product-price", `[class*="price"]`}
	imageSelectors = []string{".product-image img", ".woocommerce-product-gallery img", "img"}

	// "€75,95" or "€75.95"; a comma is a decimal separator on the source site.
	rePrice = regexp.MustCompile(`€\s*([0-9]+(?:[.,][0-9]+)?)`)
)

type Scraper struct {
	BaseURL string
	Pages   []string // category paths walked for product links
	Pause   time.Duration
	Client  *http.Client
}

func New(baseURL string) *Scraper {
	return &Scraper{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Pages:   []string{"/", "/products/"},
		Pause:   time.Second,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ProductLinks collects deduplicated product URLs from the configured
// category pages. A page that fails to load is logged and skipped.
func (s *Scraper) ProductLinks() []string {
	seen := map[string]bool{}
	var links []string
	for _, page := range s.Pages {
		doc, err := s.fetch(s.BaseURL + page)
		if err != nil {
			applog.Error(nil, "ingest.page.fail", err, map[string]any{"page": page})
			continue
		}
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if href == "" || !strings.Contains(href, "/products/") {
				return
			}
			full := s.resolve(href)
			if full != "" && !seen[full] {
				seen[full] = true
				links = append(links, full)
			}
		})
	}
	return links
}

// Extract pulls one product's fields out of its page using the selector
// heuristics.
func (s *Scraper) Extract(productURL string) (Record, error) {
	doc, err := s.fetch(productURL)
	if err != nil {
		return Record{}, err
	}

	var name string
	for _, sel := range titleSelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			name = strings.TrimSpace(el.Text())
			if name != "" {
				break
			}
		}
	}
	if name == "" {
		return Record{}, fmt.Errorf("no title found at %s", productURL)
	}

	var price float64
	for _, sel := range priceSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if m := rePrice.FindStringSubmatch(el.Text()); m != nil {
			if f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
				price = f
				break
			}
		}
	}

	var image string
	for _, sel := range imageSelectors {
		if src, ok := doc.Find(sel).First().Attr("src"); ok && src != "" {
			image = s.resolve(src)
			break
		}
	}

	return Record{
		Name:        name,
		Description: "Quality sneakers " + name,
		Category:    CategoryFor(productURL, name),
		Sizes:       DefaultSizes,
		Price:       price,
		URL:         productURL,
		ImageURL:    image,
	}, nil
}

// Run walks every discovered product link sequentially with a fixed pause
// between fetches. One failing item is skipped and logged; the run continues.
func (s *Scraper) Run() []Record {
	links := s.ProductLinks()
	applog.Info(nil, "ingest.links", map[string]any{"count": len(links)})

	var out []Record
	for i, link := range links {
		rec, err := s.Extract(link)
		if err != nil {
			applog.Error(nil, "ingest.item.fail", err, map[string]any{"url": link})
		} else {
			out = append(out, rec)
		}
		if i < len(links)-1 {
			time.Sleep(s.Pause)
		}
	}
	return out
}

// CategoryFor maps URL and name against the fixed brand vocabulary; anything
// unrecognized is "General".
func CategoryFor(productURL, name string) string {
	u := strings.ToLower(productURL)
	n := strings.ToLower(name)
	switch {
	case strings.Contains(u, "jordan") || strings.Contains(n, "jordan"):
		return "Jordan"
	case strings.Contains(u, "nike") || strings.Contains(n, "nike"):
		return "Nike"
	case strings.Contains(u, "adidas") || strings.Contains(n, "adidas"):
		return "Adidas"
	case strings.Contains(u, "new-balance") || strings.Contains(n, "new balance"):
		return "New Balance"
	default:
		return "General"
	}
}

func (s *Scraper) fetch(pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", pageURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func (s *Scraper) resolve(href string) string {
	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
