// Package metrics exposes the service's Prometheus counters and the /metrics
// handler mounted on the operator surface.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Searches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "platano",
		Name:      "searches_total",
		Help:      "Catalog searches handled.",
	})
	SearchMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "platano",
		Name:      "search_misses_total",
		Help:      "Searches that produced a pending inquiry instead of a hit.",
	})
	ProductsAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "platano",
		Name:      "products_added_total",
		Help:      "Products inserted into the catalog.",
	})
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "platano",
		Name:      "orders_placed_total",
		Help:      "Orders written to the ledger.",
	})
	IngestedItems = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "platano",
		Name:      "ingested_items_total",
		Help:      "Scraped records loaded through the catalog service.",
	})
	IngestSkips = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "platano",
		Name:      "ingest_skips_total",
		Help:      "Scraped records skipped after a per-item failure.",
	})
)

func init() {
	prometheus.MustRegister(Searches, SearchMisses, ProductsAdded, OrdersPlaced, IngestedItems, IngestSkips)
}

// Handler adapts promhttp for fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
