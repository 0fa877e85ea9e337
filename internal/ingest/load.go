package ingest

import (
	applog "platano/internal/log"
	"platano/internal/metrics"
	"platano/internal/services"
)

// Load pushes scraped records through the catalog service's AddProduct path.
// Per-item failures are logged and skipped; the run continues.
func Load(svc *services.CatalogService, recs []Record, markupPct float64) (added, skipped int) {
	for _, r := range recs {
		res, err := svc.AddProduct(services.ProductFields{
			Name:        r.Name,
			Description: r.Description,
			Category:    r.Category,
			Sizes:       r.Sizes,
			SourcePrice: r.Price,
			ResalePrice: ResalePrice(r.Price, markupPct),
			SourceURL:   r.URL,
			ImageURL:    r.ImageURL,
		})
		if err != nil {
			applog.Error(nil, "ingest.load.skip", err, map[string]any{"name": r.Name})
			metrics.IngestSkips.Inc()
			skipped++
			continue
		}
		applog.Info(nil, "ingest.load.added", map[string]any{"id": res.ID, "name": r.Name, "margin": res.Margin})
		metrics.IngestedItems.Inc()
		added++
	}
	return added, skipped
}
