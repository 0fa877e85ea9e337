package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// WriteCSV writes scraped records with a header row.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "description", "category", "sizes", "price", "url"}); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Name, r.Description, r.Category, r.Sizes,
			strconv.FormatFloat(r.Price, 'f', 2, 64), r.URL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Commands renders one add-product operator command per record, with the
// resale price derived from the given markup percentage.
func Commands(recs []Record, markupPct float64) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		resale := ResalePrice(r.Price, markupPct)
		out = append(out, fmt.Sprintf("add-product %s | %s | %s | %s | %.2f | %.2f",
			r.Name, r.Description, r.Category, r.Sizes, r.Price, resale))
	}
	return out
}

// ResalePrice applies the markup and rounds to cents.
func ResalePrice(source, markupPct float64) float64 {
	return math.Round(source*(1+markupPct/100)*100) / 100
}
