package services_test

import (
	"math"
	"testing"

	"platano/internal/domain"
	"platano/internal/notify"
	"platano/internal/services"
	"platano/internal/store"
)

type eventRecorder struct {
	events []notify.Event
}

func (r *eventRecorder) Emit(e notify.Event) { r.events = append(r.events, e) }

func newService(t *testing.T) (*services.CatalogService, *eventRecorder) {
	t.Helper()
	st, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	rec := &eventRecorder{}
	return services.NewCatalogService(st, rec), rec
}

func TestMarginPolicy(t *testing.T) {
	if m := services.Margin(75.95, 125.00); math.Abs(m-64.58) > 0.05 {
		t.Fatalf("want margin near 64.6, got %v", m)
	}
	if m := services.Margin(0, 125.00); m != 0 {
		t.Fatalf("zero source price must yield margin 0, got %v", m)
	}
	if m := services.Margin(100, 100); m != 0 {
		t.Fatalf("want 0 for no markup, got %v", m)
	}
}

func TestAddProductComputesMargin(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.AddProduct(services.ProductFields{
		Name: "Air Jordan 4", Description: "Retro white cement",
		Category: "Jordan", Sizes: "40,41,42",
		SourcePrice: 75.95, ResalePrice: 125.00,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ID == 0 {
		t.Fatal("no identity returned")
	}
	if math.Abs(res.Margin-64.58) > 0.05 {
		t.Fatalf("want margin near 64.6, got %v", res.Margin)
	}

	p, err := svc.GetProduct(res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Margin != res.Margin || !p.Active {
		t.Fatalf("bad persisted product: %+v", p)
	}
}

func TestSearchHitIsCaseInsensitive(t *testing.T) {
	svc, rec := newService(t)
	res, err := svc.AddProduct(services.ProductFields{Name: "Air Jordan 4", SourcePrice: 75.95, ResalePrice: 125})
	if err != nil {
		t.Fatal(err)
	}

	req := services.Requester{ID: 7, Name: "Marc", Handle: "marc_s"}
	for _, term := range []string{"air jordan", "AIR JORDAN"} {
		p, err := svc.Search(term, req)
		if err != nil {
			t.Fatal(err)
		}
		if p == nil || p.ID != res.ID {
			t.Fatalf("%q: want hit on %d, got %+v", term, res.ID, p)
		}
	}
	if len(rec.events) != 0 {
		t.Fatalf("hits must not notify the operator, got %d events", len(rec.events))
	}
	if inqs, _ := svc.PendingInquiries(); len(inqs) != 0 {
		t.Fatalf("hits must not record inquiries, got %d", len(inqs))
	}
}

func TestSearchMissRecordsInquiryAndNotifies(t *testing.T) {
	svc, rec := newService(t)
	req := services.Requester{ID: 7, Name: "Marc"} // no handle

	p, err := svc.Search("yeezy", req)
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatalf("want miss, got %+v", p)
	}

	inqs, err := svc.PendingInquiries()
	if err != nil {
		t.Fatal(err)
	}
	if len(inqs) != 1 {
		t.Fatalf("want exactly one inquiry, got %d", len(inqs))
	}
	q := inqs[0]
	if q.Term != "yeezy" || q.Status != domain.StatusPending || q.Handle != domain.NoHandle {
		t.Fatalf("bad inquiry row: %+v", q)
	}

	if len(rec.events) != 1 {
		t.Fatalf("want one notification event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Term != "yeezy" || e.RequesterID != 7 || e.At.IsZero() {
		t.Fatalf("bad event: %+v", e)
	}

	// repeated identical miss accumulates, no dedup
	if _, err := svc.Search("yeezy", req); err != nil {
		t.Fatal(err)
	}
	if inqs, _ = svc.PendingInquiries(); len(inqs) != 2 {
		t.Fatalf("want 2 inquiries after repeat, got %d", len(inqs))
	}
}

func TestSearchByImageAlwaysMisses(t *testing.T) {
	svc, rec := newService(t)
	req := services.Requester{ID: 9, Name: "Laia", Handle: "laia"}
	if err := svc.SearchByImage(req, "photo-123", "like these but in red"); err != nil {
		t.Fatal(err)
	}

	inqs, err := svc.PendingInquiries()
	if err != nil {
		t.Fatal(err)
	}
	if len(inqs) != 1 {
		t.Fatalf("want one inquiry, got %d", len(inqs))
	}
	q := inqs[0]
	if q.Term != domain.PhotoInquiryTerm || q.Description != "like these but in red" || q.PhotoRef != "photo-123" {
		t.Fatalf("bad photo inquiry: %+v", q)
	}
	if len(rec.events) != 1 || rec.events[0].PhotoRef != "photo-123" {
		t.Fatalf("event must carry the photo reference: %+v", rec.events)
	}
}

func TestParseAddCommandFieldCount(t *testing.T) {
	cases := []string{
		"Air Jordan 4 | desc | Jordan | 40,41 | 75.95",                  // 5 fields
		"Air Jordan 4 | desc | Jordan | 40,41 | 75.95 | 125.00 | extra", // 7 fields
		"just a name",
	}
	for _, raw := range cases {
		if _, err := services.ParseAddCommand(raw); !services.IsValidation(err) {
			t.Fatalf("%q: want ValidationError, got %v", raw, err)
		}
	}
}

func TestParseAddCommandBadPrice(t *testing.T) {
	for _, raw := range []string{
		"Air Jordan 4 | desc | Jordan | 40,41 | seventy | 125.00",
		"Air Jordan 4 | desc | Jordan | 40,41 | 75.95 | -5",
		"Air Jordan 4 | desc | Jordan | 40,41 | 75.95 | ",
	} {
		if _, err := services.ParseAddCommand(raw); !services.IsValidation(err) {
			t.Fatalf("%q: want ValidationError, got %v", raw, err)
		}
	}
}

func TestParseAddCommandStripsLeadingVerb(t *testing.T) {
	f, err := services.ParseAddCommand("add-product Air Jordan 4 | desc | Jordan | 40,41 | 75.95 | 125.00")
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "Air Jordan 4" {
		t.Fatalf("verb must not leak into the product name, got %q", f.Name)
	}

	// a name that merely starts with the verb text survives
	f, err = services.ParseAddCommand("add-productions tee | desc | General | M | 10 | 20")
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "add-productions tee" {
		t.Fatalf("want name kept verbatim, got %q", f.Name)
	}
}

func TestParseAddCommandAcceptsCommaDecimal(t *testing.T) {
	f, err := services.ParseAddCommand("Air Jordan 4 | desc | Jordan | 40,41 | 75,95 | 125,00")
	if err != nil {
		t.Fatal(err)
	}
	if f.SourcePrice != 75.95 || f.ResalePrice != 125.00 {
		t.Fatalf("bad prices: %+v", f)
	}
}

func TestValidationFailureWritesNothing(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.AddProduct(services.ProductFields{Name: ""}); !services.IsValidation(err) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if _, err := svc.AddProduct(services.ProductFields{Name: "Yeezy 350", Sizes: "forty-two"}); !services.IsValidation(err) {
		t.Fatalf("want ValidationError for bad sizes, got %v", err)
	}
	if p, _ := svc.Search("yeezy", services.Requester{ID: 1}); p != nil {
		t.Fatalf("nothing should have been written, found %+v", p)
	}
}

func TestPlaceOrderSnapshotsPriceAndSize(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.AddProduct(services.ProductFields{Name: "Air Jordan 4", SourcePrice: 75.95, ResalePrice: 125})
	if err != nil {
		t.Fatal(err)
	}
	p, _ := svc.GetProduct(res.ID)

	oid, err := svc.PlaceOrder(services.Requester{ID: 7, Name: "Marc"}, *p, "42")
	if err != nil {
		t.Fatal(err)
	}
	if oid == 0 {
		t.Fatal("no order identity")
	}

	orders, err := svc.RecentOrders(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("want exactly one order, got %d", len(orders))
	}
	o := orders[0]
	if o.Size != "42" || o.Price != 125 || o.ProductName != "Air Jordan 4" || o.Status != domain.StatusPending {
		t.Fatalf("bad order row: %+v", o)
	}
	if !o.ProductID.Valid || o.ProductID.Int64 != p.ID {
		t.Fatalf("order must reference product %d: %+v", p.ID, o)
	}
}
