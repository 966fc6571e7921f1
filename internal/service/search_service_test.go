package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/GTDGit/lowstock/internal/utils"
	"github.com/GTDGit/lowstock/pkg/wildberries"
)

// fakeCatalog serves canned pages and cards and records every call.
type fakeCatalog struct {
	pages     map[int][]int64
	pageErr   map[int]error
	cards     map[int64]wildberries.CardProduct
	batchErr  map[int]error
	pageCalls []int
	batches   [][]int64
}

func (f *fakeCatalog) SearchPage(_ context.Context, _ int64, page int) ([]int64, error) {
	f.pageCalls = append(f.pageCalls, page)
	if err := f.pageErr[page]; err != nil {
		return nil, err
	}
	return f.pages[page], nil
}

func (f *fakeCatalog) GetCardDetails(_ context.Context, ids []int64) ([]wildberries.CardProduct, error) {
	idx := len(f.batches)
	f.batches = append(f.batches, append([]int64(nil), ids...))
	if err := f.batchErr[idx]; err != nil {
		return nil, err
	}
	var out []wildberries.CardProduct
	for _, id := range ids {
		if c, ok := f.cards[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func idRange(from, n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(from + i)
	}
	return ids
}

// card builds a CardProduct whose sizes hold the given per-warehouse quantities.
func card(id int64, name string, sizes ...[]int) wildberries.CardProduct {
	c := wildberries.CardProduct{ID: id, Name: name}
	for _, qtys := range sizes {
		s := wildberries.CardSize{Name: "size"}
		for wh, q := range qtys {
			s.Stocks = append(s.Stocks, wildberries.CardStock{Warehouse: int64(wh), Qty: q})
		}
		c.Sizes = append(c.Sizes, s)
	}
	return c
}

func TestFetchIDs_StopsAtFirstEmptyPage(t *testing.T) {
	cat := &fakeCatalog{pages: map[int][]int64{
		1: idRange(1, 5),
		2: idRange(100, 3),
		3: {},
		4: idRange(200, 7),
	}}
	svc := NewSearchService(cat, 100, "")

	ids, stop := svc.FetchIDs(context.Background(), 100, 4)

	if len(ids) != 8 {
		t.Errorf("ids = %d, want 8", len(ids))
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(cat.pageCalls, want) {
		t.Errorf("pages requested = %v, want %v", cat.pageCalls, want)
	}
	if stop.Reason != StopEmptyPage || stop.PagesFetched != 3 {
		t.Errorf("stop = %+v, want empty_page after 3 pages", stop)
	}
}

func TestFetchIDs_StopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	cat := &fakeCatalog{
		pages:   map[int][]int64{1: {1, 2}, 3: {3}},
		pageErr: map[int]error{2: boom},
	}
	svc := NewSearchService(cat, 100, "")

	ids, stop := svc.FetchIDs(context.Background(), 7, 5)

	if want := []int64{1, 2}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if stop.Reason != StopFetchFailed || !errors.Is(stop.Err, boom) {
		t.Errorf("stop = %+v, want fetch_failed with boom", stop)
	}
	if len(cat.pageCalls) != 2 {
		t.Errorf("pages requested = %v, want 2 calls", cat.pageCalls)
	}
}

func TestFetchIDs_PageLimit(t *testing.T) {
	cat := &fakeCatalog{pages: map[int][]int64{1: {1}, 2: {2}, 3: {3}}}
	svc := NewSearchService(cat, 100, "")

	ids, stop := svc.FetchIDs(context.Background(), 7, 2)

	if want := []int64{1, 2}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if stop.Reason != StopPageLimit {
		t.Errorf("reason = %s, want page_limit", stop.Reason)
	}
}

func TestFetchIDs_KeepsDuplicates(t *testing.T) {
	cat := &fakeCatalog{pages: map[int][]int64{1: {1, 2}, 2: {2, 3, 1}}}
	svc := NewSearchService(cat, 100, "")

	ids, _ := svc.FetchIDs(context.Background(), 7, 2)
	if want := []int64{1, 2, 2, 3, 1}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestFetchDetails_BatchesInOrder(t *testing.T) {
	ids := idRange(1, 250)
	cards := make(map[int64]wildberries.CardProduct, len(ids))
	for _, id := range ids {
		cards[id] = card(id, "p", []int{1})
	}
	cat := &fakeCatalog{cards: cards}
	svc := NewSearchService(cat, 100, "")

	products, report := svc.FetchDetails(context.Background(), ids)

	if len(cat.batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(cat.batches))
	}
	for i, want := range []int{100, 100, 50} {
		if len(cat.batches[i]) != want {
			t.Errorf("batch %d size = %d, want %d", i, len(cat.batches[i]), want)
		}
	}
	if report.Batches != 3 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}
	if len(products) != 250 {
		t.Fatalf("products = %d, want 250", len(products))
	}
	for i, p := range products {
		if p.ID != int64(i+1) {
			t.Fatalf("products[%d].ID = %d, want %d", i, p.ID, i+1)
		}
	}
}

func TestFetchDetails_SkipsFailedBatch(t *testing.T) {
	ids := idRange(1, 5)
	cards := map[int64]wildberries.CardProduct{}
	for _, id := range ids {
		cards[id] = card(id, "p", []int{1})
	}
	cat := &fakeCatalog{cards: cards, batchErr: map[int]error{1: errors.New("502")}}
	svc := NewSearchService(cat, 2, "")

	products, report := svc.FetchDetails(context.Background(), ids)

	var got []int64
	for _, p := range products {
		got = append(got, p.ID)
	}
	if want := []int64{1, 2, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("product ids = %v, want %v", got, want)
	}
	if report.Batches != 3 || report.Failed != 1 {
		t.Errorf("report = %+v, want 3 batches / 1 failed", report)
	}
}

func TestFetchDetails_NoIDsNoRequests(t *testing.T) {
	cat := &fakeCatalog{}
	svc := NewSearchService(cat, 100, "")

	products, report := svc.FetchDetails(context.Background(), nil)
	if len(products) != 0 || report.Batches != 0 || len(cat.batches) != 0 {
		t.Errorf("products=%d report=%+v calls=%d, want nothing", len(products), report, len(cat.batches))
	}
}

func TestSearch_EndToEnd(t *testing.T) {
	cat := &fakeCatalog{
		pages: map[int][]int64{1: {11, 12}},
		cards: map[int64]wildberries.CardProduct{
			11: card(11, "Jacket", []int{0}, []int{1, 2}),
			12: card(12, "Scarf", []int{0}, []int{0, 0}),
		},
	}
	svc := NewSearchService(cat, 100, wildberries.DefaultProductURLTemplate)

	results, report, err := svc.Search(context.Background(), SearchParams{SubjectID: 100, Threshold: 5, MaxPages: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %+v, want exactly one", results)
	}
	r := results[0]
	if r.ID != 11 || r.MinSizeQty != 3 || r.Name != "Jacket" {
		t.Errorf("result = %+v", r)
	}
	if r.URL != "https://www.wildberries.ru/catalog/11/detail.aspx" {
		t.Errorf("URL = %q", r.URL)
	}
	if report.Pages.Reason != StopPageLimit || report.UniqueIDs != 2 || report.Products != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestSearch_DedupesBeforeBatching(t *testing.T) {
	cat := &fakeCatalog{pages: map[int][]int64{1: {1, 2, 2}, 2: {3, 1}}}
	svc := NewSearchService(cat, 100, "")

	_, report, err := svc.Search(context.Background(), SearchParams{SubjectID: 1, Threshold: 5, MaxPages: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(cat.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(cat.batches))
	}
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(cat.batches[0], want) {
		t.Errorf("batch = %v, want %v", cat.batches[0], want)
	}
	if report.IDs != 5 || report.UniqueIDs != 3 {
		t.Errorf("report = %+v", report)
	}
}

func TestSearch_RejectsInvalidParams(t *testing.T) {
	svc := NewSearchService(&fakeCatalog{}, 100, "")
	cases := []SearchParams{
		{SubjectID: -1, Threshold: 2, MaxPages: 2},
		{SubjectID: 0, Threshold: 2, MaxPages: 2},
		{SubjectID: 1, Threshold: 0, MaxPages: 2},
		{SubjectID: 1, Threshold: 1000, MaxPages: 2},
		{SubjectID: 1, Threshold: 2, MaxPages: 0},
		{SubjectID: 1, Threshold: 2, MaxPages: 51},
	}
	for _, p := range cases {
		if _, _, err := svc.Search(context.Background(), p); !errors.Is(err, utils.ErrValidationFailed) {
			t.Errorf("Search(%+v): err = %v, want ErrValidationFailed", p, err)
		}
	}
}
