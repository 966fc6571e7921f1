package service

import (
	"reflect"
	"testing"

	"github.com/GTDGit/lowstock/internal/models"
)

// product builds a ProductDetail whose sizes hold the given per-warehouse quantities.
func product(id int64, sizes ...[]int) models.ProductDetail {
	p := models.ProductDetail{ID: id, Name: "item"}
	for i, qtys := range sizes {
		v := models.SizeVariant{Name: string(rune('S' + i))}
		for wh, q := range qtys {
			v.Stocks = append(v.Stocks, models.WarehouseStock{WarehouseID: int64(wh + 1), Quantity: q})
		}
		p.Sizes = append(p.Sizes, v)
	}
	return p
}

func TestMinPositiveStock(t *testing.T) {
	tests := []struct {
		name   string
		p      models.ProductDetail
		want   int
		wantOK bool
	}{
		{"no sizes", product(1), 0, false},
		{"size without stocks", product(1, nil), 0, false},
		{"all sold out", product(1, []int{0, 0}, []int{0}), 0, false},
		{"single size", product(1, []int{2, 3}), 5, true},
		{"skips empty sizes", product(1, []int{0}, []int{1, 2}), 3, true},
		{"minimum over sizes", product(1, []int{4}, []int{7}, []int{2, 0}), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MinPositiveStock(tt.p)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MinPositiveStock = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFilterLowStock_RespectsThreshold(t *testing.T) {
	products := []models.ProductDetail{
		product(1, []int{1}),
		product(2, []int{5}),
		product(3, []int{6}),
		product(4, []int{0}),
		product(5, []int{3}, []int{10}),
	}
	for threshold := 1; threshold <= 10; threshold++ {
		for _, r := range FilterLowStock(products, threshold, "https://example.com/%d") {
			if r.MinSizeQty < 1 || r.MinSizeQty > threshold {
				t.Errorf("threshold %d: result %d has minSizeQty %d", threshold, r.ID, r.MinSizeQty)
			}
		}
	}

	got := FilterLowStock(products, 5, "https://example.com/catalog/%d/detail.aspx")
	var ids []int64
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	if want := []int64{1, 2, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if got[0].URL != "https://example.com/catalog/1/detail.aspx" {
		t.Errorf("URL = %q", got[0].URL)
	}
}

func TestFilterLowStock_EmptyIsNotNil(t *testing.T) {
	got := FilterLowStock(nil, 5, "%d")
	if got == nil {
		t.Fatal("FilterLowStock(nil) = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestDedupeIDs(t *testing.T) {
	got := DedupeIDs([]int64{1, 2, 2, 3, 1})
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeIDs = %v, want %v", got, want)
	}
}

func TestChunkIDs(t *testing.T) {
	ids := make([]int64, 250)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	chunks := chunkIDs(ids, 100)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	for i, want := range []int{100, 100, 50} {
		if len(chunks[i]) != want {
			t.Errorf("chunk %d size = %d, want %d", i, len(chunks[i]), want)
		}
	}
	if chunks[2][0] != 201 {
		t.Errorf("third chunk starts at %d, want 201", chunks[2][0])
	}
	if got := chunkIDs(nil, 100); len(got) != 0 {
		t.Errorf("chunkIDs(nil) = %v, want none", got)
	}
}
