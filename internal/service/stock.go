package service

import (
	"fmt"

	"github.com/GTDGit/lowstock/internal/models"
)

// MinPositiveStock returns the smallest per-size stock total among sizes that have any stock.
// ok is false when every size is sold out or the product has no sizes.
func MinPositiveStock(p models.ProductDetail) (minQty int, ok bool) {
	for _, size := range p.Sizes {
		total := 0
		for _, st := range size.Stocks {
			total += st.Quantity
		}
		if total <= 0 {
			continue
		}
		if !ok || total < minQty {
			minQty = total
			ok = true
		}
	}
	return minQty, ok
}

// FilterLowStock keeps products whose minimum size stock lies in [1, threshold], in input order.
// urlTemplate must contain a single %d verb for the item id.
func FilterLowStock(products []models.ProductDetail, threshold int, urlTemplate string) []models.AggregatedResult {
	results := make([]models.AggregatedResult, 0)
	for _, p := range products {
		qty, ok := MinPositiveStock(p)
		if !ok || qty < 1 || qty > threshold {
			continue
		}
		results = append(results, models.AggregatedResult{
			ID:         p.ID,
			Name:       p.Name,
			MinSizeQty: qty,
			URL:        fmt.Sprintf(urlTemplate, p.ID),
		})
	}
	return results
}

// DedupeIDs drops repeated ids, keeping the first occurrence of each.
func DedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// chunkIDs splits ids into consecutive slices of at most size elements.
func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = len(ids)
	}
	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
