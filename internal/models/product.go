package models

// ProductDetail is an item with its per-size stock breakdown as returned by the card endpoint.
type ProductDetail struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Sizes []SizeVariant `json:"sizes"`
}

// SizeVariant is one purchasable size of a product.
type SizeVariant struct {
	Name   string           `json:"name"`
	Stocks []WarehouseStock `json:"stocks"`
}

// WarehouseStock is the quantity of a size held at one warehouse.
type WarehouseStock struct {
	WarehouseID int64 `json:"warehouseId"`
	Quantity    int   `json:"quantity"`
}

// AggregatedResult is a product that passed the low-stock filter.
// MinSizeQty is always >= 1.
type AggregatedResult struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	MinSizeQty int    `json:"minSizeQty"`
	URL        string `json:"url"`
}

// SearchRequest is the body of POST /search.
// MaxPages is optional and defaults to 2 when omitted.
type SearchRequest struct {
	SubjectID int64 `json:"subjectId" binding:"required,gt=0"`
	Threshold int   `json:"threshold" binding:"required,min=1,max=999"`
	MaxPages  *int  `json:"maxPages" binding:"omitempty,min=1,max=50"`
}
