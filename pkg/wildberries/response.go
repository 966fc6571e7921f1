package wildberries

// SubjectNode is one entry of the subject tree JSON. Nesting depth is unbounded upstream.
type SubjectNode struct {
	ID     int64         `json:"id"`
	Name   string        `json:"name"`
	URL    string        `json:"url,omitempty"`
	Childs []SubjectNode `json:"childs,omitempty"`
}

// SearchResponse wraps a catalog search page.
// Wildberries wraps the product list in a "data" field.
type SearchResponse struct {
	Data struct {
		Products []SearchProduct `json:"products"`
	} `json:"data"`
}

// SearchProduct is a search hit. Only the nmID is used.
type SearchProduct struct {
	ID int64 `json:"id"`
}

// CardResponse wraps a card detail batch.
type CardResponse struct {
	Data struct {
		Products []CardProduct `json:"products"`
	} `json:"data"`
}

// CardProduct represents a single item with its per-size stock breakdown.
type CardProduct struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Sizes []CardSize `json:"sizes,omitempty"`
}

// CardSize is one purchasable size of an item.
type CardSize struct {
	Name   string      `json:"name"`
	Stocks []CardStock `json:"stocks,omitempty"`
}

// CardStock is the quantity held at one warehouse.
type CardStock struct {
	Warehouse int64 `json:"wh"`
	Qty       int   `json:"qty"`
}
