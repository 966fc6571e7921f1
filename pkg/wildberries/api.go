package wildberries

import (
	"context"
	"errors"
)

// ErrEmptyTree is returned when a mirror answers with a valid but empty tree.
var ErrEmptyTree = errors.New("subject tree is empty")

// GetSubjectTree downloads the full subject tree from a single mirror URL.
func (c *Client) GetSubjectTree(ctx context.Context, mirrorURL string) ([]SubjectNode, error) {
	var tree []SubjectNode
	if err := c.doGet(ctx, mirrorURL, nil, &tree); err != nil {
		return nil, err
	}
	if len(tree) == 0 {
		return nil, ErrEmptyTree
	}
	return tree, nil
}

// SearchPage returns the item ids of one catalog page for the subject.
// An empty slice with a nil error means the page holds no items.
func (c *Client) SearchPage(ctx context.Context, subjectID int64, page int) ([]int64, error) {
	var resp SearchResponse
	if err := c.doGet(ctx, c.config.SearchURL, c.searchParams(subjectID, page), &resp); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(resp.Data.Products))
	for _, p := range resp.Data.Products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// GetCardDetails fetches size and stock detail for a batch of items in one request.
func (c *Client) GetCardDetails(ctx context.Context, ids []int64) ([]CardProduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var resp CardResponse
	if err := c.doGet(ctx, c.config.DetailURL, c.detailParams(ids), &resp); err != nil {
		return nil, err
	}
	return resp.Data.Products, nil
}
