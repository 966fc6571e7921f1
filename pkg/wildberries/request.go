package wildberries

import (
	"net/url"
	"strconv"
	"strings"
)

// searchParams builds the query for one catalog search page scoped to a subject.
func (c *Client) searchParams(subjectID int64, page int) url.Values {
	params := url.Values{}
	params.Set("appType", c.config.AppType)
	params.Set("curr", c.config.Currency)
	params.Set("dest", c.config.Dest)
	params.Set("resultset", "catalog")
	params.Set("sort", "popular")
	params.Set("spp", "0")
	params.Set("query", "")
	params.Set("subject", strconv.FormatInt(subjectID, 10))
	params.Set("page", strconv.Itoa(page))
	return params
}

// detailParams builds the query for a card detail batch.
func (c *Client) detailParams(ids []int64) url.Values {
	params := url.Values{}
	params.Set("appType", c.config.AppType)
	params.Set("curr", c.config.Currency)
	params.Set("dest", c.config.Dest)
	params.Set("nm", JoinIDs(ids))
	return params
}

// JoinIDs renders ids as the comma-separated list the card endpoint expects.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
