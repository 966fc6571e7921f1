package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/lowstock/internal/metrics"
	"github.com/GTDGit/lowstock/internal/models"
	"github.com/GTDGit/lowstock/internal/utils"
	"github.com/GTDGit/lowstock/pkg/wildberries"
)

// Search limits.
const (
	MinThreshold    = 1
	MaxThreshold    = 999
	MinPages        = 1
	MaxPages        = 50
	DefaultMaxPages = 2
)

// Catalog is the subset of the marketplace API used by searches.
type Catalog interface {
	SearchPage(ctx context.Context, subjectID int64, page int) ([]int64, error)
	GetCardDetails(ctx context.Context, ids []int64) ([]wildberries.CardProduct, error)
}

// StopReason says why pagination ended.
type StopReason string

const (
	StopPageLimit   StopReason = "page_limit"
	StopEmptyPage   StopReason = "empty_page"
	StopFetchFailed StopReason = "fetch_failed"
)

// PageStop describes how a paginated fetch ended.
type PageStop struct {
	Reason       StopReason
	PagesFetched int
	Err          error
}

// BatchReport summarizes a batched detail fetch.
type BatchReport struct {
	Batches int
	Failed  int
}

// SearchParams are the validated inputs of one search.
type SearchParams struct {
	SubjectID int64
	Threshold int
	MaxPages  int
}

// Validate checks the documented ranges and wraps utils.ErrValidationFailed.
func (p SearchParams) Validate() error {
	if p.SubjectID <= 0 {
		return fmt.Errorf("%w: subjectId must be a positive integer", utils.ErrValidationFailed)
	}
	if p.Threshold < MinThreshold || p.Threshold > MaxThreshold {
		return fmt.Errorf("%w: threshold must be between %d and %d", utils.ErrValidationFailed, MinThreshold, MaxThreshold)
	}
	if p.MaxPages < MinPages || p.MaxPages > MaxPages {
		return fmt.Errorf("%w: maxPages must be between %d and %d", utils.ErrValidationFailed, MinPages, MaxPages)
	}
	return nil
}

// SearchReport carries diagnostics of a completed search.
type SearchReport struct {
	Pages     PageStop
	Batches   BatchReport
	IDs       int
	UniqueIDs int
	Products  int
}

// SearchService runs the low-stock search pipeline.
type SearchService struct {
	catalog     Catalog
	batchSize   int
	urlTemplate string
}

// NewSearchService constructs a SearchService.
func NewSearchService(catalog Catalog, batchSize int, urlTemplate string) *SearchService {
	if batchSize <= 0 {
		batchSize = 100
	}
	if urlTemplate == "" {
		urlTemplate = wildberries.DefaultProductURLTemplate
	}
	return &SearchService{
		catalog:     catalog,
		batchSize:   batchSize,
		urlTemplate: urlTemplate,
	}
}

// Search collects ids page by page, fetches their stock detail and returns the low-stock products.
// Upstream failures shrink the result instead of failing the search.
func (s *SearchService) Search(ctx context.Context, params SearchParams) ([]models.AggregatedResult, SearchReport, error) {
	var report SearchReport
	if err := params.Validate(); err != nil {
		return nil, report, err
	}

	start := time.Now()
	ids, stop := s.FetchIDs(ctx, params.SubjectID, params.MaxPages)
	unique := DedupeIDs(ids)
	products, batches := s.FetchDetails(ctx, unique)
	results := FilterLowStock(products, params.Threshold, s.urlTemplate)

	report = SearchReport{
		Pages:     stop,
		Batches:   batches,
		IDs:       len(ids),
		UniqueIDs: len(unique),
		Products:  len(products),
	}
	metrics.SearchResults.Observe(float64(len(results)))

	log.Info().
		Int64("subject_id", params.SubjectID).
		Int("threshold", params.Threshold).
		Int("max_pages", params.MaxPages).
		Int("pages_fetched", stop.PagesFetched).
		Str("stop_reason", string(stop.Reason)).
		Int("ids", len(ids)).
		Int("unique_ids", len(unique)).
		Int("batches", batches.Batches).
		Int("failed_batches", batches.Failed).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("search completed")

	return results, report, nil
}

// FetchIDs requests pages 1..maxPages in order and concatenates their ids.
// It stops at the first empty page or failed request; neither is reported as an error.
func (s *SearchService) FetchIDs(ctx context.Context, subjectID int64, maxPages int) ([]int64, PageStop) {
	var ids []int64
	stop := PageStop{Reason: StopPageLimit}

	for page := 1; page <= maxPages; page++ {
		started := time.Now()
		pageIDs, err := s.catalog.SearchPage(ctx, subjectID, page)
		stop.PagesFetched++

		if err != nil {
			metrics.ObserveUpstream(metrics.EndpointSearch, metrics.OutcomeFailed, started)
			log.Warn().Err(err).Int64("subject_id", subjectID).Int("page", page).Msg("search page failed, stopping pagination")
			stop.Reason = StopFetchFailed
			stop.Err = err
			break
		}
		if len(pageIDs) == 0 {
			metrics.ObserveUpstream(metrics.EndpointSearch, metrics.OutcomeEmpty, started)
			stop.Reason = StopEmptyPage
			break
		}
		metrics.ObserveUpstream(metrics.EndpointSearch, metrics.OutcomeOK, started)
		ids = append(ids, pageIDs...)
	}
	return ids, stop
}

// FetchDetails fetches card detail for ids in consecutive batches, one request at a time.
// A failed batch is skipped; the others are returned in batch order.
func (s *SearchService) FetchDetails(ctx context.Context, ids []int64) ([]models.ProductDetail, BatchReport) {
	var products []models.ProductDetail
	var report BatchReport

	for i, chunk := range chunkIDs(ids, s.batchSize) {
		report.Batches++
		started := time.Now()
		cards, err := s.catalog.GetCardDetails(ctx, chunk)
		if err != nil {
			metrics.ObserveUpstream(metrics.EndpointDetail, metrics.OutcomeFailed, started)
			log.Warn().Err(err).Int("batch", i).Int("size", len(chunk)).Msg("card detail batch failed, skipping")
			report.Failed++
			continue
		}
		metrics.ObserveUpstream(metrics.EndpointDetail, metrics.OutcomeOK, started)
		for _, c := range cards {
			products = append(products, toProductDetail(c))
		}
	}
	return products, report
}

func toProductDetail(c wildberries.CardProduct) models.ProductDetail {
	p := models.ProductDetail{ID: c.ID, Name: c.Name}
	if len(c.Sizes) == 0 {
		return p
	}
	p.Sizes = make([]models.SizeVariant, 0, len(c.Sizes))
	for _, size := range c.Sizes {
		v := models.SizeVariant{Name: size.Name}
		if len(size.Stocks) > 0 {
			v.Stocks = make([]models.WarehouseStock, 0, len(size.Stocks))
			for _, st := range size.Stocks {
				v.Stocks = append(v.Stocks, models.WarehouseStock{WarehouseID: st.Warehouse, Quantity: st.Qty})
			}
		}
		p.Sizes = append(p.Sizes, v)
	}
	return p
}
