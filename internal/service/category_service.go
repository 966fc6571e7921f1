package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/lowstock/internal/cache"
	"github.com/GTDGit/lowstock/internal/metrics"
	"github.com/GTDGit/lowstock/internal/models"
	"github.com/GTDGit/lowstock/internal/utils"
	"github.com/GTDGit/lowstock/pkg/wildberries"
)

// TreeSource downloads the subject tree from one mirror.
type TreeSource interface {
	GetSubjectTree(ctx context.Context, mirrorURL string) ([]wildberries.SubjectNode, error)
}

// CategoryService serves the two-level category tree.
type CategoryService struct {
	source  TreeSource
	cache   cache.ResponseCache
	mirrors []string
	ttl     time.Duration
}

// NewCategoryService constructs a CategoryService. Mirrors are tried in the given order.
func NewCategoryService(source TreeSource, responseCache cache.ResponseCache, mirrors []string, ttl time.Duration) *CategoryService {
	return &CategoryService{
		source:  source,
		cache:   responseCache,
		mirrors: append([]string(nil), mirrors...),
		ttl:     ttl,
	}
}

// GetTree returns the category tree truncated to two levels, taken from the first mirror
// that yields a non-empty tree. It returns utils.ErrUpstreamUnavailable when none does.
func (s *CategoryService) GetTree(ctx context.Context) ([]models.CategoryNode, error) {
	for _, mirror := range s.mirrors {
		tree, ok := s.fromMirror(ctx, mirror)
		if ok {
			return TruncateTree(tree), nil
		}
	}
	log.Error().Int("mirrors", len(s.mirrors)).Msg("all subject tree mirrors failed")
	return nil, utils.ErrUpstreamUnavailable
}

func (s *CategoryService) fromMirror(ctx context.Context, mirror string) ([]wildberries.SubjectNode, bool) {
	if tree, ok := s.cached(ctx, mirror); ok {
		metrics.ObserveUpstream(metrics.EndpointTree, metrics.OutcomeCached, time.Now())
		return tree, true
	}
	return s.download(ctx, mirror)
}

// Refresh downloads the tree from the first healthy mirror, bypassing and then
// replacing the cached copy.
func (s *CategoryService) Refresh(ctx context.Context) error {
	for _, mirror := range s.mirrors {
		if _, ok := s.download(ctx, mirror); ok {
			return nil
		}
	}
	return utils.ErrUpstreamUnavailable
}

func (s *CategoryService) download(ctx context.Context, mirror string) ([]wildberries.SubjectNode, bool) {
	start := time.Now()
	tree, err := s.source.GetSubjectTree(ctx, mirror)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, wildberries.ErrEmptyTree) {
			outcome = metrics.OutcomeEmpty
		}
		metrics.ObserveUpstream(metrics.EndpointTree, outcome, start)
		log.Warn().Err(err).Str("mirror", mirror).Msg("subject tree mirror failed, trying next")
		return nil, false
	}
	metrics.ObserveUpstream(metrics.EndpointTree, metrics.OutcomeOK, start)

	s.store(ctx, mirror, tree)
	return tree, true
}

func treeCacheKey(mirror string) string {
	return "subject_tree:" + mirror
}

// cached returns a previously fetched tree for mirror. Any cache problem counts as a miss.
func (s *CategoryService) cached(ctx context.Context, mirror string) ([]wildberries.SubjectNode, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, treeCacheKey(mirror))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("mirror", mirror).Msg("tree cache read failed")
		}
		return nil, false
	}
	var tree []wildberries.SubjectNode
	if err := json.Unmarshal(raw, &tree); err != nil || len(tree) == 0 {
		return nil, false
	}
	return tree, true
}

func (s *CategoryService) store(ctx context.Context, mirror string, tree []wildberries.SubjectNode) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal subject tree for cache")
		return
	}
	if err := s.cache.Set(ctx, treeCacheKey(mirror), raw, s.ttl); err != nil {
		log.Warn().Err(err).Str("mirror", mirror).Msg("tree cache write failed")
	}
}

// TruncateTree keeps top-level nodes and their immediate children, dropping deeper levels.
// The input is not modified.
func TruncateTree(tree []wildberries.SubjectNode) []models.CategoryNode {
	out := make([]models.CategoryNode, 0, len(tree))
	for _, n := range tree {
		node := models.CategoryNode{ID: n.ID, Name: n.Name, URL: n.URL}
		if len(n.Childs) > 0 {
			node.Children = make([]models.CategoryNode, 0, len(n.Childs))
			for _, c := range n.Childs {
				node.Children = append(node.Children, models.CategoryNode{ID: c.ID, Name: c.Name, URL: c.URL})
			}
		}
		out = append(out, node)
	}
	return out
}
