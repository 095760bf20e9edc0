// Package list keeps a remote-fetched, filtered and paginated collection
// consistent with the criteria controlling it. Users and projects listings
// share this one implementation.
package list

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/projectnest/nestctl/internal/models"
	appErrors "github.com/projectnest/nestctl/pkg/errors"
)

// FetchFunc issues one list request for the given query snapshot.
type FetchFunc[T any] func(ctx context.Context, query models.ListQuery) (models.PagedResponse[T], error)

// Coordinator synchronises filter, sort and page state with a remote list.
// A criterion change resets the page to 1 before refetching; a page change
// refetches with the criteria untouched. Responses carry a sequence number
// assigned at issue time and are applied newest-wins, so a stale response
// arriving late can never overwrite fresher results.
type Coordinator[T any] struct {
	mu sync.Mutex

	fetch  FetchFunc[T]
	logger *zap.Logger

	query models.ListQuery

	items []T
	total int

	issued  uint64
	settled uint64
	applied uint64

	onUpdate func()
	onError  func(error)
}

// Option configures a Coordinator.
type Option[T any] func(*Coordinator[T])

// WithLogger attaches a logger for fetch failures and discarded responses.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(c *Coordinator[T]) { c.logger = l }
}

// WithOnUpdate registers a callback fired after items/total are replaced.
func WithOnUpdate[T any](fn func()) Option[T] {
	return func(c *Coordinator[T]) { c.onUpdate = fn }
}

// WithOnError registers a callback fired when a fetch fails. The previous
// items and total stay in place.
func WithOnError[T any](fn func(error)) Option[T] {
	return func(c *Coordinator[T]) { c.onError = fn }
}

// WithCriteria seeds the initial criteria before the first fetch. Empty
// values are dropped.
func WithCriteria[T any](criteria map[string]string) Option[T] {
	return func(c *Coordinator[T]) {
		for name, value := range criteria {
			if value != "" {
				c.query.Criteria[name] = value
			}
		}
	}
}

// New builds a coordinator at page 1 with no criteria set.
func New[T any](fetch FetchFunc[T], pageSize int, opts ...Option[T]) *Coordinator[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	c := &Coordinator[T]{
		fetch: fetch,
		query: models.ListQuery{
			Criteria: make(map[string]string),
			Page:     1,
			PageSize: pageSize,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// SetCriterion updates one named criterion, resets the page to 1 and
// refetches. Every criterion the list exposes goes through here; changing
// the result set composition always invalidates the page position.
func (c *Coordinator[T]) SetCriterion(ctx context.Context, name, value string) error {
	c.mu.Lock()
	c.query.Criteria[name] = value
	c.query.Page = 1
	c.mu.Unlock()
	return c.Refetch(ctx)
}

// SetPage moves to newPage without touching criteria and refetches.
func (c *Coordinator[T]) SetPage(ctx context.Context, newPage int) error {
	c.mu.Lock()
	c.query.Page = newPage
	c.mu.Unlock()
	return c.Refetch(ctx)
}

// Refetch issues one request for the current (criteria, page, pageSize)
// snapshot and applies the response atomically unless a newer request has
// been issued or applied in the meantime.
func (c *Coordinator[T]) Refetch(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	snapshot := c.query.Clone()
	c.mu.Unlock()

	resp, err := c.fetch(ctx, snapshot)
	if err != nil {
		// Last-known-good: never replace rendered items on failure.
		c.mu.Lock()
		if seq > c.settled {
			c.settled = seq
		}
		c.mu.Unlock()
		c.logger.Warn("list fetch failed", zap.Error(err))
		classified := appErrors.FromError(err)
		if c.onError != nil {
			c.onError(classified)
		}
		return classified
	}

	c.mu.Lock()
	if seq > c.settled {
		c.settled = seq
	}
	if seq < c.issued || seq <= c.applied {
		// A newer request owns the list now; drop this response.
		c.mu.Unlock()
		c.logger.Debug("discarding stale list response", zap.Uint64("seq", seq))
		return nil
	}
	c.applied = seq
	c.items = resp.Results
	c.total = resp.Total
	notify := c.onUpdate
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

// Loading reports whether the newest issued request is still outstanding.
func (c *Coordinator[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issued > c.settled
}

// Items returns the current collection. The slice is replaced wholesale on
// each applied fetch, never merged.
func (c *Coordinator[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Total returns the authoritative count from the last applied response.
func (c *Coordinator[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Query returns a snapshot of the parameters the next fetch would carry.
func (c *Coordinator[T]) Query() models.ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

// Page returns the current 1-indexed page.
func (c *Coordinator[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Page
}
