package list

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectnest/nestctl/internal/models"
	appErrors "github.com/projectnest/nestctl/pkg/errors"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type recordingFetch struct {
	mu      sync.Mutex
	queries []models.ListQuery
	resp    models.PagedResponse[string]
	err     error
}

func (f *recordingFetch) fetch(ctx context.Context, q models.ListQuery) (models.PagedResponse[string], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return models.PagedResponse[string]{}, f.err
	}
	return f.resp, nil
}

func (f *recordingFetch) last(t *testing.T) models.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.queries)
	return f.queries[len(f.queries)-1]
}

func TestCriterionChangeResetsPage(t *testing.T) {
	fetcher := &recordingFetch{resp: models.PagedResponse[string]{Total: 100, Results: []string{"a"}}}
	c := New[string](fetcher.fetch, 10)

	require.NoError(t, c.SetPage(context.Background(), 7))
	require.Equal(t, 7, fetcher.last(t).Page)

	require.NoError(t, c.SetCriterion(context.Background(), models.CriterionStatus, "done"))
	sent := fetcher.last(t)
	assert.Equal(t, 1, sent.Page)
	assert.Equal(t, "done", sent.Criterion(models.CriterionStatus))
	assert.Equal(t, 10, sent.PageSize)
}

func TestPageChangeKeepsCriteria(t *testing.T) {
	fetcher := &recordingFetch{resp: models.PagedResponse[string]{Total: 100}}
	c := New[string](fetcher.fetch, 10)

	require.NoError(t, c.SetCriterion(context.Background(), models.CriterionStatus, "done"))
	require.NoError(t, c.SetPage(context.Background(), 3))

	sent := fetcher.last(t)
	assert.Equal(t, 3, sent.Page)
	assert.Equal(t, "done", sent.Criterion(models.CriterionStatus))
}

func TestEveryCriterionResetsPageUniformly(t *testing.T) {
	fetcher := &recordingFetch{resp: models.PagedResponse[string]{Total: 500}}
	c := New[string](fetcher.fetch, 10)

	for _, name := range []string{
		models.CriterionStatus,
		models.CriterionKeyword,
		models.CriterionRole,
		models.CriterionSortBy,
	} {
		require.NoError(t, c.SetPage(context.Background(), 5))
		require.NoError(t, c.SetCriterion(context.Background(), name, "x"))
		assert.Equal(t, 1, fetcher.last(t).Page, "criterion %s must reset the page", name)
	}
}

func TestSuccessReplacesItemsWholesale(t *testing.T) {
	fetcher := &recordingFetch{resp: models.PagedResponse[string]{Total: 2, Results: []string{"a", "b"}}}
	updates := 0
	c := New[string](fetcher.fetch, 10, WithOnUpdate[string](func() { updates++ }))

	require.NoError(t, c.Refetch(context.Background()))
	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.Equal(t, 2, c.Total())
	assert.Equal(t, 1, updates)
	assert.False(t, c.Loading())

	fetcher.resp = models.PagedResponse[string]{Total: 1, Results: []string{"c"}}
	require.NoError(t, c.Refetch(context.Background()))
	assert.Equal(t, []string{"c"}, c.Items())
	assert.Equal(t, 1, c.Total())
	assert.Equal(t, 2, updates)
}

func TestFailureKeepsLastKnownGood(t *testing.T) {
	fetcher := &recordingFetch{resp: models.PagedResponse[string]{Total: 2, Results: []string{"a", "b"}}}
	var reported error
	c := New[string](fetcher.fetch, 10, WithOnError[string](func(err error) { reported = err }))

	require.NoError(t, c.Refetch(context.Background()))

	fetcher.err = errors.New("boom")
	err := c.Refetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Items(), "failed fetch must not clear the rendered list")
	assert.Equal(t, 2, c.Total())
	require.NotNil(t, reported)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(reported).Code)
	assert.False(t, c.Loading())
}

func TestStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan int, 2)
	call := 0
	var mu sync.Mutex

	fetch := func(ctx context.Context, q models.ListQuery) (models.PagedResponse[string], error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		started <- n
		if n == 1 {
			// First request resolves only after the second one finished.
			<-release
			return models.PagedResponse[string]{Total: 1, Results: []string{"stale"}}, nil
		}
		return models.PagedResponse[string]{Total: 1, Results: []string{"fresh"}}, nil
	}

	c := New[string](fetch, 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Refetch(context.Background())
	}()
	<-started

	require.NoError(t, c.SetCriterion(context.Background(), models.CriterionKeyword, "x"))
	<-started
	assert.Equal(t, []string{"fresh"}, c.Items())

	close(release)
	wg.Wait()

	assert.Equal(t, []string{"fresh"}, c.Items(), "out-of-order response must never win")
	assert.False(t, c.Loading())
}

func TestLoadingTracksNewestRequest(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context, q models.ListQuery) (models.PagedResponse[string], error) {
		<-release
		return models.PagedResponse[string]{}, nil
	}
	c := New[string](fetch, 10)

	done := make(chan struct{})
	go func() {
		_ = c.Refetch(context.Background())
		close(done)
	}()

	require.Eventually(t, c.Loading, waitFor, tick)
	close(release)
	<-done
	assert.False(t, c.Loading())
}

func TestQuerySnapshotDoesNotAliasState(t *testing.T) {
	fetcher := &recordingFetch{resp: models.PagedResponse[string]{Total: 10}}
	c := New[string](fetcher.fetch, 10)
	require.NoError(t, c.SetCriterion(context.Background(), models.CriterionRole, "student"))

	snap := c.Query()
	snap.Criteria[models.CriterionRole] = "mutated"

	assert.Equal(t, "student", c.Query().Criterion(models.CriterionRole))
}
