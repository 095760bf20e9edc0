package models

// Criterion names shared by the list endpoints. The "all" sentinel means
// no filter; mapping it to an absent query parameter happens in the API
// layer, not in the list coordinator.
const (
	CriterionRole    = "role"
	CriterionStatus  = "status"
	CriterionKeyword = "keyword"
	CriterionSortBy  = "sort_by"

	FilterAll = "all"
)

// ListQuery fully determines one list fetch.
type ListQuery struct {
	Criteria map[string]string
	Page     int
	PageSize int
}

// Criterion returns the named criterion, empty when unset.
func (q ListQuery) Criterion(name string) string {
	if q.Criteria == nil {
		return ""
	}
	return q.Criteria[name]
}

// Clone deep-copies the query so snapshots cannot alias live state.
func (q ListQuery) Clone() ListQuery {
	out := ListQuery{Page: q.Page, PageSize: q.PageSize}
	if q.Criteria != nil {
		out.Criteria = make(map[string]string, len(q.Criteria))
		for k, v := range q.Criteria {
			out.Criteria[k] = v
		}
	}
	return out
}

// PagedResponse is the list envelope every paginated endpoint returns.
type PagedResponse[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Results  []T `json:"results"`
}
