package audit

import (
	"context"
	"fmt"

	dErrors "streamaudit/pkg/domain-errors"
	"streamaudit/pkg/platform/sentinel"
)

// PageSize is the fixed page size for every paginated backend collection.
const PageSize = 100

// Page is one page of a skip/limit collection: the items of this page plus
// the backend's authoritative total for the whole collection.
type Page[T any] struct {
	Items []T
	Total int
}

// PageFunc fetches one page of a collection starting at skip.
type PageFunc[T any] func(ctx context.Context, skip, limit int) (Page[T], error)

// FetchAll drains a paginated collection. The first call at skip 0 yields the
// authoritative total; subsequent calls advance skip by the number of items
// already collected, so no item is fetched twice against a well-behaved
// backend and ordering is preserved.
//
// A page that adds no items while the collection is still short of its total
// means the backend will never let us finish; FetchAll fails with
// sentinel.ErrStalled instead of looping.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	first, err := fetch(ctx, 0, PageSize)
	if err != nil {
		return nil, err
	}

	items := first.Items
	total := first.Total

	for len(items) < total {
		next, err := fetch(ctx, len(items), PageSize)
		if err != nil {
			return nil, err
		}
		if len(next.Items) == 0 {
			return nil, dErrors.Wrap(sentinel.ErrStalled, dErrors.CodeUnavailable,
				fmt.Sprintf("no progress at %d of %d items", len(items), total))
		}
		items = append(items, next.Items...)
	}

	return items, nil
}
