package domain

import "context"

// TableLoader fetches the survey sheet. Implementations wrap every failure in
// a *FetchError.
type TableLoader interface {
	Load(ctx context.Context) (Table, error)
}
