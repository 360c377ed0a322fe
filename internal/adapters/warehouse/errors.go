package warehouse

import "errors"

// Sentinel kinds for warehouse errors.
var (
	ErrNoTerms       = errors.New("no search terms")
	ErrSearchFailed  = errors.New("both search queries failed")
	ErrQueryExecutor = errors.New("query executor unavailable")
)
