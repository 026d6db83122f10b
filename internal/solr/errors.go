package solr

import "errors"

var (
	// ErrIndexUnreachable is returned when the search index cannot be contacted or answers
	// with a server error.
	ErrIndexUnreachable = errors.New("search index unreachable")
	// ErrQueryMalformed is returned when the search index rejects a query as invalid.
	ErrQueryMalformed = errors.New("malformed search query")
)
