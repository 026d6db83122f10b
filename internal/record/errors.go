package record

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordDeleted  = errors.New("record deleted")
	ErrMalformedPI    = errors.New("malformed persistent identifier")
)
