package symbolcleanup

import "errors"

var (
	ErrNotFound   = errors.New("no files matched the pattern")
	ErrBadPattern = errors.New("malformed pattern") // always wrapped together with ErrNotFound
	ErrParse      = errors.New("document is not well-formed XML")
	ErrIO         = errors.New("file read/write failed")
	ErrVerify     = errors.New("cleaned document is no longer a loadable SVG")
)
