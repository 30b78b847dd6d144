package probe

import (
	"context"
	"errors"
	"fmt"
)

// Answer is what a successful lookup returned. Only its presence matters to
// the checks; the records are kept for logging.
type Answer struct {
	Records []string
}

// Resolver resolves a single name. Transient failures must be reported as a
// *ResolveError; anything else is treated as fatal by the Retrier.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Answer, error)
}

// ResolveErrorKind is the closed set of retryable resolution failures.
type ResolveErrorKind int

const (
	NoAnswer ResolveErrorKind = iota + 1
	Timeout
	NoNameservers
)

func (k ResolveErrorKind) String() string {
	switch k {
	case NoAnswer:
		return "NO_ANSWER"
	case Timeout:
		return "TIMEOUT"
	case NoNameservers:
		return "NO_NAMESERVERS"
	}
	return fmt.Sprintf("ResolveErrorKind(%d)", int(k))
}

type ResolveError struct {
	Kind ResolveErrorKind
	Name string
	Err  error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %s: %s: %v", e.Name, e.Kind, e.Err)
	}
	return fmt.Sprintf("resolve %s: %s", e.Name, e.Kind)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries one of the retryable kinds.
func IsRetryable(err error) bool {
	var re *ResolveError
	if !errors.As(err, &re) {
		return false
	}
	switch re.Kind {
	case NoAnswer, Timeout, NoNameservers:
		return true
	}
	return false
}
