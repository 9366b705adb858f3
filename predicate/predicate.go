// Package predicate combines zero or more line-level predicates (status
// range, timestamp range, text substring, regex) into one accept/reject
// decision, evaluated in a fixed cheapest-first order so an early reject
// skips the more expensive checks.
package predicate

import "time"

// Extractor supplies the format-specific values a predicate needs from a
// line: the parsed status code and the parsed timestamp. Each format's
// scan loop implements this once per query, using only the fields the
// query actually references.
type Extractor interface {
	Status(line []byte) (int, bool)
	Timestamp(line []byte) (time.Time, bool)
}

// Set is a compiled conjunction of predicates. The zero value accepts
// every line.
type Set struct {
	status func(int) bool
	trange *TimeRange
	text   func(line []byte) bool
	regex  *RegexMatcher
}

// NewSet returns an empty (always-accepting) predicate set to build on.
func NewSet() *Set { return &Set{} }

func (s *Set) WithStatus(f func(int) bool) *Set { s.status = f; return s }
func (s *Set) WithTimeRange(r *TimeRange) *Set   { s.trange = r; return s }
func (s *Set) WithText(f func([]byte) bool) *Set { s.text = f; return s }
func (s *Set) WithRegex(m *RegexMatcher) *Set    { s.regex = m; return s }

// Empty reports whether no predicate is configured, letting a caller
// skip scanner/extractor work entirely when a query has no filters.
func (s *Set) Empty() bool {
	return s.status == nil && s.trange == nil && s.text == nil && s.regex == nil
}

// Accept evaluates every configured predicate in order: status,
// timestamp range, text substring, regex. The first rejection
// short-circuits the rest.
func (s *Set) Accept(line []byte, ex Extractor) bool {
	if s.status != nil {
		st, ok := ex.Status(line)
		if !ok || !s.status(st) {
			return false
		}
	}
	if s.trange != nil {
		ts, ok := ex.Timestamp(line)
		if !ok || !s.trange.Contains(ts) {
			return false
		}
	}
	if s.text != nil && !s.text(line) {
		return false
	}
	if s.regex != nil && !s.regex.MatchString(line) {
		return false
	}
	return true
}
