package predicate

import "github.com/coregx/coregex/meta"

// RegexMatcher wraps a compiled coregex meta.Engine. The engine is
// compiled once per query and shared by reference across all parallel
// workers; meta.Engine is documented thread-safe for concurrent
// IsMatch/Find via its internal per-search state pool, so no per-worker
// copy is needed.
type RegexMatcher struct {
	engine *meta.Engine
}

// CompileRegex compiles pattern into a DFA/NFA-backed matcher with
// bounded worst-case per-byte work (no backtracking).
func CompileRegex(pattern string) (*RegexMatcher, error) {
	engine, err := meta.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexMatcher{engine: engine}, nil
}

// MatchString reports whether the pattern matches anywhere in line.
func (m *RegexMatcher) MatchString(line []byte) bool {
	return m.engine.IsMatch(line)
}
