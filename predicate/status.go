package predicate

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseStatus compiles a filter_status spec into a predicate over a
// parsed three-digit status code. Accepted forms: "N", "=N", ">=N",
// ">N", "<=N", "<N", "Nxx" (status class, e.g. "4xx" means
// 400 <= s < 500).
func ParseStatus(spec string) (func(status int) bool, error) {
	if spec == "" {
		return nil, nil
	}

	if len(spec) == 3 && spec[1] == 'x' && spec[2] == 'x' {
		if spec[0] < '0' || spec[0] > '9' {
			return nil, fmt.Errorf("invalid status class %q", spec)
		}
		base := int(spec[0]-'0') * 100
		return func(s int) bool { return s >= base && s < base+100 }, nil
	}

	for _, op := range []string{">=", "<=", ">", "<", "="} {
		if !strings.HasPrefix(spec, op) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(spec[len(op):]))
		if err != nil {
			return nil, fmt.Errorf("invalid filter_status %q: %w", spec, err)
		}
		switch op {
		case ">=":
			return func(s int) bool { return s >= n }, nil
		case "<=":
			return func(s int) bool { return s <= n }, nil
		case ">":
			return func(s int) bool { return s > n }, nil
		case "<":
			return func(s int) bool { return s < n }, nil
		case "=":
			return func(s int) bool { return s == n }, nil
		}
	}

	n, err := strconv.Atoi(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid filter_status %q: %w", spec, err)
	}
	return func(s int) bool { return s == n }, nil
}
