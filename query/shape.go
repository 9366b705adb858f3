package query

import "fmt"

// Shape names one of the five query shapes the core can answer.
type Shape int

const (
	ShapeCount Shape = iota
	ShapeGroupCount
	ShapeNumAggregate
	ShapeTimeBuckets
	ShapeRegexSearch
)

func (s Shape) String() string {
	switch s {
	case ShapeCount:
		return "count"
	case ShapeGroupCount:
		return "group_count"
	case ShapeNumAggregate:
		return "num_aggregate"
	case ShapeTimeBuckets:
		return "time_buckets"
	case ShapeRegexSearch:
		return "regex_search"
	default:
		return "unknown"
	}
}

// ParseShape maps a query's shape string onto a Shape.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "count":
		return ShapeCount, nil
	case "group_count":
		return ShapeGroupCount, nil
	case "num_aggregate":
		return ShapeNumAggregate, nil
	case "time_buckets":
		return ShapeTimeBuckets, nil
	case "regex_search":
		return ShapeRegexSearch, nil
	default:
		return 0, fmt.Errorf("unknown shape %q", s)
	}
}
