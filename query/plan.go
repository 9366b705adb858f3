package query

import (
	"time"

	"github.com/kbering/logscan/accumulate"
	"github.com/kbering/logscan/format"
	"github.com/kbering/logscan/predicate"
	"github.com/kbering/logscan/source"
)

// plan is the resolved, fast-path-selected form of a Query: files
// enumerated, format settled, predicates compiled, and the
// shape-specific fields it needs validated against the format.
type plan struct {
	files  []string
	format format.Format
	shape  Shape

	preds *predicate.Set

	// regex_search only: the pattern whose matches are themselves the
	// accumulator, evaluated alongside preds (which never holds the
	// regex predicate for this shape).
	regexSearch *predicate.RegexMatcher

	groupField     string
	groupByIP      bool
	aggOp          string
	aggField       string
	bucket         accumulate.Bucket
	chronological  bool
	limit          int
	regexSampleCap int
}

var apacheGroupFields = map[string]string{
	"ip":          "ip",
	"remote_addr": "ip",
	"path":        "path",
	"method":      "method",
	"status":      "status",
}

var apacheAggFields = map[string]string{
	"size":  "size",
	"bytes": "size",
	"status": "status",
}

var syslogGroupFields = map[string]string{
	"hostname": "hostname",
	"process":  "process",
}

// Plan resolves q into a fast-path execution plan, or returns an error
// from the taxonomy in errors.go: ErrBadPath, ErrUnknownFormat,
// ErrMalformedQuery, or ErrUnsupported.
func Plan(q Query) (*plan, error) {
	files, err := source.Resolve(q.Path)
	if err != nil {
		return nil, newError(ErrBadPath, "resolving %q: %v", q.Path, err)
	}
	if len(files) == 0 {
		return nil, newError(ErrBadPath, "no files matched %q", q.Path)
	}

	fmtKind, ferr := format.Parse(q.Format)
	if ferr != nil {
		return nil, newError(ErrMalformedQuery, "%v", ferr)
	}
	if fmtKind == format.Auto {
		return nil, newError(ErrUnknownFormat, "format auto-detection is an external collaborator; a concrete format must be supplied")
	}

	shape, serr := ParseShape(q.Shape)
	if serr != nil {
		return nil, newError(ErrMalformedQuery, "%v", serr)
	}

	p := &plan{
		files:  files,
		format: fmtKind,
		shape:  shape,
		preds:  predicate.NewSet(),
		limit:  normalizeLimit(q.Limit),
	}

	if err := planFilters(p, q, fmtKind); err != nil {
		return nil, err
	}
	if err := planShape(p, q, fmtKind, shape); err != nil {
		return nil, err
	}
	return p, nil
}

func planFilters(p *plan, q Query, fmtKind format.Format) error {
	if q.FilterStatus != "" {
		if fmtKind != format.Apache && fmtKind != format.Nginx {
			return newError(ErrUnsupported, "filter_status is only available for apache/nginx")
		}
		f, err := predicate.ParseStatus(q.FilterStatus)
		if err != nil {
			return newError(ErrMalformedQuery, "%v", err)
		}
		p.preds = p.preds.WithStatus(f)
	}

	if q.FilterText != "" {
		p.preds = p.preds.WithText(predicate.NewText(q.FilterText, q.CaseSensitive))
	}

	tr, err := planTimeRange(q, fmtKind)
	if err != nil {
		return err
	}
	if tr != nil {
		p.preds = p.preds.WithTimeRange(tr)
	}

	if q.FilterRegex != "" {
		pattern := q.FilterRegex
		if !q.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		m, err := predicate.CompileRegex(pattern)
		if err != nil {
			return newError(ErrMalformedQuery, "invalid filter_regex: %v", err)
		}
		if ShapeFromQuery(q) == ShapeRegexSearch {
			p.regexSearch = m
		} else {
			p.preds = p.preds.WithRegex(m)
		}
	}
	return nil
}

// ShapeFromQuery parses q.Shape, defaulting to ShapeCount on error; used
// only to decide where a compiled regex belongs during planning (the
// real validation happens in Plan itself).
func ShapeFromQuery(q Query) Shape {
	s, err := ParseShape(q.Shape)
	if err != nil {
		return ShapeCount
	}
	return s
}

func planTimeRange(q Query, fmtKind format.Format) (*predicate.TimeRange, error) {
	if q.FilterTimeStart == "" && q.FilterTimeEnd == "" {
		return nil, nil
	}
	if fmtKind == format.CSV {
		return nil, newError(ErrUnsupported, "filter_time is not a fast-path filter for csv")
	}

	var start, end time.Time
	if q.FilterTimeStart != "" {
		t, ok := parseTimeBound(q.FilterTimeStart, fmtKind)
		if !ok {
			return nil, newError(ErrMalformedQuery, "unparsable filter_time_start %q", q.FilterTimeStart)
		}
		start = t
	}
	if q.FilterTimeEnd != "" {
		t, ok := parseTimeBound(q.FilterTimeEnd, fmtKind)
		if !ok {
			return nil, newError(ErrMalformedQuery, "unparsable filter_time_end %q", q.FilterTimeEnd)
		}
		end = t
	}
	return &predicate.TimeRange{Start: start, End: end}, nil
}

func parseTimeBound(s string, fmtKind format.Format) (time.Time, bool) {
	switch fmtKind {
	case format.Apache, format.Nginx:
		return format.ParseApacheTimestamp([]byte(s))
	case format.Syslog:
		return format.ParseSyslogTimestamp([]byte(s))
	case format.JSON:
		return format.ParseISO8601(s)
	default:
		return time.Time{}, false
	}
}

func planShape(p *plan, q Query, fmtKind format.Format, shape Shape) error {
	switch shape {
	case ShapeCount:
		return nil

	case ShapeGroupCount:
		field, err := resolveGroupField(q.GroupBy, fmtKind)
		if err != nil {
			return err
		}
		p.groupField = field
		if (fmtKind == format.Apache || fmtKind == format.Nginx) && field == "ip" {
			p.groupByIP = true
		}
		return nil

	case ShapeNumAggregate:
		if q.AggregateOp == "" {
			return newError(ErrMalformedQuery, "num_aggregate requires aggregate_op")
		}
		switch q.AggregateOp {
		case "sum", "avg", "min", "max":
		default:
			return newError(ErrMalformedQuery, "unknown aggregate_op %q", q.AggregateOp)
		}
		if q.AggregateColumn == "" {
			return newError(ErrMalformedQuery, "num_aggregate requires aggregate_column")
		}
		field, err := resolveAggField(q.AggregateColumn, fmtKind)
		if err != nil {
			return err
		}
		p.aggOp = q.AggregateOp
		p.aggField = field
		return nil

	case ShapeTimeBuckets:
		if fmtKind == format.CSV {
			return newError(ErrUnsupported, "time_buckets has no fast-path timestamp column for csv")
		}
		b, err := accumulate.ParseBucket(q.Bucket)
		if err != nil {
			return newError(ErrMalformedQuery, "%v", err)
		}
		p.bucket = b
		p.chronological = q.Chronological
		return nil

	case ShapeRegexSearch:
		if q.FilterRegex == "" {
			return newError(ErrMalformedQuery, "regex_search requires filter_regex")
		}
		p.regexSampleCap = p.limit
		return nil
	}
	return newError(ErrInternal, "unreachable shape %v", shape)
}

func resolveGroupField(groupBy string, fmtKind format.Format) (string, error) {
	if groupBy == "" {
		return "", newError(ErrMalformedQuery, "group_count requires group_by")
	}
	switch fmtKind {
	case format.Apache, format.Nginx:
		f, ok := apacheGroupFields[groupBy]
		if !ok {
			return "", newError(ErrUnsupported, "group_by %q is not an apache/nginx fast-path field", groupBy)
		}
		return f, nil
	case format.Syslog:
		f, ok := syslogGroupFields[groupBy]
		if !ok {
			return "", newError(ErrUnsupported, "group_by %q is not a syslog fast-path field", groupBy)
		}
		return f, nil
	case format.JSON, format.CSV:
		return groupBy, nil
	default:
		return "", newError(ErrInternal, "unreachable format %v", fmtKind)
	}
}

func resolveAggField(column string, fmtKind format.Format) (string, error) {
	switch fmtKind {
	case format.Apache, format.Nginx:
		f, ok := apacheAggFields[column]
		if !ok {
			return "", newError(ErrUnsupported, "aggregate_column %q has no numeric fast path for apache/nginx", column)
		}
		return f, nil
	case format.Syslog:
		return "", newError(ErrUnsupported, "syslog has no numeric field to aggregate")
	case format.JSON, format.CSV:
		return column, nil
	default:
		return "", newError(ErrInternal, "unreachable format %v", fmtKind)
	}
}
