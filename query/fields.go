package query

import (
	"strconv"
	"time"

	"github.com/kbering/logscan/format"
)

// lineFields parses one line's format-specific fields once and serves
// both the predicate.Extractor interface and group/aggregate key
// extraction from that single parse. CSV is handled separately (see
// csv_scan.go) because its column resolution depends on a per-file
// header, not just the line itself.
type lineFields struct {
	fmtKind  format.Format
	apache   format.ApacheFields
	apacheOK bool
	syslog   format.SyslogFields
	syslogOK bool
}

func parseLineFields(fmtKind format.Format, line []byte) lineFields {
	lf := lineFields{fmtKind: fmtKind}
	switch fmtKind {
	case format.Apache, format.Nginx:
		lf.apache, lf.apacheOK = format.FindApacheFields(line)
	case format.Syslog:
		lf.syslog, lf.syslogOK = format.FindSyslogFields(line)
	}
	return lf
}

// Status implements predicate.Extractor.
func (lf lineFields) Status(line []byte) (int, bool) {
	if lf.fmtKind != format.Apache && lf.fmtKind != format.Nginx {
		return 0, false
	}
	if !lf.apacheOK || !lf.apache.StatusValid {
		return 0, false
	}
	return lf.apache.Status, true
}

// Timestamp implements predicate.Extractor.
func (lf lineFields) Timestamp(line []byte) (time.Time, bool) {
	switch lf.fmtKind {
	case format.Apache, format.Nginx:
		if !lf.apacheOK {
			return time.Time{}, false
		}
		return format.ParseApacheTimestamp(lf.apache.Timestamp.Bytes(line))
	case format.Syslog:
		if !lf.syslogOK {
			return time.Time{}, false
		}
		return format.ParseSyslogTimestamp(lf.syslog.Timestamp.Bytes(line))
	case format.JSON:
		v, ok := format.JSONLookup(line, "timestamp")
		if !ok {
			return time.Time{}, false
		}
		return format.ParseISO8601(v.String())
	default:
		return time.Time{}, false
	}
}

// jsonNullKey is the sentinel group-by key for a null or missing JSON
// field, per the design's "null/missing values group under a distinct
// sentinel key" rule.
const jsonNullKey = "\x00null"

// groupKey extracts the group-by key bytes for apache/syslog/json
// lines. ok is false if the field could not be located (the line is
// then ignored for this query, per the design).
func groupKey(lf lineFields, field string, line []byte) ([]byte, bool) {
	switch lf.fmtKind {
	case format.Apache, format.Nginx:
		if !lf.apacheOK {
			return nil, false
		}
		switch field {
		case "ip":
			return lf.apache.IP.Bytes(line), lf.apache.IP.Valid()
		case "path":
			return lf.apache.Path.Bytes(line), lf.apache.Path.Valid()
		case "method":
			return lf.apache.Method.Bytes(line), lf.apache.Method.Valid()
		case "status":
			if !lf.apache.StatusValid {
				return nil, false
			}
			return []byte(strconv.Itoa(lf.apache.Status)), true
		}
		return nil, false

	case format.Syslog:
		if !lf.syslogOK {
			return nil, false
		}
		switch field {
		case "hostname":
			return lf.syslog.Hostname.Bytes(line), lf.syslog.Hostname.Valid()
		case "process":
			return lf.syslog.Process.Bytes(line), lf.syslog.Process.Valid()
		}
		return nil, false

	case format.JSON:
		v, ok := format.JSONLookup(line, field)
		if !ok {
			return []byte(jsonNullKey), true
		}
		return []byte(v.String()), true

	default:
		return nil, false
	}
}

// numericValue extracts the aggregate field's numeric value for
// apache/json lines.
func numericValue(lf lineFields, field string, line []byte) (float64, bool) {
	switch lf.fmtKind {
	case format.Apache, format.Nginx:
		if !lf.apacheOK {
			return 0, false
		}
		switch field {
		case "size":
			if !lf.apache.SizeValid {
				return 0, false
			}
			return float64(lf.apache.Size), true
		case "status":
			if !lf.apache.StatusValid {
				return 0, false
			}
			return float64(lf.apache.Status), true
		}
		return 0, false

	case format.JSON:
		v, ok := format.JSONLookup(line, field)
		if !ok {
			return 0, false
		}
		return v.Float64()

	default:
		return 0, false
	}
}
