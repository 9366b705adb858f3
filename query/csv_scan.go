package query

import (
	"bytes"
	"strconv"
	"time"

	"github.com/kbering/logscan/format"
)

// csvHeader is the per-file state a CSV query needs: the sniffed
// delimiter and, when the first line parses as a header, the column
// name-to-index table. The first line of every CSV/TSV file is treated
// as a header and excluded from scanning; a caller after a raw integer
// column index still gets one (the header line is skipped either way).
type csvHeader struct {
	delim byte
	index map[string]int
}

// csvPrepare reads the first line of data to sniff the delimiter and
// build the header index, returning the remainder of data (with the
// header line and its trailing newline removed) ready for chunk.Split.
func csvPrepare(data []byte) ([]byte, csvHeader) {
	nl := bytes.IndexByte(data, '\n')
	var headerLine, rest []byte
	if nl < 0 {
		headerLine = data
		rest = nil
	} else {
		headerLine = data[:nl]
		rest = data[nl+1:]
	}
	delim := sniffDelimiter(headerLine)
	return rest, csvHeader{delim: delim, index: format.CSVHeaderIndex(headerLine, delim)}
}

func sniffDelimiter(line []byte) byte {
	tabs := bytes.Count(line, []byte{'\t'})
	commas := bytes.Count(line, []byte{','})
	if tabs > commas {
		return '\t'
	}
	return ','
}

// columnIndex resolves a group_by/aggregate_column name against the
// header, falling back to treating it as a zero-based numeric index.
func (h csvHeader) columnIndex(column string) (int, bool) {
	if idx, ok := h.index[column]; ok {
		return idx, true
	}
	if n, err := strconv.Atoi(column); err == nil && n >= 0 {
		return n, true
	}
	return 0, false
}

func (h csvHeader) fieldValue(line []byte, colIdx int) ([]byte, bool) {
	fields := format.SplitCSVFields(line, h.delim)
	if colIdx < 0 || colIdx >= len(fields) {
		return nil, false
	}
	return format.CSVFieldValue(line, fields[colIdx]), true
}

func (h csvHeader) numericValue(line []byte, colIdx int) (float64, bool) {
	v, ok := h.fieldValue(line, colIdx)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(v)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// csvExtractor implements predicate.Extractor for CSV: the planner never
// allows filter_status or filter_time on CSV, so both always report
// "not present". CSV lines still pass through filter_text/filter_regex,
// which operate on the raw line and need no extractor support.
type csvExtractor struct{}

func (csvExtractor) Status(line []byte) (int, bool) { return 0, false }
func (csvExtractor) Timestamp(line []byte) (time.Time, bool) {
	return time.Time{}, false
}
