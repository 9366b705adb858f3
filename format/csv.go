package format

import (
	"bytes"

	"github.com/kbering/logscan/pools"
)

// SplitCSVFields splits one CSV/TSV line into field ranges. A field
// beginning with '"' runs to the matching unescaped '"' (a doubled `""`
// inside it is a literal quote and does not end the field); all other
// fields run to the next delim or end of line.
//
// The pass collects (start, end) boundary pairs into a pooled scratch
// slice rather than growing the returned []Range by repeated append, so
// only the final, exactly-sized []Range is allocated fresh per call.
func SplitCSVFields(line []byte, delim byte) []Range {
	n := len(line)
	bounds := pools.Pools.GetRangeSlice()
	defer func() { pools.Pools.ReturnRangeSlice(bounds) }()

	i := 0
	for i <= n {
		start := i
		if i < n && line[i] == '"' {
			j := i + 1
			for j < n {
				if line[j] == '"' {
					if j+1 < n && line[j+1] == '"' {
						j += 2
						continue
					}
					j++
					break
				}
				j++
			}
			bounds = append(bounds, start, j)
			i = j
			if i < n && line[i] == delim {
				i++
				continue
			}
			break
		}

		idx := indexByteFrom(line, delim, i)
		if idx < 0 {
			bounds = append(bounds, start, n)
			break
		}
		bounds = append(bounds, start, idx)
		i = idx + 1
	}

	fields := make([]Range, len(bounds)/2)
	for k := range fields {
		fields[k] = Range{bounds[2*k], bounds[2*k+1]}
	}
	return fields
}

// CSVFieldValue returns the unescaped value of the field at r: quotes
// stripped, doubled `""` collapsed to a literal `"`, for quoted fields;
// the raw bytes unchanged otherwise.
func CSVFieldValue(line []byte, r Range) []byte {
	raw := r.Bytes(line)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		inner := raw[1 : len(raw)-1]
		if bytes.IndexByte(inner, '"') < 0 {
			return inner
		}
		return bytes.ReplaceAll(inner, []byte(`""`), []byte(`"`))
	}
	return raw
}

// CSVHeaderIndex parses the first line of a CSV/TSV file into a
// column-name -> zero-based index map, so queries may reference columns
// by header name.
func CSVHeaderIndex(headerLine []byte, delim byte) map[string]int {
	fields := SplitCSVFields(headerLine, delim)
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[string(CSVFieldValue(headerLine, f))] = i
	}
	return idx
}
