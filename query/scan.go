package query

import (
	"context"
	"net"

	"github.com/kbering/logscan/accumulate"
	"github.com/kbering/logscan/chunk"
	"github.com/kbering/logscan/format"
	"github.com/kbering/logscan/ipkey"
	"github.com/kbering/logscan/predicate"
)

// extractorFor returns the predicate.Extractor to use for line, building
// the format-specific parse the predicates and key/value extraction both
// draw from. CSV uses the stateless csvExtractor since filter_status and
// filter_time are never planned for it.
func extractorFor(fmtKind format.Format, line []byte) predicate.Extractor {
	if fmtKind == format.CSV {
		return csvExtractor{}
	}
	return parseLineFields(fmtKind, line)
}

func scanCount(p *plan) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.Count {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.Count {
		acc := &accumulate.Count{}
		forEachLine(ctx, data, c, func(line []byte, _ int) {
			if len(line) == 0 {
				return
			}
			if p.preds.Empty() {
				acc.Add()
				return
			}
			if p.preds.Accept(line, extractorFor(p.format, line)) {
				acc.Add()
			}
		})
		return acc
	}
}

func scanGroup(p *plan) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.GroupedCount {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.GroupedCount {
		acc := accumulate.NewGroupedCount()
		forEachLine(ctx, data, c, func(line []byte, _ int) {
			if len(line) == 0 {
				return
			}
			lf := parseLineFields(p.format, line)
			if !p.preds.Empty() && !p.preds.Accept(line, lf) {
				return
			}
			key, ok := groupKey(lf, p.groupField, line)
			if !ok {
				return
			}
			acc.Add(key)
		})
		return acc
	}
}

// scanGroupIP is the group_by=ip fast path: it keys directly on a packed
// uint32 instead of allocating a string per line, feeding
// accumulate.IPGroupedCount so the cross-chunk fuse can radix-sort
// instead of running a generic comparison sort.
func scanGroupIP(p *plan) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.IPGroupedCount {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.IPGroupedCount {
		acc := accumulate.NewIPGroupedCount()
		forEachLine(ctx, data, c, func(line []byte, _ int) {
			if len(line) == 0 {
				return
			}
			lf := parseLineFields(p.format, line)
			if !p.preds.Empty() && !p.preds.Accept(line, lf) {
				return
			}
			if !lf.apacheOK || !lf.apache.IP.Valid() {
				return
			}
			ip := net.ParseIP(string(lf.apache.IP.Bytes(line)))
			if ip == nil {
				return
			}
			v, ok := ipkey.ToUint32(ip)
			if !ok {
				return
			}
			acc.Add(v)
		})
		return acc
	}
}

func scanGroupCSV(p *plan, h csvHeader, colIdx int) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.GroupedCount {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.GroupedCount {
		acc := accumulate.NewGroupedCount()
		forEachLine(ctx, data, c, func(line []byte, _ int) {
			if len(line) == 0 {
				return
			}
			if !p.preds.Empty() && !p.preds.Accept(line, csvExtractor{}) {
				return
			}
			key, ok := h.fieldValue(line, colIdx)
			if !ok {
				return
			}
			acc.Add(key)
		})
		return acc
	}
}

func scanAgg(p *plan) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.NumericAggregate {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.NumericAggregate {
		acc := &accumulate.NumericAggregate{}
		forEachLine(ctx, data, c, func(line []byte, _ int) {
			if len(line) == 0 {
				return
			}
			lf := parseLineFields(p.format, line)
			if !p.preds.Empty() && !p.preds.Accept(line, lf) {
				return
			}
			v, ok := numericValue(lf, p.aggField, line)
			if !ok {
				return
			}
			acc.Add(v)
		})
		return acc
	}
}

func scanAggCSV(p *plan, h csvHeader, colIdx int) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.NumericAggregate {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.NumericAggregate {
		acc := &accumulate.NumericAggregate{}
		forEachLine(ctx, data, c, func(line []byte, _ int) {
			if len(line) == 0 {
				return
			}
			if !p.preds.Empty() && !p.preds.Accept(line, csvExtractor{}) {
				return
			}
			v, ok := h.numericValue(line, colIdx)
			if !ok {
				return
			}
			acc.Add(v)
		})
		return acc
	}
}

func scanBuckets(p *plan) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.TimeBuckets {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.TimeBuckets {
		acc := accumulate.NewTimeBuckets()
		forEachLine(ctx, data, c, func(line []byte, _ int) {
			if len(line) == 0 {
				return
			}
			lf := parseLineFields(p.format, line)
			if !p.preds.Empty() && !p.preds.Accept(line, lf) {
				return
			}
			ts, ok := lf.Timestamp(line)
			if !ok {
				return
			}
			acc.Add(ts, p.bucket)
		})
		return acc
	}
}

func scanRegex(p *plan) func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.RegexHits {
	return func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) *accumulate.RegexHits {
		acc := accumulate.NewRegexHits(p.regexSampleCap)
		forEachLine(ctx, data, c, func(line []byte, lineOffset int) {
			if len(line) == 0 {
				return
			}
			if !p.preds.Empty() && !p.preds.Accept(line, extractorFor(p.format, line)) {
				return
			}
			if !p.regexSearch.MatchString(line) {
				return
			}
			acc.Add(fileIndex, c.Begin, lineOffset, line)
		})
		return acc
	}
}
