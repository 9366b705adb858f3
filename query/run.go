package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbering/logscan/accumulate"
	"github.com/kbering/logscan/engine"
	"github.com/kbering/logscan/format"
	"github.com/kbering/logscan/source"
)

// concurrentGroupFileThreshold is the file-count above which group_count
// (non-IP, non-CSV fast path) fuses across files into a shared
// accumulate.ConcurrentGroupedCount on N goroutines instead of a serial
// loop, per the design's "very large result cardinality across many
// files" rule.
const concurrentGroupFileThreshold = 4

// Run plans and executes q, scanning every resolved file in parallel and
// fusing the results into one deterministic Result. A returned error is
// always an *Error from the taxonomy in errors.go.
func Run(ctx context.Context, q Query) (*Result, error) {
	p, err := Plan(q)
	if err != nil {
		return nil, err
	}

	switch p.shape {
	case ShapeCount:
		acc, warnings, err := runCount(ctx, p)
		if err != nil {
			return nil, err
		}
		return shapeCount(acc, p.files, warnings), nil

	case ShapeGroupCount:
		if p.groupByIP {
			acc, warnings, err := runGroupIP(ctx, p)
			if err != nil {
				return nil, err
			}
			return shapeGroupIP(acc, p.limit, p.files, warnings), nil
		}
		acc, warnings, err := runGroup(ctx, p)
		if err != nil {
			return nil, err
		}
		return shapeGroup(acc, p.limit, p.files, warnings), nil

	case ShapeNumAggregate:
		acc, warnings, err := runAgg(ctx, p)
		if err != nil {
			return nil, err
		}
		return shapeAgg(acc, p.files, warnings), nil

	case ShapeTimeBuckets:
		acc, warnings, err := runBuckets(ctx, p)
		if err != nil {
			return nil, err
		}
		return shapeBuckets(acc, p.limit, p.chronological, p.files, warnings), nil

	case ShapeRegexSearch:
		acc, warnings, err := runRegex(ctx, p)
		if err != nil {
			return nil, err
		}
		return shapeRegex(acc, p.files, warnings), nil
	}

	return nil, newError(ErrInternal, "unreachable shape %v", p.shape)
}

// openFile opens path, returning (nil, warning, nil) rather than an error
// when the file has vanished or become unreadable since Plan resolved
// it — per the design, a file disappearing mid-query degrades to a
// warning, not a hard failure of the whole query.
func openFile(path string) (*source.File, string, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, fmt.Sprintf("skipped %s: %v", path, err), nil
	}
	return f, "", nil
}

func runCount(ctx context.Context, p *plan) (*accumulate.Count, []string, error) {
	total := &accumulate.Count{}
	var warnings []string
	cfg := engine.DefaultConfig()

	for i, path := range p.files {
		f, warn, _ := openFile(path)
		if f == nil {
			warnings = append(warnings, warn)
			continue
		}
		acc, err := engine.ScanFile(ctx, f.Bytes(), i, cfg,
			func() *accumulate.Count { return &accumulate.Count{} },
			scanCount(p),
			func(dst, src *accumulate.Count) { dst.Merge(src) },
		)
		f.Close()
		if err != nil {
			return nil, nil, newError(ErrCanceled, "%v", err)
		}
		total.Merge(acc)
	}
	return total, warnings, nil
}

func runGroup(ctx context.Context, p *plan) (*accumulate.GroupedCount, []string, error) {
	if p.format != format.CSV && len(p.files) > concurrentGroupFileThreshold {
		return runGroupConcurrent(ctx, p)
	}

	total := accumulate.NewGroupedCount()
	var warnings []string
	cfg := engine.DefaultConfig()

	for i, path := range p.files {
		f, warn, _ := openFile(path)
		if f == nil {
			warnings = append(warnings, warn)
			continue
		}

		var acc *accumulate.GroupedCount
		var err error
		if p.format == format.CSV {
			data, hdr := csvPrepare(f.Bytes())
			colIdx, ok := hdr.columnIndex(p.groupField)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("skipped %s: group_by column %q not found", path, p.groupField))
				f.Close()
				continue
			}
			acc, err = engine.ScanFile(ctx, data, i, cfg,
				accumulate.NewGroupedCount,
				scanGroupCSV(p, hdr, colIdx),
				func(dst, src *accumulate.GroupedCount) { dst.Merge(src) },
			)
		} else {
			acc, err = engine.ScanFile(ctx, f.Bytes(), i, cfg,
				accumulate.NewGroupedCount,
				scanGroup(p),
				func(dst, src *accumulate.GroupedCount) { dst.Merge(src) },
			)
		}
		f.Close()
		if err != nil {
			return nil, nil, newError(ErrCanceled, "%v", err)
		}
		total.Merge(acc)
	}
	return total, warnings, nil
}

// runGroupConcurrent fuses each file's per-file GroupedCount into a
// shared accumulate.ConcurrentGroupedCount from its own goroutine,
// avoiding the serial-loop fuse runGroup otherwise does across files.
func runGroupConcurrent(ctx context.Context, p *plan) (*accumulate.GroupedCount, []string, error) {
	shared := accumulate.NewConcurrentGroupedCount()
	cfg := engine.DefaultConfig()

	var (
		mu       sync.Mutex
		warnings []string
		firstErr error
		wg       sync.WaitGroup
	)

	for i, path := range p.files {
		i, path := i, path
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, warn, _ := openFile(path)
			if f == nil {
				mu.Lock()
				warnings = append(warnings, warn)
				mu.Unlock()
				return
			}
			defer f.Close()

			acc, err := engine.ScanFile(ctx, f.Bytes(), i, cfg,
				accumulate.NewGroupedCount,
				scanGroup(p),
				func(dst, src *accumulate.GroupedCount) { dst.Merge(src) },
			)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			shared.MergeFrom(acc)
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, nil, newError(ErrCanceled, "%v", firstErr)
	}
	return &accumulate.GroupedCount{Values: shared.Snapshot()}, warnings, nil
}

// runGroupIP is the group_by=ip fast path over apache/nginx files,
// fusing per-file accumulate.IPGroupedCount results.
func runGroupIP(ctx context.Context, p *plan) (*accumulate.IPGroupedCount, []string, error) {
	total := accumulate.NewIPGroupedCount()
	var warnings []string
	cfg := engine.DefaultConfig()

	for i, path := range p.files {
		f, warn, _ := openFile(path)
		if f == nil {
			warnings = append(warnings, warn)
			continue
		}
		acc, err := engine.ScanFile(ctx, f.Bytes(), i, cfg,
			accumulate.NewIPGroupedCount,
			scanGroupIP(p),
			func(dst, src *accumulate.IPGroupedCount) { dst.Merge(src) },
		)
		f.Close()
		if err != nil {
			return nil, nil, newError(ErrCanceled, "%v", err)
		}
		total.Merge(acc)
	}
	return total, warnings, nil
}

func runAgg(ctx context.Context, p *plan) (*accumulate.NumericAggregate, []string, error) {
	total := &accumulate.NumericAggregate{}
	var warnings []string
	cfg := engine.DefaultConfig()

	for i, path := range p.files {
		f, warn, _ := openFile(path)
		if f == nil {
			warnings = append(warnings, warn)
			continue
		}

		var acc *accumulate.NumericAggregate
		var err error
		if p.format == format.CSV {
			data, hdr := csvPrepare(f.Bytes())
			colIdx, ok := hdr.columnIndex(p.aggField)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("skipped %s: aggregate_column %q not found", path, p.aggField))
				f.Close()
				continue
			}
			acc, err = engine.ScanFile(ctx, data, i, cfg,
				func() *accumulate.NumericAggregate { return &accumulate.NumericAggregate{} },
				scanAggCSV(p, hdr, colIdx),
				func(dst, src *accumulate.NumericAggregate) { dst.Merge(src) },
			)
		} else {
			acc, err = engine.ScanFile(ctx, f.Bytes(), i, cfg,
				func() *accumulate.NumericAggregate { return &accumulate.NumericAggregate{} },
				scanAgg(p),
				func(dst, src *accumulate.NumericAggregate) { dst.Merge(src) },
			)
		}
		f.Close()
		if err != nil {
			return nil, nil, newError(ErrCanceled, "%v", err)
		}
		total.Merge(acc)
	}
	return total, warnings, nil
}

func runBuckets(ctx context.Context, p *plan) (*accumulate.TimeBuckets, []string, error) {
	total := accumulate.NewTimeBuckets()
	var warnings []string
	cfg := engine.DefaultConfig()

	for i, path := range p.files {
		f, warn, _ := openFile(path)
		if f == nil {
			warnings = append(warnings, warn)
			continue
		}
		acc, err := engine.ScanFile(ctx, f.Bytes(), i, cfg,
			accumulate.NewTimeBuckets,
			scanBuckets(p),
			func(dst, src *accumulate.TimeBuckets) { dst.Merge(src) },
		)
		f.Close()
		if err != nil {
			return nil, nil, newError(ErrCanceled, "%v", err)
		}
		total.Merge(acc)
	}
	return total, warnings, nil
}

func runRegex(ctx context.Context, p *plan) (*accumulate.RegexHits, []string, error) {
	total := accumulate.NewRegexHits(p.regexSampleCap)
	var warnings []string
	cfg := engine.DefaultConfig()

	for i, path := range p.files {
		f, warn, _ := openFile(path)
		if f == nil {
			warnings = append(warnings, warn)
			continue
		}
		acc, err := engine.ScanFile(ctx, f.Bytes(), i, cfg,
			func() *accumulate.RegexHits { return accumulate.NewRegexHits(p.regexSampleCap) },
			scanRegex(p),
			func(dst, src *accumulate.RegexHits) { dst.Merge(src) },
		)
		f.Close()
		if err != nil {
			return nil, nil, newError(ErrCanceled, "%v", err)
		}
		total.Merge(acc)
	}
	return total, warnings, nil
}
