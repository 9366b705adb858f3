package query

import (
	"sort"
	"time"

	"github.com/kbering/logscan/accumulate"
	"github.com/kbering/logscan/ipkey"
)

func shapeCount(acc *accumulate.Count, files, warnings []string) *Result {
	n := acc.N
	return &Result{Count: &n, ScannedFiles: files, Warnings: warnings}
}

func shapeAgg(acc *accumulate.NumericAggregate, files, warnings []string) *Result {
	return &Result{
		NumericAgg: &NumericAggResult{
			Sum:   acc.Sum,
			Count: acc.Count,
			Avg:   acc.Avg(),
			Min:   acc.Min,
			Max:   acc.Max,
		},
		ScannedFiles: files,
		Warnings:     warnings,
	}
}

// shapeGroup sorts by value descending, key ascending as a tiebreak, and
// truncates to limit. This ordering is total, so the result is
// deterministic regardless of map iteration order.
func shapeGroup(acc *accumulate.GroupedCount, limit int, files, warnings []string) *Result {
	kvs := make([]KV, 0, len(acc.Values))
	for k, v := range acc.Values {
		kvs = append(kvs, KV{Key: k, Value: v})
	}
	sort.Slice(kvs, func(i, j int) bool {
		if kvs[i].Value != kvs[j].Value {
			return kvs[i].Value > kvs[j].Value
		}
		return kvs[i].Key < kvs[j].Key
	})
	if len(kvs) > limit {
		kvs = kvs[:limit]
	}
	return &Result{Grouped: kvs, ScannedFiles: files, Warnings: warnings}
}

// shapeGroupIP shapes the group_by=ip fast path. acc.Pairs() comes back
// radix-sorted by IP for a cheap starting order, but the radix sort is
// numeric and the final tie-break must match the generic path's lexical
// string-key ascending rule, so the dotted-decimal string is rendered
// first and the final ordering decision is made on it, exactly like
// shapeGroup.
func shapeGroupIP(acc *accumulate.IPGroupedCount, limit int, files, warnings []string) *Result {
	pairs := acc.Pairs()
	kvs := make([]KV, len(pairs))
	for i, p := range pairs {
		kvs[i] = KV{Key: ipkey.String(p.IP), Value: p.Count}
	}
	sort.Slice(kvs, func(i, j int) bool {
		if kvs[i].Value != kvs[j].Value {
			return kvs[i].Value > kvs[j].Value
		}
		return kvs[i].Key < kvs[j].Key
	})
	if len(kvs) > limit {
		kvs = kvs[:limit]
	}
	return &Result{Grouped: kvs, ScannedFiles: files, Warnings: warnings}
}

// shapeBuckets orders by value descending/bucket ascending by default,
// the same top-N convention as shapeGroup, or chronologically when the
// caller asked for it — in which case every bucket is returned and limit
// does not truncate, since a time series loses meaning with gaps cut
// out of the middle.
func shapeBuckets(acc *accumulate.TimeBuckets, limit int, chronological bool, files, warnings []string) *Result {
	entries := make([]TimeBucketEntry, 0, len(acc.Values))
	for k, v := range acc.Values {
		entries = append(entries, TimeBucketEntry{Bucket: time.Unix(k, 0).UTC(), Count: v})
	}
	if chronological {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Bucket.Before(entries[j].Bucket) })
		return &Result{TimeBuckets: entries, ScannedFiles: files, Warnings: warnings}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Bucket.Before(entries[j].Bucket)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return &Result{TimeBuckets: entries, ScannedFiles: files, Warnings: warnings}
}

// shapeRegex renders the accumulator's already-ordered, already-bounded
// sample head as strings.
func shapeRegex(acc *accumulate.RegexHits, files, warnings []string) *Result {
	samples := make([]string, len(acc.Samples))
	for i, s := range acc.Samples {
		samples[i] = string(s.Line)
	}
	return &Result{
		RegexSearch: &RegexSearchResult{Total: acc.Total, Samples: samples},
		ScannedFiles: files,
		Warnings:     warnings,
	}
}
