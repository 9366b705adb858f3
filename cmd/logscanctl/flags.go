package main

import cli "github.com/urfave/cli/v2"

// Shared flag definitions, following the teacher's one-var-per-flag
// convention so flags can be reused verbatim across commands.
var (
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Log format: auto, apache, nginx, syslog, json, csv",
		Value: "auto",
	}
	filterStatusFlag = &cli.StringFlag{
		Name:  "filter-status",
		Usage: "Status filter: exact (200), comparison (>=500, <400), or class (4xx)",
	}
	filterTextFlag = &cli.StringFlag{
		Name:  "filter-text",
		Usage: "Keep only lines containing this substring",
	}
	filterRegexFlag = &cli.StringFlag{
		Name:  "filter-regex",
		Usage: "Keep only lines matching this regular expression",
	}
	filterTimeStartFlag = &cli.StringFlag{
		Name:  "filter-time-start",
		Usage: "Inclusive start of the timestamp range",
	}
	filterTimeEndFlag = &cli.StringFlag{
		Name:  "filter-time-end",
		Usage: "Exclusive end of the timestamp range",
	}
	groupByFlag = &cli.StringFlag{
		Name:  "group-by",
		Usage: "Field to group by (group_count)",
	}
	aggregateOpFlag = &cli.StringFlag{
		Name:  "aggregate-op",
		Usage: "Aggregate operation: sum, avg, min, max (num_aggregate)",
	}
	aggregateColumnFlag = &cli.StringFlag{
		Name:  "aggregate-column",
		Usage: "Field to aggregate (num_aggregate)",
	}
	bucketFlag = &cli.StringFlag{
		Name:  "bucket",
		Usage: "Time bucket granularity: minute, hour, day (time_buckets)",
		Value: "minute",
	}
	chronologicalFlag = &cli.BoolFlag{
		Name:  "chronological",
		Usage: "Sort time_buckets chronologically instead of by count",
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum result rows/samples to return",
		Value: 50,
	}
	caseSensitiveFlag = &cli.BoolFlag{
		Name:  "case-sensitive",
		Usage: "Make filter-text/filter-regex case sensitive",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML configuration file; only its [logging] section is applied",
	}
)

var commonFlags = []cli.Flag{
	formatFlag,
	filterStatusFlag,
	filterTextFlag,
	filterRegexFlag,
	filterTimeStartFlag,
	filterTimeEndFlag,
	limitFlag,
	caseSensitiveFlag,
	configFlag,
}
