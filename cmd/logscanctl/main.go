// Command logscanctl is a thin CLI wrapper over the log-scan core,
// mapping one subcommand per query shape onto query.Query and printing
// the Result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kbering/logscan/config"
	"github.com/kbering/logscan/logging"
	"github.com/kbering/logscan/query"
	cli "github.com/urfave/cli/v2"
)

func buildQuery(c *cli.Context, shape string) query.Query {
	return query.Query{
		Path:            c.Args().First(),
		Format:          c.String("format"),
		Shape:           shape,
		FilterStatus:    c.String("filter-status"),
		FilterText:      c.String("filter-text"),
		FilterRegex:     c.String("filter-regex"),
		FilterTimeStart: c.String("filter-time-start"),
		FilterTimeEnd:   c.String("filter-time-end"),
		GroupBy:         c.String("group-by"),
		AggregateOp:     c.String("aggregate-op"),
		AggregateColumn: c.String("aggregate-column"),
		Bucket:          c.String("bucket"),
		Chronological:   c.Bool("chronological"),
		Limit:           c.Int("limit"),
		CaseSensitive:   c.Bool("case-sensitive"),
	}
}

func runQuery(c *cli.Context, shape string) error {
	logger := logging.New("info", "text")
	if path := c.String("config"); path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	if c.Args().First() == "" {
		return fmt.Errorf("a file path or glob pattern is required")
	}

	result, err := query.Run(context.Background(), buildQuery(c, shape))
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn(w)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func main() {
	app := &cli.App{
		Name:  "logscanctl",
		Usage: "Query structured and semi-structured log files without loading them into a database",
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "Count lines matching the given filters",
				ArgsUsage: "<path-or-glob>",
				Flags:     commonFlags,
				Action:    func(c *cli.Context) error { return runQuery(c, "count") },
			},
			{
				Name:      "group-count",
				Usage:     "Count matching lines grouped by a field",
				ArgsUsage: "<path-or-glob>",
				Flags:     append(append([]cli.Flag{}, commonFlags...), groupByFlag),
				Action:    func(c *cli.Context) error { return runQuery(c, "group_count") },
			},
			{
				Name:      "num-aggregate",
				Usage:     "Aggregate a numeric field over matching lines",
				ArgsUsage: "<path-or-glob>",
				Flags:     append(append([]cli.Flag{}, commonFlags...), aggregateOpFlag, aggregateColumnFlag),
				Action:    func(c *cli.Context) error { return runQuery(c, "num_aggregate") },
			},
			{
				Name:      "time-buckets",
				Usage:     "Bucket matching lines by truncated timestamp",
				ArgsUsage: "<path-or-glob>",
				Flags:     append(append([]cli.Flag{}, commonFlags...), bucketFlag, chronologicalFlag),
				Action:    func(c *cli.Context) error { return runQuery(c, "time_buckets") },
			},
			{
				Name:      "regex-search",
				Usage:     "Count and sample lines matching filter-regex",
				ArgsUsage: "<path-or-glob>",
				Flags:     commonFlags,
				Action:    func(c *cli.Context) error { return runQuery(c, "regex_search") },
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error running logscanctl:", err)
		os.Exit(1)
	}
}
