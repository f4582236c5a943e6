package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/pinot-dbapi/gopinotdb"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var flags = []cli.Flag{
	&cli.StringFlag{Name: "dsn", Usage: "broker DSN, e.g. pinot://localhost:8099/query/sql", EnvVars: []string{"PINOT_DSN"}},
	&cli.BoolFlag{Name: "toml", Usage: "read the connection from connections.toml"},
	&cli.StringSliceFlag{Name: "param", Usage: "query parameter as name=value, repeatable"},
	&cli.IntFlag{Name: "concurrency", Value: 4, Usage: "maximum number of queries running at once"},
	&cli.StringFlag{Name: "log-level", Value: "error", Usage: "driver log level"},
	&cli.BoolFlag{Name: "store-password", Usage: "save the DSN password in the OS keyring and exit"},
	&cli.BoolFlag{Name: "stats", Usage: "print broker statistics after each result"},
}

func main() {
	app := &cli.App{
		Name:      "pinotquery",
		Usage:     "run SQL queries against a Pinot broker",
		ArgsUsage: "QUERY [QUERY...]",
		Flags:     flags,
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*gopinotdb.Config, error) {
	if c.Bool("toml") {
		return gopinotdb.LoadConnectionConfig()
	}
	return gopinotdb.ParseDSN(c.String("dsn"))
}

func parseParams(values []string) (map[string]any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(values))
	for _, kv := range values {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", kv)
		}
		params[name] = value
	}
	return params, nil
}

func run(c *cli.Context) error {
	if err := gopinotdb.GetLogger().SetLogLevel(c.String("log-level")); err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Bool("store-password") {
		if err = gopinotdb.StorePassword(cfg, cfg.Password); err != nil {
			return err
		}
		fmt.Printf("password of %v stored in the keyring\n", cfg.Username)
		return nil
	}
	queries := c.Args().Slice()
	if len(queries) == 0 {
		return fmt.Errorf("at least one query must be specified")
	}
	params, err := parseParams(c.StringSlice("param"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := gopinotdb.Connect(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	var out sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(c.Int("concurrency"), 1))
	for i, query := range queries {
		group.Go(func() error {
			cursor, err := conn.Cursor()
			if err != nil {
				return err
			}
			defer cursor.Close()
			if err := cursor.Execute(groupCtx, query, params); err != nil {
				return fmt.Errorf("query %d failed: %w", i+1, err)
			}
			out.Lock()
			defer out.Unlock()
			if len(queries) > 1 {
				fmt.Fprintf(os.Stdout, "-- query %d: %v\n", i+1, query)
			}
			return printCursor(os.Stdout, cursor, c.Bool("stats"))
		})
	}
	return group.Wait()
}

func printCursor(w io.Writer, cursor *gopinotdb.Cursor, withStats bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cursor.Columns(), "\t"))
	rows, err := cursor.FetchAll()
	if err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "(%d rows)\n", cursor.RowCount())
	if stats := cursor.Stats(); withStats && stats != nil {
		fmt.Fprintf(w, "request %v: %d/%d servers responded, %d docs scanned of %d, %d ms\n",
			stats.RequestID, stats.NumServersResponded, stats.NumServersQueried,
			stats.NumDocsScanned, stats.TotalDocs, stats.TimeUsedMs)
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}
