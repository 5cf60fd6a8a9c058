package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"fn-peaks/src/analysis"
	"fn-peaks/src/config"
	datasource "fn-peaks/src/data_source"
	"fn-peaks/src/data_source/logdir"
	"fn-peaks/src/helpers"
	"fn-peaks/src/logger"
	"fn-peaks/src/metrics"
	"fn-peaks/src/models"
	"fn-peaks/src/storage"
	"fn-peaks/src/utils"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitBadInput = 2
)

// -----------------------------------------------------------------------------

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// -----------------------------------------------------------------------------

// run prints one report for [start, end]. Logs go to stderr so stdout stays parseable.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "../../config/default.yaml", "path to config file")
	start := fs.String("start", "", "range start in the configured time layout (default: end minus one day)")
	end := fs.String("end", "", "range end in the configured time layout (default: now)")
	asJSON := fs.Bool("json", false, "print the Response envelope as JSON")
	if err := fs.Parse(args); err != nil {
		return exitBadInput
	}

	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitFailure
	}
	log := logger.NewLoggerWithWriter(conf.MConfig, "report", stderr)
	loc := conf.Location()

	r, err := queryRange(*start, *end, conf.Aggregation.TimeLayout, loc, time.Now())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitBadInput
	}

	report, err := newFacade(conf.MConfig, loc, log).Run(context.Background(), r)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, helpers.ErrRangeTooLarge) {
			return exitBadInput
		}
		return exitFailure
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis.Response(report)); err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
		return exitOK
	}

	if err := printTable(stdout, report); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	return exitOK
}

// -----------------------------------------------------------------------------

// newFacade wires the channels for a one-shot run. Nothing is exported, so
// metrics are discarded.
func newFacade(cfg *models.MConfig, loc *time.Location, log *logger.Logger) *analysis.PeakFacade {
	var observer metrics.NopObserver
	sources := logdir.NewSources(cfg, storage.NewFileStore(), utils.NewDayCalendar(cfg.Calendar.MIC), observer, log)
	return analysis.NewPeakFacade(cfg, datasource.NewMultiChannelManager(sources, log), observer, loc, log)
}

// -----------------------------------------------------------------------------

// queryRange fills in missing ends: end defaults to now, start to end minus one day.
func queryRange(start, end, layout string, loc *time.Location, now time.Time) (models.MTimeRange, error) {
	r := models.MTimeRange{End: now.In(loc)}
	var err error
	if end != "" {
		if r.End, err = utils.ParseTime(end, layout, loc); err != nil {
			return r, err
		}
	}
	r.Start = r.End.Add(-24 * time.Hour)
	if start != "" {
		if r.Start, err = utils.ParseTime(start, layout, loc); err != nil {
			return r, err
		}
	}
	return r, nil
}

// -----------------------------------------------------------------------------

func printTable(w io.Writer, report *models.MPeakReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(report.Columns, "\t"))
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.DeviceID, row.ChannelA.Display, row.ChannelB.Display)
	}
	return tw.Flush()
}
