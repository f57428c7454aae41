// Command parsort sorts a file of int64 records in place.
//
//	parsort [flags] <file> <threshold>
//
// Ranges of at most threshold records are sorted sequentially; longer
// ranges are split and sorted concurrently. The exit status is 0 on success
// and 1 on any failure.
//
// Flags:
//
//	-max-tasks N       bound on concurrently live sort tasks (0 = unbounded)
//	-backup PATH       write a .zst or .lz4 copy of the file before sorting
//	-backup-rate B     throttle backup writes to B bytes/s (0 = unlimited)
//	-verify            check order and content after sorting
//	-log-level LEVEL   debug, info, warn or error (default warn)
//	-log-format FMT    text or json (default text)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hupe1980/parsort"
	"github.com/hupe1980/parsort/internal/backup"
	"github.com/hupe1980/parsort/internal/fs"
	"github.com/hupe1980/parsort/internal/resource"
)

const usage = "Usage: parsort <file> <par threshold>"

var errUsage = errors.New(usage)

type config struct {
	path       string
	threshold  int
	maxTasks   int64
	backupPath string
	backupRate int64
	verify     bool
	logLevel   slog.Level
	logFormat  string
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	var (
		cfg      config
		logLevel string
	)

	flags := flag.NewFlagSet("parsort", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = flags.PrintDefaults
	flags.Int64Var(&cfg.maxTasks, "max-tasks", 0, "bound on concurrently live sort tasks (0 = unbounded)")
	flags.StringVar(&cfg.backupPath, "backup", "", "write a compressed copy (.zst or .lz4) before sorting")
	flags.Int64Var(&cfg.backupRate, "backup-rate", 0, "backup write limit in bytes/s (0 = unlimited)")
	flags.BoolVar(&cfg.verify, "verify", false, "check order and content after sorting")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&cfg.logFormat, "log-format", "text", "log format: text, json")

	if err := flags.Parse(args); err != nil {
		return config{}, errUsage
	}
	if flags.NArg() != 2 {
		return config{}, errUsage
	}

	threshold, err := strconv.ParseInt(flags.Arg(1), 10, strconv.IntSize)
	if err != nil || threshold < 0 {
		return config{}, fmt.Errorf("invalid threshold %q", flags.Arg(1))
	}
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return config{}, fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.logFormat != "text" && cfg.logFormat != "json" {
		return config{}, fmt.Errorf("invalid log format %q", cfg.logFormat)
	}
	if cfg.backupPath != "" {
		if _, err := backup.CodecFromPath(cfg.backupPath); err != nil {
			return config{}, err
		}
	}

	cfg.path = flags.Arg(0)
	cfg.threshold = int(threshold)
	return cfg, nil
}

func newLogger(cfg config, w io.Writer) *parsort.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.logFormat == "json" {
		return parsort.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return parsort.NewLogger(slog.NewTextHandler(w, opts))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		fmt.Fprintln(stderr, usage)
		return 1
	}

	logger := newLogger(cfg, stderr)

	store, err := parsort.OpenStore(cfg.path)
	logger.LogOpen(ctx, cfg.path, storeLen(store), err)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	// Close is idempotent; the explicit Close below reports unmap errors.
	defer store.Close()

	if cfg.backupPath != "" {
		rc := resource.NewController(resource.Config{IOLimitBytesPerSec: cfg.backupRate})
		n, err := backup.WriteFile(ctx, fs.Default, cfg.backupPath, store.Bytes(), rc)
		logger.LogBackup(ctx, cfg.backupPath, int64(len(store.Bytes())), n, err)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	data := store.Records()

	var before parsort.Fingerprint
	if cfg.verify {
		before = parsort.FingerprintOf(data)
	}

	engine := parsort.New(
		parsort.WithMaxTasks(cfg.maxTasks),
		parsort.WithLogger(logger),
	)
	if err := engine.Sort(ctx, data, parsort.Range{End: len(data)}, cfg.threshold); err != nil {
		fmt.Fprintln(stderr, "Error: sorting failed")
		return 1
	}

	if cfg.verify {
		report := parsort.Verify(data)
		fpOK := parsort.FingerprintOf(data) == before
		logger.LogVerify(ctx, report, fpOK)
		if !report.Sorted() || !fpOK {
			fmt.Fprintln(stderr, "Error: verification failed")
			return 1
		}
	}

	if err := store.Close(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func storeLen(s *parsort.Store) int {
	if s == nil {
		return 0
	}
	return s.Len()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
