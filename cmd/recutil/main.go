// Command recutil creates, checks and restores record files for parsort.
//
//	recutil gen [-seed N] [-max N] <file> <count>
//	recutil check [-max-report N] <file>
//	recutil restore [-rate B] <backup> <file>
//
// gen writes count random records. check exits 1 if the file is not in
// ascending order and lists the first descents. restore decompresses a
// backup written by parsort -backup.
package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hupe1980/parsort"
	"github.com/hupe1980/parsort/internal/backup"
	"github.com/hupe1980/parsort/internal/fs"
	"github.com/hupe1980/parsort/internal/resource"
)

const usage = `Usage:
  recutil gen [-seed N] [-max N] <file> <count>
  recutil check [-max-report N] <file>
  recutil restore [-rate B] <backup> <file>`

var errUsage = errors.New("invalid arguments")

// errUnsorted reports a check that found descents; it is not printed as an error.
var errUnsorted = errors.New("file is not sorted")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	var err error
	switch args[0] {
	case "gen":
		err = runGen(ctx, args[1:], stdout, stderr)
	case "check":
		err = runCheck(args[1:], stdout, stderr)
	case "restore":
		err = runRestore(ctx, args[1:], stdout, stderr)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUnsorted):
		return 1
	case errors.Is(err, errUsage):
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		fmt.Fprintln(stderr, usage)
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet("recutil "+name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	return flags
}

func parse(flags *flag.FlagSet, args []string, nargs int) error {
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if flags.NArg() != nargs {
		return fmt.Errorf("%w: %s takes %d arguments", errUsage, flags.Name(), nargs)
	}
	return nil
}

func runGen(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("gen", stderr)
	seed := flags.Uint64("seed", 1, "random seed")
	maxValue := flags.Int64("max", 0, "values are drawn from [0, max); 0 draws from the full int64 range")
	if err := parse(flags, args, 2); err != nil {
		return err
	}

	count, err := strconv.ParseInt(flags.Arg(1), 10, 64)
	if err != nil || count < 0 {
		return fmt.Errorf("%w: invalid count %q", errUsage, flags.Arg(1))
	}
	if *maxValue < 0 {
		return fmt.Errorf("%w: invalid max %d", errUsage, *maxValue)
	}

	f, err := fs.Default.OpenFile(flags.Arg(0), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	err = generate(ctx, f, *seed, count, *maxValue)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %d records to %s\n", count, flags.Arg(0))
	return nil
}

// generate writes count native-endian records drawn from a PCG stream.
func generate(ctx context.Context, w io.Writer, seed uint64, count, maxValue int64) error {
	const batch = 1 << 13

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	buf := make([]byte, batch*parsort.RecordSize)

	for remaining := count; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(remaining, batch)
		for i := range n {
			var v int64
			if maxValue > 0 {
				v = rng.Int64N(maxValue)
			} else {
				v = int64(rng.Uint64())
			}
			binary.NativeEndian.PutUint64(buf[i*parsort.RecordSize:], uint64(v))
		}
		if _, err := w.Write(buf[:n*parsort.RecordSize]); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("check", stderr)
	maxReport := flags.Int("max-report", 10, "number of descents to list")
	if err := parse(flags, args, 1); err != nil {
		return err
	}

	store, err := parsort.OpenStore(flags.Arg(0))
	if err != nil {
		return err
	}
	defer store.Close()

	data := store.Records()
	report := parsort.Verify(data)
	if report.Sorted() {
		fmt.Fprintf(stdout, "sorted: %d records\n", report.Len)
		return nil
	}

	fmt.Fprintf(stdout, "unsorted: %d descents in %d records\n", report.Descents.GetCardinality(), report.Len)
	it := report.Descents.Iterator()
	for listed := 0; it.HasNext() && listed < *maxReport; listed++ {
		i := it.Next()
		fmt.Fprintf(stdout, "  [%d] %d > [%d] %d\n", i, data[i], i+1, data[i+1])
	}
	return errUnsorted
}

func runRestore(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("restore", stderr)
	rate := flags.Int64("rate", 0, "read limit in bytes/s (0 = unlimited)")
	if err := parse(flags, args, 2); err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: *rate})
	n, err := backup.RestoreFile(ctx, fs.Default, flags.Arg(0), flags.Arg(1), rc)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "restored %d bytes to %s\n", n, flags.Arg(1))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
