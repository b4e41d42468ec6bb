// templogctl inspects and exports the archived temperature history.
//
// With a terminal on stdin and no command argument it runs an
// interactive shell; otherwise it executes the single command given on
// the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"golang.org/x/term"

	"github.com/xtxerr/templog/config"
	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/export"
	"github.com/xtxerr/templog/internal/nvs"
	"github.com/xtxerr/templog/internal/series"
	"github.com/xtxerr/templog/internal/settings"
	"github.com/xtxerr/templog/internal/summary"
)

// Version is set at build time via ldflags
var Version = "dev"

type ctl struct {
	store nvs.Store
}

func main() {
	dbPath := config.DefaultDBPath
	args := os.Args[1:]
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch {
		case args[0] == "-db" && len(args) > 1:
			dbPath = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "-db="):
			dbPath = strings.TrimPrefix(args[0], "-db=")
			args = args[1:]
		case args[0] == "-version":
			fmt.Printf("templogctl %s\n", Version)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", args[0])
			usage()
			os.Exit(2)
		}
	}

	store, err := nvs.OpenDuckDB(nvs.DefaultDuckDBConfig(dbPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	c := &ctl{store: store}

	if len(args) > 0 {
		if err := c.execute(strings.Join(args, " ")); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		usage()
		os.Exit(2)
	}

	fmt.Printf("templogctl %s (archive: %s)\n", Version, dbPath)
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	p := prompt.New(
		c.executor,
		completer,
		prompt.OptionPrefix("templog> "),
		prompt.OptionTitle("templogctl"),
	)
	p.Run()
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: templogctl [-db path] [command]

commands:
  history                 print archived samples
  summary                 print statistics with percentiles
  export <path> [codec]   write a Parquet export (codec: zstd, snappy, lz4, gzip, none)
  stats                   show archive record details`)
}

var commands = []prompt.Suggest{
	{Text: "history", Description: "print archived samples"},
	{Text: "summary", Description: "print statistics with percentiles"},
	{Text: "export", Description: "write a Parquet export"},
	{Text: "stats", Description: "show archive record details"},
	{Text: "help", Description: "show commands"},
	{Text: "exit", Description: "quit"},
}

func completer(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	return prompt.FilterHasPrefix(commands, d.GetWordBeforeCursor(), true)
}

// executor runs one shell line, reporting errors without exiting.
func (c *ctl) executor(line string) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return
	case "exit", "quit":
		os.Exit(0)
	}
	if err := c.execute(line); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}

func (c *ctl) execute(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "history":
		return c.history()
	case "summary":
		return c.summary()
	case "export":
		return c.export(args)
	case "stats":
		return c.stats()
	case "help":
		usage()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// readArchive loads the persisted history. The record carries its own
// capacity, so no daemon configuration is needed here.
func (c *ctl) readArchive() ([]series.Sample, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, err := c.store.Read(ctx, nvs.KeyTemperatureData, 0)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive: %w", err)
	}

	capacity, err := series.CapacityForRecord(len(data))
	if err != nil {
		return nil, err
	}
	buf := series.NewBuffer(capacity)
	if err := buf.UnmarshalRecord(data); err != nil {
		return nil, err
	}
	return buf.Samples(), nil
}

func (c *ctl) history() error {
	samples, err := c.readArchive()
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("archive is empty")
		return nil
	}

	fmt.Printf("%-12s %s\n", "UPTIME(MIN)", "TEMPERATURE")
	for _, s := range samples {
		fmt.Printf("%-12d %s\n", s.Uptime, s.Temperature)
	}
	return nil
}

func (c *ctl) summary() error {
	samples, err := c.readArchive()
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("archive is empty")
		return nil
	}

	sm := summary.Summarize(samples, true)
	fmt.Printf("samples:  %d\n", sm.Count)
	fmt.Printf("uptime:   %d..%d min\n", sm.FirstUptime, sm.LastUptime)
	fmt.Printf("min:      %.4f°C\n", sm.Min)
	fmt.Printf("max:      %.4f°C\n", sm.Max)
	fmt.Printf("avg:      %.4f°C\n", sm.Avg)
	printQuantile := func(name string, v *float64) {
		if v != nil {
			fmt.Printf("%-9s %.4f°C\n", name+":", *v)
		}
	}
	printQuantile("p50", sm.P50)
	printQuantile("p90", sm.P90)
	printQuantile("p95", sm.P95)
	printQuantile("p99", sm.P99)
	return nil
}

func (c *ctl) stats() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, err := c.store.Read(ctx, nvs.KeyTemperatureData, 0)
	if err != nil {
		if errors.IsNotFound(err) {
			fmt.Println("no archive record")
			return nil
		}
		return fmt.Errorf("read archive: %w", err)
	}
	capacity, err := series.CapacityForRecord(len(data))
	if err != nil {
		return err
	}
	buf := series.NewBuffer(capacity)
	if err := buf.UnmarshalRecord(data); err != nil {
		return err
	}

	fmt.Printf("record size: %d bytes\n", len(data))
	fmt.Printf("capacity:    %d\n", capacity)
	fmt.Printf("length:      %d\n", buf.Len())
	if buf.Len() > 0 {
		fmt.Printf("uptime:      %d..%d min\n", buf.At(0).Uptime, buf.At(buf.Len()-1).Uptime)
	}

	if st, found, err := settings.Load(ctx, c.store); err == nil && found {
		fmt.Printf("interval:    %ds\n", st.IntervalSec)
	}
	return nil
}

func (c *ctl) export(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: export <path> [codec]")
	}
	path := args[0]

	opts := export.DefaultOptions()
	if len(args) > 1 {
		opts.Compression = export.ParseCompressionType(args[1])
	}

	samples, err := c.readArchive()
	if err != nil {
		return err
	}
	if err := export.Write(path, samples, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %d samples to %s\n", len(samples), path)
	return nil
}
