// Command primes lists or counts the primes in a 64-bit range.
//
// Usage:
//
//	primes [options] START [STOP]   Print primes in [START, STOP]
//	primes -c [options] START STOP  Print the prime count only
//	primes -i                       Start an interactive session
//
// Options:
//
//	-c, --count        Print the number of primes instead of the primes
//	-o, --output FILE  Write the output to FILE atomically
//	-s, --sieve-size N Sieve buffer size in KiB (power of two, 1-4096)
//	-p, --pre-sieve N  Pre-sieve limit (13-19)
//	    --config FILE  Config file path (default: XDG config dir)
//
// With a single START argument, STOP defaults to START (primality
// check of one number). Defaults may also be set in a HuJSON config
// file at $XDG_CONFIG_HOME/primes/config.json:
//
//	{
//	    // sieve buffer size in KiB
//	    "sieve_size_kib": 256,
//	    "pre_sieve": 19,
//	}
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/Ismael-VC/primesieve/pkg/sieve"
)

var errUsage = errors.New(usage())

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// config holds file-configurable defaults; flags override it.
type config struct {
	SieveSizeKiB int `json:"sieve_size_kib"`
	PreSieve     int `json:"pre_sieve"`
}

func run(args []string) error {
	flags := flag.NewFlagSet("primes", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	count := flags.BoolP("count", "c", false, "print the prime count")
	output := flags.StringP("output", "o", "", "write output to FILE atomically")
	sieveSize := flags.IntP("sieve-size", "s", 0, "sieve buffer size in KiB")
	preSieve := flags.IntP("pre-sieve", "p", 0, "pre-sieve limit")
	interactive := flags.BoolP("interactive", "i", false, "interactive session")
	configPath := flags.String("config", "", "config file path")
	help := flags.BoolP("help", "h", false, "show usage")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w\n%s", err, usage())
	}
	if *help {
		fmt.Println(usage())

		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *sieveSize != 0 {
		cfg.SieveSizeKiB = *sieveSize
	}
	if *preSieve != 0 {
		cfg.PreSieve = *preSieve
	}

	if *interactive {
		return repl(cfg)
	}

	start, stop, err := parseRange(flags.Args())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	out := io.Writer(os.Stdout)
	if *output != "" {
		out = &buf
	}

	if err := emit(out, cfg, start, stop, *count); err != nil {
		return err
	}

	if *output != "" {
		if err := atomic.WriteFile(*output, &buf); err != nil {
			return fmt.Errorf("writing %s: %w", *output, err)
		}
	}

	return nil
}

// emit writes either the primes or their count for [start, stop].
func emit(out io.Writer, cfg config, start, stop uint64, countOnly bool) error {
	opts := sieve.Options{
		Start:         start,
		Stop:          stop,
		SieveSizeKiB:  cfg.SieveSizeKiB,
		PreSieveLimit: cfg.PreSieve,
	}

	if countOnly {
		n, err := sieve.CountOpts(opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, n)

		return err
	}

	// Buffered writes matter here: wide ranges print millions of
	// lines.
	w := bufio.NewWriter(out)
	err := sieve.ForEachOpts(opts, func(p uint64) error {
		_, werr := fmt.Fprintln(w, p)

		return werr
	})
	if err != nil {
		return err
	}

	return w.Flush()
}

func parseRange(args []string) (start, stop uint64, err error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, errUsage
	}

	start, err = strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid START %q: %w", args[0], err)
	}

	stop = start
	if len(args) == 2 {
		stop, err = strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid STOP %q: %w", args[1], err)
		}
	}

	return start, stop, nil
}

// defaultConfigPath returns $XDG_CONFIG_HOME/primes/config.json,
// falling back to ~/.config. Empty when no home directory is known.
func defaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "primes", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "primes", "config.json")
}

// loadConfig reads a HuJSON config file. A missing default config is
// fine; an explicitly requested one must exist.
func loadConfig(path string) (config, error) {
	var cfg config

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own config location
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}

		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

func usage() string {
	return `primes - segmented sieve prime generator

Usage:
  primes [options] START [STOP]   Print primes in [START, STOP]
  primes -c [options] START STOP  Print the prime count only
  primes -i                       Interactive session

Options:
  -c, --count          Print the number of primes instead of the primes
  -o, --output FILE    Write the output to FILE atomically
  -s, --sieve-size N   Sieve buffer size in KiB (power of two, 1-4096)
  -p, --pre-sieve N    Pre-sieve limit (13-19)
      --config FILE    Config file path
  -h, --help           Show this help

Examples:
  primes 100                 # is 100 prime? (no output lines: it is not)
  primes 1 100               # the 25 primes up to 100
  primes -c 1 1000000000     # pi(10^9)
  primes -s 256 -o p.txt 1000000000 1000100000`
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".primes_history")
}

// repl is the interactive command loop.
func repl(cfg config) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var out []string
		for _, cmd := range []string{"count ", "primes ", "help", "quit"} {
			if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
				out = append(out, cmd)
			}
		}

		return out
	})

	if f, err := os.Open(historyFile()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	fmt.Println("primes - interactive session")
	fmt.Println("Type 'help' for available commands.")

	for {
		input, err := line.Prompt("primes> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "quit", "exit", "q":
			saveHistory(line)

			return nil

		case "help", "?":
			fmt.Println("  primes A [B]   print primes in [A, B]")
			fmt.Println("  count A [B]    count primes in [A, B]")
			fmt.Println("  A [B]          shorthand for primes A B")
			fmt.Println("  quit           exit")

		case "count", "primes":
			replRange(cfg, args, cmd == "count")

		default:
			// Bare "A B" counts as a primes command.
			replRange(cfg, parts, false)
		}
	}

	saveHistory(line)

	return nil
}

func replRange(cfg config, args []string, countOnly bool) {
	start, stop, err := parseRange(args)
	if err != nil {
		fmt.Println("usage: [count|primes] START [STOP]")

		return
	}

	if err := emit(os.Stdout, cfg, start, stop, countOnly); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func saveHistory(line *liner.State) {
	path := historyFile()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil { //nolint:gosec // fixed path under the user's home
		line.WriteHistory(f)
		f.Close()
	}
}
