// Command peakhint extracts the most significant peaks from a two-column
// (x, y) trace and prints them for annotation or prompt building.
//
// Usage:
//
//	peakhint [flags] [file]
//
// Without a file argument it reads from stdin. Lines are expected to hold
// two numeric columns separated by whitespace, commas, or semicolons;
// comment lines and unparsable lines are skipped.
//
// Examples:
//
//	peakhint spectrum.txt
//	peakhint -n 3 -mode min spectrum.txt
//	peakhint -prompt -unit "2theta deg" pattern.xy
//	peakhint -json -round 1 < spectrum.txt
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-peaks/spectral/peaks"
	"github.com/cwbudde/algo-peaks/spectral/prompt"
	"github.com/cwbudde/algo-peaks/stats/trace"
)

func main() {
	var (
		topN       = flag.Int("n", 5, "maximum number of peaks to report")
		modeName   = flag.String("mode", "auto", "polarity: auto, max, or min")
		window     = flag.Int("window", 7, "moving-average smoothing window")
		ratio      = flag.Float64("ratio", 0.01, "minimum prominence as a fraction of the signal range")
		asPrompt   = flag.Bool("prompt", false, "print the prompt serialization instead of a table")
		asJSON     = flag.Bool("json", false, "print raw JSON records instead of a table")
		xUnit      = flag.String("unit", "cm-1", "advisory x-axis unit for the prompt preamble")
		roundTo    = flag.Int("round", 0, "decimal places for prompt/JSON coordinates")
		showHints  = flag.Bool("hints", false, "print raw local-maximum hints instead of ranked peaks")
	)

	flag.Parse()

	mode, err := parseMode(*modeName)
	if err != nil {
		fatal(err)
	}

	in := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		in = f
	}

	x, y, err := readColumns(in)
	if err != nil {
		fatal(err)
	}

	xStats := trace.Calculate(x)
	yStats := trace.Calculate(y)
	fmt.Printf("samples=%d x=[%g, %g] y-range=%g\n",
		xStats.FiniteCount, xStats.Min, xStats.Max, yStats.Range)

	if *showHints {
		printHints(x, y)
		return
	}

	ranges, err := peaks.Extract(x, y,
		peaks.WithTopN(*topN),
		peaks.WithMode(mode),
		peaks.WithSmoothWindow(*window),
		peaks.WithMinProminenceRatio(*ratio),
	)
	if err != nil {
		fatal(err)
	}

	switch {
	case *asPrompt:
		out, err := prompt.Format(ranges, prompt.WithXUnit(*xUnit), prompt.WithRoundTo(*roundTo))
		if err != nil {
			fatal(err)
		}
		fmt.Println(out)
	case *asJSON:
		enc := json.NewEncoder(os.Stdout)
		if err := enc.Encode(prompt.Records(ranges, prompt.WithRoundTo(*roundTo))); err != nil {
			fatal(err)
		}
	default:
		printTable(ranges)
	}
}

func parseMode(name string) (peaks.Mode, error) {
	switch strings.ToLower(name) {
	case "auto":
		return peaks.ModeAuto, nil
	case "max":
		return peaks.ModeMax, nil
	case "min":
		return peaks.ModeMin, nil
	}

	return 0, fmt.Errorf("unknown mode %q (want auto, max, or min)", name)
}

// readColumns parses two numeric columns. Header, comment, and otherwise
// unparsable lines are skipped rather than failing the whole file.
func readColumns(r io.Reader) (x, y []float64, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ',' || r == ';'
		})
		if len(fields) < 2 {
			continue
		}

		xv, errX := strconv.ParseFloat(fields[0], 64)
		yv, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			continue
		}

		x = append(x, xv)
		y = append(y, yv)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}

	return x, y, nil
}

func printTable(ranges []peaks.Range) {
	if len(ranges) == 0 {
		fmt.Println("no significant peaks found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tCENTER\tLEFT\tRIGHT\tPROMINENCE")

	for _, r := range ranges {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", r.Kind, r.Center, r.Left, r.Right, r.Prominence)
	}

	w.Flush()
}

func printHints(x, y []float64) {
	hints := peaks.FindHints(x, y)
	if len(hints) == 0 {
		fmt.Println("no local maxima found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tX\tY")

	for _, h := range hints {
		fmt.Fprintf(w, "%d\t%g\t%g\n", h.Index, h.X, h.Y)
	}

	w.Flush()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "peakhint:", err)
	os.Exit(1)
}
