// Command techmap runs the technology-mapping and flattening engine over
// an ilang design file from the command line.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/synthkit/techmap/internal/host"
	"github.com/synthkit/techmap/internal/ilang"
	"github.com/synthkit/techmap/techmap"
)

const usage = `techmap - technology mapping and flattening

Usage:
  techmap [-map FILE]... [-v] <input.il> [output.il]
  techmap -flatten [-v] <input.il> [output.il]

Options:
  -map FILE   Add a map-library file (repeatable). Defaults to the builtin
              primitive gate library when omitted.
  -flatten    Inline every module into its "top"-attributed module instead
              of mapping against a map library.
  -v          Enable verbose (info-level) logging to stderr.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("techmap", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	var mapFiles stringList
	fs.Var(&mapFiles, "map", "add a map-library file (repeatable)")
	flatten := fs.Bool("flatten", false, "flatten instead of techmap")
	verbose := fs.Bool("v", false, "enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	inputPath := rest[0]
	outputPath := ""
	if len(rest) >= 2 {
		outputPath = rest[1]
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "techmap:", err)
		return 1
	}
	design, err := ilang.Parse(in)
	in.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "techmap:", err)
		return 1
	}

	svc := techmap.Services{
		Deriver:    host.SubstDeriver{},
		PassRunner: host.NewRegistry(),
		FrontEnds:  map[string]techmap.FrontEnd{"ilang": host.IlangFrontEnd{}},
		Logger:     host.NewSlogLogger(logger),
	}

	if *flatten {
		err = techmap.Flatten(design, techmap.FlattenOptions{}, svc)
	} else {
		opts := techmap.TechmapOptions{MapFiles: mapFiles, Open: openFile}
		err = techmap.Techmap(design, opts, svc)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "techmap:", err)
		return 1
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "techmap:", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	if err := ilang.Write(out, design); err != nil {
		fmt.Fprintln(os.Stderr, "techmap:", err)
		return 1
	}
	return 0
}

func openFile(filename string) (io.ReadCloser, error) {
	return os.Open(filename)
}

// stringList collects repeated -map flag values in order.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
