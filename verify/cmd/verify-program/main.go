// Command verify-program lints a tile program and runs it on the functional
// simulator.
//
//	verify-program -program add_sub.yaml -feed 0=2,3 -feed 1=3,4
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/tilesim/core"
	"github.com/sarchlab/tilesim/verify"
	"github.com/tebeka/atexit"
)

type feedList map[int][]uint32

func (f feedList) String() string {
	return fmt.Sprint(map[int][]uint32(f))
}

func (f feedList) Set(s string) error {
	port, values, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("feed %q is not port=v1,v2,...", s)
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("feed port %q: %w", port, err)
	}

	for _, v := range strings.Split(values, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 0, 32)
		if err != nil {
			return fmt.Errorf("feed value %q: %w", v, err)
		}

		f[p] = append(f[p], uint32(n))
	}

	return nil
}

func main() {
	feeds := feedList{}

	programPath := flag.String("program", "", "Path of the program YAML")
	cycles := flag.Int("cycles", 64, "Number of cycles to simulate")
	output := flag.String("o", "", "Write the report to this file instead of stdout")
	flag.Var(feeds, "feed", "Values for an input port, as port=v1,v2,... (repeatable)")
	flag.Parse()

	if *programPath == "" {
		flag.Usage()
		atexit.Exit(2)
	}

	program := core.LoadProgramFileFromYAML(*programPath)

	inputs := make([][]uint32, program.Tile.NumInPorts)
	for port, values := range feeds {
		if port < 0 || port >= len(inputs) {
			fmt.Fprintf(os.Stderr, "feed port %d out of range\n", port)
			atexit.Exit(2)
		}

		inputs[port] = values
	}

	report := verify.GenerateReport(program, inputs, *cycles)

	if *output != "" {
		if err := report.SaveReportToFile(*output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			atexit.Exit(1)
		}
	} else {
		report.WriteReport(os.Stdout)
	}

	if len(report.LintIssues) > 0 || !report.SimulationOK {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
