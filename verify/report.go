package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/tilesim/core"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Program       core.Program
	LintIssues    []Issue
	StructIssues  []Issue
	FUIssues      []Issue
	FlowIssues    []Issue
	SimulationErr error
	SimulationOK  bool
	Outputs       [][]uint32
	Stats         core.Stats
}

// GenerateReport runs both lint and functional simulation, returns a report
func GenerateReport(p core.Program, inputs [][]uint32, maxCycles int) *VerificationReport {
	report := &VerificationReport{Program: p}

	report.LintIssues = RunLint(p)

	for _, issue := range report.LintIssues {
		switch issue.Type {
		case IssueStruct:
			report.StructIssues = append(report.StructIssues, issue)
		case IssueFU:
			report.FUIssues = append(report.FUIssues, issue)
		default:
			report.FlowIssues = append(report.FlowIssues, issue)
		}
	}

	fs := NewFunctionalSimulator(p)
	for port, values := range inputs {
		if port < p.Tile.NumInPorts {
			fs.Feed(port, values...)
		}
	}

	report.SimulationErr = fs.Run(maxCycles)
	report.SimulationOK = report.SimulationErr == nil
	report.Outputs = fs.Outputs()
	report.Stats = fs.Stats()

	return report
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "TILE PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\n%d writes, %d words, %d in / %d out ports\n",
		len(r.Program.Writes), r.Program.Tile.CtrlMemSize,
		r.Program.Tile.NumInPorts, r.Program.Tile.NumOutPorts)

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		issueTable := table.NewWriter()
		issueTable.SetOutputMirror(w)
		issueTable.AppendHeader(table.Row{"Type", "Write", "Addr", "Line", "Message"})

		for _, issue := range r.LintIssues {
			issueTable.AppendRow(table.Row{
				issue.Type, issue.Write, issue.Addr, issue.Line, issue.Message,
			})
		}

		issueTable.Render()
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: FUNCTIONAL SIMULATION")
	fmt.Fprintln(w, separator)

	if r.SimulationOK {
		fmt.Fprintln(w, "Simulation completed successfully")
	} else {
		fmt.Fprintf(w, "Simulation error: %v\n", r.SimulationErr)
	}

	outTable := table.NewWriter()
	outTable.SetOutputMirror(w)
	outTable.AppendHeader(table.Row{"Port", "Values"})

	for j, values := range r.Outputs {
		outTable.AppendRow(table.Row{fmt.Sprintf("send_data[%d]", j), fmt.Sprint(values)})
	}

	outTable.Render()

	fmt.Fprintf(w, "cycles=%d fired=%d stalls=%d dropped=%d config_errors=%d\n",
		r.Stats.Cycles, r.Stats.FiredSlots, r.Stats.StallCycles,
		r.Stats.DroppedTokens, r.Stats.ConfigErrors)

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d FU, %d DATAFLOW)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.FUIssues), len(r.FlowIssues))

	simStatus := "SUCCESS"
	if !r.SimulationOK {
		simStatus = "FAILED: " + r.SimulationErr.Error()
	}

	fmt.Fprintf(w, "Simulation Result: %s\n", simStatus)
	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)

	return nil
}
