// Package verify provides debugging tools for tile configuration programs.
//
// This package implements two complementary verification stages:
//
// 1. Static Lint (lint.go): checks a program against the tile it targets
//   - STRUCT checks: address range, word size, route selectors, overwritten
//     addresses
//   - FU checks: opcodes the functional unit cannot run, memory opcodes
//     without a memory port
//   - DATAFLOW checks: routes that can never carry a token
//
// 2. Functional Simulator (funcsim.go): runs the program on the
// cycle-level tile with ideal sources, sinks and memory, and records what
// every output port produced.
//
// # Usage Example
//
//	program := core.LoadProgramFileFromYAML("add_sub.yaml")
//
//	issues := verify.RunLint(program)
//	for _, issue := range issues {
//	    log.Printf("[%s] addr=%d line=%d: %s",
//	        issue.Type, issue.Addr, issue.Line, issue.Message)
//	}
//
//	fs := verify.NewFunctionalSimulator(program)
//	fs.Feed(0, 2, 3)
//	if err := fs.Run(16); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fs.Outputs())
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct   IssueType = "STRUCT"   // The write cannot be stored
	IssueFU       IssueType = "FU"       // The FU cannot run the opcode
	IssueDataflow IssueType = "DATAFLOW" // A route can never carry a token
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT, FU or DATAFLOW
	Write   int                    // Index of the write (-1 if not applicable)
	Addr    int                    // Control memory address (-1 if not applicable)
	Line    int                    // Crossbar output line (-1 if not applicable)
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
