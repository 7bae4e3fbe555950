package verify

import (
	"fmt"

	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/core"
	"github.com/sarchlab/tilesim/fu"
)

// RunLint performs static lint checks on a configuration program. The
// STRUCT checks mirror what the tile would reject at run time. The FU and
// DATAFLOW checks are run on the control memory image the writes leave
// behind. Returns a list of issues found, or empty list if no issues.
func RunLint(p core.Program) []Issue {
	var issues []Issue

	params := p.Tile
	image := make([]cgra.CtrlWord, params.CtrlMemSize)
	written := make(map[int]int)

	for i := range image {
		image[i] = cgra.NewNAHWord(params.NumXbarOutLines())
	}

	for i, w := range p.Writes {
		structIssues := lintWrite(params, i, w)
		issues = append(issues, structIssues...)

		if len(structIssues) > 0 {
			continue
		}

		if prev, ok := written[w.Addr]; ok {
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Write:   i,
				Addr:    w.Addr,
				Line:    -1,
				Message: fmt.Sprintf("write %d overwrites address %d set by write %d", i, w.Addr, prev),
				Details: map[string]interface{}{"previous": prev},
			})
		}

		written[w.Addr] = i
		image[w.Addr] = w.Word()
	}

	issues = append(issues, lintFU(params, image)...)
	issues = append(issues, lintDataflow(params, image)...)

	return issues
}

func lintWrite(params core.TileParams, i int, w core.ConfigWrite) []Issue {
	mem := core.NewCtrlMem(params.CtrlMemSize, params.NumXbarInLines(), params.NumXbarOutLines())

	err := mem.Write(w.Addr, w.Word())
	if err == nil {
		return nil
	}

	line := -1
	if cfgErr, ok := err.(*core.ConfigurationError); ok && cfgErr.Kind == core.OutOfRange {
		line = cfgErr.Line
	}

	return []Issue{{
		Type:    IssueStruct,
		Write:   i,
		Addr:    w.Addr,
		Line:    line,
		Message: err.Error(),
	}}
}

func lintFU(params core.TileParams, image []cgra.CtrlWord) []Issue {
	var issues []Issue

	unit, err := fu.Build(params.FU, params.DataWidth, nil)
	if err != nil {
		return []Issue{{
			Type:    IssueFU,
			Write:   -1,
			Addr:    -1,
			Line:    -1,
			Message: err.Error(),
		}}
	}

	for addr, word := range image {
		op := word.Opcode

		if op != cgra.OptNAH && !unit.Supports(op) {
			issues = append(issues, Issue{
				Type:    IssueFU,
				Write:   -1,
				Addr:    addr,
				Line:    -1,
				Message: fmt.Sprintf("%s does not support %s", unit.Name(), op),
				Details: map[string]interface{}{"opt": string(op)},
			})
		}

		if (op == cgra.OptLd || op == cgra.OptStr) && !params.Memory {
			issues = append(issues, Issue{
				Type:    IssueFU,
				Write:   -1,
				Addr:    addr,
				Line:    -1,
				Message: fmt.Sprintf("%s at address %d needs a memory port", op, addr),
			})
		}
	}

	return issues
}

func feedsFU(params core.TileParams, word cgra.CtrlWord) bool {
	for _, r := range word.Routes[params.NumOutPorts:] {
		if r != cgra.RouteNone {
			return true
		}
	}

	return false
}

func lintDataflow(params core.TileParams, image []cgra.CtrlWord) []Issue {
	var issues []Issue

	resultLine := uint8(params.NumInPorts + 1)

	for addr, word := range image {
		prev := image[(addr+len(image)-1)%len(image)]

		for j, r := range word.Routes {
			if int(r) <= params.NumInPorts {
				continue
			}

			switch {
			case r > resultLine:
				issues = append(issues, dataflowIssue(addr, j,
					fmt.Sprintf("route %d selects FU result line %d, which never carries a token",
						r, int(r)-params.NumInPorts-1)))
			case word.Opcode == cgra.OptNAH:
				issues = append(issues, dataflowIssue(addr, j,
					"route selects the FU result of a NAH word"))
			case !feedsFU(params, prev):
				issues = append(issues, dataflowIssue(addr, j,
					"route selects the FU result but the previous word feeds no operand"))
			}
		}
	}

	return issues
}

func dataflowIssue(addr, line int, msg string) Issue {
	return Issue{
		Type:    IssueDataflow,
		Write:   -1,
		Addr:    addr,
		Line:    line,
		Message: msg,
	}
}
