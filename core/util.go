package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

// LevelTrace is the log level of the simulation trace.
const LevelTrace slog.Level = slog.LevelInfo + 1

// PrintToggle enables PrintState after every fired slot.
var PrintToggle = false

// Trace logs a trace record at LevelTrace.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState prints the tile state if PrintToggle is set.
func PrintState(t *Tile) {
	if !PrintToggle {
		return
	}

	fmt.Println(RenderState(t))
}

// RenderState renders the control memory, the operand latch and the channels
// of the tile as tables.
func RenderState(t *Tile) string {
	ctrlTable := table.NewWriter()
	ctrlTable.SetTitle(fmt.Sprintf("Control Memory@%s (PC=%d)", t.name, t.pc))
	ctrlTable.AppendHeader(table.Row{"Addr", "Opt", "Routes"})

	for addr := 0; addr < t.ctrlMem.Capacity(); addr++ {
		word := t.ctrlMem.Read(addr)

		marker := ""
		if addr == t.pc {
			marker = "*"
		}

		ctrlTable.AppendRow(table.Row{
			fmt.Sprintf("%s%d", marker, addr), string(word.Opcode), fmt.Sprint(word.Routes),
		})
	}

	latchTable := table.NewWriter()
	latchTable.SetTitle(fmt.Sprintf("Operand Latch (loaded=%v)", t.latchLoaded))

	header := table.Row{"Operand"}
	values := table.Row{"Value"}
	preds := table.Row{"Pred"}

	for k, d := range t.latch {
		header = append(header, fmt.Sprintf("fu_in%d", k))
		values = append(values, int32(d.Value))
		preds = append(preds, d.Pred)
	}

	latchTable.AppendHeader(header)
	latchTable.AppendRow(values)
	latchTable.AppendRow(preds)

	chTable := table.NewWriter()
	chTable.SetTitle("Channels")
	chTable.AppendHeader(table.Row{"Channel", "Valid", "Value", "Pred"})

	for _, ch := range t.recvData {
		d, ok := ch.Peek()
		chTable.AppendRow(table.Row{ch.Name(), ok, int32(d.Value), d.Pred})
	}

	for _, ch := range t.sendData {
		d, ok := ch.Peek()
		chTable.AppendRow(table.Row{ch.Name(), ok, int32(d.Value), d.Pred})
	}

	return ctrlTable.Render() + "\n" + latchTable.Render() + "\n" + chTable.Render()
}

// LogState records the tile state at debug level.
func LogState(t *Tile) {
	latch, loaded := t.Latch()

	slog.Debug("StateCheckpoint",
		"Tile", t.name,
		"PC", t.pc,
		"Latch", latch,
		"LatchLoaded", loaded,
		"Outstanding", t.outstanding,
		"Stats", t.stats,
	)
}
