package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tilesim/api"
	"github.com/sarchlab/tilesim/config"
	"github.com/sarchlab/tilesim/core"
	"github.com/tebeka/atexit"
)

//go:embed gather.yaml
var gatherProgram []byte

func main() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	program, err := core.ParseProgram(gatherProgram)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Driver")

	device := config.NewDeviceBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithTileParams(program.Tile).
		WithMemoryLatency(4).
		Build("Device")

	driver.RegisterDevice(device)

	table := []uint32{100, 101, 102, 103, 104, 105, 106, 107}
	for i, v := range table {
		device.WriteMemory(uint32(4*i), v)
	}

	// Byte addresses of the words to gather.
	addrs := []uint32{28, 0, 12, 4}
	dst := make([]uint32, len(addrs))

	driver.LoadConfig(program.Writes)
	driver.FeedIn(addrs, [2]int{0, 1}, 1)
	driver.Collect(dst, [2]int{0, 1}, 1)

	driver.Run()

	fmt.Println(addrs)
	fmt.Println(dst)

	atexit.Exit(0)
}
