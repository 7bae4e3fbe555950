package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tilesim/api"
	"github.com/sarchlab/tilesim/config"
	"github.com/sarchlab/tilesim/core"
	"github.com/tebeka/atexit"
)

//go:embed add_sub.yaml
var addSubProgram []byte

var monitorFlag = flag.Bool("monitor", false, "Serve the akita monitor while running")
var traceFlag = flag.Bool("trace", false, "Print the tile state after every fired slot")

func addSub(driver api.Driver, program core.Program) {
	// Two rounds of four inputs, one per port.
	src := []uint32{2, 3, 4, 5, 3, 4, 5, 6}
	dst := [][]uint32{
		make([]uint32, 3), make([]uint32, 3),
		make([]uint32, 2), make([]uint32, 2),
	}

	driver.LoadConfig(program.Writes)
	driver.FeedIn(src, [2]int{0, 4}, 4)

	for port, data := range dst {
		driver.Collect(data, [2]int{port, port + 1}, 1)
	}

	driver.Run()

	fmt.Println(src)

	for port, data := range dst {
		fmt.Printf("send_data[%d]: %v\n", port, data)
	}
}

func main() {
	flag.Parse()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	core.PrintToggle = *traceFlag

	program, err := core.ParseProgram(addSubProgram)
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
		Build("Device")

	driver.RegisterDevice(device)

	if *monitorFlag {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(driver)

		for _, comp := range device.Components() {
			monitor.RegisterComponent(comp)
		}

		monitor.StartServer()
	}

	addSub(driver, program)

	atexit.Exit(0)
}
