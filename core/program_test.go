package core_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/core"
	"github.com/sarchlab/tilesim/fu"
)

const addSubProgram = `
tile:
  ctrl_mem_size: 3
writes:
  - {addr: 0, opt: NAH, routes: [4, 3, 2, 1, 4, 3, 2, 1]}
  - {addr: 1, opt: ADD, routes: [3, 3, 3, 5, 4, 1, 1, 1]}
  - {addr: 2, opt: SUB, routes: [5, 5, 2, 2, 1, 1, 1, 1]}
`

var _ = Describe("Program", func() {
	It("should parse a program and fill the default parameters", func() {
		p, err := core.ParseProgram([]byte(addSubProgram))

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Tile.CtrlMemSize).To(Equal(3))
		Expect(p.Tile.NumInPorts).To(Equal(4))
		Expect(p.Tile.NumFUOutPorts).To(Equal(2))
		Expect(p.Tile.FU).To(Equal([]fu.Kind{fu.KindAlu, fu.KindMem}))
		Expect(p.Writes).To(HaveLen(3))
		Expect(p.Writes[1].Word()).To(Equal(cgra.CtrlWord{
			Opcode: cgra.OptAdd,
			Routes: []uint8{3, 3, 3, 5, 4, 1, 1, 1},
		}))
	})

	It("should reject a selector that does not fit", func() {
		_, err := core.ParseProgram([]byte(`
writes:
  - {addr: 0, opt: ADD, routes: [300]}
`))

		Expect(err).To(HaveOccurred())
	})

	It("should reject a write without opt", func() {
		_, err := core.ParseProgram([]byte(`
writes:
  - {addr: 0, routes: [1]}
`))

		Expect(err).To(MatchError(ContainSubstring("no opt")))
	})

	It("should reject bad tile parameters", func() {
		_, err := core.ParseProgram([]byte(`
tile:
  data_width: 64
`))

		Expect(err).To(MatchError(ContainSubstring("data width")))
	})

	It("should round trip through a file", func() {
		p, err := core.ParseProgram([]byte(addSubProgram))
		Expect(err).NotTo(HaveOccurred())

		data, err := core.MarshalProgram(p)
		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(GinkgoT().TempDir(), "prog.yaml")
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())

		Expect(core.LoadProgramFileFromYAML(path)).To(Equal(p))
	})

	It("should panic on a missing file", func() {
		Expect(func() {
			core.LoadProgramFileFromYAML("does-not-exist.yaml")
		}).To(Panic())
	})
})

var _ = Describe("Builder", func() {
	It("should panic on invalid parameters", func() {
		Expect(func() { core.NewBuilder().WithInPorts(0) }).To(Panic())
		Expect(func() { core.NewBuilder().WithCtrlMemSize(0) }).To(Panic())
		Expect(func() {
			core.NewBuilder().WithFU("fpu").BuildTile("Tile")
		}).To(Panic())
	})

	It("should build a tile with the requested geometry", func() {
		tile := core.NewBuilder().
			WithInPorts(2).
			WithOutPorts(3).
			WithFUPorts(2, 1).
			WithCtrlMemSize(5).
			WithDataWidth(16).
			WithFU(fu.KindAlu).
			BuildTile("Tile")

		p := tile.Params()
		Expect(p.NumXbarInLines()).To(Equal(3))
		Expect(p.NumXbarOutLines()).To(Equal(5))
		Expect(tile.CtrlWord(4)).To(Equal(cgra.NewNAHWord(5)))
		Expect(tile.FU().Name()).To(Equal("Alu"))
	})

	It("should attach memory through the parameters but detach it only explicitly", func() {
		attached := core.NewBuilder().
			WithMemory(true).
			WithParams(core.TileParams{CtrlMemSize: 2})

		Expect(attached.BuildTile("Tile").Params().Memory).To(BeTrue())
		Expect(attached.WithMemory(false).BuildTile("Tile").Params().Memory).To(BeFalse())

		params := core.TileParams{NumInPorts: 2, Memory: true}.
			Merge(core.DefaultTileParams())
		Expect(params.Memory).To(BeTrue())
		Expect(params.NumInPorts).To(Equal(2))
		Expect(params.NumOutPorts).To(Equal(4))
	})
})
