package core_test

import (
	"errors"
	"math/rand"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/core"
)

func tileParams(ctrlMemSize int) core.TileParams {
	p := core.DefaultTileParams()
	p.CtrlMemSize = ctrlMemSize

	return p
}

func buildTile(p core.TileParams) *core.Tile {
	return core.NewBuilder().WithParams(p).BuildTile("Tile")
}

var _ = Describe("Tile", func() {
	It("should run the three-word add and subtract program", func() {
		h := newHarness(buildTile(tileParams(3)))
		h.writes = []core.ConfigWrite{
			write(0, cgra.OptNAH, 4, 3, 2, 1, 4, 3, 2, 1),
			write(1, cgra.OptAdd, 3, 3, 3, 5, 4, 1, 1, 1),
			write(2, cgra.OptSub, 5, 5, 2, 2, 1, 1, 1, 1),
		}
		h.sources = [][]uint32{{2, 3}, {3, 4}, {4, 5}, {5, 6}}

		h.run(8)

		Expect(h.sinks[0]).To(Equal([]uint32{5, 5, 3}))
		Expect(h.sinks[1]).To(Equal([]uint32{4, 5, 3}))
		Expect(h.sinks[2]).To(Equal([]uint32{3, 5}))
		Expect(h.sinks[3]).To(Equal([]uint32{2, 9}))
		Expect(h.tile.Stats().DroppedTokens).To(Equal(uint64(1)))
		Expect(h.tile.Stats().ConfigWrites).To(Equal(uint64(3)))
	})

	It("should deliver the selected input to every output that routes it", func() {
		h := newHarness(buildTile(tileParams(1)))
		h.writes = []core.ConfigWrite{
			write(0, cgra.OptNAH, 3, 3, 0, 1, 0, 0, 0, 0),
		}
		h.sources = [][]uint32{{10, 11}, {30}, {20, 21}, nil}

		h.run(3)

		Expect(h.sinks[0]).To(Equal([]uint32{20, 21}))
		Expect(h.sinks[1]).To(Equal([]uint32{20, 21}))
		Expect(h.sinks[2]).To(BeEmpty())
		Expect(h.sinks[3]).To(Equal([]uint32{10, 11}))
		Expect(h.tile.Stats().DroppedTokens).To(Equal(uint64(1)))
	})

	It("should use a word written to the active address in the same cycle", func() {
		h := newHarness(buildTile(tileParams(2)))
		h.writes = []core.ConfigWrite{write(0, cgra.OptNAH, 1, 0, 0, 0, 0, 0, 0, 0)}
		h.sources[0] = []uint32{5}

		h.step()

		Expect(h.sinks[0]).To(Equal([]uint32{5}))
	})

	It("should not apply a word written to another address", func() {
		h := newHarness(buildTile(tileParams(2)))
		h.writes = []core.ConfigWrite{write(1, cgra.OptNAH, 1, 0, 0, 0, 0, 0, 0, 0)}
		h.sources[0] = []uint32{5, 6}

		h.step()
		Expect(h.sinks[0]).To(BeEmpty())

		h.step()
		Expect(h.sinks[0]).To(Equal([]uint32{6}))
	})

	It("should wrap the PC after the last word", func() {
		h := newHarness(buildTile(tileParams(3)))
		h.writes = []core.ConfigWrite{
			write(0, cgra.OptNAH, 1, 0, 0, 0, 0, 0, 0, 0),
			write(1, cgra.OptNAH, 0, 1, 0, 0, 0, 0, 0, 0),
			write(2, cgra.OptNAH, 0, 0, 1, 0, 0, 0, 0, 0),
		}
		h.sources[0] = []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8}

		h.run(9)

		Expect(h.tile.PC()).To(Equal(0))
		Expect(h.sinks[0]).To(Equal([]uint32{0, 3, 6}))
		Expect(h.sinks[1]).To(Equal([]uint32{1, 4, 7}))
		Expect(h.sinks[2]).To(Equal([]uint32{2, 5, 8}))
		Expect(h.tile.Stats().FiredSlots).To(Equal(uint64(9)))
	})

	It("should advance the PC on idle cycles", func() {
		h := newHarness(buildTile(tileParams(4)))

		h.run(6)

		Expect(h.tile.PC()).To(Equal(2))
	})

	DescribeTable("FU result of the second slot",
		func(opt cgra.Opcode, expected []uint32) {
			h := newHarness(buildTile(tileParams(2)))
			h.writes = []core.ConfigWrite{
				write(0, cgra.OptNAH, 0, 0, 0, 0, 1, 2, 0, 0),
				write(1, opt, 5, 0, 0, 0, 0, 0, 0, 0),
			}
			h.sources[0] = []uint32{1}
			h.sources[1] = []uint32{2}

			h.run(2)

			Expect(h.sinks[0]).To(Equal(expected))
		},
		Entry("NAH produces no token", cgra.OptNAH, []uint32(nil)),
		Entry("ADD produces the sum", cgra.OptAdd, []uint32{3}),
		Entry("SUB produces the difference", cgra.OptSub, []uint32{0xffffffff}),
	)

	It("should not produce an FU token from an empty latch", func() {
		h := newHarness(buildTile(tileParams(1)))
		h.writes = []core.ConfigWrite{write(0, cgra.OptAdd, 5, 0, 0, 0, 0, 0, 0, 0)}

		h.run(4)

		Expect(h.sinks[0]).To(BeEmpty())
	})

	It("should hold the slot while an output is busy", func() {
		h := newHarness(buildTile(tileParams(2)))
		h.writes = []core.ConfigWrite{
			write(0, cgra.OptNAH, 1, 2, 0, 0, 0, 0, 0, 0),
			write(1, cgra.OptNAH, 1, 2, 0, 0, 0, 0, 0, 0),
		}
		h.sources[0] = []uint32{7, 8}
		h.sources[1] = []uint32{70, 80}
		h.sinkReady[0] = false

		h.run(3)

		Expect(h.tile.PC()).To(Equal(1))
		Expect(h.sinks[1]).To(Equal([]uint32{70}))
		Expect(h.tile.RecvData(0).Valid()).To(BeTrue())
		Expect(h.tile.RecvData(1).Valid()).To(BeTrue())

		h.sinkReady[0] = true
		h.step()

		Expect(h.tile.Stats().BackpressureCycles).To(Equal(uint64(3)))
		Expect(h.tile.PC()).To(Equal(1))
		Expect(h.sinks[0]).To(Equal([]uint32{7}))

		h.step()

		Expect(h.tile.PC()).To(Equal(0))
		Expect(h.sinks[0]).To(Equal([]uint32{7, 8}))
		Expect(h.sinks[1]).To(Equal([]uint32{70, 80}))
	})

	Context("when configuration writes are bad", func() {
		var h *tileHarness

		BeforeEach(func() {
			h = newHarness(buildTile(tileParams(3)))
		})

		It("should reject an address beyond the capacity", func() {
			h.writes = []core.ConfigWrite{write(5, cgra.OptAdd, 1, 0, 0, 0, 0, 0, 0, 0)}

			h.step()

			errs := h.tile.ConfigErrors()
			Expect(errs).To(HaveLen(1))

			var cfgErr *core.ConfigurationError
			Expect(errors.As(errs[0], &cfgErr)).To(BeTrue())
			Expect(cfgErr.Kind).To(Equal(core.OutOfRange))
			Expect(cfgErr.Addr).To(Equal(5))
			Expect(h.tile.Stats().ConfigErrors).To(Equal(uint64(1)))
			Expect(h.tile.RecvWOpt().Valid()).To(BeFalse())
			Expect(h.tile.RecvWAddr().Valid()).To(BeFalse())
		})

		It("should reject a selector beyond the crossbar inputs", func() {
			h.writes = []core.ConfigWrite{write(0, cgra.OptAdd, 0, 0, 7, 0, 0, 0, 0, 0)}

			h.step()

			var cfgErr *core.ConfigurationError
			Expect(errors.As(h.tile.ConfigErrors()[0], &cfgErr)).To(BeTrue())
			Expect(cfgErr.Kind).To(Equal(core.OutOfRange))
			Expect(cfgErr.Line).To(Equal(2))
			Expect(cfgErr.Selector).To(Equal(uint8(7)))
			Expect(h.tile.CtrlWord(0)).To(Equal(cgra.NewNAHWord(8)))
		})

		It("should reject a word with the wrong number of routes", func() {
			h.writes = []core.ConfigWrite{write(1, cgra.OptAdd, 1, 1, 1)}

			h.step()

			var cfgErr *core.ConfigurationError
			Expect(errors.As(h.tile.ConfigErrors()[0], &cfgErr)).To(BeTrue())
			Expect(cfgErr.Kind).To(Equal(core.BadWord))
			Expect(h.tile.CtrlWord(1)).To(Equal(cgra.NewNAHWord(8)))
		})

		It("should keep running after a rejected write", func() {
			h.writes = []core.ConfigWrite{
				write(9, cgra.OptAdd, 1, 0, 0, 0, 0, 0, 0, 0),
				write(2, cgra.OptNAH, 1, 0, 0, 0, 0, 0, 0, 0),
			}
			h.sources[0] = []uint32{0, 0, 42}

			h.run(3)

			Expect(h.tile.ConfigErrors()).To(HaveLen(1))
			Expect(h.sinks[0]).To(Equal([]uint32{42}))
		})
	})

	Context("with memory", func() {
		var h *tileHarness

		BeforeEach(func() {
			p := tileParams(2)
			p.Memory = true
			h = newHarness(buildTile(p))
		})

		It("should hold the slot until the load returns", func() {
			h.memory[4] = 99
			h.memLatency = 3
			h.writes = []core.ConfigWrite{
				write(0, cgra.OptNAH, 0, 0, 0, 0, 1, 0, 0, 0),
				write(1, cgra.OptLd, 5, 2, 0, 0, 0, 0, 0, 0),
			}
			h.sources[0] = []uint32{4}

			h.step()
			h.sources[1] = []uint32{77, 78}

			h.step()
			Expect(h.sinks[1]).To(Equal([]uint32{77}))
			Expect(h.tile.PC()).To(Equal(1))

			h.run(2)
			Expect(h.sinks[0]).To(BeEmpty())
			Expect(h.tile.PC()).To(Equal(1))
			Expect(h.tile.RecvData(1).Valid()).To(BeTrue())

			h.step()
			Expect(h.sinks[0]).To(Equal([]uint32{99}))
			Expect(h.sinks[1]).To(Equal([]uint32{77}))
			Expect(h.tile.PC()).To(Equal(0))
			Expect(h.tile.Stats().StallCycles).To(Equal(uint64(3)))
		})

		It("should store a value", func() {
			h.writes = []core.ConfigWrite{
				write(0, cgra.OptNAH, 0, 0, 0, 0, 1, 2, 0, 0),
				write(1, cgra.OptStr, 0, 0, 0, 0, 0, 0, 0, 0),
			}
			h.sources[0] = []uint32{8}
			h.sources[1] = []uint32{55}

			h.run(2)

			Expect(h.memory).To(HaveKeyWithValue(uint32(8), uint32(55)))
		})
	})

	It("should behave the same on every run", func() {
		runOnce := func() ([][]uint32, core.Stats) {
			rng := rand.New(rand.NewSource(7))
			opts := []cgra.Opcode{
				cgra.OptNAH, cgra.OptAdd, cgra.OptSub, cgra.OptXor,
				cgra.OptLe, cgra.OptPhi,
			}

			h := newHarness(buildTile(tileParams(4)))
			for addr := 0; addr < 4; addr++ {
				routes := make([]uint8, 8)
				for j := range routes {
					routes[j] = uint8(rng.Intn(7))
				}

				h.writes = append(h.writes,
					write(addr, opts[rng.Intn(len(opts))], routes...))
			}

			for i := range h.sources {
				for k := 0; k < 20; k++ {
					h.sources[i] = append(h.sources[i], rng.Uint32())
				}
			}

			h.run(60)

			return h.sinks, h.tile.Stats()
		}

		sinks1, stats1 := runOnce()
		sinks2, stats2 := runOnce()

		Expect(sinks1).To(Equal(sinks2))
		Expect(stats1).To(Equal(stats2))
	})

	It("should render the state", func() {
		h := newHarness(buildTile(tileParams(2)))
		h.writes = []core.ConfigWrite{write(1, cgra.OptAdd, 1, 0, 0, 0, 0, 0, 0, 0)}
		h.step()

		out := core.RenderState(h.tile)

		Expect(out).To(ContainSubstring("Control Memory"))
		Expect(out).To(ContainSubstring("ADD"))
		Expect(out).To(ContainSubstring("Tile.RecvData[0]"))
	})
})

var _ = Describe("Tile with a mocked FU", func() {
	var (
		mockCtrl *gomock.Controller
		unit     *MockFunctionalUnit
		h        *tileHarness
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		unit = NewMockFunctionalUnit(mockCtrl)
		h = newHarness(core.NewTileWithFU("Tile", tileParams(1), unit))
		h.writes = []core.ConfigWrite{write(0, cgra.OptMul, 5, 0, 0, 0, 1, 0, 0, 0)}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should compute on the operands latched by the previous slot", func() {
		h.sources[0] = []uint32{6}
		latched := []cgra.Data{
			cgra.NewScalar(6), cgra.Invalid(), cgra.Invalid(), cgra.Invalid(),
		}

		gomock.InOrder(
			unit.EXPECT().Compute(cgra.OptMul, gomock.Any()).
				Return(cgra.Invalid(), true),
			unit.EXPECT().Retire(),
			unit.EXPECT().Compute(cgra.OptMul, latched).
				Return(cgra.NewScalar(42), true),
			unit.EXPECT().Retire(),
		)

		h.run(2)

		Expect(h.sinks[0]).To(Equal([]uint32{42}))
	})

	It("should not retire the slot while the FU is busy", func() {
		h.sources[0] = []uint32{6, 7}

		gomock.InOrder(
			unit.EXPECT().Compute(cgra.OptMul, gomock.Any()).
				Return(cgra.Invalid(), false).Times(3),
			unit.EXPECT().Compute(cgra.OptMul, gomock.Any()).
				Return(cgra.Invalid(), true),
			unit.EXPECT().Retire(),
		)

		h.run(4)

		Expect(h.tile.Stats().StallCycles).To(Equal(uint64(3)))
		Expect(h.tile.Stats().FiredSlots).To(Equal(uint64(1)))

		latch, loaded := h.tile.Latch()
		Expect(loaded).To(BeTrue())
		Expect(latch[0]).To(Equal(cgra.NewScalar(6)))
		Expect(h.tile.RecvData(0).Valid()).To(BeTrue())
	})
})
