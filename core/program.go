package core

import (
	"fmt"
	"os"

	"github.com/sarchlab/tilesim/cgra"
	"gopkg.in/yaml.v3"
)

// Program is a configuration program of a tile: the tile parameters and the
// writes that fill its control memory, in issue order.
type Program struct {
	Tile   TileParams    `yaml:"tile"`
	Writes []ConfigWrite `yaml:"writes"`
}

// ConfigWrite is one (address, word) pair of a program.
type ConfigWrite struct {
	Addr   int         `yaml:"addr"`
	Opt    cgra.Opcode `yaml:"opt"`
	Routes []uint8     `yaml:"routes,flow"`
}

// Word returns the configuration word of the write.
func (w ConfigWrite) Word() cgra.CtrlWord {
	return cgra.CtrlWord{
		Opcode: w.Opt,
		Routes: append([]uint8(nil), w.Routes...),
	}
}

// ParseProgram decodes a program from YAML. Tile parameters the document
// leaves out take their default values.
func ParseProgram(data []byte) (Program, error) {
	var p Program

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Program{}, fmt.Errorf("decode program: %w", err)
	}

	p.Tile = p.Tile.Merge(DefaultTileParams())

	if err := p.Tile.Validate(); err != nil {
		return Program{}, fmt.Errorf("program tile: %w", err)
	}

	for i, w := range p.Writes {
		if w.Opt == "" {
			return Program{}, fmt.Errorf("write %d has no opt", i)
		}
	}

	return p, nil
}

// LoadProgramFileFromYAML reads a program file. It panics if the file cannot
// be read or decoded.
func LoadProgramFileFromYAML(path string) Program {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("read program %s: %v", path, err))
	}

	p, err := ParseProgram(data)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", path, err))
	}

	return p
}

// MarshalProgram encodes a program as YAML.
func MarshalProgram(p Program) ([]byte, error) {
	return yaml.Marshal(p)
}
