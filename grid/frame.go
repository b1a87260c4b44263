// Package grid holds 5x5 LED frames, the fixed animations the radar plays and the
// compositor turning a scan cycle into its result frame.
package grid

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	Rows = 5
	Cols = 5
)

// Frame is one image of the grid: one byte per row, bit n set when column n is lit.
type Frame [Rows]uint8

// Blank has every LED off.
var Blank Frame

// MustParse builds a frame from five strings of five characters, '#' meaning lit.
func MustParse(rows ...string) Frame {
	var f Frame

	if len(rows) != Rows {
		panic(fmt.Sprintf("grid: want %d rows, got %d", Rows, len(rows)))
	}

	for r, row := range rows {
		if len(row) != Cols {
			panic(fmt.Sprintf("grid: row %d: want %d columns, got %q", r, Cols, row))
		}

		for c, ch := range row {
			if ch == '#' {
				f[r] |= 1 << c
			}
		}
	}

	return f
}

func (f *Frame) Set(row int, colBit uint8) {
	f[row] |= colBit
}

func (f Frame) At(row, col int) bool {
	return f[row]&(1<<col) != 0
}

// Count returns the number of lit LEDs.
func (f Frame) Count() (n int) {
	for _, row := range f {
		n += bits.OnesCount8(row & (1<<Cols - 1))
	}

	return n
}

func (f Frame) String() string {
	var sb strings.Builder

	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}

		for c := 0; c < Cols; c++ {
			if f.At(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}

	return sb.String()
}
